package metrics

import (
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	paymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_payments_total",
			Help: "Payment attempts by method and result code.",
		},
		[]string{"method", "result"},
	)
	paymentAmountTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_payment_amount_total",
			Help: "Sum of successful payment totals by method.",
		},
		[]string{"method"},
	)
	processorTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_processor_transitions_total",
			Help: "Payment processor state transitions.",
		},
		[]string{"from", "to"},
	)
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pos_checkout_sessions_active",
			Help: "Checkout sessions currently held in memory.",
		},
	)
)

var idSegment = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}|/[0-9]+(/|$)`)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)
		path := NormalizePath(r.URL.Path)

		defer func() {
			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, path).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()
		}()

		next.ServeHTTP(rw, r)
	})
}

// NormalizePath replaces ids and item indexes so label cardinality stays bounded.
func NormalizePath(path string) string {
	return idSegment.ReplaceAllStringFunc(path, func(segment string) string {
		if segment[len(segment)-1] == '/' {
			return "/{n}/"
		}

		if len(segment) == 37 {
			return "/{id}"
		}

		return "/{n}"
	})
}

func RecordPayment(method, result string, amount float64) {
	paymentsTotal.WithLabelValues(method, result).Inc()

	if result == "success" {
		paymentAmountTotal.WithLabelValues(method).Add(amount)
	}
}

func RecordTransition(from, to string) {
	processorTransitions.WithLabelValues(from, to).Inc()
}

func SessionOpened() {
	activeSessions.Inc()
}

func SessionClosed() {
	activeSessions.Dec()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
