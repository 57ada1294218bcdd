package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/pos-platform/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracer(t *testing.T) {
	t.Run("Disabled keeps the default provider", func(t *testing.T) {
		before := otel.GetTracerProvider()

		shutdown, err := InitTracer(t.Context(), config.OTel{Enabled: false}, "test")

		require.NoError(t, err)
		assert.Equal(t, before, otel.GetTracerProvider())
		assert.NoError(t, shutdown(t.Context()))
	})

	t.Run("Enabled installs an SDK provider", func(t *testing.T) {
		previous := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(previous) })

		shutdown, err := InitTracer(t.Context(), config.OTel{
			Enabled:          true,
			ServiceName:      "pos-platform-test",
			ExporterEndpoint: "localhost:4318",
			SamplerRatio:     1,
		}, "test")

		require.NoError(t, err)
		assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		assert.NoError(t, shutdown(ctx))
	})
}
