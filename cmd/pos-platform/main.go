package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/pos-platform/docs"
	"github.com/aaravmahajanofficial/pos-platform/internal/api/handlers"
	"github.com/aaravmahajanofficial/pos-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-platform/internal/cache"
	"github.com/aaravmahajanofficial/pos-platform/internal/checkout"
	"github.com/aaravmahajanofficial/pos-platform/internal/config"
	"github.com/aaravmahajanofficial/pos-platform/internal/health"
	"github.com/aaravmahajanofficial/pos-platform/internal/metrics"
	"github.com/aaravmahajanofficial/pos-platform/internal/models"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	service "github.com/aaravmahajanofficial/pos-platform/internal/services"
	"github.com/aaravmahajanofficial/pos-platform/internal/telemetry"
	"github.com/aaravmahajanofficial/pos-platform/pkg/sendGrid"
	"github.com/aaravmahajanofficial/pos-platform/pkg/stripe"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const sessionSweepInterval = time.Minute

//	@title						POS Platform API
//	@version					1.0
//	@description				Point-of-sale checkout: carts, payments, transactions and customer loyalty.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(rootCtx, cfg.OTel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error initialising tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if err := repository.RunMigrations(repos.DB, cfg.Database.MigrationsPath); err != nil {
		slog.Error("❌ Error applying migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer redisCache.Close()

	taxRate, err := cfg.Checkout.TaxRate()
	if err != nil {
		slog.Error("❌ Invalid default tax rate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	silver, gold, err := cfg.Tiers.Thresholds()
	if err != nil {
		slog.Error("❌ Invalid loyalty tier thresholds", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Payment processors
	var stripeClient stripe.Client

	var cards checkout.CardCharger = checkout.NewSimulatedCardCharger(cfg.Checkout.SimulatedCardDelay)

	if cfg.Stripe.Enabled {
		stripeClient = stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
		cards = checkout.NewStripeCardCharger(stripeClient, cfg.Checkout.Currency)
	}

	sendGridClient := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	jwtKey := []byte(cfg.Security.JWTKey)
	tokenTTL := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour

	// Services
	staffService := service.NewStaffService(repos.Staff, repository.NewRateLimitRepo(redisClient, cfg.RateConfig), jwtKey, tokenTTL)
	productService := service.NewProductService(repos.Product, redisCache, cfg.Cache.DefaultTTL)
	customerService := service.NewCustomerService(repos.Customer, repos.Wallet, service.Tiering{Silver: silver, Gold: gold}, redisCache, cfg.Cache.DefaultTTL)
	taxRuleService := service.NewTaxRuleService(repos.TaxRule, redisCache, cfg.Cache.DefaultTTL)
	notificationService := service.NewNotificationService(repos.Notification, sendGridClient)
	transactionService := service.NewTransactionService(repos.Transaction, stripeClient, notificationService)

	gateway := repository.NewCheckoutGateway(repos.Transaction, repos.Wallet)
	walletLedger := checkout.NewWalletLedger(gateway, checkout.WithLocker(repository.NewRedisLocker(redisClient), cfg.Checkout.WalletLockTTL))

	checkoutService := service.NewCheckoutService(service.CheckoutDeps{
		Catalog:   productService,
		TaxRules:  taxRuleService,
		Gateway:   gateway,
		Wallet:    walletLedger,
		Cards:     cards,
		GiftCards: checkout.LoggingGiftCardRedeemer{},
		Inventory: productService,
		Customers: customerService,
		Tabs:      transactionService,
	}, service.CheckoutConfig{
		DefaultTaxRate: taxRate,
		IdleTimeout:    cfg.Checkout.SessionIdleTimeout,
	})

	// Handlers
	staffHandler := handlers.NewStaffHandler(staffService)
	productHandler := handlers.NewProductHandler(productService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	taxRuleHandler := handlers.NewTaxRuleHandler(taxRuleService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtKey)
	auth := authMiddleware.Authenticate
	managers := middleware.RequireRole(models.RoleManager, models.RoleAdmin)
	admins := middleware.RequireRole(models.RoleAdmin)

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.Bool("stripe", cfg.Stripe.Enabled))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/staff/login", staffHandler.Login())
	routerMux.HandleFunc("POST /api/v1/staff/register", auth(admins(staffHandler.Register())))
	routerMux.HandleFunc("GET /api/v1/staff/me", auth(staffHandler.Profile()))

	routerMux.HandleFunc("POST /api/v1/products", auth(managers(productHandler.CreateProduct())))
	routerMux.HandleFunc("GET /api/v1/products", auth(productHandler.ListProducts()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", auth(productHandler.GetProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", auth(managers(productHandler.UpdateProduct())))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", auth(managers(productHandler.DeleteProduct())))
	routerMux.HandleFunc("POST /api/v1/products/{id}/variants", auth(managers(productHandler.CreateVariant())))
	routerMux.HandleFunc("POST /api/v1/products/{id}/variants/generate", auth(managers(productHandler.GenerateVariants())))
	routerMux.HandleFunc("GET /api/v1/products/{id}/variants", auth(productHandler.ListVariants()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}/variants/{variantId}", auth(managers(productHandler.UpdateVariant())))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}/variants/{variantId}", auth(managers(productHandler.DeleteVariant())))

	routerMux.HandleFunc("POST /api/v1/customers", auth(customerHandler.CreateCustomer()))
	routerMux.HandleFunc("GET /api/v1/customers", auth(customerHandler.ListCustomers()))
	routerMux.HandleFunc("GET /api/v1/customers/{id}", auth(customerHandler.GetCustomer()))
	routerMux.HandleFunc("PUT /api/v1/customers/{id}", auth(customerHandler.UpdateCustomer()))
	routerMux.HandleFunc("GET /api/v1/customers/{id}/profile", auth(customerHandler.GetCustomerProfile()))

	routerMux.HandleFunc("GET /api/v1/tax-rules", auth(taxRuleHandler.ListTaxRules()))
	routerMux.HandleFunc("PUT /api/v1/tax-rules", auth(managers(taxRuleHandler.UpsertTaxRule())))

	routerMux.HandleFunc("POST /api/v1/checkout/sessions", auth(checkoutHandler.CreateSession()))
	routerMux.HandleFunc("GET /api/v1/checkout/sessions/{id}", auth(checkoutHandler.GetSession()))
	routerMux.HandleFunc("DELETE /api/v1/checkout/sessions/{id}", auth(checkoutHandler.DeleteSession()))
	routerMux.HandleFunc("POST /api/v1/checkout/sessions/{id}/items", auth(checkoutHandler.AddItem()))
	routerMux.HandleFunc("DELETE /api/v1/checkout/sessions/{id}/items", auth(checkoutHandler.ClearCart()))
	routerMux.HandleFunc("PATCH /api/v1/checkout/sessions/{id}/items/{index}", auth(checkoutHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/checkout/sessions/{id}/items/{index}", auth(checkoutHandler.RemoveItem()))
	routerMux.HandleFunc("PUT /api/v1/checkout/sessions/{id}/customer", auth(checkoutHandler.SetCustomer()))
	routerMux.HandleFunc("PUT /api/v1/checkout/sessions/{id}/payment/method", auth(checkoutHandler.SelectPaymentMethod()))
	routerMux.HandleFunc("PUT /api/v1/checkout/sessions/{id}/payment", auth(checkoutHandler.UpdatePaymentInput()))
	routerMux.HandleFunc("POST /api/v1/checkout/sessions/{id}/payment/numpad", auth(checkoutHandler.PressNumpad()))
	routerMux.HandleFunc("POST /api/v1/checkout/sessions/{id}/payment/submit", auth(checkoutHandler.SubmitPayment()))
	routerMux.HandleFunc("POST /api/v1/checkout/sessions/{id}/tabs", auth(checkoutHandler.OpenTab()))
	routerMux.HandleFunc("POST /api/v1/checkout/sessions/{id}/tabs/load", auth(checkoutHandler.LoadTab()))

	routerMux.HandleFunc("GET /api/v1/transactions", auth(transactionHandler.ListTransactions()))
	routerMux.HandleFunc("GET /api/v1/transactions/stats", auth(managers(transactionHandler.GetStats())))
	routerMux.HandleFunc("GET /api/v1/transactions/{id}", auth(transactionHandler.GetTransaction()))
	routerMux.HandleFunc("POST /api/v1/transactions/{id}/refund", auth(managers(transactionHandler.RefundTransaction())))
	routerMux.HandleFunc("POST /api/v1/transactions/{id}/receipt", auth(transactionHandler.SendReceipt()))
	routerMux.HandleFunc("POST /api/v1/webhooks/stripe", transactionHandler.StripeWebhook())

	routerMux.HandleFunc("GET /api/v1/notifications", auth(managers(notificationHandler.ListNotifications())))
	routerMux.HandleFunc("GET /api/v1/notifications/{id}", auth(notificationHandler.GetNotification()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "pos-platform")

	// Setup http server
	server := http.Server{
		Addr:              cfg.HTTPServer.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTPServer.ReadHeaderTimeout,
	}

	go sweepIdleSessions(rootCtx, checkoutService)

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.HTTPServer.Addr))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-rootCtx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}
}

// sweepIdleSessions drops abandoned checkout sessions until ctx is done.
func sweepIdleSessions(ctx context.Context, checkoutService service.CheckoutService) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkoutService.ExpireIdleSessions(ctx)
		}
	}
}
