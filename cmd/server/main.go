package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	financeapp "github.com/venuehq/backend/internal/application/finance"
	giftcardapp "github.com/venuehq/backend/internal/application/giftcard"
	inventoryapp "github.com/venuehq/backend/internal/application/inventory"
	kitchenapp "github.com/venuehq/backend/internal/application/kitchen"
	loyaltyapp "github.com/venuehq/backend/internal/application/loyalty"
	paymentapp "github.com/venuehq/backend/internal/application/payment"
	reportapp "github.com/venuehq/backend/internal/application/report"
	"github.com/venuehq/backend/internal/domain/finance"
	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/infrastructure/auth"
	"github.com/venuehq/backend/internal/infrastructure/cache"
	"github.com/venuehq/backend/internal/infrastructure/config"
	"github.com/venuehq/backend/internal/infrastructure/event"
	"github.com/venuehq/backend/internal/infrastructure/logger"
	"github.com/venuehq/backend/internal/infrastructure/persistence"
	"github.com/venuehq/backend/internal/infrastructure/storage"
	"github.com/venuehq/backend/internal/infrastructure/telemetry"
	"github.com/venuehq/backend/internal/interfaces/http/handler"
	"github.com/venuehq/backend/internal/interfaces/http/middleware"
	"github.com/venuehq/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting venue backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)
	giftCardRepo := persistence.NewGormGiftCardRepository(db.DB)
	loyaltyRepo := persistence.NewGormLoyaltyRepository(db.DB)
	planRepo := persistence.NewGormInstallmentPlanRepository(db.DB)
	houseAccountRepo := persistence.NewGormHouseAccountRepository(db.DB)
	stationRepo := persistence.NewGormStationRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	cashSessionRepo := persistence.NewGormCashSessionRepository(db.DB)
	metricRepo := persistence.NewGormMetricRepository(db.DB)

	// Idempotency store backing gift card redemption replay protection.
	// Redis is shared across instances; the in-memory store covers single
	// instance and development deployments.
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.IdempotencyTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = redisStore
		log.Info("Redis idempotency store enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Duration("ttl", cfg.Redis.IdempotencyTTL),
		)
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore(cfg.Redis.IdempotencyTTL)
	}

	// Initialize application services
	inventoryService := inventoryapp.NewInventoryService(stockItemRepo, stockMovementRepo)
	inventoryService.SetLookbackDays(cfg.Inventory.LookbackDays)
	giftCardService := giftcardapp.NewGiftCardService(giftCardRepo, idempotencyStore)
	loyaltyService := loyaltyapp.NewLoyaltyService(loyaltyRepo)
	paymentService := paymentapp.NewPaymentService(planRepo, houseAccountRepo)
	kitchenService := kitchenapp.NewKitchenService(stationRepo, ticketRepo)
	kitchenService.SetFireAheadMinutes(float64(cfg.Kitchen.FireAheadMinutes))
	financeService := financeapp.NewFinanceService(cashSessionRepo)
	financeService.SetVarianceBands(finance.VarianceBands{
		MinorBound:  decimal.NewFromFloat(cfg.Drawer.MinorVarianceBound),
		SevereBound: decimal.NewFromFloat(cfg.Drawer.SevereVarianceBound),
	})
	reportService := reportapp.NewReportService(metricRepo)

	// Report export storage
	if cfg.Exports.Enabled {
		if cfg.Exports.Bucket != "" {
			s3Store, err := storage.NewS3ExportStore(cfg.Exports, storage.WithLogger(log))
			if err != nil {
				log.Fatal("Failed to initialize S3 export store", zap.Error(err))
			}
			reportService.SetExportStore(s3Store)
			log.Info("S3 export store enabled", zap.String("bucket", cfg.Exports.Bucket))
		} else {
			localStore, err := storage.NewLocalExportStore(cfg.Exports.BasePath)
			if err != nil {
				log.Fatal("Failed to initialize local export store", zap.Error(err))
			}
			reportService.SetExportStore(localStore)
			log.Info("Local export store enabled", zap.String("path", cfg.Exports.BasePath))
		}
	}

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	eventBus.Subscribe(event.NewVarianceAlertHandler(log))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	inventoryService.SetEventPublisher(eventBus)
	giftCardService.SetEventPublisher(eventBus)
	loyaltyService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)
	kitchenService.SetEventPublisher(eventBus)
	financeService.SetEventPublisher(eventBus)

	// Initialize telemetry providers
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Venue metrics flow off the event bus so services stay metrics-agnostic
	if meterProvider.IsEnabled() {
		venueMetrics, err := telemetry.NewVenueMetrics(telemetry.VenueMetricsConfig{
			Meter:         meterProvider.Meter("venue"),
			Logger:        log,
			StockProvider: stockItemRepo,
		})
		if err != nil {
			log.Fatal("Failed to initialize venue metrics", zap.Error(err))
		}
		defer venueMetrics.Stop()
		metricsHandler := event.NewMetricsHandler(venueMetrics)
		eventBus.Subscribe(metricsHandler, metricsHandler.EventTypes()...)
		venueMetrics.StartPeriodicCollection(context.Background(), stockItemRepo, 0)
	}

	// JWT service for request authentication
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	giftCardHandler := handler.NewGiftCardHandler(giftCardService)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltyService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	kitchenHandler := handler.NewKitchenHandler(kitchenService)
	financeHandler := handler.NewFinanceHandler(financeService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, version)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first: request ID, panic recovery, request
	// logging, security headers, CORS, tracing, HTTP metrics, body limit,
	// then rate limiting
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.Enabled,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health and readiness sit outside the versioned API
	systemHandler.RegisterRoutes(engine)

	// Authenticate everything under the API prefix
	engine.Use(middleware.JWTAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/healthz", "/readyz"},
		Logger:     log,
	}))

	// Register domain routes under the versioned prefix
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(
		inventoryHandler,
		giftCardHandler,
		loyaltyHandler,
		paymentHandler,
		kitchenHandler,
		financeHandler,
		reportHandler,
	)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
