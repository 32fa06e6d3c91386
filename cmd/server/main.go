package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	forecastapp "github.com/stockcast/backend/internal/application/forecast"
	inventoryapp "github.com/stockcast/backend/internal/application/inventory"
	"github.com/stockcast/backend/internal/infrastructure/cache"
	"github.com/stockcast/backend/internal/infrastructure/config"
	"github.com/stockcast/backend/internal/infrastructure/logger"
	"github.com/stockcast/backend/internal/infrastructure/persistence"
	"github.com/stockcast/backend/internal/infrastructure/telemetry"
	"github.com/stockcast/backend/internal/interfaces/http/handler"
	"github.com/stockcast/backend/internal/interfaces/http/middleware"
	"github.com/stockcast/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize OpenTelemetry tracing
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	// Connect to database with a zap-backed GORM logger
	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	materialRepo := persistence.NewGormRawMaterialRepository(db.DB)
	lotRepo := persistence.NewGormLotRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)

	// Application services
	inventoryService := inventoryapp.NewService(materialRepo, lotRepo, movementRepo, log)
	inventoryService.SetTransactionScope(persistence.NewGormTransactionScope(db.DB))
	forecastService := forecastapp.NewService(materialRepo, lotRepo, movementRepo, log)
	forecastService.SetLookbackDays(cfg.Forecast.LookbackDays)
	forecastService.SetReportTTL(cfg.Forecast.ReportCacheTTL)

	var reportCache *cache.RedisReportCache
	if cfg.Redis.Enabled {
		reportCache, err = cache.NewRedisReportCache(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer reportCache.Close()
		forecastService.SetCache(reportCache)
		log.Info("Report caching enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// HTTP handlers
	materialHandler := handler.NewMaterialHandler(inventoryService)
	forecastHandler := handler.NewForecastHandler(forecastService, cfg.Forecast)

	// Setup gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check
	engine.GET("/health", healthHandler(db))

	// Register domain routes under /api/v1
	materialsGroup := router.NewDomainGroup("materials", "/materials").
		POST("", materialHandler.Create).
		GET("", materialHandler.List).
		GET("/:id", materialHandler.GetByID).
		PUT("/:id", materialHandler.Update).
		PUT("/:id/min-stock", materialHandler.SetMinStock).
		DELETE("/:id", materialHandler.Deactivate).
		POST("/:id/lots", materialHandler.RegisterLot).
		GET("/:id/lots", materialHandler.ListLots).
		POST("/:id/consume", materialHandler.Consume).
		GET("/:id/movements", materialHandler.ListMovements)

	lotsGroup := router.NewDomainGroup("lots", "/lots").
		POST("/:id/discard", materialHandler.DiscardLot)

	forecastGroup := router.NewDomainGroup("forecast", "/forecast").
		GET("/projection", forecastHandler.Projection).
		GET("/materials/:id/daily", forecastHandler.MaterialDaily).
		GET("/replenishment", forecastHandler.Replenishment).
		GET("/expirations", forecastHandler.Expirations)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(materialsGroup).
		Register(lotsGroup).
		Register(forecastGroup)
	r.Setup()

	// Start HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}

	log.Info("Server exited")
}

// healthHandler reports service liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
