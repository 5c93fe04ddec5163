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
	analyticsapp "github.com/resale/backend/internal/application/analytics"
	"github.com/resale/backend/internal/domain/analytics"
	"github.com/resale/backend/internal/infrastructure/auth"
	"github.com/resale/backend/internal/infrastructure/config"
	"github.com/resale/backend/internal/infrastructure/logger"
	"github.com/resale/backend/internal/infrastructure/persistence"
	"github.com/resale/backend/internal/infrastructure/storage"
	"github.com/resale/backend/internal/infrastructure/telemetry"
	"github.com/resale/backend/internal/interfaces/http/handler"
	"github.com/resale/backend/internal/interfaces/http/middleware"
	"github.com/resale/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/resale/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Resale Analytics API
//	@version		1.0
//	@description	Inventory and sales analytics for a second-hand electronics business
//	@termsOfService	http://swagger.io/terms/

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

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
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	// Telemetry: profiler first so span profiles can attach to it
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Telemetry.LogsLevel))

	log.Info("Starting resale analytics",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", cfg.App.Version),
	)

	// Initialize database connection with custom logger
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:     cfg.Database.DBName,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate SQLite store", zap.Error(err))
		}
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Analytics engine and service
	loc, err := cfg.Analytics.Location()
	if err != nil {
		log.Fatal("Invalid analytics timezone", zap.String("timezone", cfg.Analytics.Timezone), zap.Error(err))
	}
	engine := analytics.NewEngine(analytics.EngineConfig{
		Catalog:            analytics.NewCatalog(cfg.Analytics.Categories),
		TopProductsLimit:   cfg.Analytics.TopProductsLimit,
		TopCategoriesLimit: cfg.Analytics.TopCategoriesLimit,
		PriceMarginLimit:   cfg.Analytics.PriceMarginLimit,
		MinMarginThreshold: cfg.Analytics.MinMarginThreshold,
		Parallel:           cfg.Analytics.Parallel,
	})

	analyticsMetrics, err := telemetry.NewAnalyticsMetrics(meterProvider.Meter("resale-analytics/analytics"))
	if err != nil {
		log.Fatal("Failed to create analytics metrics", zap.Error(err))
	}

	// Snapshot storage: S3 when configured, otherwise served from memory
	var snapshotHandler *handler.SnapshotHandler
	var snapshotStore analyticsapp.SnapshotStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3SnapshotStore(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to create snapshot store", zap.Error(err))
		}
		bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = s3Store.EnsureBucket(bucketCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to prepare snapshot bucket", zap.String("bucket", s3Store.Bucket()), zap.Error(err))
		}
		snapshotStore = s3Store
	} else {
		memStore := storage.NewMemorySnapshotStore(
			fmt.Sprintf("http://localhost:%s/api/v1/analytics/snapshots", cfg.App.Port))
		snapshotStore = memStore
		snapshotHandler = handler.NewSnapshotHandler(memStore)
		log.Info("Object storage disabled, snapshots kept in memory")
	}

	analyticsService := analyticsapp.NewAnalyticsService(
		persistence.NewGormRecordRepository(db.DB),
		engine,
		analyticsapp.NewSystemClock(loc),
		log.Named("analytics"),
		analyticsapp.WithMetrics(analyticsMetrics),
		analyticsapp.WithSnapshotStore(snapshotStore, cfg.Storage.SnapshotPrefix, cfg.Storage.PresignExpiration),
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin engine
	ginEngine := gin.New()
	if err := ginEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	httpMetrics, err := middleware.HTTPMetrics(meterProvider.Meter("resale-analytics/http"))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	tracingConfig := middleware.DefaultTracingConfig()
	tracingConfig.ServiceName = cfg.Telemetry.ServiceName
	tracingConfig.Enabled = cfg.Telemetry.Enabled

	// Global middleware, order matters
	ginEngine.Use(middleware.RequestID())
	ginEngine.Use(logger.Recovery(log))
	ginEngine.Use(logger.GinMiddleware(log))
	ginEngine.Use(middleware.TracingWithConfig(tracingConfig))
	ginEngine.Use(middleware.SpanErrorMarker())
	ginEngine.Use(httpMetrics)
	ginEngine.Use(middleware.Secure())
	ginEngine.Use(middleware.CORSWithConfig(corsConfig))
	ginEngine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		ginEngine.Use(middleware.RateLimit(limiter))
	}

	middleware.SetupValidator()

	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, db)
	ginEngine.GET("/health", systemHandler.Health)
	ginEngine.NoRoute(systemHandler.NoRoute)

	// Authentication
	var authMiddleware gin.HandlerFunc
	if cfg.JWT.Enabled {
		jwtConfig := middleware.DefaultJWTConfig(auth.NewValidator(cfg.JWT))
		jwtConfig.Logger = log
		authMiddleware = middleware.JWTAuthMiddleware(jwtConfig)
	} else {
		log.Warn("JWT authentication disabled, the API is open")
	}

	// Swagger documentation
	ginEngine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: authMiddleware != nil,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, authMiddleware, log),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// API routes
	apiMiddleware := make([]gin.HandlerFunc, 0, 3)
	if authMiddleware != nil {
		apiMiddleware = append(apiMiddleware, authMiddleware)
	}
	profilingConfig := middleware.DefaultProfilingConfig()
	profilingConfig.Enabled = profiler.IsEnabled()
	apiMiddleware = append(apiMiddleware,
		middleware.TracingAttributeInjector(),
		middleware.ProfilingWithConfig(profilingConfig),
	)

	r := router.NewRouter(ginEngine, router.WithAPIVersion("v1"), router.WithMiddleware(apiMiddleware...))

	groups := []*router.DomainGroup{
		handler.NewAnalyticsHandler(analyticsService).Routes(),
		systemHandler.Routes(),
	}
	if snapshotHandler != nil {
		groups = append(groups, snapshotHandler.Routes())
	}
	for _, g := range groups {
		r.Register(g)
		for _, route := range g.Routes() {
			log.Debug("Route registered",
				zap.String("method", route.Method),
				zap.String("path", "/api/v1"+route.Path),
				zap.String("description", route.Description))
		}
	}
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if limiter != nil {
		limiter.Stop()
	}

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown meter provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Failed to stop profiler", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	// last, so the exit message above still reaches the collector
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to shutdown logger provider: %v\n", err)
	}
}
