package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	crmapp "github.com/hospicetrack/backend/internal/application/crm"
	identityapp "github.com/hospicetrack/backend/internal/application/identity"
	"github.com/hospicetrack/backend/internal/infrastructure/auth"
	"github.com/hospicetrack/backend/internal/infrastructure/cache"
	"github.com/hospicetrack/backend/internal/infrastructure/config"
	"github.com/hospicetrack/backend/internal/infrastructure/logger"
	"github.com/hospicetrack/backend/internal/infrastructure/persistence"
	"github.com/hospicetrack/backend/internal/infrastructure/telemetry"
	"github.com/hospicetrack/backend/internal/interfaces/http/handler"
	"github.com/hospicetrack/backend/internal/interfaces/http/middleware"
	"github.com/hospicetrack/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			HospiceTrack API
//	@version		1.0
//	@description	Sales CRM backend for hospice and home health software vendors

//	@contact.name	API Support
//	@contact.email	support@hospicetrack.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting HospiceTrack backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Attach query tracing callbacks when telemetry is on
	if tracerProvider.IsEnabled() {
		dbTracing := telemetry.NewDBTracingCallback(200 * time.Millisecond)
		if err := dbTracing.RegisterCallbacks(db.DB); err != nil {
			log.Warn("Failed to register database tracing callbacks", zap.Error(err))
		}
	}

	// Initialize repositories
	facilityRepo := persistence.NewGormFacilityRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	dealRepo := persistence.NewGormDealRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Dashboard stats cache (Redis with in-memory fallback)
	var statsCache crmapp.StatsCache
	if cfg.Cache.Enabled {
		cacheFactory := cache.NewStatsCacheFactory(cfg.Redis, cache.WithLogger(log))
		statsCache, err = cacheFactory.CreateCache()
		if err != nil {
			log.Fatal("Failed to create stats cache", zap.Error(err))
		}
	} else {
		log.Info("Dashboard stats cache disabled")
	}

	// Token blacklist for logout support (Redis with in-memory fallback)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable for token blacklist, falling back to in-memory. "+
			"Revocations will not survive restarts or span instances.",
			zap.Error(err),
		)
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)

	// CRM application services
	facilityService := crmapp.NewFacilityService(facilityRepo, statsCache)
	contactService := crmapp.NewContactService(contactRepo, facilityRepo, statsCache)
	dealService := crmapp.NewDealService(dealRepo, facilityRepo, contactRepo, statsCache)
	taskService := crmapp.NewTaskService(taskRepo, facilityRepo, contactRepo, dealRepo, statsCache)
	activityService := crmapp.NewActivityService(activityRepo, facilityRepo, contactRepo, dealRepo)
	dashboardService := crmapp.NewDashboardService(dealRepo, facilityRepo, contactRepo, taskRepo, statsCache, cfg.Cache.StatsTTL, log)
	pipelineService := crmapp.NewPipelineService(dealRepo, facilityRepo, contactRepo, statsCache)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	facilityHandler := handler.NewFacilityHandler(facilityService)
	contactHandler := handler.NewContactHandler(contactService)
	dealHandler := handler.NewDealHandler(dealService)
	taskHandler := handler.NewTaskHandler(taskService)
	activityHandler := handler.NewActivityHandler(activityService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, pipelineService)
	pipelineHandler := handler.NewPipelineHandler(pipelineService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if tracerProvider.IsEnabled() {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	if tracerProvider.IsEnabled() {
		r.Use(middleware.TracingAttributeInjector())
	}

	// Auth routes (register/login/refresh are public via skip paths)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.RateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Facility routes
	facilityRoutes := router.NewDomainGroup("facilities", "/facilities")
	facilityRoutes.POST("", facilityHandler.Create)
	facilityRoutes.GET("", facilityHandler.List)
	facilityRoutes.GET("/:id", facilityHandler.GetByID)
	facilityRoutes.PUT("/:id", facilityHandler.Update)
	facilityRoutes.DELETE("/:id", facilityHandler.Delete)
	facilityRoutes.GET("/:id/contacts", contactHandler.ListByFacility)
	facilityRoutes.GET("/:id/activities", activityHandler.ListByFacility)

	// Contact routes
	contactRoutes := router.NewDomainGroup("contacts", "/contacts")
	contactRoutes.POST("", contactHandler.Create)
	contactRoutes.GET("", contactHandler.List)
	contactRoutes.GET("/:id", contactHandler.GetByID)
	contactRoutes.PUT("/:id", contactHandler.Update)
	contactRoutes.DELETE("/:id", contactHandler.Delete)
	contactRoutes.POST("/:id/contacted", contactHandler.RecordContacted)

	// Deal routes
	dealRoutes := router.NewDomainGroup("deals", "/deals")
	dealRoutes.POST("", dealHandler.Create)
	dealRoutes.GET("", dealHandler.List)
	dealRoutes.GET("/active", dealHandler.ListActive)
	dealRoutes.GET("/:id", dealHandler.GetByID)
	dealRoutes.PUT("/:id", dealHandler.Update)
	dealRoutes.PATCH("/:id/stage", dealHandler.ChangeStage)
	dealRoutes.DELETE("/:id", dealHandler.Delete)
	dealRoutes.GET("/:id/activities", activityHandler.ListByDeal)

	// Task routes
	taskRoutes := router.NewDomainGroup("tasks", "/tasks")
	taskRoutes.POST("", taskHandler.Create)
	taskRoutes.GET("", taskHandler.List)
	taskRoutes.GET("/open", taskHandler.ListOpen)
	taskRoutes.GET("/due-today", taskHandler.ListDueToday)
	taskRoutes.GET("/:id", taskHandler.GetByID)
	taskRoutes.PUT("/:id", taskHandler.Update)
	taskRoutes.POST("/:id/complete", taskHandler.Complete)
	taskRoutes.POST("/:id/reopen", taskHandler.Reopen)
	taskRoutes.DELETE("/:id", taskHandler.Delete)

	// Activity log routes
	activityRoutes := router.NewDomainGroup("activities", "/activities")
	activityRoutes.POST("", activityHandler.Log)
	activityRoutes.GET("", activityHandler.List)
	activityRoutes.GET("/:id", activityHandler.GetByID)
	activityRoutes.DELETE("/:id", activityHandler.Delete)

	// Dashboard routes
	dashboardRoutes := router.NewDomainGroup("dashboard", "/dashboard")
	dashboardRoutes.GET("/stats", dashboardHandler.GetStats)
	dashboardRoutes.GET("/pipeline", dashboardHandler.GetPipeline)

	// Pipeline board routes
	pipelineRoutes := router.NewDomainGroup("pipeline", "/pipeline")
	pipelineRoutes.GET("/board", pipelineHandler.GetBoard)
	pipelineRoutes.PATCH("/deals/:id/move", pipelineHandler.MoveDeal)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(facilityRoutes).
		Register(contactRoutes).
		Register(dealRoutes).
		Register(taskRoutes).
		Register(activityRoutes).
		Register(dashboardRoutes).
		Register(pipelineRoutes).
		Register(systemRoutes)

	// Setup routes
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
