package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/freshfold/backend/internal/application/admin"
	bookingapp "github.com/freshfold/backend/internal/application/booking"
	identityapp "github.com/freshfold/backend/internal/application/identity"
	"github.com/freshfold/backend/internal/infrastructure/auth"
	"github.com/freshfold/backend/internal/infrastructure/config"
	"github.com/freshfold/backend/internal/infrastructure/logger"
	"github.com/freshfold/backend/internal/infrastructure/persistence"
	"github.com/freshfold/backend/internal/infrastructure/session"
	"github.com/freshfold/backend/internal/infrastructure/telemetry"
	"github.com/freshfold/backend/internal/interfaces/http/handler"
	"github.com/freshfold/backend/internal/interfaces/http/middleware"
	"github.com/freshfold/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//	@title			FreshFold API
//	@version		1.0
//	@description	Laundry pickup and delivery booking API

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
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FreshFold Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetryCfg, log)
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

	// Query spans nest under the otelgin request spans
	if err := telemetry.EnableDBTracing(db.DB, telemetryCfg, log); err != nil {
		log.Fatal("Failed to enable database tracing", zap.Error(err))
	}

	// Pending-order staging store (redis or in-process memory)
	pendingStore, err := session.NewPendingOrderStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize pending-order store", zap.Error(err))
	}

	// Token blacklist follows the session backend: redis when staged
	// bookings live in redis, otherwise process-local
	var blacklist auth.TokenBlacklist
	if cfg.Session.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		blacklist = auth.NewRedisTokenBlacklist(client)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, cfg.Admin, log)
	bookingService := bookingapp.NewBookingService(orderRepo, addressRepo, pendingStore, log)
	orderService := bookingapp.NewOrderService(orderRepo, userRepo, log)
	adminService := adminapp.NewAdminService(orderRepo, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(adminService)
	systemHandler := handler.NewSystemHandler()

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
	// 4. Tracing - OpenTelemetry spans
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
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
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/system/info",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/admin/login",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Auth domain - public routes plus token-protected logout
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)

	// Stricter rate limit on credential endpoints (if enabled)
	if cfg.HTTP.AuthRateLimitEnabled {
		authRateLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authRateLimiter))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	// Operator login stays outside the admin-scoped group so the scope
	// check never runs before credentials are verified
	adminAuthRoutes := router.NewDomainGroup("admin-auth", "/admin")
	adminAuthRoutes.POST("/login", authHandler.AdminLogin)

	// Customer profile
	profileRoutes := router.NewDomainGroup("profile", "/profile")
	profileRoutes.Use(middleware.RequireScope(auth.ScopeCustomer))
	profileRoutes.GET("/dashboard", orderHandler.Dashboard)

	// Saved addresses
	addressRoutes := router.NewDomainGroup("addresses", "/addresses")
	addressRoutes.Use(middleware.RequireScope(auth.ScopeCustomer))
	addressRoutes.POST("", bookingHandler.AddAddress)
	addressRoutes.GET("", bookingHandler.ListAddresses)

	// Booking flow
	bookingRoutes := router.NewDomainGroup("booking", "/booking")
	bookingRoutes.Use(middleware.RequireScope(auth.ScopeCustomer))
	bookingRoutes.GET("/context", bookingHandler.BookingContext)
	bookingRoutes.POST("", bookingHandler.StageOrder)

	// Payment step
	paymentRoutes := router.NewDomainGroup("payment", "/payment")
	paymentRoutes.Use(middleware.RequireScope(auth.ScopeCustomer))
	paymentRoutes.GET("", bookingHandler.GetPayment)
	paymentRoutes.POST("", bookingHandler.ConfirmPayment)

	// Order history
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.Use(middleware.RequireScope(auth.ScopeCustomer))
	orderRoutes.GET("", orderHandler.ListOrders)
	orderRoutes.GET("/:id", orderHandler.GetOrder)
	orderRoutes.POST("/:id/cancel", orderHandler.CancelOrder)
	orderRoutes.GET("/:id/invoice", orderHandler.Invoice)

	// Operator panel
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireScope(auth.ScopeAdmin))
	adminRoutes.GET("/orders", adminHandler.ListOrders)
	adminRoutes.GET("/stats", adminHandler.Stats)
	adminRoutes.PUT("/orders/:id/status", adminHandler.UpdateStatus)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "")
	systemRoutes.GET("/health", systemHandler.Health)
	systemRoutes.GET("/system/info", systemHandler.GetSystemInfo)

	r.Register(authRoutes).
		Register(adminAuthRoutes).
		Register(profileRoutes).
		Register(addressRoutes).
		Register(bookingRoutes).
		Register(paymentRoutes).
		Register(orderRoutes).
		Register(adminRoutes).
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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		pool, err := db.Stats()
		if err != nil {
			reqLog.Warn("Failed to read connection pool stats", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
			"pool": gin.H{
				"open_connections": pool.OpenConnections,
				"in_use":           pool.InUse,
				"idle":             pool.Idle,
			},
		})
	}
}
