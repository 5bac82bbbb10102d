package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	analyticsapp "github.com/tlsy/handicrafts/internal/application/analytics"
	catalogapp "github.com/tlsy/handicrafts/internal/application/catalog"
	identityapp "github.com/tlsy/handicrafts/internal/application/identity"
	inquiryapp "github.com/tlsy/handicrafts/internal/application/inquiry"
	profileapp "github.com/tlsy/handicrafts/internal/application/profile"
	socialapp "github.com/tlsy/handicrafts/internal/application/social"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/auth"
	"github.com/tlsy/handicrafts/internal/infrastructure/cache"
	"github.com/tlsy/handicrafts/internal/infrastructure/config"
	"github.com/tlsy/handicrafts/internal/infrastructure/i18n"
	"github.com/tlsy/handicrafts/internal/infrastructure/logger"
	"github.com/tlsy/handicrafts/internal/infrastructure/migration"
	"github.com/tlsy/handicrafts/internal/infrastructure/persistence"
	"github.com/tlsy/handicrafts/internal/infrastructure/storage"
	"github.com/tlsy/handicrafts/internal/infrastructure/telemetry"
	"github.com/tlsy/handicrafts/internal/interfaces/http/handler"
	"github.com/tlsy/handicrafts/internal/interfaces/http/middleware"
	"github.com/tlsy/handicrafts/internal/interfaces/http/router"
	"github.com/tlsy/handicrafts/migrations"
	"go.uber.org/zap"
)

func main() {
	hashPassword := flag.String("hash-password", "", "Print a bcrypt hash for admin.password_hash and exit")
	skipMigrations := flag.Bool("skip-migrations", false, "Do not apply pending migrations on startup")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := identityapp.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

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

	log.Info("Starting TLSY Handicrafts",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = randomSecret()
		log.Warn("jwt.secret is not set, using a random secret; admin sessions will not survive a restart")
	}
	if cfg.Admin.Username == "" || (cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "") {
		log.Warn("Admin credentials are not configured, admin login is disabled")
	}

	ctx := context.Background()

	// Initialize telemetry
	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	storefrontMetrics, err := telemetry.NewStorefrontMetrics(mp)
	if err != nil {
		log.Fatal("Failed to initialize storefront metrics", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
		if err := tp.Shutdown(shutdownCtx); err != nil {
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

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), log).Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get database handle", zap.Error(err))
	}

	if !*skipMigrations {
		if err := runMigrations(sqlDB, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled {
		poolMetrics, err := telemetry.NewDBPoolMetrics(mp, sqlDB, cfg.Telemetry.MetricsInterval, log)
		if err != nil {
			log.Fatal("Failed to initialize database pool metrics", zap.Error(err))
		}
		poolMetrics.Start(ctx)
		defer poolMetrics.Stop()
	}

	// Redis backs duplicate detection and the token blacklist when enabled
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}
	dedupeStore := cache.NewDedupeStore(redisClient, log)
	defer func() {
		_ = dedupeStore.Close()
	}()
	blacklist := auth.NewTokenBlacklist(redisClient)

	// Object storage for product images
	objects, mediaHandler, publicURL, err := newObjectStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	translator, err := i18n.New()
	if err != nil {
		log.Fatal("Failed to load translations", zap.Error(err))
	}
	defaultLocale, _ := shared.ParseLocale(cfg.Site.DefaultLocale)

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	submissionRepo := persistence.NewGormSubmissionRepository(db.DB)
	socialRepo := persistence.NewGormSocialLinkRepository(db.DB)
	analyticsRepo := persistence.NewGormAnalyticsRepository(db.DB)

	// Initialize application services
	imageService := catalogapp.NewImageService(objects, catalogapp.ImageServiceConfig{
		MaxUploadSize: cfg.Storage.MaxUploadSize,
		PublicURL:     publicURL,
	}, storefrontMetrics, log)
	productService := catalogapp.NewProductService(productRepo, imageService, log)
	profileService := profileapp.NewProfileService(profileRepo, log)
	contactService := inquiryapp.NewContactService(submissionRepo, dedupeStore, log,
		inquiryapp.WithDedupeWindow(cfg.Inquiry.DedupeWindow),
		inquiryapp.WithEventRecorder(analyticsRepo),
		inquiryapp.WithMetrics(storefrontMetrics),
	)
	socialService := socialapp.NewSocialService(socialRepo, cfg.Site.ShopeeURL, log)
	trackingService := analyticsapp.NewTrackingService(analyticsRepo, productRepo, submissionRepo, storefrontMetrics, log)
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(cfg.Admin, jwtService, blacklist, storefrontMetrics, log)

	// Initialize HTTP handlers
	renderer, err := handler.NewPageRenderer(translator)
	if err != nil {
		log.Fatal("Failed to parse page templates", zap.Error(err))
	}
	handlers := router.Handlers{
		Storefront: handler.NewStorefrontHandler(productService, profileService, contactService, socialService,
			translator, handler.StorefrontConfig{SiteName: cfg.Site.Name, DefaultLocale: defaultLocale}),
		Product:   handler.NewProductHandler(productService),
		Image:     handler.NewImageHandler(imageService),
		Contact:   handler.NewContactHandler(contactService),
		Profile:   handler.NewProfileHandler(profileService),
		Social:    handler.NewSocialHandler(socialService),
		Analytics: handler.NewAnalyticsHandler(trackingService),
		Auth:      handler.NewAuthHandler(authService),
		Health:    handler.NewHealthHandler(db),
		Media:     mediaHandler,
		AdminPages: handler.NewAdminPageHandler(authService, productService, imageService, contactService,
			profileService, trackingService, handler.AdminPagesConfig{
				SiteName:      cfg.Site.Name,
				SecureCookies: cfg.IsProduction(),
			}),
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.HTMLRender = renderer
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Global middleware: request ID first so every log line and span carries it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(mp))

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.IsProduction()
	engine.Use(middleware.SecureWithConfig(securityCfg))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	apiMiddleware := []gin.HandlerFunc{middleware.Locale(translator, defaultLocale)}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(limiter))
	}

	var loginRateLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		loginRateLimit = middleware.RateLimit(authLimiter)
	}

	router.Mount(engine, handlers, router.Options{
		APIMiddleware:  apiMiddleware,
		AdminAuth:      middleware.JWTAuthMiddleware(jwtService, blacklist, log),
		LoginRateLimit: loginRateLimit,
		AdminPageAuth:  handlers.AdminPages.RequireSession(jwtService, blacklist, log),
	})

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
		return
	}

	log.Info("Server exited gracefully")
}

// runMigrations applies the embedded migrations
func runMigrations(db *sql.DB, log *zap.Logger) error {
	m, err := migration.NewFromFS(db, migrations.FS, log)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// newObjectStorage returns the S3 bucket when storage is enabled. Otherwise
// images are kept in memory and served by the returned media handler.
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalogapp.ObjectStorage, *handler.MediaHandler, string, error) {
	if !cfg.Storage.Enabled {
		log.Warn("Object storage disabled, product images are kept in memory",
			zap.String("bucket", cfg.Storage.Bucket))
		objects := storage.NewMemoryObjectStorage(cfg.Storage.Bucket)
		return objects, handler.NewMediaHandler(objects), "/media/" + cfg.Storage.Bucket, nil
	}

	objects, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return nil, nil, "", err
	}
	ensureCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := objects.EnsureBucket(ensureCtx); err != nil {
		return nil, nil, "", fmt.Errorf("failed to ensure bucket %s: %w", cfg.Storage.Bucket, err)
	}
	log.Info("Object storage ready",
		zap.String("endpoint", cfg.Storage.Endpoint),
		zap.String("bucket", cfg.Storage.Bucket))
	return objects, nil, cfg.Storage.PublicURL, nil
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("failed to generate JWT secret: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
