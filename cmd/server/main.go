package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/logging"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/routes"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(cfg.AppEnv),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Read cache
	var readCache cache.Cache = cache.Nop{}
	var redisCache *cache.RedisCache
	if cfg.CacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.Connect(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			// Reads fall through to the database; writes still try to evict.
			slog.Error("redis unavailable, read cache disabled", "action", "cache_connect", "error", err)
		} else {
			redisCache = rc
			readCache = rc
			slog.Info("read cache connected", "prefix", cfg.CachePrefix, "ttl", cfg.CacheTTL.String())
		}
	}

	// Services
	blockService := services.NewBlockService(database.DB)
	followService := services.NewFollowService(database.DB, blockService)
	profileService := services.NewProfileService(database.DB)
	authService := services.NewAuthService(database.DB, cfg)
	postService := services.NewPostService(database.DB, readCache, cfg.CachePrefix)
	categoryService := services.NewCategoryService(database.DB, readCache, cfg.CachePrefix)
	likeService := services.NewLikeService(database.DB, blockService)
	commentService := services.NewCommentService(database.DB, blockService, services.NewContentFilter())

	// Handlers
	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, profileService),
		Relationship: handlers.NewRelationshipHandler(blockService, followService, profileService),
		Post:         handlers.NewPostHandler(postService, likeService),
		Comment:      handlers.NewCommentHandler(commentService),
		Category:     handlers.NewCategoryHandler(categoryService),
		Moderation:   handlers.NewModerationHandler(commentService),
		Health:       handlers.NewHealthHandler(database.DB, readCache, redisCache != nil),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := NewApp(cfg)
	routes.Setup(app, cfg, database.DB, readCache, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// NewApp builds the Fiber app with the global middleware stack; routes are
// attached by the caller.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${respHeader:X-Request-ID}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
