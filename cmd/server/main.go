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

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/graph"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/scheduler"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/storage"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	stdout := logging.Setup(os.Getenv("APP_ENV"))

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
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

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, pgLogHandler)))

	// Services
	store := repository.NewStore(database.DB)
	v := validation.New()
	authService := services.NewAuthService(store.Users, cfg, v)
	announcementService := services.NewAnnouncementService(store, v)

	schema, err := graph.NewSchema(&graph.Resolver{
		Auth:          authService,
		Categories:    services.NewCategoryService(store, v),
		Posts:         services.NewPostService(store, v),
		Comments:      services.NewCommentService(store, v),
		Ratings:       services.NewRatingService(store, v),
		Reports:       services.NewReportService(store, v),
		Notifications: services.NewNotificationService(store),
		Announcements: announcementService,
	})
	if err != nil {
		slog.Error("graphql schema build failed", "error", err)
		os.Exit(1)
	}

	// Upload storage: GCS when a bucket is configured, local disk otherwise
	var (
		uploader storage.Uploader
		filesDir string
		gcs      *storage.GCS
	)
	if cfg.GCSBucket != "" {
		gcs, err = storage.NewGCS(context.Background(), cfg.GCSBucket, cfg.GCSProjectID, cfg.GCSCredentialsJSON)
		if err != nil {
			slog.Error("gcs client init failed", "bucket", cfg.GCSBucket, "error", err)
			os.Exit(1)
		}
		uploader = gcs
		slog.Info("uploads go to gcs", "bucket", cfg.GCSBucket)
	} else {
		local, err := storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			slog.Error("upload dir init failed", "dir", cfg.UploadDir, "error", err)
			os.Exit(1)
		}
		uploader = local
		filesDir = local.Dir()
		slog.Warn("GCS_BUCKET not set, uploads go to local disk", "dir", filesDir)
	}

	// Background jobs
	jobs := scheduler.New()
	if err := jobs.Add("announcement_sweep", cfg.SweepSchedule, announcementService.SweepExpired); err != nil {
		slog.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}
	if err := jobs.Add("log_retention", "30 3 * * *", func(ctx context.Context) (int64, error) {
		return logging.PurgeOld(ctx, database.DB, cfg.LogRetention)
	}); err != nil {
		slog.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}
	jobs.Start()

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, routes.Handlers{
		Health:   handlers.NewHealthHandler(database.Ping),
		Upload:   handlers.NewUploadHandler(uploader),
		GraphQL:  graph.Handler(schema),
		FilesDir: filesDir,
	})

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

	jobs.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if gcs != nil {
		if err := gcs.Close(); err != nil {
			slog.Error("gcs close error", "error", err)
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

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Error interno del servidor"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Error interno del servidor"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
