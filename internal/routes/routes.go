package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups everything Setup mounts.
type Handlers struct {
	Health  *handlers.HealthHandler
	Upload  *handlers.UploadHandler
	GraphQL fiber.Handler

	// FilesDir is served under /files when uploads go to local disk.
	FilesDir string
}

func ipLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(ipLimiter(60))
	api.Get("/health", h.Health.Check)

	// GraphQL: the caller is resolved once per request; resolvers decide
	// what an anonymous caller may do.
	gql := app.Group("/graphql", ipLimiter(300), middleware.Caller(cfg))
	gql.Get("", h.GraphQL)
	gql.Post("", h.GraphQL)

	// Uploads: stricter limit, 20 req/min per IP
	app.Post("/upload", ipLimiter(20), h.Upload.Upload)

	if h.FilesDir != "" {
		app.Static("/files", h.FilesDir, fiber.Static{Browse: false, MaxAge: 3600})
	}

	app.Get("/metrics", metrics.Handler())
}
