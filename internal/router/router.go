package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/handler"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Suggest *handler.SuggestHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (no rate limiting, no auth)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	refreshLimit := middleware.NewRefreshRateLimiter()
	listLimit := middleware.NewListRateLimiter()

	api.Post("/users/:userId/suggestions/refresh", h.Suggest.Refresh, refreshLimit.Handler())
	api.Get("/users/:userId/suggestions", h.Suggest.List, listLimit.Handler())
}
