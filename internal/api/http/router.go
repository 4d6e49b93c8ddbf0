package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/asset-inventory/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Users   *handlers.UsersHandler
	Assets  *handlers.AssetsHandler
	Tickets *handlers.TicketsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", handlers.Index)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Post("/login", cfg.Auth.Login)
	api.Get("/users", cfg.Users.List)

	api.Get("/assets", cfg.Assets.List)
	api.Post("/assets", cfg.Assets.Create)
	api.Get("/assets/:id", cfg.Assets.Get)
	api.Put("/assets/:id", cfg.Assets.Update)
	api.Delete("/assets/:id", cfg.Assets.Delete)
	api.Get("/assets/:id/logs", cfg.Assets.ListAuditLogs)

	api.Get("/assets/:id/tickets", cfg.Tickets.ListByAsset)
	api.Post("/assets/:id/tickets", cfg.Tickets.Create)
	api.Put("/tickets/:id", cfg.Tickets.Update)
}
