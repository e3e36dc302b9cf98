package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shopkit/shop-service/internal/api/http/handlers"
	"github.com/shopkit/shop-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
	// ProtectProductWrites requires a bearer token for product create/delete.
	ProtectProductWrites bool
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	api.Get("/user/all", cfg.Users.List)

	products := api.Group("/product")
	products.Get("/all", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)

	writes := []fiber.Handler{}
	if cfg.ProtectProductWrites && cfg.AuthMiddleware != nil {
		writes = append(writes, cfg.AuthMiddleware.Handle)
	}
	products.Post("/create", append(writes, cfg.Products.Create)...)
	products.Delete("/delete/:id", append(writes, cfg.Products.Delete)...)
}
