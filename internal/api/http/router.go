package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/api/http/handlers"
	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/domain"
)

// Route policies, declared once per operation at registration. Public routes
// carry no middleware at all; protected routes always carry the
// authentication strategy plus a policy, even when the policy imposes no
// role restriction.
var (
	anyAuthenticated = auth.Policy{}
	customerAccess   = auth.Policy{AllowedRoles: []domain.Role{domain.RoleUser, domain.RoleAdmin}}
	adminOnly        = auth.Policy{AllowedRoles: []domain.Role{domain.RoleAdmin}}
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Pizzas   *handlers.PizzasHandler
	Orders   *handlers.OrdersHandler
	Strategy *auth.Strategy
	Engine   *auth.Engine
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.Strategy.Handle, cfg.Engine.Require(anyAuthenticated), cfg.Auth.Me)

	pizzas := app.Group("/pizzas")
	pizzas.Get("/", cfg.Pizzas.List)
	pizzas.Get("/:id", cfg.Pizzas.Get)
	pizzas.Post("/", cfg.Strategy.Handle, cfg.Engine.Require(adminOnly), cfg.Pizzas.Create)
	pizzas.Patch("/:id", cfg.Strategy.Handle, cfg.Engine.Require(adminOnly), cfg.Pizzas.Update)
	pizzas.Delete("/:id", cfg.Strategy.Handle, cfg.Engine.Require(adminOnly), cfg.Pizzas.Delete)

	orders := app.Group("/orders", cfg.Strategy.Handle)
	orders.Post("/", cfg.Engine.Require(customerAccess), cfg.Orders.Create)
	orders.Get("/", cfg.Engine.Require(adminOnly), cfg.Orders.ListAll)
	orders.Get("/mine", cfg.Engine.Require(anyAuthenticated), cfg.Orders.ListMine)
	orders.Get("/:id", cfg.Engine.Require(customerAccess), cfg.Orders.Get)
	orders.Patch("/:id/status", cfg.Engine.Require(adminOnly), cfg.Orders.UpdateStatus)
	orders.Patch("/:id", cfg.Engine.Require(customerAccess), cfg.Orders.Amend)
	orders.Post("/:id/cancel", cfg.Engine.Require(customerAccess), cfg.Orders.Cancel)
	orders.Delete("/:id", cfg.Engine.Require(adminOnly), cfg.Orders.Delete)
}
