package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-service/internal/api/http/handlers"
	"github.com/spec-kit/dispatch-service/internal/auth"
	"github.com/spec-kit/dispatch-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Shifts        *handlers.ShiftsHandler
	Templates     *handlers.TemplatesHandler
	Audit         *handlers.AuditHandler
	Analytics     *handlers.AnalyticsHandler
	Notifications *handlers.NotificationsHandler
	Guards        *auth.Guards
}

// RegisterRoutes wires HTTP routes. Every resource route sits behind
// one of the three guard flavors.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	guards := cfg.Guards

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/users", guards.RequireRoles(domain.RoleAdmin), cfg.Auth.CreateUser)

	shifts := app.Group("/shifts")
	shifts.Get("", guards.RequireResourceAction("shifts", "read"), cfg.Shifts.List)
	shifts.Post("", guards.RequireResourceAction("shifts", "create"), cfg.Shifts.Create)
	shifts.Get("/:id", guards.RequireResourceAction("shifts", "read"), cfg.Shifts.Get)
	shifts.Put("/:id", guards.RequireResourceAction("shifts", "update"), cfg.Shifts.Update)
	shifts.Delete("/:id", guards.RequireResourceAction("shifts", "delete"), cfg.Shifts.Delete)
	shifts.Post("/:id/apply", guards.RequireResourceAction("shifts", "apply"), cfg.Shifts.Apply)
	shifts.Post("/:id/assign", guards.RequireResourceAction("shifts", "assign"), cfg.Shifts.Assign)
	shifts.Delete("/:id/assign", guards.RequireResourceAction("shifts", "assign"), cfg.Shifts.Unassign)

	templates := app.Group("/templates")
	templates.Get("", guards.RequireResourceAction("templates", "read"), cfg.Templates.List)
	templates.Post("", guards.RequireResourceAction("templates", "create"), cfg.Templates.Create)
	templates.Put("/:id", guards.RequireResourceAction("templates", "update"), cfg.Templates.Update)
	templates.Delete("/:id", guards.RequireResourceAction("templates", "delete"), cfg.Templates.Delete)

	app.Get("/audit", guards.RequireResourceAction("audit", "read"), cfg.Audit.List)

	app.Get("/analytics", guards.RequireResourceAction("analytics", "read"), cfg.Analytics.Overview)

	notifications := app.Group("/notifications")
	notifications.Get("/preferences", guards.RequirePermission(auth.PermViewAnalytics), cfg.Notifications.GetPreference)
	notifications.Put("/preferences", guards.RequirePermission(auth.PermViewAnalytics), cfg.Notifications.UpdatePreference)
	notifications.Post("/digest/run", guards.RequireRoles(domain.RoleAdmin), cfg.Notifications.RunDigest)
}
