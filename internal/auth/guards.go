package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

// Guards produce the route middlewares enforcing role requirements.
// Every failure is converted into a JSON response at the guard itself;
// nothing propagates to the fiber error handler.
type Guards struct {
	extractor *Extractor
}

// NewGuards builds guard constructors around the extractor.
func NewGuards(extractor *Extractor) *Guards {
	return &Guards{extractor: extractor}
}

// RequirePermission allows callers whose role satisfies the named
// permission. An unknown permission name is a wiring mistake and
// answers 500 rather than silently denying.
func (g *Guards) RequirePermission(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := g.extractor.Extract(c)
		if !ok {
			return unauthorized(c)
		}
		check, ok := Permissions[name]
		if !ok {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Error",
			})
		}
		if !check(identity.Role) {
			return forbidden(c, fmt.Sprintf("Missing required permission: %s", name))
		}
		c.Locals(roleKey, identity.Role)
		return c.Next()
	}
}

// RequireRoles allows callers whose role is in the given set.
func (g *Guards) RequireRoles(allowed ...domain.Role) fiber.Handler {
	names := make([]string, len(allowed))
	for i, role := range allowed {
		names[i] = string(role)
	}
	allowedList := strings.Join(names, ", ")

	return func(c *fiber.Ctx) error {
		identity, ok := g.extractor.Extract(c)
		if !ok {
			return unauthorized(c)
		}
		for _, role := range allowed {
			if identity.Role == role {
				c.Locals(roleKey, identity.Role)
				return c.Next()
			}
		}
		return forbidden(c, fmt.Sprintf("Access restricted to roles: %s", allowedList))
	}
}

// RequireResourceAction allows callers per the resource/action table.
func (g *Guards) RequireResourceAction(resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := g.extractor.Extract(c)
		if !ok {
			return unauthorized(c)
		}
		if !AllowsResourceAction(identity.Role, resource, action) {
			return forbidden(c, fmt.Sprintf("Access denied for %s on %s", action, resource))
		}
		c.Locals(roleKey, identity.Role)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusForbidden).JSON(fiber.Map{
		"error":   "Forbidden",
		"message": message,
	})
}
