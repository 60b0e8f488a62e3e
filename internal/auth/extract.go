package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

const (
	sessionKey = "session"
	userKey    = "user"
	roleKey    = "auth_role"
)

// SessionUser is an authenticated user as stored on a session or
// attached directly by trusted internal callers.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  domain.Role
}

// Session models the server-side session envelope.
type Session struct {
	User *SessionUser
}

// Extractor resolves the caller's identity from a request.
type Extractor struct {
	decoder TokenDecoder
}

// NewExtractor builds an extractor around the configured token decoder.
func NewExtractor(decoder TokenDecoder) *Extractor {
	return &Extractor{decoder: decoder}
}

// Extract resolves an identity with fixed precedence: bearer token,
// then session, then attached user. A malformed bearer token resolves
// to nothing immediately and deliberately does NOT fall through to the
// session or user sources (parity with the predecessor system).
func (e *Extractor) Extract(c *fiber.Ctx) (*Identity, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		identity, err := e.decoder.Decode(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return nil, false
		}
		return identity, true
	}

	if session, ok := c.Locals(sessionKey).(*Session); ok && session != nil && session.User != nil {
		return identityFromUser(session.User)
	}

	if user, ok := c.Locals(userKey).(*SessionUser); ok && user != nil {
		return identityFromUser(user)
	}

	return nil, false
}

func identityFromUser(user *SessionUser) (*Identity, bool) {
	if user.Role == "" {
		return nil, false
	}
	return &Identity{
		Role:  user.Role,
		Email: user.Email,
		Name:  user.Name,
		ID:    user.ID,
	}, true
}

// ActorLabel renders a display label for audit logging: email, name or
// id when an identity resolved, else "Anonymous".
func (e *Extractor) ActorLabel(c *fiber.Ctx) string {
	identity, ok := e.Extract(c)
	if !ok {
		return "Anonymous"
	}
	switch {
	case identity.Email != "":
		return identity.Email
	case identity.Name != "":
		return identity.Name
	case identity.ID != "":
		return identity.ID
	}
	return "Unknown User"
}

// RoleFromContext returns the role a guard attached to the request.
func RoleFromContext(c *fiber.Ctx) (domain.Role, bool) {
	role, ok := c.Locals(roleKey).(domain.Role)
	return role, ok
}
