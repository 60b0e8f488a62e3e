package auth

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

func legacyToken(payload string) string {
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// probeApp exposes the extractor result as JSON so tests can drive it
// through real requests.
func probeApp(extractor *Extractor, locals func(c *fiber.Ctx)) *fiber.App {
	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		if locals != nil {
			locals(c)
		}
		identity, ok := extractor.Extract(c)
		if !ok {
			return c.JSON(fiber.Map{"ok": false})
		}
		return c.JSON(fiber.Map{
			"ok":    true,
			"role":  identity.Role,
			"email": identity.Email,
			"actor": extractor.ActorLabel(c),
		})
	})
	return app
}

func probe(t *testing.T, app *fiber.App, header string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestExtractBearerToken(t *testing.T) {
	extractor := NewExtractor(LegacyDecoder{})
	app := probeApp(extractor, nil)

	t.Run("valid token resolves role and email", func(t *testing.T) {
		body := probe(t, app, "Bearer "+legacyToken(`{"role":"chief","email":"chief@example.org"}`))
		assert.Contains(t, body, `"ok":true`)
		assert.Contains(t, body, `"role":"chief"`)
		assert.Contains(t, body, `"actor":"chief@example.org"`)
	})

	t.Run("unknown role string still authenticates", func(t *testing.T) {
		body := probe(t, app, "Bearer "+legacyToken(`{"role":"superuser","email":"who@example.org"}`))
		assert.Contains(t, body, `"ok":true`)
		assert.Contains(t, body, `"role":"superuser"`)
	})

	t.Run("token without role resolves to nothing", func(t *testing.T) {
		body := probe(t, app, "Bearer "+legacyToken(`{"email":"norole@example.org"}`))
		assert.Contains(t, body, `"ok":false`)
	})

	t.Run("garbage token resolves to nothing", func(t *testing.T) {
		body := probe(t, app, "Bearer not-base64-at-all!!!")
		assert.Contains(t, body, `"ok":false`)
	})

	t.Run("non-bearer scheme is ignored", func(t *testing.T) {
		body := probe(t, app, "Basic abc123")
		assert.Contains(t, body, `"ok":false`)
	})
}

func TestExtractMalformedBearerDoesNotFallThrough(t *testing.T) {
	extractor := NewExtractor(LegacyDecoder{})
	app := probeApp(extractor, func(c *fiber.Ctx) {
		c.Locals(sessionKey, &Session{User: &SessionUser{Role: domain.RoleAdmin, Email: "session@example.org"}})
	})

	body := probe(t, app, "Bearer %%%broken%%%")
	assert.Contains(t, body, `"ok":false`, "a malformed bearer token must not fall back to the session")
}

func TestExtractSessionAndUserPrecedence(t *testing.T) {
	extractor := NewExtractor(LegacyDecoder{})

	t.Run("session wins over attached user", func(t *testing.T) {
		app := probeApp(extractor, func(c *fiber.Ctx) {
			c.Locals(sessionKey, &Session{User: &SessionUser{Role: domain.RoleChief, Email: "session@example.org"}})
			c.Locals(userKey, &SessionUser{Role: domain.RoleAnalyst, Email: "user@example.org"})
		})
		body := probe(t, app, "")
		assert.Contains(t, body, `"role":"chief"`)
		assert.Contains(t, body, `"email":"session@example.org"`)
	})

	t.Run("attached user used without session", func(t *testing.T) {
		app := probeApp(extractor, func(c *fiber.Ctx) {
			c.Locals(userKey, &SessionUser{Role: domain.RoleAnalyst, Email: "user@example.org"})
		})
		body := probe(t, app, "")
		assert.Contains(t, body, `"role":"analyst"`)
	})

	t.Run("bearer wins over session", func(t *testing.T) {
		app := probeApp(extractor, func(c *fiber.Ctx) {
			c.Locals(sessionKey, &Session{User: &SessionUser{Role: domain.RoleAdmin, Email: "session@example.org"}})
		})
		body := probe(t, app, "Bearer "+legacyToken(`{"role":"disponent","email":"token@example.org"}`))
		assert.Contains(t, body, `"role":"disponent"`)
	})

	t.Run("session user without role resolves to nothing", func(t *testing.T) {
		app := probeApp(extractor, func(c *fiber.Ctx) {
			c.Locals(sessionKey, &Session{User: &SessionUser{Email: "session@example.org"}})
		})
		body := probe(t, app, "")
		assert.Contains(t, body, `"ok":false`)
	})
}

func TestActorLabel(t *testing.T) {
	extractor := NewExtractor(LegacyDecoder{})

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"email preferred", `{"role":"admin","email":"admin@example.org","name":"Ada Admin","id":"u-1"}`, `"actor":"admin@example.org"`},
		{"name when no email", `{"role":"admin","name":"Ada Admin","id":"u-1"}`, `"actor":"Ada Admin"`},
		{"id when nothing else", `{"role":"disponent","id":"u-77"}`, `"actor":"u-77"`},
		{"unknown user when role only", `{"role":"analyst"}`, `"actor":"Unknown User"`},
	}

	app := probeApp(extractor, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := probe(t, app, "Bearer "+legacyToken(tt.payload))
			assert.Contains(t, body, tt.want)
		})
	}

	t.Run("anonymous without credentials", func(t *testing.T) {
		anonApp := fiber.New()
		anonApp.Get("/probe", func(c *fiber.Ctx) error {
			return c.SendString(extractor.ActorLabel(c))
		})
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		resp, err := anonApp.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "Anonymous", string(body))
	})
}

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, expiresAt, err := tm.GenerateToken(&domain.User{
		ID:    "u-9",
		Name:  "Clara Chief",
		Email: "clara@example.org",
		Role:  domain.RoleChief,
	})
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	identity, err := tm.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleChief, identity.Role)
	assert.Equal(t, "clara@example.org", identity.Email)
	assert.Equal(t, "u-9", identity.ID)
}

func TestTokenManagerRejectsTamperedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)
	other := NewTokenManager("other-secret", 30)

	token, _, err := other.GenerateToken(&domain.User{ID: "u-9", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = tm.Decode(token)
	assert.Error(t, err)
}

func TestLegacyDecoderRawBase64(t *testing.T) {
	unpadded := base64.RawStdEncoding.EncodeToString([]byte(`{"role":"analyst","email":"a@example.org"}`))
	identity, err := LegacyDecoder{}.Decode(unpadded)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAnalyst, identity.Role)
}
