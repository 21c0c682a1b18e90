package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bazaar/internal/apperr"
	"github.com/example/bazaar/internal/config"
	"github.com/example/bazaar/internal/models"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
}

func TestResolveRole_HeaderOnly(t *testing.T) {
	app := newTestApp()
	app.Get("/role", func(c *fiber.Ctx) error {
		return c.SendString(ResolveRole(c))
	})

	tests := []struct {
		header string
		want   string
	}{
		{"", RolePublic},
		{"admin", models.RoleAdmin},
		{"Admin", RolePublic},
		{"superuser", RolePublic},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/role", nil)
		if tt.header != "" {
			req.Header.Set("role", tt.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, tt.want, string(body))
	}
}

func TestResolveRole_IdentityWinsOverHeader(t *testing.T) {
	app := newTestApp()
	app.Get("/role", func(c *fiber.Ctx) error {
		c.Locals(userContextKey, &models.User{Role: models.RoleUser})
		return c.SendString(ResolveRole(c))
	})

	// A non-admin identity is public even if the spoofable header says admin.
	req := httptest.NewRequest(http.MethodGet, "/role", nil)
	req.Header.Set("role", "admin")
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, RolePublic, string(body))
}

func TestResolveRole_AdminIdentity(t *testing.T) {
	app := newTestApp()
	app.Get("/role", func(c *fiber.Ctx) error {
		c.Locals(userContextKey, &models.User{Role: models.RoleAdmin})
		return c.SendString(ResolveRole(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/role", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, models.RoleAdmin, string(body))
}

func TestAdminOnly(t *testing.T) {
	app := newTestApp()
	app.Post("/admin", AdminOnly(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"success":false,"message":"Access denied. Admin only."}`, string(body))

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("role", "admin")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalAuth_NoHeaderPassesThrough(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", TokenExpires: time.Hour}

	app := newTestApp()
	app.Get("/open", OptionalAuth(cfg, nil), func(c *fiber.Ctx) error {
		_, ok := CurrentUser(c)
		return c.JSON(fiber.Map{"authenticated": ok})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"authenticated":false}`, string(body))
}

func TestOptionalAuth_RejectsBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", TokenExpires: time.Hour}

	app := newTestApp()
	app.Get("/open", OptionalAuth(cfg, nil), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	for _, header := range []string{"garbage", "Bearer not.a.jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}
