package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bazaar/internal/apperr"
	"github.com/example/bazaar/internal/config"
	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/utils"
)

const userContextKey = "currentUser"

// RolePublic is the access role for unauthenticated or non-admin callers.
const RolePublic = "public"

// OptionalAuth verifies a bearer token when one is supplied and loads the
// authenticated user into the request context. Requests without an
// Authorization header pass through as public; a present but invalid or
// expired token is rejected.
func OptionalAuth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperr.Auth("invalid authorization header")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return apperr.Auth("Invalid token")
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Auth("Invalid token")
			}
			return apperr.Internal("failed to load user", err)
		}

		c.Locals(userContextKey, &user)
		return c.Next()
	}
}

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}

// ResolveRole derives the caller's access role. A verified identity's role
// wins; the raw role header is honored only without one. Total: any
// absence or ambiguity resolves to public.
func ResolveRole(c *fiber.Ctx) string {
	if user, ok := CurrentUser(c); ok {
		if user.Role == models.RoleAdmin {
			return models.RoleAdmin
		}
		return RolePublic
	}

	if c.Get("role") == models.RoleAdmin {
		return models.RoleAdmin
	}

	return RolePublic
}

// AdminOnly rejects requests whose resolved role is not admin.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ResolveRole(c) != models.RoleAdmin {
			return apperr.Forbidden("Access denied. Admin only.")
		}
		return c.Next()
	}
}
