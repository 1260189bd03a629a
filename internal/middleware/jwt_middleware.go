package middleware

import (
	"strings"

	"zennexify/internal/services"
	"zennexify/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the cookie login and sign-up store the token in.
const TokenCookie = "token"

// Locals keys set by AuthRequired.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token. The
// token is taken from "Authorization: Bearer <token>" or, failing that, the
// token cookie.
func AuthRequired(tokens *services.TokenService, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := extractToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication token is required",
			})
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			log.WithOp("AuthRequired").WithError(err).Debug("JWT validation failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims.ID)
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (string, bool) {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1]), true
		}
	}
	if cookie := c.Cookies(TokenCookie); cookie != "" {
		return cookie, true
	}
	return "", false
}

// UserID returns the id of the authenticated caller.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
