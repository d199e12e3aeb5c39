package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/petplan/backend/services"
	"github.com/petplan/backend/utils"
)

// AuthRequired middleware establishes the caller identity from the
// Authorization header and rejects requests without a valid bearer token.
func AuthRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			slog.Debug("Auth required: missing bearer token",
				slog.String("path", c.Path()))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		token, err := tokens.Verify(raw)
		if err != nil {
			slog.Debug("Auth required: token rejected",
				slog.String("path", c.Path()),
				slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		c.Locals("user", token)
		return c.Next()
	}
}
