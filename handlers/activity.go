package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/petplan/backend/database/models"
	"github.com/petplan/backend/utils"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// ActivityFeed returns the caller's recent activity entries, newest first.
func ActivityFeed(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		limit := defaultFeedLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return utils.SendBadRequest(c, "limit must be a positive integer", nil)
			}
			limit = min(parsed, maxFeedLimit)
		}

		entries, err := webApp.Activity.GetRecentByUserID(c.UserContext(), userID, limit)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load activity")
		}
		if entries == nil {
			entries = []*dbmodels.Activity{}
		}
		return utils.SendSuccess(c, entries, "")
	}
}
