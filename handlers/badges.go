package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/petplan/backend/database/models"
	"github.com/petplan/backend/models"
	"github.com/petplan/backend/services"
	"github.com/petplan/backend/utils"
)

// AwardBadges evaluates badge rules for a user and persists anything newly
// earned. An empty awarded list is the normal result for most completions.
// The route carries no user auth: it is invoked service-to-service by the
// completion workflow and by trusted backfill jobs.
func AwardBadges(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.AwardBadgesRequest
		if err := c.BodyParser(&req); err != nil || req.UserID == "" {
			return utils.SendBadRequest(c, "user_id is required", nil)
		}

		completedAt := time.Now()
		if req.CompletedAt != "" {
			parsed, err := time.Parse(time.RFC3339, req.CompletedAt)
			if err != nil {
				return utils.SendBadRequest(c, "completed_at must be RFC 3339", nil)
			}
			completedAt = parsed.Local()
		}

		awarded, err := webApp.Awards.Award(c.UserContext(), req.UserID, req.Streak, req.Level, completedAt)
		if err != nil {
			slog.Error("Badge awarding failed",
				slog.String("type", "err"),
				slog.String("user_id", req.UserID),
				slog.String("error", err.Error()))
			return utils.SendBadRequest(c, err.Error(), nil)
		}
		if awarded == nil {
			awarded = []services.AwardedBadge{}
		}

		return c.JSON(fiber.Map{"awarded": awarded})
	}
}

// UserBadges returns the caller's earned badges, newest first.
func UserBadges(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		awards, err := webApp.Badges.GetAwardedByUserID(c.UserContext(), userID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load badges")
		}
		if awards == nil {
			awards = []*dbmodels.UserBadge{}
		}
		return utils.SendSuccess(c, awards, "")
	}
}
