package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/petplan/backend/database/repositories"
	"github.com/petplan/backend/models"
	"github.com/petplan/backend/utils"
)

// GetPet returns the caller's pet with derived mood and level progress.
// A user who has never completed a task has no pet row yet; they get the
// default hatchling view rather than a 404.
func GetPet(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		now := time.Now()
		pet, err := webApp.Pets.GetByUserID(c.UserContext(), userID)
		if err != nil {
			if !repositories.IsNotFound(err) {
				return utils.SendInternalServerError(c, "Failed to load pet")
			}
			return utils.SendSuccess(c, models.PetView{
				XP:         0,
				Level:      1,
				StreakDays: 0,
				Progress:   0,
				Mood:       string(webApp.Calc.Mood(nil, now)),
			}, "")
		}

		return utils.SendSuccess(c, models.PetView{
			XP:         pet.XP,
			Level:      pet.Level,
			StreakDays: pet.StreakDays,
			Progress:   webApp.Calc.Progress(pet.XP),
			Mood:       string(webApp.Calc.Mood(pet.LastClaimDay(), now)),
			LastClaim:  pet.LastClaim,
		}, "")
	}
}
