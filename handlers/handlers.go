package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petplan/backend/config"
	"github.com/petplan/backend/database"
	"github.com/petplan/backend/database/repositories"
	"github.com/petplan/backend/gamification"
	"github.com/petplan/backend/services"
	"github.com/petplan/backend/utils"
)

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config     *config.Config
	DB         *database.DB
	Tasks      repositories.TaskRepository
	Pets       repositories.PetRepository
	Badges     repositories.BadgeRepository
	Activity   repositories.ActivityRepository
	Completion *services.CompletionService
	Awards     *services.BadgeService
	Tokens     *services.TokenService
	Calc       *gamification.Calculator
	Version    string
	Commit     string
}

// HealthCheck reports service and database status.
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := "ok"
		dbStatus := "ok"
		if err := webApp.DB.Ping(c.UserContext()); err != nil {
			status = "degraded"
			dbStatus = err.Error()
		}
		return c.JSON(fiber.Map{
			"status":   status,
			"database": dbStatus,
			"version":  webApp.Version,
		})
	}
}

// requireUser pulls the authenticated caller out of the context. The auth
// middleware guarantees it is present on protected routes; the false path
// only triggers on wiring mistakes.
func requireUser(c *fiber.Ctx) (string, bool) {
	token, ok := utils.ExtractUserToken(c)
	if !ok || token.UserID == "" {
		return "", false
	}
	return token.UserID, true
}
