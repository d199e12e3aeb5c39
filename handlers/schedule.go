package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/petplan/backend/calendar"
	"github.com/petplan/backend/models"
	"github.com/petplan/backend/recurrence"
	"github.com/petplan/backend/utils"
)

const defaultScheduleDays = 7

// Schedule expands the caller's recurring tasks into virtual occurrences
// within a day window. Occurrences are a read-side projection only; nothing
// here is ever written back as a task row.
func Schedule(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		from, to, err := scheduleWindow(c)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid schedule window", map[string]string{"window": err.Error()})
		}

		tasks, err := webApp.Tasks.GetByUserID(c.UserContext(), userID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load tasks")
		}

		occurrences := []models.Occurrence{}
		for _, task := range tasks {
			rule := recurrence.Parse(task.RepeatRule)
			for _, day := range rule.Occurrences(from, to) {
				occurrences = append(occurrences, models.Occurrence{
					TaskID: task.ID,
					Title:  task.Title,
					Day:    calendar.FormatDay(day),
				})
			}
			// One-off tasks appear on their due day.
			if rule == nil && task.DueAt != nil &&
				calendar.DaysBetween(from, *task.DueAt) >= 0 && calendar.DaysBetween(*task.DueAt, to) >= 0 {
				occurrences = append(occurrences, models.Occurrence{
					TaskID: task.ID,
					Title:  task.Title,
					Day:    calendar.FormatDay(*task.DueAt),
				})
			}
		}

		return utils.SendSuccess(c, occurrences, "")
	}
}

func scheduleWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		parsed, err := calendar.ParseDay(raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}

	to := calendar.StartOfDay(from).AddDate(0, 0, defaultScheduleDays-1)
	if raw := c.Query("to"); raw != "" {
		parsed, err := calendar.ParseDay(raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}
