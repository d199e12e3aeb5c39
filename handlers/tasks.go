package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/petplan/backend/database/models"
	"github.com/petplan/backend/database/repositories"
	"github.com/petplan/backend/models"
	"github.com/petplan/backend/services"
	"github.com/petplan/backend/utils"
)

// CompleteTask marks a task DONE and returns the committed task and pet
// state. The heavy lifting happens in the completion service; this handler
// only translates identity and errors.
func CompleteTask(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req models.CompleteTaskRequest
		if err := c.BodyParser(&req); err != nil || req.TaskID == "" {
			return utils.SendBadRequest(c, "task_id is required", nil)
		}

		result, err := webApp.Completion.Complete(c.UserContext(), req.TaskID, userID, time.Now())
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTaskNotFound):
				return utils.SendNotFound(c, "Task not found")
			case errors.Is(err, services.ErrNotTaskOwner):
				return utils.SendForbidden(c, "Task belongs to another user")
			case errors.Is(err, services.ErrTaskAlreadyDone):
				return utils.SendConflict(c, "Task already completed", nil)
			default:
				slog.Error("Task completion failed",
					slog.String("type", "err"),
					slog.String("task_id", req.TaskID),
					slog.String("user_id", userID),
					slog.String("error", err.Error()))
				return utils.SendInternalServerError(c, "Failed to complete task")
			}
		}

		return c.JSON(result)
	}
}

// TasksList returns the caller's tasks ordered by due date.
func TasksList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		tasks, err := webApp.Tasks.GetByUserID(c.UserContext(), userID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load tasks")
		}
		if tasks == nil {
			tasks = []*dbmodels.Task{}
		}
		return utils.SendSuccess(c, tasks, "")
	}
}

// TasksCreate creates a task owned by the caller.
func TasksCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req models.TaskRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid task payload", nil)
		}
		if req.Title == "" {
			return utils.SendBadRequest(c, "title is required", nil)
		}
		dueAt, badField := parseTaskFields(&req)
		if badField != "" {
			return utils.SendBadRequest(c, "Invalid task payload", map[string]string{badField: "unparseable value"})
		}

		task := &dbmodels.Task{
			UserID:     userID,
			Title:      req.Title,
			Notes:      req.Notes,
			DueAt:      dueAt,
			RepeatRule: req.RepeatRule,
			Remind:     req.Remind,
		}
		if err := webApp.Tasks.Create(c.UserContext(), task); err != nil {
			return utils.SendInternalServerError(c, "Failed to create task")
		}
		return utils.SendCreated(c, task, "Task created")
	}
}

// TasksUpdate replaces the writable fields of a task owned by the caller.
// The request is a full replacement: omitted fields are cleared, and the
// title is required just like on create. Setting status back to PENDING is
// how the client un-completes a task; xp already granted stays.
func TasksUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		task, err := loadOwnedTask(c, webApp, userID)
		if err != nil {
			return err
		}
		if task == nil {
			return nil // response already sent
		}

		var req models.TaskRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid task payload", nil)
		}
		if req.Title == "" {
			return utils.SendBadRequest(c, "title is required", nil)
		}
		dueAt, badField := parseTaskFields(&req)
		if badField != "" {
			return utils.SendBadRequest(c, "Invalid task payload", map[string]string{badField: "unparseable value"})
		}

		task.Title = req.Title
		task.Notes = req.Notes
		task.DueAt = dueAt
		task.RepeatRule = req.RepeatRule
		task.Remind = req.Remind
		if req.Status != "" {
			task.Status = dbmodels.TaskStatus(req.Status)
		}

		if err := webApp.Tasks.Update(c.UserContext(), task); err != nil {
			return utils.SendInternalServerError(c, "Failed to update task")
		}
		return utils.SendSuccess(c, task, "Task updated")
	}
}

// TasksDelete deletes a task owned by the caller.
func TasksDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		task, err := loadOwnedTask(c, webApp, userID)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}

		if err := webApp.Tasks.Delete(c.UserContext(), task.ID); err != nil {
			return utils.SendInternalServerError(c, "Failed to delete task")
		}
		return utils.SendNoContent(c)
	}
}

// loadOwnedTask fetches the :id task and enforces ownership. On rejection it
// sends the response itself and returns (nil, nil).
func loadOwnedTask(c *fiber.Ctx, webApp *WebApp, userID string) (*dbmodels.Task, error) {
	task, err := webApp.Tasks.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, utils.SendNotFound(c, "Task not found")
		}
		return nil, utils.SendInternalServerError(c, "Failed to load task")
	}
	if task.UserID != userID {
		return nil, utils.SendForbidden(c, "Task belongs to another user")
	}
	return task, nil
}

func parseTaskFields(req *models.TaskRequest) (dueAt *time.Time, badField string) {
	if req.DueAt == "" {
		return nil, ""
	}
	parsed, err := time.Parse(time.RFC3339, req.DueAt)
	if err != nil {
		return nil, "due_at"
	}
	return &parsed, ""
}
