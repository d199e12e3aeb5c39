package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/petplan/backend/database/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	GetByUserID(ctx context.Context, userID string) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	CompleteIfPending(ctx context.Context, id string) (bool, error)
}

type taskRepository struct {
	db *bun.DB
}

func NewTaskRepository(db *bun.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = time.Now()
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}

	ctx, cancel := WithTimeout(ctx)
	defer cancel()
	_, err := r.db.NewInsert().Model(task).Exec(ctx)
	return HandleError("create", "task", task.ID, err)
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	ctx, cancel := WithTimeout(ctx)
	defer cancel()

	task := new(models.Task)
	err := r.db.NewSelect().
		Model(task).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, HandleError("get_by_id", "task", id, err)
	}
	return task, nil
}

func (r *taskRepository) GetByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	ctx, cancel := WithTimeout(ctx)
	defer cancel()

	var tasks []*models.Task
	err := r.db.NewSelect().
		Model(&tasks).
		Where("user_id = ?", userID).
		OrderExpr("due_at ASC NULLS LAST").
		Scan(ctx)
	if err != nil {
		return nil, HandleError("get_by_user_id", "task", userID, err)
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	ctx, cancel := WithTimeout(ctx)
	defer cancel()
	_, err := r.db.NewUpdate().
		Model(task).
		WherePK().
		Exec(ctx)
	return HandleError("update", "task", task.ID, err)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := WithTimeout(ctx)
	defer cancel()
	_, err := r.db.NewDelete().
		Model((*models.Task)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return HandleError("delete", "task", id, err)
}

// CompleteIfPending flips a task to DONE only if it is currently PENDING.
// It reports false when another completion won the race or the task was
// already DONE, leaving the row untouched either way.
func (r *taskRepository) CompleteIfPending(ctx context.Context, id string) (bool, error) {
	ctx, cancel := WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Task)(nil)).
		Set("status = ?", models.TaskStatusDone).
		Where("id = ?", id).
		Where("status = ?", models.TaskStatusPending).
		Exec(ctx)
	if err != nil {
		return false, HandleError("complete_if_pending", "task", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, HandleError("complete_if_pending", "task", id, err)
	}
	if rows == 0 {
		slog.Debug("Conditional completion matched no pending task",
			slog.String("type", "db"),
			slog.String("task_id", id))
	}
	return rows > 0, nil
}
