package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/petplan/backend/database/models"
)

type ActivityRepository interface {
	Append(ctx context.Context, entry *models.Activity) error
	GetRecentByUserID(ctx context.Context, userID string, limit int) ([]*models.Activity, error)
}

type activityRepository struct {
	db *bun.DB
}

func NewActivityRepository(db *bun.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Append writes one immutable feed entry. There is deliberately no update or
// delete counterpart.
func (r *activityRepository) Append(ctx context.Context, entry *models.Activity) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	ctx, cancel := WithTimeout(ctx)
	defer cancel()
	_, err := r.db.NewInsert().Model(entry).Exec(ctx)
	return HandleError("append", "activity", entry.UserID, err)
}

func (r *activityRepository) GetRecentByUserID(ctx context.Context, userID string, limit int) ([]*models.Activity, error) {
	ctx, cancel := WithTimeout(ctx)
	defer cancel()

	var entries []*models.Activity
	err := r.db.NewSelect().
		Model(&entries).
		Where("user_id = ?", userID).
		OrderExpr("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, HandleError("get_recent_by_user_id", "activity", userID, err)
	}
	return entries, nil
}
