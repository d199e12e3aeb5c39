package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/petplan/backend/database/models"
)

type BadgeRepository interface {
	GetByKeys(ctx context.Context, keys []string) ([]*models.Badge, error)
	GetAwardedBadgeIDs(ctx context.Context, userID string, badgeIDs []string) ([]string, error)
	Award(ctx context.Context, awards []*models.UserBadge) error
	GetAwardedByUserID(ctx context.Context, userID string) ([]*models.UserBadge, error)
}

type badgeRepository struct {
	db *bun.DB
}

func NewBadgeRepository(db *bun.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) GetByKeys(ctx context.Context, keys []string) ([]*models.Badge, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	ctx, cancel := WithTimeout(ctx)
	defer cancel()

	var badges []*models.Badge
	err := r.db.NewSelect().
		Model(&badges).
		Where("key IN (?)", bun.In(keys)).
		Scan(ctx)
	if err != nil {
		return nil, HandleError("get_by_keys", "badge", keys, err)
	}
	return badges, nil
}

// GetAwardedBadgeIDs returns which of badgeIDs the user already holds.
func (r *badgeRepository) GetAwardedBadgeIDs(ctx context.Context, userID string, badgeIDs []string) ([]string, error) {
	if len(badgeIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := WithTimeout(ctx)
	defer cancel()

	var ids []string
	err := r.db.NewSelect().
		Model((*models.UserBadge)(nil)).
		Column("badge_id").
		Where("user_id = ?", userID).
		Where("badge_id IN (?)", bun.In(badgeIDs)).
		Scan(ctx, &ids)
	if err != nil {
		return nil, HandleError("get_awarded_badge_ids", "user_badge", userID, err)
	}
	return ids, nil
}

func (r *badgeRepository) Award(ctx context.Context, awards []*models.UserBadge) error {
	if len(awards) == 0 {
		return nil
	}
	for _, award := range awards {
		if award.ID == "" {
			award.ID = uuid.NewString()
		}
	}

	ctx, cancel := WithTimeout(ctx)
	defer cancel()
	_, err := r.db.NewInsert().Model(&awards).Exec(ctx)
	return HandleError("award", "user_badge", awards[0].UserID, err)
}

func (r *badgeRepository) GetAwardedByUserID(ctx context.Context, userID string) ([]*models.UserBadge, error) {
	ctx, cancel := WithTimeout(ctx)
	defer cancel()

	var awards []*models.UserBadge
	err := r.db.NewSelect().
		Model(&awards).
		Where("user_id = ?", userID).
		OrderExpr("awarded_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, HandleError("get_awarded_by_user_id", "user_badge", userID, err)
	}
	return awards, nil
}
