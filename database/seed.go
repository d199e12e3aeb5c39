package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/petplan/backend/database/models"
)

// InitializeBadgeData inserts the static badge catalog into the database.
// It is safe to call on every boot: a non-empty catalog is left untouched.
func (db *DB) InitializeBadgeData(ctx context.Context) error {
	var badgeCount int
	err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM badges").Scan(&badgeCount)
	if err == nil && badgeCount > 0 {
		slog.Info("Badge catalog already initialized, skipping",
			slog.Int("existing_badges", badgeCount))
		return nil
	}

	slog.Info("Initializing badge catalog...")

	badges := []models.Badge{
		{
			Key:         "streak_3",
			Name:        "On a Roll",
			Description: "Complete tasks three days in a row",
			Icon:        "🔥",
		},
		{
			Key:         "streak_7",
			Name:        "Week Warrior",
			Description: "Complete tasks seven days in a row",
			Icon:        "⚡",
		},
		{
			Key:         "streak_30",
			Name:        "Habit Master",
			Description: "Complete tasks thirty days in a row",
			Icon:        "🏆",
		},
		{
			Key:         "lvl_5",
			Name:        "Rising Star",
			Description: "Raise your pet to level 5",
			Icon:        "⭐",
		},
		{
			Key:         "lvl_10",
			Name:        "Pet Champion",
			Description: "Raise your pet to level 10",
			Icon:        "👑",
		},
		{
			Key:         "early_bird",
			Name:        "Early Bird",
			Description: "Complete a task before 9 in the morning",
			Icon:        "🌅",
		},
		{
			Key:         "night_owl",
			Name:        "Night Owl",
			Description: "Complete a task at 10 in the evening or later",
			Icon:        "🦉",
		},
	}
	for i := range badges {
		badges[i].ID = uuid.NewString()
	}

	if _, err := db.bunDB.NewInsert().Model(&badges).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed badge catalog: %w", err)
	}

	slog.Info("Badge catalog initialized", slog.Int("badges", len(badges)))
	return nil
}
