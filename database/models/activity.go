package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ActivityType string

const (
	ActivityTaskDone ActivityType = "TASK_DONE"
	ActivityStreakUp ActivityType = "STREAK_UP"
	ActivityLevelUp  ActivityType = "LEVEL_UP"
	ActivityBadge    ActivityType = "BADGE"
)

// Activity is one append-only feed entry. Rows are never updated or deleted.
type Activity struct {
	bun.BaseModel `bun:"table:activity_log,alias:al"`

	ID        string         `bun:"id,pk" json:"id"`
	UserID    string         `bun:"user_id,notnull" json:"user_id"`
	Type      ActivityType   `bun:"type,notnull" json:"type"`
	Meta      map[string]any `bun:"meta,type:jsonb" json:"meta,omitempty"`
	CreatedAt time.Time      `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
