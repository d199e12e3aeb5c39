package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Badge is a static catalog entry. The catalog is seeded at boot and read-only
// afterwards.
type Badge struct {
	bun.BaseModel `bun:"table:badges,alias:b"`

	ID          string `bun:"id,pk" json:"id"`
	Key         string `bun:"key,notnull,unique" json:"key"`
	Name        string `bun:"name,notnull" json:"name"`
	Description string `bun:"description,notnull" json:"description"`
	Icon        string `bun:"icon,notnull" json:"icon"`
}

// UserBadge records that a user holds a badge. A (user, badge) pair exists at
// most once and is never updated or deleted.
type UserBadge struct {
	bun.BaseModel `bun:"table:user_badges,alias:ub"`

	ID        string    `bun:"id,pk" json:"id"`
	UserID    string    `bun:"user_id,notnull" json:"user_id"`
	BadgeID   string    `bun:"badge_id,notnull" json:"badge_id"`
	AwardedAt time.Time `bun:"awarded_at,notnull,default:current_timestamp" json:"awarded_at"`
}
