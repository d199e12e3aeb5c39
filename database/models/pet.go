package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/petplan/backend/calendar"
)

// Pet is the single virtual pet owned by a user. It is created lazily on the
// first task completion and mutated only by the completion orchestrator.
// Level is always derived from XP, never set independently.
type Pet struct {
	bun.BaseModel `bun:"table:pets,alias:p"`

	ID         string    `bun:"id,pk" json:"id"`
	UserID     string    `bun:"user_id,notnull,unique" json:"user_id"`
	XP         int64     `bun:"xp,notnull,default:0" json:"xp"`
	Level      int       `bun:"level,notnull,default:1" json:"level"`
	StreakDays int       `bun:"streak_days,notnull,default:0" json:"streak_days"`
	LastClaim  string    `bun:"last_claim,nullzero" json:"last_claim"` // YYYY-MM-DD, empty when never claimed
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// LastClaimDay decodes LastClaim into a local calendar day. It returns nil
// when the pet has never recorded a completion or the stored value is not a
// valid day.
func (p *Pet) LastClaimDay() *time.Time {
	if p == nil || p.LastClaim == "" {
		return nil
	}
	day, err := calendar.ParseDay(p.LastClaim)
	if err != nil {
		return nil
	}
	return &day
}
