// Package gamification holds the pure rules driving XP, levels, day-streaks,
// badge unlocks, and pet mood. The completion orchestrator, the badge service,
// and the read-side handlers all go through the same Calculator so the rules
// cannot drift between code paths.
package gamification

import (
	"time"

	"github.com/petplan/backend/calendar"
)

type Calculator struct {
	config *Config
}

func NewCalculator(config *Config) *Calculator {
	return &Calculator{config: config}
}

// XPPerTask returns the fixed XP award for one completed task.
func (c *Calculator) XPPerTask() int64 {
	return c.config.XPPerTask
}

// Level derives the level for an XP total: floor(xp/100)+1 with the default
// config. Callers guarantee xp >= 0.
func (c *Calculator) Level(xp int64) int {
	return int(xp/c.config.XPPerLevel) + 1
}

// Progress returns XP accumulated within the current level, in
// [0, XPPerLevel). A negative remainder clamps to 0.
func (c *Calculator) Progress(xp int64) int {
	remainder := xp % c.config.XPPerLevel
	if remainder < 0 {
		return 0
	}
	return int(remainder)
}

// NextStreak computes the streak after a completion at completedAt.
//
// doneToday short-circuits: re-completing a day that already counted keeps
// the streak as-is. Otherwise a missing lastActive starts at 1, a same-day
// lastActive keeps the streak (repairing a zero streak to 1), a one-day gap
// extends it, and anything else resets to 1.
func (c *Calculator) NextStreak(lastActive *time.Time, completedAt time.Time, doneToday bool, current int) int {
	if doneToday {
		return current
	}
	if lastActive == nil {
		return 1
	}
	switch diff := calendar.DaysBetween(*lastActive, completedAt); {
	case diff == 0:
		if current == 0 {
			return 1
		}
		return current
	case diff == 1:
		return current + 1
	default:
		return 1
	}
}

// AwardCandidates returns every badge key the given streak, level, and
// completion time qualify for. The result is candidates only; filtering out
// badges the user already holds is the badge service's job.
func (c *Calculator) AwardCandidates(streak, level int, completedAt time.Time) []BadgeKey {
	var keys []BadgeKey
	for _, badge := range c.config.StreakBadges {
		if streak >= badge.Threshold {
			keys = append(keys, badge.Key)
		}
	}
	for _, badge := range c.config.LevelBadges {
		if level >= badge.Threshold {
			keys = append(keys, badge.Key)
		}
	}
	hour := completedAt.Hour()
	if hour < c.config.EarlyBirdBefore {
		keys = append(keys, BadgeEarlyBird)
	}
	if hour >= c.config.NightOwlFrom {
		keys = append(keys, BadgeNightOwl)
	}
	return keys
}

// Mood reports the pet's mood at ref: sad when it has never been fed a
// completion, or the last active day is 48h or more behind ref.
func (c *Calculator) Mood(lastActive *time.Time, ref time.Time) Mood {
	if lastActive == nil {
		return MoodSad
	}
	if ref.Sub(*lastActive) >= c.config.SadAfter {
		return MoodSad
	}
	return MoodHappy
}
