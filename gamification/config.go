package gamification

import "time"

type Config struct {
	// XP awarded per completed task
	XPPerTask int64

	// XP required per level
	XPPerLevel int64

	// Badge thresholds
	StreakBadges []ThresholdBadge
	LevelBadges  []ThresholdBadge

	// Time-of-day badges
	EarlyBirdBefore int // local hour, exclusive
	NightOwlFrom    int // local hour, inclusive

	// Pet turns sad after this much inactivity
	SadAfter time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		XPPerTask:  10,
		XPPerLevel: 100,
		StreakBadges: []ThresholdBadge{
			{Threshold: 3, Key: BadgeStreak3},
			{Threshold: 7, Key: BadgeStreak7},
			{Threshold: 30, Key: BadgeStreak30},
		},
		LevelBadges: []ThresholdBadge{
			{Threshold: 5, Key: BadgeLevel5},
			{Threshold: 10, Key: BadgeLevel10},
		},
		EarlyBirdBefore: 9,
		NightOwlFrom:    22,
		SadAfter:        48 * time.Hour,
	}
}
