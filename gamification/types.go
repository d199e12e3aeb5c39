package gamification

// BadgeKey identifies a catalog badge.
type BadgeKey string

const (
	BadgeStreak3   BadgeKey = "streak_3"
	BadgeStreak7   BadgeKey = "streak_7"
	BadgeStreak30  BadgeKey = "streak_30"
	BadgeLevel5    BadgeKey = "lvl_5"
	BadgeLevel10   BadgeKey = "lvl_10"
	BadgeEarlyBird BadgeKey = "early_bird"
	BadgeNightOwl  BadgeKey = "night_owl"
)

// ThresholdBadge pairs a badge key with the streak or level it unlocks at.
type ThresholdBadge struct {
	Threshold int
	Key       BadgeKey
}

// Mood is the pet's displayed state.
type Mood string

const (
	MoodHappy Mood = "happy"
	MoodSad   Mood = "sad"
)
