package calendar

import (
	"time"
)

// DayFormat is the wire encoding for calendar days, matching the
// pets.last_claim column.
const DayFormat = "2006-01-02"

// StartOfDay truncates an instant to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay reports whether two instants fall on the same local calendar day,
// regardless of time-of-day.
func IsSameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b.In(a.Location())))
}

// DaysBetween returns the signed number of whole calendar days from a's day
// to b's day. Time-of-day never contributes: 23:59 Monday to 00:01 Tuesday
// is one day. The dates are re-anchored at UTC midnight so DST transitions
// cannot shift the count.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// DateRange returns count consecutive days starting at start's day,
// ascending. A non-positive count yields an empty range.
func DateRange(start time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	days := make([]time.Time, 0, count)
	cursor := StartOfDay(start)
	for i := 0; i < count; i++ {
		days = append(days, cursor.AddDate(0, 0, i))
	}
	return days
}

// FormatDay encodes an instant's day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay decodes a YYYY-MM-DD day string in the local timezone.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, time.Local)
}

// FormatClock renders the HH:mm portion of an instant.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
