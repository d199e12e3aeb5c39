// Package recurrence expands compact repeat-rule strings into concrete
// calendar occurrences. Rules are the on-the-wire encoding the mobile client
// stores on a task: the literal "DAILY", or "WEEKLY:" followed by
// comma-separated two-letter weekday codes, e.g. "WEEKLY:MO,WE,FR".
//
// Parsing never fails. An unrecognized rule means "no rule", and unknown
// weekday codes are dropped; a weekly rule left with no valid weekdays simply
// produces no occurrences.
package recurrence

import (
	"strings"
	"time"

	"github.com/petplan/backend/calendar"
)

type RuleType string

const (
	RuleDaily  RuleType = "DAILY"
	RuleWeekly RuleType = "WEEKLY"
)

const weeklyPrefix = "WEEKLY:"

// Rule is a parsed recurrence rule. Days is only populated for weekly rules.
type Rule struct {
	Type RuleType
	Days []time.Weekday
}

var weekdayCodes = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

// Parse decodes a rule string. It returns nil for empty, unknown, or
// malformed input rather than an error.
func Parse(text string) *Rule {
	if text == "" {
		return nil
	}
	if text == string(RuleDaily) {
		return &Rule{Type: RuleDaily}
	}
	if strings.HasPrefix(text, weeklyPrefix) {
		var days []time.Weekday
		for _, part := range strings.Split(strings.TrimPrefix(text, weeklyPrefix), ",") {
			code := strings.ToUpper(strings.TrimSpace(part))
			if day, ok := weekdayCodes[code]; ok {
				days = append(days, day)
			}
		}
		return &Rule{Type: RuleWeekly, Days: days}
	}
	return nil
}

// Occurrences expands a rule into the ascending start-of-day instants it
// matches between from and to, inclusive of both endpoint days. A nil rule
// or an inverted window yields nothing.
func (r *Rule) Occurrences(from, to time.Time) []time.Time {
	if r == nil {
		return nil
	}
	start := calendar.StartOfDay(from)
	end := calendar.StartOfDay(to.In(from.Location()))
	if start.After(end) {
		return nil
	}

	var days []time.Time
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		if r.matches(cursor) {
			days = append(days, cursor)
		}
	}
	return days
}

func (r *Rule) matches(day time.Time) bool {
	switch r.Type {
	case RuleDaily:
		return true
	case RuleWeekly:
		for _, wd := range r.Days {
			if day.Weekday() == wd {
				return true
			}
		}
	}
	return false
}
