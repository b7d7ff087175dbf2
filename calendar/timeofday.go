// Package calendar provides working-hours calendar primitives: shift
// windows within a day, per-day calendar data, and a Resolver that
// answers day-granularity questions (is this a work day? when does work
// begin and end? what is the next work day?) against a pluggable
// DaySource. A schedule id selects one calendar; an id with no
// configured calendar is a normal input and resolves to "no work",
// never to an error.
package calendar

import (
	"fmt"
	"time"
)

const todLayout = "15:04:05"

// TimeOfDay is a clock time within a single day, second resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses "HH:MM:SS". Malformed input is a validation
// error, it is never coerced to a zero time.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(todLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// TimeOfDayFrom extracts the clock time of t in t's location.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Seconds returns the offset from midnight in seconds.
func (td TimeOfDay) Seconds() int {
	return td.Hour*3600 + td.Minute*60 + td.Second
}

// Before reports whether td is earlier than other.
func (td TimeOfDay) Before(other TimeOfDay) bool {
	return td.Seconds() < other.Seconds()
}

// On anchors the clock time to the date of day in loc.
func (td TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	year, month, d := day.Date()
	return time.Date(year, month, d, td.Hour, td.Minute, td.Second, 0, loc)
}

func (td TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", td.Hour, td.Minute, td.Second)
}
