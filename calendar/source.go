package calendar

import (
	"context"
	"time"
)

// DaySource supplies calendar data one day at a time. It is the only
// external collaborator of the engine.
//
// A schedule id with no configured calendar, or a date with no entry,
// must yield a non-work CalendarDay, not an error. Errors are reserved
// for I/O failures against the backing store and propagate to the
// caller unmasked; the engine performs no retries.
type DaySource interface {
	Day(ctx context.Context, scheduleID string, date time.Time) (CalendarDay, error)
}
