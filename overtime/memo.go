package overtime

import (
	"context"
	"time"

	"github.com/bizclock/bizclock/calendar"
)

// memoSource pins one answer per (schedule, date) for the lifetime of
// a single calculation, so a calendar changing under a remote source
// cannot make one call observe two versions of the same day. It is
// call-scoped and therefore needs no locking.
type memoSource struct {
	source calendar.DaySource
	days   map[memoKey]calendar.CalendarDay
}

type memoKey struct {
	scheduleID string
	date       string
}

func newMemoSource(source calendar.DaySource) *memoSource {
	return &memoSource{source: source, days: map[memoKey]calendar.CalendarDay{}}
}

func (m *memoSource) Day(ctx context.Context, scheduleID string, date time.Time) (calendar.CalendarDay, error) {
	key := memoKey{scheduleID: scheduleID, date: date.Format("2006-01-02")}
	if day, ok := m.days[key]; ok {
		return day, nil
	}
	day, err := m.source.Day(ctx, scheduleID, date)
	if err != nil {
		return calendar.CalendarDay{}, err
	}
	m.days[key] = day
	return day, nil
}
