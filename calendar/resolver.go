package calendar

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// DefaultMaxLookaheadDays bounds the next/previous work day scans.
// One year plus a day covers any realistic calendar; a schedule with no
// work days at all terminates with "not found" instead of looping.
const DefaultMaxLookaheadDays = 366

// Resolver answers day-granularity calendar questions against a
// DaySource. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	source DaySource
	loc    *time.Location
}

// NewResolver returns a Resolver reading from source. All dates are
// interpreted in loc; a nil loc means UTC.
func NewResolver(source DaySource, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{source: source, loc: loc}
}

// Location returns the resolver's calendar location.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func (r *Resolver) day(ctx context.Context, date time.Time, scheduleID string) (CalendarDay, error) {
	return r.source.Day(ctx, scheduleID, Midnight(date, r.loc))
}

// IsWorkDay reports whether date is a work day. False for unknown
// schedule ids.
func (r *Resolver) IsWorkDay(ctx context.Context, date time.Time, scheduleID string) (bool, error) {
	d, err := r.day(ctx, date, scheduleID)
	if err != nil {
		return false, err
	}
	return d.WorkDay, nil
}

// ShiftsOn returns the shifts of date in ascending order. Empty for
// non-work days and unknown schedule ids.
func (r *Resolver) ShiftsOn(ctx context.Context, date time.Time, scheduleID string) ([]ShiftWindow, error) {
	d, err := r.day(ctx, date, scheduleID)
	if err != nil {
		return nil, err
	}
	return d.Shifts, nil
}

// BeginOfWork returns the start of the first shift of date. The bool
// is false when date is not a work day.
func (r *Resolver) BeginOfWork(ctx context.Context, date time.Time, scheduleID string) (time.Time, bool, error) {
	d, err := r.day(ctx, date, scheduleID)
	if err != nil {
		return time.Time{}, false, err
	}
	if !d.WorkDay || len(d.Shifts) == 0 {
		return time.Time{}, false, nil
	}
	return d.Shifts[0].Start.On(date.In(r.loc), r.loc), true, nil
}

// EndOfWork returns the end of the last shift of date. The bool is
// false when date is not a work day.
func (r *Resolver) EndOfWork(ctx context.Context, date time.Time, scheduleID string) (time.Time, bool, error) {
	d, err := r.day(ctx, date, scheduleID)
	if err != nil {
		return time.Time{}, false, err
	}
	if !d.WorkDay || len(d.Shifts) == 0 {
		return time.Time{}, false, nil
	}
	return d.Shifts[len(d.Shifts)-1].End.On(date.In(r.loc), r.loc), true, nil
}

// IsWithinShift reports whether t falls inside some shift of its day,
// end-exclusive.
func (r *Resolver) IsWithinShift(ctx context.Context, t time.Time, scheduleID string) (bool, error) {
	d, err := r.day(ctx, t, scheduleID)
	if err != nil {
		return false, err
	}
	if !d.WorkDay {
		return false, nil
	}
	td := TimeOfDayFrom(t.In(r.loc))
	for _, s := range d.Shifts {
		if s.Contains(td) {
			return true, nil
		}
	}
	return false, nil
}

// NextWorkDay returns the earliest work day strictly after date,
// scanning at most maxLookahead days forward. The bool is false when
// the bound is exhausted, which is the normal answer for an unknown or
// workless schedule, not an error. A negative bound is a validation
// error.
func (r *Resolver) NextWorkDay(ctx context.Context, date time.Time, scheduleID string, maxLookahead int) (time.Time, bool, error) {
	return r.scanWorkDay(ctx, date, scheduleID, maxLookahead, 1)
}

// PrevWorkDay returns the latest work day strictly before date,
// scanning at most maxLookahead days backward. Same bounding rules as
// NextWorkDay.
func (r *Resolver) PrevWorkDay(ctx context.Context, date time.Time, scheduleID string, maxLookahead int) (time.Time, bool, error) {
	return r.scanWorkDay(ctx, date, scheduleID, maxLookahead, -1)
}

func (r *Resolver) scanWorkDay(ctx context.Context, date time.Time, scheduleID string, maxLookahead, step int) (time.Time, bool, error) {
	if maxLookahead < 0 {
		return time.Time{}, false, errors.Errorf("maxLookahead must not be negative: got=%d", maxLookahead)
	}
	d := Midnight(date, r.loc)
	for i := 0; i < maxLookahead; i++ {
		d = d.AddDate(0, 0, step)
		work, err := r.IsWorkDay(ctx, d, scheduleID)
		if err != nil {
			return time.Time{}, false, err
		}
		if work {
			return d, true, nil
		}
	}
	return time.Time{}, false, nil
}
