// Package overtime computes how much of a wall-clock interval falls
// inside a configured working-hours calendar, net of nights, weekends
// and non-work days. The typical caller measures how overdue an
// approval or task is.
package overtime

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/bizclock/bizclock/calendar"
	"github.com/bizclock/bizclock/utils/log"
)

// Calculator is the entry point of the engine. It normalizes the query
// interval (start rollover and clamping, end clamping) and drives the
// day-by-day accumulation. It holds no mutable state after
// construction and is safe for concurrent use.
type Calculator struct {
	source       calendar.DaySource
	resolver     *calendar.Resolver
	loc          *time.Location
	now          func() time.Time
	maxLookahead int
}

// NewCalculator returns a Calculator reading calendar data from
// source. All instants are evaluated in loc; a nil loc means UTC.
func NewCalculator(source calendar.DaySource, loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{
		source:       source,
		resolver:     calendar.NewResolver(source, loc),
		loc:          loc,
		now:          time.Now,
		maxLookahead: calendar.DefaultMaxLookaheadDays,
	}
}

// SetClock replaces the current-time source used when the end of an
// interval is left open.
func (c *Calculator) SetClock(now func() time.Time) {
	c.now = now
}

// SetMaxLookahead overrides the work-day scan bound. A negative value
// is a validation error.
func (c *Calculator) SetMaxLookahead(days int) error {
	if days < 0 {
		return errors.Errorf("lookahead days must not be negative: got=%d", days)
	}
	c.maxLookahead = days
	return nil
}

// ElapsedSinceStart returns the elapsed business seconds from start
// until now.
func (c *Calculator) ElapsedSinceStart(ctx context.Context, start time.Time, scheduleID string) (int64, error) {
	return c.ElapsedBusinessSeconds(ctx, start, c.now(), scheduleID)
}

// ElapsedBusinessSeconds returns the whole seconds of [start, end]
// that fall inside the shifts of the schedule's calendar.
//
// An unknown schedule id, or a window that lies entirely outside work
// time, yields 0 and no error. Only I/O failures of the calendar data
// source are returned as errors.
func (c *Calculator) ElapsedBusinessSeconds(ctx context.Context, start, end time.Time, scheduleID string) (int64, error) {
	if end.Before(start) {
		return 0, nil
	}

	// One consistent snapshot per calculation: every date is fetched
	// from the source at most once.
	r := calendar.NewResolver(newMemoSource(c.source), c.loc)

	start = start.In(c.loc)
	end = end.In(c.loc)

	start, ok, err := c.normalizeStart(ctx, r, start, scheduleID)
	if err != nil || !ok {
		return 0, err
	}
	end, ok, err = c.normalizeEnd(ctx, r, end, scheduleID)
	if err != nil || !ok {
		return 0, err
	}

	if end.Before(start) {
		return 0, nil
	}
	return accumulateSeconds(ctx, r, start, end, scheduleID)
}

// normalizeStart applies the start-side rollover and clamp. The bool
// is false when no work time exists at or after start within the
// lookahead bound.
func (c *Calculator) normalizeStart(ctx context.Context, r *calendar.Resolver, start time.Time, scheduleID string) (time.Time, bool, error) {
	work, err := r.IsWorkDay(ctx, start, scheduleID)
	if err != nil {
		return time.Time{}, false, err
	}

	rollover := !work
	if work {
		offWork, ok, err := r.EndOfWork(ctx, start, scheduleID)
		if err != nil {
			return time.Time{}, false, err
		}
		// At or after the end of work counts as the next work day.
		rollover = ok && !start.Before(offWork)
	}

	if rollover {
		next, found, err := r.NextWorkDay(ctx, start, scheduleID, c.maxLookahead)
		if err != nil {
			return time.Time{}, false, err
		}
		if !found {
			log.Debug("no work day within %d days after %v for schedule %q",
				c.maxLookahead, start, scheduleID)
			return time.Time{}, false, nil
		}
		begin, ok, err := r.BeginOfWork(ctx, next, scheduleID)
		if err != nil || !ok {
			return time.Time{}, false, err
		}
		return begin, true, nil
	}

	// Time never counts before work begins; it is never rolled back to
	// a previous day.
	begin, ok, err := r.BeginOfWork(ctx, start, scheduleID)
	if err != nil {
		return time.Time{}, false, err
	}
	if ok && start.Before(begin) {
		return begin, true, nil
	}
	return start, true, nil
}

// normalizeEnd clamps the end of the interval down to the last work
// time at or before it. Applied once; it never re-triggers a rollover.
// The bool is false when no work day exists at or before end within
// the lookahead bound.
func (c *Calculator) normalizeEnd(ctx context.Context, r *calendar.Resolver, end time.Time, scheduleID string) (time.Time, bool, error) {
	work, err := r.IsWorkDay(ctx, end, scheduleID)
	if err != nil {
		return time.Time{}, false, err
	}

	if work {
		offWork, ok, err := r.EndOfWork(ctx, end, scheduleID)
		if err != nil {
			return time.Time{}, false, err
		}
		if ok && end.After(offWork) {
			return offWork, true, nil
		}
		return end, true, nil
	}

	prev, found, err := r.PrevWorkDay(ctx, end, scheduleID, c.maxLookahead)
	if err != nil {
		return time.Time{}, false, err
	}
	if !found {
		log.Debug("no work day within %d days before %v for schedule %q",
			c.maxLookahead, end, scheduleID)
		return time.Time{}, false, nil
	}
	offWork, ok, err := r.EndOfWork(ctx, prev, scheduleID)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	return offWork, true, nil
}

// IsTodayWork reports whether date is a work day.
func (c *Calculator) IsTodayWork(ctx context.Context, date time.Time, scheduleID string) (bool, error) {
	return c.resolver.IsWorkDay(ctx, date, scheduleID)
}

// GetWorkTimeList returns the shifts of date in ascending order.
func (c *Calculator) GetWorkTimeList(ctx context.Context, date time.Time, scheduleID string) ([]calendar.ShiftWindow, error) {
	return c.resolver.ShiftsOn(ctx, date, scheduleID)
}

// GetBeginWorkTime returns the start of the first shift of date, if
// any.
func (c *Calculator) GetBeginWorkTime(ctx context.Context, date time.Time, scheduleID string) (time.Time, bool, error) {
	return c.resolver.BeginOfWork(ctx, date, scheduleID)
}

// GetOffWorkTime returns the end of the last shift of date, if any.
func (c *Calculator) GetOffWorkTime(ctx context.Context, date time.Time, scheduleID string) (time.Time, bool, error) {
	return c.resolver.EndOfWork(ctx, date, scheduleID)
}

// IsInWorkTime reports whether t lies inside some shift, end-exclusive.
func (c *Calculator) IsInWorkTime(ctx context.Context, t time.Time, scheduleID string) (bool, error) {
	return c.resolver.IsWithinShift(ctx, t, scheduleID)
}

// GetNextWorkDay returns the earliest work day strictly after date, if
// one exists within the lookahead bound.
func (c *Calculator) GetNextWorkDay(ctx context.Context, date time.Time, scheduleID string) (time.Time, bool, error) {
	return c.resolver.NextWorkDay(ctx, date, scheduleID, c.maxLookahead)
}
