package calendar

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ScheduleDef defines one static calendar: a weekly shift pattern,
// dated holidays, and dated overrides that replace the weekly pattern
// for a single day.
type ScheduleDef struct {
	Week      map[time.Weekday][]ShiftWindow
	Holidays  []time.Time
	Overrides map[time.Time][]ShiftWindow
}

type staticSchedule struct {
	week      map[time.Weekday][]ShiftWindow
	closed    map[int]struct{}
	overrides map[int][]ShiftWindow
}

// StaticSource is an in-process DaySource holding immutable schedule
// definitions. Safe for concurrent use.
type StaticSource struct {
	loc       *time.Location
	schedules map[string]*staticSchedule
}

func julianDate(t time.Time) int {
	year, m, day := t.Date()
	month := int(m)
	// nolint:gomnd // well-known algorithm to calculate julian date number
	return day - 32075 + 1461*(year+4800+(month-14)/12)/4 + 367*(month-2-(month-14)/12*12)/12 -
		3*((year+4900+(month-14)/12)/100)/4
}

// NewStaticSource validates defs and builds a source over them. All
// dates are interpreted in loc; a nil loc means UTC.
func NewStaticSource(loc *time.Location, defs map[string]ScheduleDef) (*StaticSource, error) {
	if loc == nil {
		loc = time.UTC
	}
	src := &StaticSource{loc: loc, schedules: map[string]*staticSchedule{}}
	for id, def := range defs {
		sched := &staticSchedule{
			week:      map[time.Weekday][]ShiftWindow{},
			closed:    map[int]struct{}{},
			overrides: map[int][]ShiftWindow{},
		}
		for wd, shifts := range def.Week {
			if err := validateShifts(shifts); err != nil {
				return nil, errors.Wrapf(err, "schedule %q, %v", id, wd)
			}
			if len(shifts) > 0 {
				sched.week[wd] = shifts
			}
		}
		// Dates are keyed by their own calendar date, regardless of the
		// location they were parsed in.
		for _, h := range def.Holidays {
			sched.closed[julianDate(h)] = struct{}{}
		}
		for d, shifts := range def.Overrides {
			if err := validateShifts(shifts); err != nil {
				return nil, errors.Wrapf(err, "schedule %q, override %v", id, d.Format("2006-01-02"))
			}
			sched.overrides[julianDate(d)] = shifts
		}
		src.schedules[id] = sched
	}
	return src, nil
}

// Day implements DaySource. Unknown schedule ids and days without
// shifts resolve to a non-work day.
func (s *StaticSource) Day(_ context.Context, scheduleID string, date time.Time) (CalendarDay, error) {
	date = Midnight(date, s.loc)
	sched, ok := s.schedules[scheduleID]
	if !ok {
		return NonWorkDay(date), nil
	}
	jd := julianDate(date)
	if _, closed := sched.closed[jd]; closed {
		return NonWorkDay(date), nil
	}
	shifts, ok := sched.overrides[jd]
	if !ok {
		shifts = sched.week[date.Weekday()]
	}
	if len(shifts) == 0 {
		return NonWorkDay(date), nil
	}
	return CalendarDay{Date: date, WorkDay: true, Shifts: shifts}, nil
}
