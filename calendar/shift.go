package calendar

import (
	"fmt"
	"time"
)

// ShiftWindow is one contiguous work interval within a single day.
// End is exclusive and must be later than Start.
type ShiftWindow struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Duration returns the length of the shift.
func (s ShiftWindow) Duration() time.Duration {
	return time.Duration(s.End.Seconds()-s.Start.Seconds()) * time.Second
}

// Contains reports whether td lies within the shift, end-exclusive.
func (s ShiftWindow) Contains(td TimeOfDay) bool {
	sec := td.Seconds()
	return sec >= s.Start.Seconds() && sec < s.End.Seconds()
}

// Validate checks that the window is non-empty.
func (s ShiftWindow) Validate() error {
	if s.End.Seconds() <= s.Start.Seconds() {
		return fmt.Errorf("shift end %v must be after start %v", s.End, s.Start)
	}
	return nil
}

// CalendarDay is the calendar data for one date: whether it is a work
// day and, if so, its shifts in ascending order. A non-work day has no
// shifts; a work day has at least one.
type CalendarDay struct {
	Date    time.Time
	WorkDay bool
	Shifts  []ShiftWindow
}

// NonWorkDay returns the CalendarDay for a date without any work,
// which is also the answer for an unknown schedule id.
func NonWorkDay(date time.Time) CalendarDay {
	return CalendarDay{Date: date, WorkDay: false}
}

// Validate checks the work-day/shift consistency and the shift
// ordering and overlap constraints.
func (d CalendarDay) Validate() error {
	if !d.WorkDay {
		if len(d.Shifts) != 0 {
			return fmt.Errorf("non-work day %v has %d shifts", d.Date.Format("2006-01-02"), len(d.Shifts))
		}
		return nil
	}
	if len(d.Shifts) == 0 {
		return fmt.Errorf("work day %v has no shifts", d.Date.Format("2006-01-02"))
	}
	return validateShifts(d.Shifts)
}

func validateShifts(shifts []ShiftWindow) error {
	for i, s := range shifts {
		if err := s.Validate(); err != nil {
			return err
		}
		if i > 0 && shifts[i-1].End.Seconds() > s.Start.Seconds() {
			return fmt.Errorf("shift %v-%v overlaps or is out of order with %v-%v",
				s.Start, s.End, shifts[i-1].Start, shifts[i-1].End)
		}
	}
	return nil
}
