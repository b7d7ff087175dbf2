package frontend

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bizclock/bizclock/calendar"
	"github.com/bizclock/bizclock/overtime"
)

const dateLayout = "2006-01-02"

// CalendarService exposes the working-hours calendar queries over
// JSON-RPC. Timestamps travel as RFC3339 strings and dates as
// "YYYY-MM-DD"; unparsable input is a request error, while an unknown
// schedule id is a normal response with zero values.
type CalendarService struct {
	calc *overtime.Calculator
	loc  *time.Location
}

// NewCalendarService wraps calc for RPC exposure.
func NewCalendarService(calc *overtime.Calculator, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{calc: calc, loc: loc}
}

func (s *CalendarService) parseInstant(v string) (time.Time, error) {
	t, err := time.ParseInLocation(time.RFC3339, v, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: must be RFC3339", v)
	}
	return t, nil
}

func (s *CalendarService) parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, v, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", v)
	}
	return t, nil
}

// ShiftJSON mirrors calendar.ShiftWindow on the wire.
type ShiftJSON struct {
	Start string `msgpack:"start" json:"start"`
	End   string `msgpack:"end" json:"end"`
}

type ElapsedRequest struct {
	// RFC3339 timestamps. An empty End means "now".
	Start      string `msgpack:"start" json:"start"`
	End        string `msgpack:"end,omitempty" json:"end,omitempty"`
	ScheduleID string `msgpack:"schedule_id" json:"schedule_id"`
}

type ElapsedResponse struct {
	Seconds int64 `msgpack:"seconds" json:"seconds"`
}

// Elapsed computes the elapsed business seconds of the interval.
func (s *CalendarService) Elapsed(r *http.Request, req *ElapsedRequest, resp *ElapsedResponse) error {
	start, err := s.parseInstant(req.Start)
	if err != nil {
		return err
	}
	if req.End == "" {
		resp.Seconds, err = s.calc.ElapsedSinceStart(r.Context(), start, req.ScheduleID)
		return err
	}
	end, err := s.parseInstant(req.End)
	if err != nil {
		return err
	}
	resp.Seconds, err = s.calc.ElapsedBusinessSeconds(r.Context(), start, end, req.ScheduleID)
	return err
}

type DayRequest struct {
	Date       string `msgpack:"date" json:"date"`
	ScheduleID string `msgpack:"schedule_id" json:"schedule_id"`
}

type IsWorkDayResponse struct {
	WorkDay bool `msgpack:"work_day" json:"work_day"`
}

// IsWorkDay reports whether the date is a work day.
func (s *CalendarService) IsWorkDay(r *http.Request, req *DayRequest, resp *IsWorkDayResponse) error {
	date, err := s.parseDate(req.Date)
	if err != nil {
		return err
	}
	resp.WorkDay, err = s.calc.IsTodayWork(r.Context(), date, req.ScheduleID)
	return err
}

type ShiftsResponse struct {
	Shifts []ShiftJSON `msgpack:"shifts" json:"shifts"`
}

// Shifts returns the shift windows of the date, ascending.
func (s *CalendarService) Shifts(r *http.Request, req *DayRequest, resp *ShiftsResponse) error {
	date, err := s.parseDate(req.Date)
	if err != nil {
		return err
	}
	shifts, err := s.calc.GetWorkTimeList(r.Context(), date, req.ScheduleID)
	if err != nil {
		return err
	}
	resp.Shifts = toShiftJSON(shifts)
	return nil
}

func toShiftJSON(shifts []calendar.ShiftWindow) []ShiftJSON {
	ret := make([]ShiftJSON, len(shifts))
	for i, sw := range shifts {
		ret[i] = ShiftJSON{Start: sw.Start.String(), End: sw.End.String()}
	}
	return ret
}

// InstantResponse carries an optional instant; Found=false means the
// no-calendar condition (not an error).
type InstantResponse struct {
	Found bool   `msgpack:"found" json:"found"`
	At    string `msgpack:"at,omitempty" json:"at,omitempty"`
}

// BeginOfWork returns the start of the date's first shift, if any.
func (s *CalendarService) BeginOfWork(r *http.Request, req *DayRequest, resp *InstantResponse) error {
	date, err := s.parseDate(req.Date)
	if err != nil {
		return err
	}
	at, found, err := s.calc.GetBeginWorkTime(r.Context(), date, req.ScheduleID)
	if err != nil {
		return err
	}
	resp.Found = found
	if found {
		resp.At = at.Format(time.RFC3339)
	}
	return nil
}

// OffWork returns the end of the date's last shift, if any.
func (s *CalendarService) OffWork(r *http.Request, req *DayRequest, resp *InstantResponse) error {
	date, err := s.parseDate(req.Date)
	if err != nil {
		return err
	}
	at, found, err := s.calc.GetOffWorkTime(r.Context(), date, req.ScheduleID)
	if err != nil {
		return err
	}
	resp.Found = found
	if found {
		resp.At = at.Format(time.RFC3339)
	}
	return nil
}

type InWorkTimeRequest struct {
	At         string `msgpack:"at" json:"at"`
	ScheduleID string `msgpack:"schedule_id" json:"schedule_id"`
}

type InWorkTimeResponse struct {
	InWorkTime bool `msgpack:"in_work_time" json:"in_work_time"`
}

// InWorkTime reports whether the instant lies within a shift,
// end-exclusive.
func (s *CalendarService) InWorkTime(r *http.Request, req *InWorkTimeRequest, resp *InWorkTimeResponse) error {
	at, err := s.parseInstant(req.At)
	if err != nil {
		return err
	}
	resp.InWorkTime, err = s.calc.IsInWorkTime(r.Context(), at, req.ScheduleID)
	return err
}

type NextWorkDayResponse struct {
	Found bool   `msgpack:"found" json:"found"`
	Date  string `msgpack:"date,omitempty" json:"date,omitempty"`
}

// NextWorkDay returns the earliest work day strictly after the date,
// if one exists within the lookahead bound.
func (s *CalendarService) NextWorkDay(r *http.Request, req *DayRequest, resp *NextWorkDayResponse) error {
	date, err := s.parseDate(req.Date)
	if err != nil {
		return err
	}
	next, found, err := s.calc.GetNextWorkDay(r.Context(), date, req.ScheduleID)
	if err != nil {
		return err
	}
	resp.Found = found
	if found {
		resp.Date = next.Format(dateLayout)
	}
	return nil
}
