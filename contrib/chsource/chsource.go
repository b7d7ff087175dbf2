// Package chsource provides a calendar.DaySource backed by a
// ClickHouse shift table, for deployments where the HR system exports
// work schedules into the analytics warehouse. One row per shift:
//
//	CREATE TABLE work_shifts (
//	    schedule_id String,
//	    date        Date,
//	    shift_start String, -- "09:00:00"
//	    shift_end   String  -- "18:00:00"
//	) ENGINE = MergeTree ORDER BY (schedule_id, date, shift_start);
//
// A (schedule_id, date) pair with no rows is a non-work day, which is
// also the answer for a schedule id that was never exported.
package chsource

import (
	"context"
	"time"

	clickhouse "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"

	"github.com/bizclock/bizclock/calendar"
)

// Config is the connection configuration for the shift store.
type Config struct {
	Addr     string
	Database string
	Table    string
	Username string
	Password string
}

// ShiftStore reads calendar days from ClickHouse.
type ShiftStore struct {
	conn  driver.Conn
	table string
	loc   *time.Location
}

// NewShiftStore opens a connection and verifies it with a ping.
func NewShiftStore(ctx context.Context, cfg Config, loc *time.Location) (*ShiftStore, error) {
	if loc == nil {
		loc = time.UTC
	}
	table := cfg.Table
	if table == "" {
		table = "work_shifts"
	}
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open clickhouse connection")
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, errors.Wrap(err, "ping clickhouse")
	}
	return &ShiftStore{conn: conn, table: table, loc: loc}, nil
}

// Day implements calendar.DaySource. Driver errors propagate to the
// caller; the engine performs no retries.
func (s *ShiftStore) Day(ctx context.Context, scheduleID string, date time.Time) (calendar.CalendarDay, error) {
	date = calendar.Midnight(date, s.loc)

	rows, err := s.conn.Query(ctx,
		"SELECT shift_start, shift_end FROM "+s.table+
			" WHERE schedule_id = ? AND date = ? ORDER BY shift_start",
		scheduleID, date.Format("2006-01-02"))
	if err != nil {
		return calendar.CalendarDay{}, errors.Wrapf(err, "query shifts for schedule %q on %v",
			scheduleID, date.Format("2006-01-02"))
	}
	defer rows.Close()

	var shifts []calendar.ShiftWindow
	for rows.Next() {
		var startStr, endStr string
		if err := rows.Scan(&startStr, &endStr); err != nil {
			return calendar.CalendarDay{}, errors.Wrap(err, "scan shift row")
		}
		start, err := calendar.ParseTimeOfDay(startStr)
		if err != nil {
			return calendar.CalendarDay{}, errors.Wrapf(err, "schedule %q on %v",
				scheduleID, date.Format("2006-01-02"))
		}
		end, err := calendar.ParseTimeOfDay(endStr)
		if err != nil {
			return calendar.CalendarDay{}, errors.Wrapf(err, "schedule %q on %v",
				scheduleID, date.Format("2006-01-02"))
		}
		shifts = append(shifts, calendar.ShiftWindow{Start: start, End: end})
	}
	if err := rows.Err(); err != nil {
		return calendar.CalendarDay{}, errors.Wrap(err, "iterate shift rows")
	}

	if len(shifts) == 0 {
		return calendar.NonWorkDay(date), nil
	}
	day := calendar.CalendarDay{Date: date, WorkDay: true, Shifts: shifts}
	if err := day.Validate(); err != nil {
		return calendar.CalendarDay{}, errors.Wrapf(err, "inconsistent shift rows for schedule %q",
			scheduleID)
	}
	return day, nil
}

// Close releases the connection.
func (s *ShiftStore) Close() error {
	return s.conn.Close()
}
