// Package configs parses the per-schedule calendar definitions out of
// the server's YAML configuration.
package configs

import (
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/bizclock/bizclock/calendar"
)

// json iter supports marshal/unmarshal of map[interface{}]interface{} type.
// The schedule definitions arrive as a nested structure parsed from the
// YAML config file, so the standard "encoding/json" library cannot
// marshal them directly.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ShiftConfig is one work interval within a day.
type ShiftConfig struct {
	Start CustomTime `json:"start"`
	End   CustomTime `json:"end"`
}

// ScheduleConfig defines one calendar: a weekly pattern keyed by
// weekday name, dated holidays, and per-date shift overrides.
type ScheduleConfig struct {
	Week      map[string][]ShiftConfig `json:"week"`
	Holidays  []CustomDay              `json:"holidays"`
	Overrides map[string][]ShiftConfig `json:"overrides"`
}

// DefaultConfig holds the schedule definitions, keyed by schedule id
// exactly as they appear under the "schedules" section of the config
// file.
type DefaultConfig struct {
	Schedules map[string]ScheduleConfig
}

// NewConfig casts the schedule map to typed configs through json
// marshal->unmarshal and validates it.
func NewConfig(config map[string]interface{}) (*DefaultConfig, error) {
	data, err := json.Marshal(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse the schedule config through json marshal->unmarshal")
	}

	ret := DefaultConfig{}
	if err := json.Unmarshal(data, &ret.Schedules); err != nil {
		return nil, err
	}

	if len(ret.Schedules) < 1 {
		return nil, errors.New("must have 1 or more schedules in the config file")
	}

	return &ret, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Source builds a validated StaticSource from the parsed definitions.
// The source and the calculator reading from it must share one
// location, so the caller passes it in; a nil loc means UTC.
func (c *DefaultConfig) Source(loc *time.Location) (*calendar.StaticSource, error) {
	if loc == nil {
		loc = time.UTC
	}

	defs := map[string]calendar.ScheduleDef{}
	for id, sc := range c.Schedules {
		def := calendar.ScheduleDef{
			Week:      map[time.Weekday][]calendar.ShiftWindow{},
			Overrides: map[time.Time][]calendar.ShiftWindow{},
		}
		for name, shifts := range sc.Week {
			wd, ok := weekdays[strings.ToLower(name)]
			if !ok {
				return nil, errors.Errorf("schedule %q: unknown weekday %q", id, name)
			}
			def.Week[wd] = toShiftWindows(shifts)
		}
		for _, h := range sc.Holidays {
			def.Holidays = append(def.Holidays, time.Time(h))
		}
		for dateStr, shifts := range sc.Overrides {
			d, err := time.ParseInLocation(cdLayout, dateStr, loc)
			if err != nil {
				return nil, errors.Wrapf(err, "schedule %q: invalid override date %q", id, dateStr)
			}
			def.Overrides[d] = toShiftWindows(shifts)
		}
		defs[id] = def
	}

	src, err := calendar.NewStaticSource(loc, defs)
	if err != nil {
		return nil, errors.Wrap(err, "invalid schedule definition")
	}
	return src, nil
}

func toShiftWindows(shifts []ShiftConfig) []calendar.ShiftWindow {
	ret := make([]calendar.ShiftWindow, len(shifts))
	for i, s := range shifts {
		ret[i] = calendar.ShiftWindow{
			Start: toTimeOfDay(time.Time(s.Start)),
			End:   toTimeOfDay(time.Time(s.End)),
		}
	}
	return ret
}

func toTimeOfDay(t time.Time) calendar.TimeOfDay {
	return calendar.TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Custom Time. hh:mm:ss only
const ctLayout = "15:04:05"

type CustomTime time.Time

func (ct *CustomTime) UnmarshalJSON(input []byte) error {
	s := strings.Trim(string(input), "\"")
	if s == "null" {
		*ct = CustomTime(time.Time{})
		return nil
	}
	t, err := time.Parse(ctLayout, s)
	if err != nil {
		return err
	}
	*ct = CustomTime(t)
	return nil
}

// Custom Date. yyyy/mm/dd only
const cdLayout = "2006/01/02"

type CustomDay time.Time

func (cd *CustomDay) UnmarshalJSON(input []byte) error {
	s := strings.Trim(string(input), "\"")
	if s == "null" {
		*cd = CustomDay(time.Time{})
		return nil
	}
	t, err := time.Parse(cdLayout, s)
	if err != nil {
		return err
	}
	*cd = CustomDay(t)
	return nil
}
