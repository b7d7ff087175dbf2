package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizclock/bizclock/calendar"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		s       string
		want    calendar.TimeOfDay
		wantErr bool
	}{
		{
			name: "ok: regular work start",
			s:    "09:00:00",
			want: calendar.TimeOfDay{Hour: 9},
		},
		{
			name: "ok: seconds are kept",
			s:    "17:45:30",
			want: calendar.TimeOfDay{Hour: 17, Minute: 45, Second: 30},
		},
		{
			name:    "NG: out-of-range hour",
			s:       "25:00:00",
			wantErr: true,
		},
		{
			name:    "NG: missing seconds",
			s:       "09:00",
			wantErr: true,
		},
		{
			name:    "NG: not a time at all",
			s:       "morning",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := calendar.ParseTimeOfDay(tt.s)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShiftWindowContains(t *testing.T) {
	t.Parallel()
	shift := calendar.ShiftWindow{
		Start: calendar.TimeOfDay{Hour: 9},
		End:   calendar.TimeOfDay{Hour: 18},
	}

	assert.True(t, shift.Contains(calendar.TimeOfDay{Hour: 9}))
	assert.True(t, shift.Contains(calendar.TimeOfDay{Hour: 17, Minute: 59, Second: 59}))
	// end-exclusive
	assert.False(t, shift.Contains(calendar.TimeOfDay{Hour: 18}))
	assert.False(t, shift.Contains(calendar.TimeOfDay{Hour: 8, Minute: 59, Second: 59}))
}

func TestShiftWindowDuration(t *testing.T) {
	t.Parallel()
	shift := calendar.ShiftWindow{
		Start: calendar.TimeOfDay{Hour: 9},
		End:   calendar.TimeOfDay{Hour: 18},
	}
	assert.Equal(t, 9*time.Hour, shift.Duration())
}

func TestCalendarDayValidate(t *testing.T) {
	t.Parallel()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	morning := calendar.ShiftWindow{Start: calendar.TimeOfDay{Hour: 9}, End: calendar.TimeOfDay{Hour: 12}}
	afternoon := calendar.ShiftWindow{Start: calendar.TimeOfDay{Hour: 13}, End: calendar.TimeOfDay{Hour: 18}}

	tests := map[string]struct {
		day     calendar.CalendarDay
		wantErr bool
	}{
		"ok: work day with ordered shifts": {
			day: calendar.CalendarDay{Date: date, WorkDay: true, Shifts: []calendar.ShiftWindow{morning, afternoon}},
		},
		"ok: non-work day without shifts": {
			day: calendar.NonWorkDay(date),
		},
		"NG: work day without shifts": {
			day:     calendar.CalendarDay{Date: date, WorkDay: true},
			wantErr: true,
		},
		"NG: non-work day with shifts": {
			day:     calendar.CalendarDay{Date: date, Shifts: []calendar.ShiftWindow{morning}},
			wantErr: true,
		},
		"NG: shifts out of order": {
			day:     calendar.CalendarDay{Date: date, WorkDay: true, Shifts: []calendar.ShiftWindow{afternoon, morning}},
			wantErr: true,
		},
		"NG: empty shift window": {
			day: calendar.CalendarDay{Date: date, WorkDay: true, Shifts: []calendar.ShiftWindow{
				{Start: calendar.TimeOfDay{Hour: 9}, End: calendar.TimeOfDay{Hour: 9}},
			}},
			wantErr: true,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := tt.day.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
