package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizclock/bizclock/calendar"
)

func TestStaticSourceHolidaysAndOverrides(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fullDay := []calendar.ShiftWindow{{
		Start: calendar.TimeOfDay{Hour: 9},
		End:   calendar.TimeOfDay{Hour: 18},
	}}
	halfDay := []calendar.ShiftWindow{{
		Start: calendar.TimeOfDay{Hour: 9},
		End:   calendar.TimeOfDay{Hour: 12},
	}}

	goodFriday := time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC)
	christmasEve := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC) // a Tuesday

	src, err := calendar.NewStaticSource(time.UTC, map[string]calendar.ScheduleDef{
		"office": {
			Week: map[time.Weekday][]calendar.ShiftWindow{
				time.Monday:    fullDay,
				time.Tuesday:   fullDay,
				time.Wednesday: fullDay,
				time.Thursday:  fullDay,
				time.Friday:    fullDay,
			},
			Holidays:  []time.Time{goodFriday},
			Overrides: map[time.Time][]calendar.ShiftWindow{christmasEve: halfDay},
		},
	})
	require.NoError(t, err)

	// Regular work day follows the weekly pattern.
	day, err := src.Day(ctx, "office", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, day.WorkDay)
	assert.Equal(t, fullDay, day.Shifts)

	// Weekend has no shifts.
	day, err = src.Day(ctx, "office", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, day.WorkDay)
	assert.Empty(t, day.Shifts)

	// A holiday beats the weekly pattern.
	day, err = src.Day(ctx, "office", goodFriday)
	require.NoError(t, err)
	assert.False(t, day.WorkDay)

	// An override replaces the weekly pattern for that date only.
	day, err = src.Day(ctx, "office", christmasEve)
	require.NoError(t, err)
	assert.True(t, day.WorkDay)
	assert.Equal(t, halfDay, day.Shifts)

	// Unknown schedule ids are a normal non-work answer.
	day, err = src.Day(ctx, "no-such-schedule", goodFriday)
	require.NoError(t, err)
	assert.False(t, day.WorkDay)
}

func TestNewStaticSourceRejectsBadShifts(t *testing.T) {
	t.Parallel()

	_, err := calendar.NewStaticSource(time.UTC, map[string]calendar.ScheduleDef{
		"bad": {
			Week: map[time.Weekday][]calendar.ShiftWindow{
				time.Monday: {{
					Start: calendar.TimeOfDay{Hour: 18},
					End:   calendar.TimeOfDay{Hour: 9},
				}},
			},
		},
	})
	assert.Error(t, err)

	_, err = calendar.NewStaticSource(time.UTC, map[string]calendar.ScheduleDef{
		"overlap": {
			Week: map[time.Weekday][]calendar.ShiftWindow{
				time.Monday: {
					{Start: calendar.TimeOfDay{Hour: 9}, End: calendar.TimeOfDay{Hour: 13}},
					{Start: calendar.TimeOfDay{Hour: 12}, End: calendar.TimeOfDay{Hour: 18}},
				},
			},
		},
	})
	assert.Error(t, err)
}
