package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizclock/bizclock/calendar"
)

// nineToSix is a Monday-Friday 09:00-18:00 calendar under schedule id
// "X", plus an always-closed schedule "empty".
func nineToSix(t *testing.T) *calendar.StaticSource {
	t.Helper()
	shift := []calendar.ShiftWindow{{
		Start: calendar.TimeOfDay{Hour: 9},
		End:   calendar.TimeOfDay{Hour: 18},
	}}
	src, err := calendar.NewStaticSource(time.UTC, map[string]calendar.ScheduleDef{
		"X": {
			Week: map[time.Weekday][]calendar.ShiftWindow{
				time.Monday:    shift,
				time.Tuesday:   shift,
				time.Wednesday: shift,
				time.Thursday:  shift,
				time.Friday:    shift,
			},
		},
		"empty": {},
	})
	require.NoError(t, err)
	return src
}

var (
	friday   = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	monday   = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
)

func TestResolverDayQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := calendar.NewResolver(nineToSix(t), time.UTC)

	work, err := r.IsWorkDay(ctx, friday, "X")
	require.NoError(t, err)
	assert.True(t, work)

	work, err = r.IsWorkDay(ctx, saturday, "X")
	require.NoError(t, err)
	assert.False(t, work)

	shifts, err := r.ShiftsOn(ctx, friday, "X")
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, calendar.TimeOfDay{Hour: 9}, shifts[0].Start)

	shifts, err = r.ShiftsOn(ctx, saturday, "X")
	require.NoError(t, err)
	assert.Empty(t, shifts)

	begin, ok, err := r.BeginOfWork(ctx, friday, "X")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), begin)

	end, ok, err := r.EndOfWork(ctx, friday, "X")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC), end)

	_, ok, err = r.BeginOfWork(ctx, saturday, "X")
	require.NoError(t, err)
	assert.False(t, ok)

	// Any instant within the day is accepted, not only midnight.
	work, err = r.IsWorkDay(ctx, friday.Add(13*time.Hour), "X")
	require.NoError(t, err)
	assert.True(t, work)
}

func TestResolverIsWithinShift(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := calendar.NewResolver(nineToSix(t), time.UTC)

	tests := map[string]struct {
		at   time.Time
		want bool
	}{
		"ok: middle of the shift":       {at: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), want: true},
		"ok: exactly at begin of work":  {at: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), want: true},
		"NG: exactly at end of work":    {at: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC), want: false},
		"NG: before work begins":        {at: time.Date(2024, 3, 1, 8, 59, 59, 0, time.UTC), want: false},
		"NG: weekend":                   {at: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), want: false},
		"ok: last second of the shift":  {at: time.Date(2024, 3, 1, 17, 59, 59, 0, time.UTC), want: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := r.IsWithinShift(ctx, tt.at, "X")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolverNextWorkDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := calendar.NewResolver(nineToSix(t), time.UTC)

	// Friday -> Monday, skipping the weekend.
	next, found, err := r.NextWorkDay(ctx, friday, "X", calendar.DefaultMaxLookaheadDays)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, monday, next)

	// Thursday -> Friday.
	next, found, err = r.NextWorkDay(ctx, friday.AddDate(0, 0, -1), "X", calendar.DefaultMaxLookaheadDays)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, friday, next)

	// A schedule with no work days terminates with "not found".
	_, found, err = r.NextWorkDay(ctx, friday, "empty", calendar.DefaultMaxLookaheadDays)
	require.NoError(t, err)
	assert.False(t, found)

	// Same for an unknown schedule id.
	_, found, err = r.NextWorkDay(ctx, friday, "no-such-schedule", calendar.DefaultMaxLookaheadDays)
	require.NoError(t, err)
	assert.False(t, found)

	// The bound cuts the scan short even when a work day exists.
	_, found, err = r.NextWorkDay(ctx, friday, "X", 2)
	require.NoError(t, err)
	assert.False(t, found)

	// A negative bound is a validation error.
	_, _, err = r.NextWorkDay(ctx, friday, "X", -1)
	assert.Error(t, err)
}

func TestResolverPrevWorkDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := calendar.NewResolver(nineToSix(t), time.UTC)

	// Monday -> previous Friday.
	prev, found, err := r.PrevWorkDay(ctx, monday, "X", calendar.DefaultMaxLookaheadDays)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, friday, prev)

	// Sunday -> Friday as well.
	prev, found, err = r.PrevWorkDay(ctx, saturday.AddDate(0, 0, 1), "X", calendar.DefaultMaxLookaheadDays)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, friday, prev)

	_, found, err = r.PrevWorkDay(ctx, monday, "empty", calendar.DefaultMaxLookaheadDays)
	require.NoError(t, err)
	assert.False(t, found)
}
