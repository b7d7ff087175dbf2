package configs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizclock/bizclock/configs"
)

// rawConfig mimics the schedules section handed over from the YAML
// config file, keyed by schedule id.
func rawConfig() map[string]interface{} {
	return map[string]interface{}{
		"default": map[string]interface{}{
			"week": map[string]interface{}{
				"monday": []interface{}{
					map[string]interface{}{"start": "09:00:00", "end": "18:00:00"},
				},
				"friday": []interface{}{
					map[string]interface{}{"start": "09:00:00", "end": "12:00:00"},
					map[string]interface{}{"start": "13:00:00", "end": "18:00:00"},
				},
			},
			"holidays": []interface{}{"2024/12/25"},
			"overrides": map[string]interface{}{
				"2024/12/24": []interface{}{
					map[string]interface{}{"start": "09:00:00", "end": "12:00:00"},
				},
			},
		},
	}
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	config, err := configs.NewConfig(rawConfig())
	require.NoError(t, err)

	require.Contains(t, config.Schedules, "default")
	sched := config.Schedules["default"]
	assert.Len(t, sched.Week["monday"], 1)
	assert.Len(t, sched.Week["friday"], 2)
	assert.Len(t, sched.Holidays, 1)
	assert.Len(t, sched.Overrides, 1)
}

func TestNewConfigRequiresSchedules(t *testing.T) {
	t.Parallel()

	_, err := configs.NewConfig(map[string]interface{}{})
	assert.Error(t, err)
}

func TestConfigSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	config, err := configs.NewConfig(rawConfig())
	require.NoError(t, err)
	src, err := config.Source(time.UTC)
	require.NoError(t, err)

	// Monday follows the weekly pattern.
	day, err := src.Day(ctx, "default", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, day.WorkDay)
	require.Len(t, day.Shifts, 1)
	assert.Equal(t, 9, day.Shifts[0].Start.Hour)

	// Christmas is a holiday.
	day, err = src.Day(ctx, "default", time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, day.WorkDay)

	// Christmas Eve is a half day through the override.
	day, err = src.Day(ctx, "default", time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, day.WorkDay)
	require.Len(t, day.Shifts, 1)
	assert.Equal(t, 12, day.Shifts[0].End.Hour)
}

// The source must evaluate day boundaries in the location it is given.
// East of UTC a local Monday midnight is still Sunday in UTC, so a
// source pinned to UTC would answer for the wrong weekday.
func TestConfigSourceHonorsLocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	config, err := configs.NewConfig(rawConfig())
	require.NoError(t, err)
	src, err := config.Source(shanghai)
	require.NoError(t, err)

	// 2024-03-04 is a Monday in Shanghai.
	day, err := src.Day(ctx, "default", time.Date(2024, 3, 4, 0, 0, 0, 0, shanghai))
	require.NoError(t, err)
	assert.True(t, day.WorkDay)

	day, err = src.Day(ctx, "default", time.Date(2024, 3, 3, 0, 0, 0, 0, shanghai))
	require.NoError(t, err)
	assert.False(t, day.WorkDay)
}

func TestConfigSourceValidation(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		mutate func(raw map[string]interface{})
	}{
		"NG: unknown weekday name": {
			mutate: func(raw map[string]interface{}) {
				sched := raw["default"].(map[string]interface{})
				sched["week"] = map[string]interface{}{
					"mondays": []interface{}{
						map[string]interface{}{"start": "09:00:00", "end": "18:00:00"},
					},
				}
			},
		},
		"NG: shift end before start": {
			mutate: func(raw map[string]interface{}) {
				sched := raw["default"].(map[string]interface{})
				sched["week"] = map[string]interface{}{
					"monday": []interface{}{
						map[string]interface{}{"start": "18:00:00", "end": "09:00:00"},
					},
				}
			},
		},
		"NG: bad override date": {
			mutate: func(raw map[string]interface{}) {
				sched := raw["default"].(map[string]interface{})
				sched["overrides"] = map[string]interface{}{
					"december 24th": []interface{}{
						map[string]interface{}{"start": "09:00:00", "end": "12:00:00"},
					},
				}
			},
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			raw := rawConfig()
			tt.mutate(raw)
			config, err := configs.NewConfig(raw)
			require.NoError(t, err)
			_, err = config.Source(time.UTC)
			assert.Error(t, err)
		})
	}
}
