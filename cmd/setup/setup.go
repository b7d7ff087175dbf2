// Package setup builds the calculator and its calendar source chain
// from a configuration file. It is shared by the CLI subcommands.
package setup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bizclock/bizclock/calendar"
	"github.com/bizclock/bizclock/configs"
	"github.com/bizclock/bizclock/contrib/chsource"
	"github.com/bizclock/bizclock/metrics"
	"github.com/bizclock/bizclock/overtime"
	"github.com/bizclock/bizclock/utils"
	"github.com/bizclock/bizclock/utils/log"
)

// meteredSource counts the day lookups that reach the backing source,
// so cache hits are not counted.
type meteredSource struct {
	source calendar.DaySource
}

func (m meteredSource) Day(ctx context.Context, scheduleID string, date time.Time) (calendar.CalendarDay, error) {
	metrics.CalendarLookupsTotal.WithLabelValues(scheduleID).Inc()
	return m.source.Day(ctx, scheduleID, date)
}

// Load reads the YAML config at path, builds the configured calendar
// source (static schedule definitions or the ClickHouse shift store,
// optionally wrapped in a TTL cache) and returns a ready Calculator.
// The returned closer releases any backing connection.
func Load(ctx context.Context, path string) (*overtime.Calculator, *utils.BizConfig, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read configuration file error: %w", err)
	}
	config, err := utils.ParseConfig(data)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse configuration file error: %w", err)
	}

	var (
		source calendar.DaySource
		closer = func() {}
	)
	if config.ClickHouse.Addr != "" {
		store, err := chsource.NewShiftStore(ctx, chsource.Config{
			Addr:     config.ClickHouse.Addr,
			Database: config.ClickHouse.Database,
			Table:    config.ClickHouse.Table,
			Username: config.ClickHouse.Username,
			Password: config.ClickHouse.Password,
		}, config.Timezone)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("reading calendars from clickhouse at %v", config.ClickHouse.Addr)
		source = store
		closer = func() {
			if err := store.Close(); err != nil {
				log.Error("failed to close clickhouse connection - Error: %v", err)
			}
		}
	} else {
		schedCfg, err := configs.NewConfig(config.Schedules)
		if err != nil {
			return nil, nil, nil, err
		}
		source, err = schedCfg.Source(config.Timezone)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("loaded %d static schedule(s)", len(schedCfg.Schedules))
	}

	source = meteredSource{source: source}
	if config.CacheTTL > 0 {
		source = calendar.NewCachedSource(source, config.CacheTTL)
	}

	calc := overtime.NewCalculator(source, config.Timezone)
	if config.LookaheadDays > 0 {
		if err := calc.SetMaxLookahead(config.LookaheadDays); err != nil {
			closer()
			return nil, nil, nil, err
		}
	}
	return calc, config, closer, nil
}
