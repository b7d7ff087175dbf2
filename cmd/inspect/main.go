package inspect

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bizclock/bizclock/cmd/setup"
)

const (
	usage   = "inspect"
	short   = "Show the working-hours calendar for a date"
	long    = "This command prints a date's work status, shifts, begin/end of work and the next work day"
	example = "bizclock inspect --config bizclock.yml --schedule default --date 2024-03-01"

	dateLayout = "2006-01-02"
)

var (
	// Cmd is the inspect command.
	Cmd = &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Example: example,
		RunE:    executeInspect,
	}

	configFilePath string
	scheduleID     string
	dateArg        string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	Cmd.Flags().StringVarP(&configFilePath, "config", "c", "./bizclock.yml", "path to the YAML configuration file")
	Cmd.Flags().StringVarP(&scheduleID, "schedule", "s", "default", "schedule id to evaluate against")
	Cmd.Flags().StringVarP(&dateArg, "date", "d", "", "date to inspect, YYYY-MM-DD (defaults to today)")
}

// executeInspect implements the inspect command.
func executeInspect(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	cmd.SilenceUsage = true

	calc, config, closer, err := setup.Load(ctx, configFilePath)
	if err != nil {
		return err
	}
	defer closer()

	date := time.Now().In(config.Timezone)
	if dateArg != "" {
		date, err = time.ParseInLocation(dateLayout, dateArg, config.Timezone)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", dateArg, err)
		}
	}

	work, err := calc.IsTodayWork(ctx, date, scheduleID)
	if err != nil {
		return err
	}
	fmt.Printf("%s schedule=%s work_day=%v\n", date.Format(dateLayout), scheduleID, work)

	if work {
		shifts, err := calc.GetWorkTimeList(ctx, date, scheduleID)
		if err != nil {
			return err
		}
		for _, s := range shifts {
			fmt.Printf("  shift %v - %v\n", s.Start, s.End)
		}
		if begin, ok, err := calc.GetBeginWorkTime(ctx, date, scheduleID); err != nil {
			return err
		} else if ok {
			fmt.Printf("  begin of work: %v\n", begin.Format(time.RFC3339))
		}
		if off, ok, err := calc.GetOffWorkTime(ctx, date, scheduleID); err != nil {
			return err
		} else if ok {
			fmt.Printf("  off work:      %v\n", off.Format(time.RFC3339))
		}
	}

	next, found, err := calc.GetNextWorkDay(ctx, date, scheduleID)
	if err != nil {
		return err
	}
	if found {
		fmt.Printf("  next work day: %v\n", next.Format(dateLayout))
	} else {
		fmt.Println("  next work day: none within lookahead bound")
	}
	return nil
}
