package elapsed

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bizclock/bizclock/cmd/setup"
)

const (
	usage   = "elapsed"
	short   = "Compute the elapsed business seconds of an interval"
	long    = "This command computes how many seconds of an interval fall inside a schedule's working hours"
	example = `bizclock elapsed --config bizclock.yml --schedule default \
	--start 2024-03-01T07:00:00Z --end 2024-03-01T12:00:00Z`
)

var (
	// Cmd is the elapsed command.
	Cmd = &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Example: example,
		RunE:    executeElapsed,
	}

	configFilePath string
	scheduleID     string
	startArg       string
	endArg         string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	Cmd.Flags().StringVarP(&configFilePath, "config", "c", "./bizclock.yml", "path to the YAML configuration file")
	Cmd.Flags().StringVarP(&scheduleID, "schedule", "s", "default", "schedule id to evaluate against")
	Cmd.Flags().StringVar(&startArg, "start", "", "interval start, RFC3339 (required)")
	Cmd.Flags().StringVar(&endArg, "end", "", "interval end, RFC3339 (defaults to now)")
}

// executeElapsed implements the elapsed command.
func executeElapsed(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	cmd.SilenceUsage = true

	if startArg == "" {
		return fmt.Errorf("--start is required")
	}
	start, err := time.Parse(time.RFC3339, startArg)
	if err != nil {
		return fmt.Errorf("invalid --start %q: %w", startArg, err)
	}

	calc, _, closer, err := setup.Load(ctx, configFilePath)
	if err != nil {
		return err
	}
	defer closer()

	var seconds int64
	if endArg == "" {
		seconds, err = calc.ElapsedSinceStart(ctx, start, scheduleID)
	} else {
		var end time.Time
		end, err = time.Parse(time.RFC3339, endArg)
		if err != nil {
			return fmt.Errorf("invalid --end %q: %w", endArg, err)
		}
		seconds, err = calc.ElapsedBusinessSeconds(ctx, start, end, scheduleID)
	}
	if err != nil {
		return err
	}

	fmt.Println(seconds)
	return nil
}
