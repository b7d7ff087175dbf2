package start

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bizclock/bizclock/cmd/setup"
	"github.com/bizclock/bizclock/frontend"
	"github.com/bizclock/bizclock/metrics"
	"github.com/bizclock/bizclock/utils"
	"github.com/bizclock/bizclock/utils/log"
)

const (
	usage                 = "start"
	short                 = "Start a bizclock calendar server"
	long                  = "This command starts a bizclock working-hours calendar server"
	example               = "bizclock start --config <path>"
	defaultConfigFilePath = "./bizclock.yml"
	configDesc            = "set the path for the bizclock YAML configuration file"
)

var (
	// Cmd is the start command.
	Cmd = &cobra.Command{
		Use:        usage,
		Short:      short,
		Long:       long,
		Aliases:    []string{"s"},
		SuggestFor: []string{"boot", "up"},
		Example:    example,
		RunE:       executeStart,
	}
	// configFilePath set flag for a path to the config file.
	configFilePath string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	utils.InstanceConfig.StartTime = time.Now()
	Cmd.Flags().StringVarP(&configFilePath, "config", "c", defaultConfigFilePath, configDesc)
}

// executeStart implements the start command.
func executeStart(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Don't output command usage if args are correct
	cmd.SilenceUsage = true

	// Log config location.
	log.Info("using %v for configuration", configFilePath)

	start := time.Now()

	calc, config, closer, err := setup.Load(ctx, configFilePath)
	if err != nil {
		return err
	}
	defer closer()
	utils.InstanceConfig = *config
	utils.InstanceConfig.StartTime = start

	startupTime := time.Since(start)
	metrics.StartupTime.Set(startupTime.Seconds())
	log.Info("startup time: %s", startupTime)

	// Set rpc handler.
	log.Info("launching rpc calendar server...")
	service := frontend.NewCalendarService(calc, config.Timezone)
	mux := http.NewServeMux()
	mux.Handle("/rpc", frontend.NewServer(service))

	// Heartbeat, prometheus metrics and profiling endpoints.
	log.Info("launching utility service...")
	frontend.NewUtilityAPIHandlers(start).Register(mux)

	log.Info("enabling query access...")
	atomic.StoreUint32(&frontend.Queryable, 1)

	// Spawn a goroutine and listen for a signal.
	signalChan := make(chan os.Signal, 1)
	go func() {
		for s := range signalChan {
			switch s {
			case syscall.SIGINT, syscall.SIGTERM:
				log.Info("initiating graceful shutdown due to '%v' request", s)
				atomic.StoreUint32(&frontend.Queryable, 0)
				closer()
				log.Info("exiting...")
				os.Exit(0)
			}
		}
	}()
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	// Serve.
	log.Info("launching tcp listener for all services...")
	if err := http.ListenAndServe(config.ListenPort, mux); err != nil {
		return fmt.Errorf("failed to start server - error: %w", err)
	}
	return nil
}
