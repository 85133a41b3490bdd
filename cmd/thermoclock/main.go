// Command thermoclock runs the PCB0001 desk clock and thermometer: a
// four-digit seven-segment display, two buttons, a DS1302 real-time clock
// and a 1-Wire temperature sensor on a Raspberry Pi header.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sweeney/thermo-clock/internal/config"
	"github.com/sweeney/thermo-clock/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	v          *viper.Viper
	configPath string
	reset      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{v: viper.New()}

	root := &cobra.Command{
		Use:          "thermoclock",
		Short:        "Desk clock and thermometer controller",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "configuration file")
	root.PersistentFlags().String("log-level", logger.InfoLevel, "log level (debug, info, warn, error)")
	_ = opts.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the clock",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "print-state",
			Short: "Read the clock, sensor and unit preference once and print them as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.printState(cmd.Context(), cmd.OutOrStdout())
			},
		},
		newInitConfigCmd(opts),
	)
	return root
}

func newInitConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := config.WriteDefault(opts.configPath, opts.reset)
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.configPath)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s exists, use --reset to overwrite\n", opts.configPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "overwrite an existing file")
	return cmd
}

func (o *options) load() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(o.v, o.configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.Get(cfg.LogLevel), nil
}

func (o *options) run(ctx context.Context) error {
	cfg, log, err := o.load()
	if err != nil {
		return err
	}
	defer log.Sync()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hw := openHardware(cfg, log)
	defer func() {
		if err := hw.Close(); err != nil {
			log.Warnw("close peripherals", "error", err)
		}
	}()

	return runDaemon(ctx, cfg, hw, log)
}
