package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/rental-proforma/internal/calculation"
	"github.com/rpgo/rental-proforma/internal/config"
	"github.com/rpgo/rental-proforma/internal/logging"
	"github.com/spf13/cobra"
)

// errInvalidInput marks a run whose input failed validation. The error
// body has already been printed, so main only sets the exit code.
var errInvalidInput = errors.New("invalid input")

// app holds the state shared by every subcommand.
type app struct {
	verbose    bool
	configPath string
	logBackend string

	settings config.Settings
	logger   calculation.Logger
	sync     func() error
}

func newRootCmd() *cobra.Command {
	a := &app{logger: calculation.NopLogger{}, sync: func() error { return nil }}
	root := &cobra.Command{
		Use:   "proforma",
		Short: "Rental property pro forma calculator",
		Long: `proforma computes a first-year pro forma for a rental property:
revenue, operating expenses, net operating income, debt service and the
cap rate, cash-on-cash and debt service coverage metrics.

Inputs are JSON or YAML documents with property, expenses and financing
sections. Run "proforma example" for a template.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging and calculation breakdown")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "settings YAML file")
	root.PersistentFlags().StringVar(&a.logBackend, "log-backend", "", "log backend: logrus or zap")

	root.AddCommand(
		newCalculateCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
		newExampleCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	if a.logBackend != "" {
		settings.Log.Backend = a.logBackend
	}
	if a.verbose {
		settings.Log.Level = "debug"
		settings.Engine.Debug = true
	}
	logger, sync, err := logging.New(settings.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.settings, a.logger, a.sync = settings, logger, sync
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalidInput) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
