package main

import (
	"context"
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	store      string
	maxSteps   int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "turing",
		Short: "Turing is a deterministic single-tape Turing machine interpreter",
		Long: `Turing runs transition tables over a fixed 256-cell tape until they halt or
try to move past an edge. Runs are stored as snapshots and can be served over
HTTP or the Model Context Protocol.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "turing.yaml", "Path to the YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.store, "store", "", "Snapshot store: memory, redis or sqlite")
	flags.IntVar(&opts.maxSteps, "max-steps", 0, "Step budget per run (0 keeps the configured value)")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newListCmd(opts),
		newValidateCmd(opts),
		newBitsCmd(opts),
		newShowCmd(opts),
		newRunsCmd(opts),
		newReplCmd(opts),
		newServeCmd(opts),
		newMCPCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig reads the configuration and applies the flags the user set.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("store") {
		cfg.Store.Driver = o.store
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = o.maxSteps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp builds the application for cmd. The caller must Close it.
func (o *rootOptions) newApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	app, err := cli.NewApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("error initializing turing: %w", err)
	}
	return app, nil
}

func closeApp(app *cli.App) {
	if err := app.Close(context.Background()); err != nil {
		app.Logger.Warn("shutdown incomplete", "error", err)
	}
}
