// Command pumpcarbon estimates pump energy use, hydraulic losses, CO2
// emissions and annual cost from operator-entered scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/pumpcarbon/internal/config"
	"github.com/rshade/pumpcarbon/internal/units"
)

// app holds state shared by all subcommands once the configuration is resolved.
type app struct {
	configPath string
	logLevel   string

	cfg       config.Config
	logger    zerolog.Logger
	converter *units.Converter
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "pumpcarbon",
		Short:        "Pump energy, loss and CO2 emissions calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"config file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"log level: trace, debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(a.calculateCmd())
	rootCmd.AddCommand(a.convertCmd())
	rootCmd.AddCommand(a.unitsCmd())
	rootCmd.AddCommand(a.referenceCmd())
	rootCmd.AddCommand(a.serveCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = config.NewLogger(cfg, cmd.ErrOrStderr())

	table, err := cfg.Table()
	if err != nil {
		return fmt.Errorf("loading conversion table: %w", err)
	}
	a.converter = units.NewConverter(table, a.logger)

	a.logger.Debug().
		Str("config", a.configPath).
		Int("conversions", table.Len()).
		Bool("strict_units", cfg.StrictUnits).
		Msg("configuration resolved")
	return nil
}
