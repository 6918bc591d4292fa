// Package main provides the CLI entry point for seatplan.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/seatplan-go/internal/config"
	"github.com/ukaji3/seatplan-go/internal/logging"
	"go.uber.org/zap"
)

// app carries state shared by all commands once the root pre-run has
// loaded configuration.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	logLevel  string
	logFormat string
}

func main() {
	a := &app{}
	if err := a.rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "seatplan",
		Short: "Manage event seating plans stored in Excel workbooks",
		Long: `seatplan edits seating plans of guests and tables. Plans are stored
as .xlsx workbooks (Tables, Guests and Metadata sheets) or .json documents.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from SEATPLAN_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text, json (default from SEATPLAN_LOG_FORMAT)")

	root.AddCommand(
		a.infoCommand(),
		a.headersCommand(),
		a.mergeCommand(),
		a.importGroupsCommand(),
		a.convertCommand(),
		a.summaryCommand(),
		a.serveCommand(),
	)
	return root
}

// setup loads .env and environment configuration, applies flag overrides
// and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	a.cfg, a.log = cfg, log
	return nil
}
