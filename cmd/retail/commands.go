package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnwards/retail/internal/config"
	"github.com/johnwards/retail/internal/logger"
	"github.com/johnwards/retail/internal/output"
	"github.com/johnwards/retail/internal/report"
)

type flags struct {
	format          string
	continueOnError bool
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "retail",
		Short: "Provision, seed and report on the retail schema",
		Long: `retail creates the customers/products/orders/order_items schema, resets it to a
fixed sample dataset and prints a fixed set of reports over it.

The store is configured through RETAIL_* environment variables (or a .env
file): RETAIL_DATABASE_DRIVER selects sqlite (default) or postgres.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommand(cmd, f)
		},
	}

	root.PersistentFlags().StringVar(&f.format, "format", string(output.FormatText), "Output format: text, table or json")
	root.PersistentFlags().BoolVar(&f.continueOnError, "continue-on-error", false, "Keep running reports after one fails")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Ensure schema, reset and seed, then print every report (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runCommand(cmd, f)
			},
		},
		&cobra.Command{
			Use:   "reports",
			Short: "List the report catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out := cmd.OutOrStdout()
				for _, r := range report.Catalog(report.DefaultParams()) {
					if _, err := fmt.Fprintf(out, "%-16s %s\n", r.Key, r.Name); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "verify",
			Short: "Ensure schema, reset and seed, then check row counts and referential integrity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				log := logger.New(cfg.Log, cmd.ErrOrStderr())
				return verify(cmd.Context(), cfg, log, cmd.OutOrStdout())
			},
		},
	)

	return root
}

func runCommand(cmd *cobra.Command, f flags) error {
	format, err := output.ParseFormat(f.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if f.continueOnError {
		cfg.Report.ContinueOnError = true
	}

	log := logger.New(cfg.Log, cmd.ErrOrStderr())
	return run(cmd.Context(), cfg, log, output.NewPrinter(cmd.OutOrStdout(), format))
}
