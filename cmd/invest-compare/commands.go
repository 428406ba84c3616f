package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/juliocesarjcrs/investment-compare/internal/health"
	"github.com/juliocesarjcrs/investment-compare/internal/metrics"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
	"github.com/juliocesarjcrs/investment-compare/internal/report"
)

var (
	comparisonFile string
	saveResult     bool
	csvOutput      string
	jsonOutput     string
	confirmClear   bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&comparisonFile, "file", "f", "", "Comparison file (.yaml, .yml or .json)")
	evaluateCmd.Flags().BoolVar(&saveResult, "save", false, "Save the comparison after evaluating it")
	evaluateCmd.Flags().StringVar(&csvOutput, "csv", "", "Write the scores to a CSV file")
	evaluateCmd.Flags().StringVar(&jsonOutput, "json", "", "Write the full evaluation to a JSON file")
	_ = evaluateCmd.MarkFlagRequired("file")

	showCmd.Flags().StringVar(&csvOutput, "csv", "", "Write the scores to a CSV file")
	showCmd.Flags().StringVar(&jsonOutput, "json", "", "Write the full evaluation to a JSON file")

	clearCmd.Flags().BoolVar(&confirmClear, "yes", false, "Confirm removal of every saved comparison")
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a comparison file and print the recommendation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readComparisonFile(comparisonFile)
		if err != nil {
			return err
		}

		if saveResult {
			id, err := svc.SaveComparison(cmd.Context(), data)
			if err != nil {
				return fmt.Errorf("failed to save comparison: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved comparison %s\n", id)
		}

		return evaluateAndReport(cmd, *data)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-evaluate a saved comparison",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := svc.GetComparison(cmd.Context(), args[0])
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("comparison %s not found", args[0])
		}
		if err != nil {
			return err
		}
		return evaluateAndReport(cmd, *data)
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recently saved comparisons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		comparisons, err := svc.GetRecentComparisons(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(comparisons) == 0 {
			fmt.Fprintln(out, "No saved comparisons")
			return nil
		}
		for _, c := range comparisons {
			fmt.Fprintf(out, "%-36s  %-20s  %s  %d escenario(s)\n",
				c.ID,
				c.CreatedAt.Format("2006-01-02 15:04"),
				c.Name,
				len(c.Scenarios.Configured()),
			)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved comparison",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.DeleteComparison(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted comparison %s\n", args[0])
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved comparison",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmClear {
			return fmt.Errorf("refusing to clear saved comparisons without --yes")
		}
		removed, err := svc.ClearAllComparisons(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d comparison(s)\n", removed)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve health checks and metrics until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serverCfg := health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Addr:        cfg.MetricsAddress(),
			Logger:      appLogger,
			Checks:      checks,
		}
		if cfg.Metrics.Enabled {
			serverCfg.MetricsHandler = metrics.Handler()
			serverCfg.MetricsPath = cfg.Metrics.Path
		}

		server := health.NewServer(serverCfg)
		server.SetReady(true)
		return server.Run(ctx)
	},
}

func evaluateAndReport(cmd *cobra.Command, data models.ComparisonData) error {
	evaluation, err := svc.Evaluate(cmd.Context(), data)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.GenerateConsoleReport(evaluation))

	if csvOutput != "" {
		if err := report.GenerateCSVExport(evaluation, csvOutput); err != nil {
			return err
		}
	}
	if jsonOutput != "" {
		if err := report.ExportToJSON(evaluation, jsonOutput); err != nil {
			return err
		}
	}
	return nil
}
