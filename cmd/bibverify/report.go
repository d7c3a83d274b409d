// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibverify/internal/report"
	"github.com/pdiddy/bibverify/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-render the summary from a stored verification run",
	Long: `Report loads a verification run from the SQLite results database and
prints the human-readable summary without re-querying CrossRef or PubMed.
By default the most recent run is used.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("db", "verification.db", "results database written by verify")
	reportCmd.Flags().Int64("run", 0, "run ID to render (default: latest)")
	reportCmd.Flags().String("csv", "", "also rewrite the detailed CSV to this path")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	runID, _ := cmd.Flags().GetInt64("run")
	csvPath, _ := cmd.Flags().GetString("csv")

	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("results database %s not found: run verify first", dbPath)
	}

	store, err := report.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if runID == 0 {
		runID, err = store.LatestRun(ctx)
		if err != nil {
			return err
		}
	}

	results, err := store.Results(ctx, runID)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("run %d has no results", runID)
	}

	cfg := types.DefaultMatchConfig()
	sum := report.BuildSummary(results, cfg)
	if err := report.WriteLog(os.Stdout, results, sum, cfg, time.Now()); err != nil {
		return err
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", csvPath, err)
		}
		defer f.Close()
		if err := report.WriteCSV(f, results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Detailed report saved to: %s\n", csvPath)
	}
	return nil
}
