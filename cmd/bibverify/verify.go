// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibverify/internal/lookup"
	"github.com/pdiddy/bibverify/internal/report"
	"github.com/pdiddy/bibverify/internal/source"
	"github.com/pdiddy/bibverify/internal/verify"
	"github.com/pdiddy/bibverify/pkg/types"
)

const heavyRule = "======================================================================"

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run the full verification pipeline on a bibliography",
	Long: `Verify reads the bibliography, filters out headers and page footers,
extracts each citation's metadata, looks it up in CrossRef (with a PubMed
fallback for journal articles), and scores the match. All report files are
written to the output directory.

CrossRef's polite pool requires a contact email; set it with --email or a
.secrets/contact-email file.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("input", "", "bibliography file (.txt or .pdf)")
	verifyCmd.Flags().String("output-dir", ".", "directory for report files")
	verifyCmd.Flags().String("email", "", "contact email for polite API access")
	verifyCmd.Flags().String("ncbi-api-key", "", "NCBI API key for higher PubMed rate limits")
	verifyCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 20s)")
	verifyCmd.Flags().Bool("debug", false, "print per-citation extraction details")
	verifyCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	emailFlag, _ := cmd.Flags().GetString("email")
	keyFlag, _ := cmd.Flags().GetString("ncbi-api-key")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	debug, _ := cmd.Flags().GetBool("debug")

	email := secretDefault("contact-email", emailFlag)
	if email == "" {
		return fmt.Errorf("contact email required: use --email or a .secrets/contact-email file")
	}

	lookupCfg := types.DefaultLookupConfig(email, fmt.Sprintf("bibverify/0.1 (mailto:%s)", email))
	lookupCfg.NCBIAPIKey = secretDefault("ncbi-api-key", keyFlag)
	if timeout != 0 {
		lookupCfg.Timeout = timeout
	}

	cfg := types.VerifyConfig{
		Input:  input,
		Lookup: lookupCfg,
		Match:  types.DefaultMatchConfig(),
		Output: types.DefaultOutputConfig(outputDir),
		Debug:  debug,
	}

	printBanner(cfg)

	paragraphs, err := source.FromPath(input).Paragraphs()
	if err != nil {
		return err
	}

	startedAt := time.Now()
	pipe := &verify.Pipeline{
		Lookup: lookup.NewClient(cfg.Lookup),
		Config: cfg,
		Out:    os.Stdout,
	}
	out := pipe.Run(cmd.Context(), paragraphs)

	if err := writeReports(cmd.Context(), cfg, out, startedAt); err != nil {
		return err
	}

	printSummary(out.Results, cfg.Match)
	printNextSteps(cfg.Output, len(out.Failures) > 0)
	return nil
}

func printBanner(cfg types.VerifyConfig) {
	fmt.Printf("\n%s\nBIBLIOGRAPHY VERIFICATION TOOL\n%s\n\n", heavyRule, heavyRule)
	fmt.Println("Configuration:")
	fmt.Printf("  • Year difference allowed: ±%d years\n", cfg.Match.AllowYearDifference)
	fmt.Printf("  • Ancient text cutoff: <%d\n", cfg.Match.AncientCutoff)
	fmt.Printf("  • Book title threshold: %v\n", cfg.Match.BookTitleSimilarityHigh)
	fmt.Printf("  • Article title threshold: %v\n", cfg.Match.TitleSimilarityHigh)
	fmt.Printf("  • Request timeout: %s with exponential backoff\n", cfg.Lookup.Timeout)
	fmt.Println("  • Reference filtering: Enabled (headers removed)")
	fmt.Println()
}

func writeReports(ctx context.Context, cfg types.VerifyConfig, out verify.Output, startedAt time.Time) error {
	paths := cfg.Output
	if dir := filepath.Dir(paths.ReportCSV); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	sum := report.BuildSummary(out.Results, cfg.Match)

	if err := writeFile(paths.ReportCSV, func(f *os.File) error {
		return report.WriteCSV(f, out.Results)
	}); err != nil {
		return err
	}
	fmt.Printf("\n✓ Detailed report saved to: %s\n", paths.ReportCSV)

	if err := writeFile(paths.RReportCSV, func(f *os.File) error {
		return report.WriteRCSV(f, out.Results, cfg.Match)
	}); err != nil {
		return err
	}
	fmt.Printf("✓ R-compatible file saved to: %s\n", paths.RReportCSV)

	if err := writeFile(paths.LogFile, func(f *os.File) error {
		return report.WriteLog(f, out.Results, sum, cfg.Match, time.Now())
	}); err != nil {
		return err
	}
	fmt.Printf("✓ Summary log saved to: %s\n", paths.LogFile)

	if len(out.Failures) > 0 {
		if err := writeFile(paths.FailuresFile, func(f *os.File) error {
			return report.WriteFailures(f, out.Failures)
		}); err != nil {
			return err
		}
		fmt.Printf("✓ Extraction failures logged to: %s\n", paths.FailuresFile)
	}

	if paths.WorkbookFile != "" {
		if err := report.WriteWorkbook(paths.WorkbookFile, out.Results, sum, cfg.Match); err != nil {
			return err
		}
		fmt.Printf("✓ Workbook saved to: %s\n", paths.WorkbookFile)
	}

	if paths.YAMLFile != "" {
		if err := writeFile(paths.YAMLFile, func(f *os.File) error {
			return report.WriteYAML(f, out.Results)
		}); err != nil {
			return err
		}
		fmt.Printf("✓ YAML export saved to: %s\n", paths.YAMLFile)
	}

	if paths.ResultsDB != "" {
		store, err := report.NewStore(paths.ResultsDB)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.SaveRun(ctx, cfg.Input, startedAt, out.Results); err != nil {
			return err
		}
		fmt.Printf("✓ Results database updated: %s\n", paths.ResultsDB)
	}

	return nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(results []types.VerificationResult, cfg types.MatchConfig) {
	sum := report.BuildSummary(results, cfg)

	fmt.Printf("\n%s\nSUMMARY (Key Metrics Only)\n%s\n", heavyRule, heavyRule)
	fmt.Printf("Total references checked: %d\n", sum.Total)
	fmt.Printf("✓ Verified: %d (%.1f%%)\n", sum.Verified, sum.Percent(sum.Verified))
	fmt.Printf("⚠  Needs review: %d (%.1f%%)\n", sum.NeedsReview, sum.Percent(sum.NeedsReview))
	fmt.Printf("⌛ Ancient texts (skipped): %d (%.1f%%)\n", sum.Ancient, sum.Percent(sum.Ancient))
	fmt.Printf("Found in CrossRef: %d (%.1f%%)\n", sum.CrossRefFound, sum.Percent(sum.CrossRefFound))
	for _, t := range sum.Types() {
		fmt.Printf("  %s: %d (%.1f%%)\n", t, sum.TypeCounts[t], sum.Percent(sum.TypeCounts[t]))
	}
	fmt.Println(heavyRule)
}

func printNextSteps(paths types.OutputConfig, hadFailures bool) {
	fmt.Printf("\n%s\n✓ VERIFICATION COMPLETE!\n%s\n", heavyRule, heavyRule)
	fmt.Println("\nGenerated files:")
	files := []struct{ path, note string }{
		{paths.ReportCSV, "Detailed results with all extracted and verified metadata"},
		{paths.LogFile, "Human-readable summary and items needing review"},
		{paths.RReportCSV, "R-compatible format with boolean flags and priority ratings"},
	}
	if hadFailures {
		files = append(files, struct{ path, note string }{paths.FailuresFile, "References with extraction issues for debugging"})
	}
	for i, f := range files {
		fmt.Printf("  %d. %s\n", i+1, f.path)
		fmt.Printf("     → %s\n", f.note)
	}

	fmt.Println("\nNext steps for peer review:")
	fmt.Printf("  • Review items marked 'NEEDS_REVIEW' in %s\n", paths.LogFile)
	fmt.Println("  • Classics/translations show original publication year")
	fmt.Println("  • Books use more lenient matching thresholds (expected)")
	fmt.Printf("  • Import %s into RStudio for filtering:\n", paths.RReportCSV)
	fmt.Println("    library(tidyverse)")
	fmt.Printf("    refs <- read_csv('%s')\n", filepath.ToSlash(paths.RReportCSV))
	fmt.Println("    refs %>% filter(Needs_Manual_Check) %>% view()")
	fmt.Println(heavyRule)
}
