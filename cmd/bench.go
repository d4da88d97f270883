package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/wxstats-cli/internal/bench"
	"github.com/KaramelBytes/wxstats-cli/internal/engine"
	"github.com/KaramelBytes/wxstats-cli/internal/report"
)

var (
	bnEngines    []string
	bnColumns    []string
	bnIterations int
	bnTop        int
	bnClean      string
	bnKeywords   []string
	bnProfileDir string
	bnDelimiter  string
	bnSheetName  string
)

var benchCmd = &cobra.Command{
	Use:   "bench <file>",
	Short: "Profile the load and statistics pipeline under each engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		opt, err := engineOptions(bnDelimiter, bnSheetName)
		if err != nil {
			return err
		}
		mode, err := report.ParseCleanMode(firstNonEmpty(bnClean, c.CleanMode))
		if err != nil {
			return err
		}
		engines, err := engine.NewAll(listOr(bnEngines, c.Engines), opt)
		if err != nil {
			return err
		}
		profiles, runErr := bench.Run(cmd.Context(), args[0], engines, bench.Options{
			Columns:      listOr(bnColumns, c.Columns),
			Iterations:   intOr(bnIterations, c.BenchIterations),
			TopFunctions: intOr(bnTop, c.TopFunctions),
			ProfileDir:   firstNonEmpty(bnProfileDir, c.ProfileDir),
		})
		keywords := listOr(bnKeywords, c.CleanKeywords)
		w := cmd.OutOrStdout()
		for _, p := range profiles {
			fmt.Fprintf(w, "=== %s ===\n%s\n", p.Engine, report.Clean(p.Text(), mode, keywords))
		}
		if runErr != nil {
			return fmt.Errorf("benchmark: %w", runErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringSliceVar(&bnEngines, "engines", nil, "engines to benchmark (default: all)")
	benchCmd.Flags().StringSliceVar(&bnColumns, "columns", nil, "columns summarized by the measured pipeline")
	benchCmd.Flags().IntVar(&bnIterations, "iterations", 0, "pipeline iterations per engine")
	benchCmd.Flags().IntVar(&bnTop, "top", 0, "number of hottest functions to list")
	benchCmd.Flags().StringVar(&bnClean, "clean", "", "profile text cleaning: ansi|keywords|none")
	benchCmd.Flags().StringSliceVar(&bnKeywords, "keywords", nil, "line markers kept by --clean keywords")
	benchCmd.Flags().StringVar(&bnProfileDir, "profile-dir", "", "directory to keep raw <engine>.pprof files")
	benchCmd.Flags().StringVar(&bnDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | 'pipe'")
	benchCmd.Flags().StringVar(&bnSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
}
