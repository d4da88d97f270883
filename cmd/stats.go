package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/wxstats-cli/internal/analysis"
	"github.com/KaramelBytes/wxstats-cli/internal/engine"
	"github.com/KaramelBytes/wxstats-cli/internal/utils"
)

var (
	stEngine    string
	stAll       bool
	stColumns   []string
	stMarkdown  bool
	stDelimiter string
	stSheetName string
)

var statsCmd = &cobra.Command{
	Use:   "stats <files...>",
	Short: "Print mean, median and standard deviation of the weather columns",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		files, err := utils.ExpandInputs(args)
		if err != nil {
			return err
		}
		opt, err := engineOptions(stDelimiter, stSheetName)
		if err != nil {
			return err
		}
		names := []string{primaryEngine(stEngine)}
		if stAll {
			names = engine.Names()
		}
		engines, err := engine.NewAll(names, opt)
		if err != nil {
			return err
		}
		columns := listOr(stColumns, settings().Columns)

		w := cmd.OutOrStdout()
		for _, path := range files {
			var first *analysis.Stats
			for _, e := range engines {
				t, err := e.Load(ctx, path)
				if err != nil {
					return fmt.Errorf("load: %w", err)
				}
				st, err := analysis.Calculate(ctx, t, columns)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(w, "== %s (%s) ==\n", path, e.Name())
				if stMarkdown {
					fmt.Fprintln(w, st.Markdown())
				} else {
					st.Console(w)
				}
				if first == nil {
					first = st
					continue
				}
				d, err := analysis.MaxAbsDiff(first, st)
				if err != nil {
					return fmt.Errorf("compare %s with %s: %w", e.Name(), first.Engine, err)
				}
				fmt.Fprintf(w, "Max difference %s vs %s: %g\n", e.Name(), first.Engine, d)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&stEngine, "engine", "", "engine: gota|dataframe-go")
	statsCmd.Flags().BoolVar(&stAll, "all-engines", false, "summarize with every engine")
	statsCmd.Flags().StringSliceVar(&stColumns, "columns", nil, "columns to summarize")
	statsCmd.Flags().BoolVar(&stMarkdown, "markdown", false, "print a markdown table instead of ASCII")
	statsCmd.Flags().StringVar(&stDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | 'pipe'")
	statsCmd.Flags().StringVar(&stSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
}
