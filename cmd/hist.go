package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/wxstats-cli/internal/engine"
	"github.com/KaramelBytes/wxstats-cli/internal/histogram"
	"github.com/KaramelBytes/wxstats-cli/internal/utils"
)

var (
	hiColumns   []string
	hiOutput    string
	hiOutDir    string
	hiEngine    string
	hiBins      int
	hiBackend   string
	hiFormat    string
	hiWidth     float64
	hiHeight    float64
	hiDelimiter string
	hiSheetName string
)

var histCmd = &cobra.Command{
	Use:   "hist <file>",
	Short: "Render a histogram image per column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		columns := listOr(hiColumns, c.Columns)
		if hiOutput != "" && len(columns) != 1 {
			return fmt.Errorf("--output needs exactly one --column, got %d", len(columns))
		}
		opt, err := engineOptions(hiDelimiter, hiSheetName)
		if err != nil {
			return err
		}
		e, err := engine.New(primaryEngine(hiEngine), opt)
		if err != nil {
			return err
		}
		t, err := e.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}

		hopt := histogram.Options{
			Bins:    intOr(hiBins, c.Bins),
			Backend: firstNonEmpty(hiBackend, c.HistogramBackend),
			Width:   hiWidth,
			Height:  hiHeight,
		}
		dir := firstNonEmpty(hiOutDir, c.ImagesDir)
		if hiOutput == "" {
			if err := utils.EnsureDir(dir); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		for _, col := range columns {
			out := hiOutput
			if out == "" {
				out = filepath.Join(dir, histogram.FileName(col, firstNonEmpty(hiFormat, c.ImageFormat)))
			}
			if err := histogram.Render(t, col, out, hopt); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote %s\n", out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(histCmd)
	histCmd.Flags().StringSliceVarP(&hiColumns, "column", "c", nil, "column to plot (repeatable; default: the three weather columns)")
	histCmd.Flags().StringVarP(&hiOutput, "output", "o", "", "image path for a single column")
	histCmd.Flags().StringVar(&hiOutDir, "out-dir", "", "directory for generated images (default from config: images)")
	histCmd.Flags().StringVar(&hiEngine, "engine", "", "engine: gota|dataframe-go")
	histCmd.Flags().IntVar(&hiBins, "bins", 0, "number of bins (default 20)")
	histCmd.Flags().StringVar(&hiBackend, "backend", "", "renderer: plot|chart")
	histCmd.Flags().StringVar(&hiFormat, "format", "", "image format when --output is not set")
	histCmd.Flags().Float64Var(&hiWidth, "width", 10, "image width in inches")
	histCmd.Flags().Float64Var(&hiHeight, "height", 5, "image height in inches")
	histCmd.Flags().StringVar(&hiDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | 'pipe'")
	histCmd.Flags().StringVar(&hiSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
}
