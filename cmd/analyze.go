package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/wxstats-cli/internal/analysis"
	"github.com/KaramelBytes/wxstats-cli/internal/bench"
	"github.com/KaramelBytes/wxstats-cli/internal/engine"
	"github.com/KaramelBytes/wxstats-cli/internal/histogram"
	"github.com/KaramelBytes/wxstats-cli/internal/report"
	"github.com/KaramelBytes/wxstats-cli/internal/utils"
)

var (
	anaOutputPath string
	anaImagesDir  string
	anaEngine     string
	anaEngines    []string
	anaColumns    []string
	anaNoBench    bool
	anaClean      string
	anaKeywords   []string
	anaTitle      string
	anaBins       int
	anaBackend    string
	anaFormat     string
	anaIterations int
	anaProfileDir string
	anaDelimiter  string
	anaSheetName  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the full pipeline and write the markdown summary report",
	Long: `Compute descriptive statistics, render one histogram per column, benchmark the
pipeline under every configured engine and write the combined markdown report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := settings()
		path := args[0]

		opt, err := engineOptions(anaDelimiter, anaSheetName)
		if err != nil {
			return err
		}
		mode, err := report.ParseCleanMode(firstNonEmpty(anaClean, c.CleanMode))
		if err != nil {
			return err
		}
		columns := listOr(anaColumns, c.Columns)

		e, err := engine.New(primaryEngine(anaEngine), opt)
		if err != nil {
			return err
		}
		log.Noticef("loading %s with %s", path, e.Name())
		t, err := e.Load(ctx, path)
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}
		st, err := analysis.Calculate(ctx, t, columns)
		if err != nil {
			return fmt.Errorf("statistics: %w", err)
		}

		out := firstNonEmpty(anaOutputPath, c.ReportPath)
		imagesDir := firstNonEmpty(anaImagesDir, c.ImagesDir)
		if !filepath.IsAbs(imagesDir) {
			imagesDir = filepath.Join(filepath.Dir(out), imagesDir)
		}
		if err := utils.EnsureDir(imagesDir); err != nil {
			return fmt.Errorf("create images dir: %w", err)
		}
		hopt := histogram.Options{
			Bins:    intOr(anaBins, c.Bins),
			Backend: firstNonEmpty(anaBackend, c.HistogramBackend),
		}
		format := firstNonEmpty(anaFormat, c.ImageFormat)
		var images []string
		for _, col := range columns {
			img := filepath.Join(imagesDir, histogram.FileName(col, format))
			if err := histogram.Render(t, col, img, hopt); err != nil {
				return fmt.Errorf("histogram: %w", err)
			}
			log.Infof("wrote %s", img)
			images = append(images, utils.RelTo(out, img))
		}

		var sections []report.Section
		if !anaNoBench {
			engines, err := engine.NewAll(listOr(anaEngines, c.Engines), opt)
			if err != nil {
				return err
			}
			profiles, err := bench.Run(ctx, path, engines, bench.Options{
				Columns:      columns,
				Iterations:   intOr(anaIterations, c.BenchIterations),
				TopFunctions: c.TopFunctions,
				ProfileDir:   firstNonEmpty(anaProfileDir, c.ProfileDir),
			})
			if err != nil {
				return fmt.Errorf("benchmark: %w", err)
			}
			warnOnDrift(st, profiles)
			sections = report.Sections(profiles)
		}

		doc := report.Document{
			Title:    firstNonEmpty(anaTitle, c.ReportTitle),
			Stats:    st,
			Images:   images,
			Profiles: sections,
		}
		ropt := report.Options{Clean: mode, Keywords: listOr(anaKeywords, c.CleanKeywords)}
		if err := report.Write(out, doc, ropt); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote report to %s (%d images, %d profiles)\n", out, len(images), len(sections))
		return nil
	},
}

// warnOnDrift reports engines whose statistics differ from the primary table.
func warnOnDrift(st *analysis.Stats, profiles []*bench.Profile) {
	for _, p := range profiles {
		d, err := analysis.MaxAbsDiff(st, p.Stats)
		if err != nil {
			log.Warningf("compare %s statistics: %v", p.Engine, err)
			continue
		}
		if d > 1e-9 {
			fmt.Printf("⚠ Warning: %s statistics differ from %s by up to %g\n", p.Engine, st.Engine, d)
		}
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "report path (default from config: summary_report.md)")
	analyzeCmd.Flags().StringVar(&anaImagesDir, "images-dir", "", "histogram directory, relative to the report (default from config: images)")
	analyzeCmd.Flags().StringVar(&anaEngine, "engine", "", "engine for statistics and histograms: gota|dataframe-go")
	analyzeCmd.Flags().StringSliceVar(&anaEngines, "engines", nil, "engines to benchmark (default: all)")
	analyzeCmd.Flags().StringSliceVar(&anaColumns, "columns", nil, "columns to summarize (default: the three weather columns)")
	analyzeCmd.Flags().BoolVar(&anaNoBench, "no-bench", false, "skip the benchmark and profiling section")
	analyzeCmd.Flags().StringVar(&anaClean, "clean", "", "profile text cleaning: ansi|keywords|none")
	analyzeCmd.Flags().StringSliceVar(&anaKeywords, "keywords", nil, "line markers kept by --clean keywords")
	analyzeCmd.Flags().StringVar(&anaTitle, "title", "", "report title")
	analyzeCmd.Flags().IntVar(&anaBins, "bins", 0, "histogram bins (default 20)")
	analyzeCmd.Flags().StringVar(&anaBackend, "backend", "", "histogram backend: plot|chart")
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "", "image format: png|svg|jpg|pdf (chart backend: png|svg)")
	analyzeCmd.Flags().IntVar(&anaIterations, "iterations", 0, "pipeline iterations per engine while profiling")
	analyzeCmd.Flags().StringVar(&anaProfileDir, "profile-dir", "", "directory to keep raw <engine>.pprof files")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | 'pipe'")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
}
