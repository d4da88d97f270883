package cmd

import (
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/wxstats-cli/internal/config"
	"github.com/KaramelBytes/wxstats-cli/internal/logger"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global

	log = logging.MustGetLogger("wxstats")
)

var rootCmd = &cobra.Command{
	Use:   "wxstats",
	Short: "wxstats: descriptive statistics, histograms and engine benchmarks for weather CSVs",
	Long: `wxstats loads a weather history file (CSV, TSV or XLSX), summarizes the temperature
and precipitation columns, draws their distributions, profiles the pipeline under
each dataframe engine and writes everything into one markdown report.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.wxstats/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: critical|error|warning|notice|info|debug (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = cfgpkg.Defaults()
		return
	}
	cfg = c
}

func initLogging() {
	level := settings().LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if debug {
		level = "debug"
	}
	log = logger.NewLogger(level, "wxstats")
}

// settings returns the loaded configuration or the defaults.
func settings() *cfgpkg.Global {
	if cfg == nil {
		cfg = cfgpkg.Defaults()
	}
	return cfg
}
