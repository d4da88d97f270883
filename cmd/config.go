package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/KaramelBytes/wxstats-cli/internal/config"
	"github.com/KaramelBytes/wxstats-cli/internal/engine"
	"github.com/KaramelBytes/wxstats-cli/internal/histogram"
	"github.com/KaramelBytes/wxstats-cli/internal/logger"
	"github.com/KaramelBytes/wxstats-cli/internal/report"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set wxstats configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := yaml.Marshal(settings())
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				c = cfgpkg.Defaults()
			}
			cfg = c
		}
		if err := setKey(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func positiveInt(key, val string) (int, error) {
	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
	}
	return i, nil
}

func setKey(c *cfgpkg.Global, key, val string) error {
	var err error
	switch key {
	case "columns":
		if c.Columns = splitList(val); len(c.Columns) == 0 {
			return fmt.Errorf("columns must name at least one column")
		}
	case "delimiter":
		if _, err := parseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "sheet":
		c.Sheet = val
	case "engines":
		names := splitList(val)
		if _, err := engine.NewAll(names, engine.DefaultOptions()); err != nil {
			return err
		}
		c.Engines = names
	case "bins":
		c.Bins, err = positiveInt(key, val)
	case "histogram_backend":
		switch strings.ToLower(val) {
		case histogram.Plot, histogram.Chart:
			c.HistogramBackend = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid histogram_backend: %s (use %s or %s)", val, histogram.Plot, histogram.Chart)
		}
	case "image_format":
		c.ImageFormat = strings.TrimPrefix(strings.ToLower(val), ".")
	case "images_dir":
		c.ImagesDir = val
	case "report_path":
		c.ReportPath = val
	case "report_title":
		c.ReportTitle = val
	case "clean_mode":
		m, err := report.ParseCleanMode(val)
		if err != nil {
			return err
		}
		c.CleanMode = string(m)
	case "clean_keywords":
		c.CleanKeywords = splitList(val)
	case "bench_iterations":
		c.BenchIterations, err = positiveInt(key, val)
	case "top_functions":
		c.TopFunctions, err = positiveInt(key, val)
	case "profile_dir":
		c.ProfileDir = val
	case "log_level":
		if !containsFold(logger.Levels, val) {
			return fmt.Errorf("invalid log_level: %s (use %s)", val, strings.Join(logger.Levels, "|"))
		}
		c.LogLevel = strings.ToLower(val)
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
