package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Columns   []string `mapstructure:"columns" yaml:"columns"`
	Delimiter string   `mapstructure:"delimiter" yaml:"delimiter"`
	Sheet     string   `mapstructure:"sheet" yaml:"sheet"`
	Engines   []string `mapstructure:"engines" yaml:"engines"`

	// Histograms
	Bins             int    `mapstructure:"bins" yaml:"bins"`
	HistogramBackend string `mapstructure:"histogram_backend" yaml:"histogram_backend"`
	ImageFormat      string `mapstructure:"image_format" yaml:"image_format"`
	ImagesDir        string `mapstructure:"images_dir" yaml:"images_dir"`

	// Report
	ReportPath    string   `mapstructure:"report_path" yaml:"report_path"`
	ReportTitle   string   `mapstructure:"report_title" yaml:"report_title"`
	CleanMode     string   `mapstructure:"clean_mode" yaml:"clean_mode"`
	CleanKeywords []string `mapstructure:"clean_keywords" yaml:"clean_keywords"`

	// Benchmark
	BenchIterations int    `mapstructure:"bench_iterations" yaml:"bench_iterations"`
	TopFunctions    int    `mapstructure:"top_functions" yaml:"top_functions"`
	ProfileDir      string `mapstructure:"profile_dir" yaml:"profile_dir"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Dir returns ~/.wxstats.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".wxstats"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.wxstats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("columns", []string{"Temperature Minimum", "Temperature Maximum", "Precipitation"})
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet", "")
	v.SetDefault("engines", []string{"gota", "dataframe-go"})
	v.SetDefault("bins", 20)
	v.SetDefault("histogram_backend", "plot")
	v.SetDefault("image_format", "png")
	v.SetDefault("images_dir", "images")
	v.SetDefault("report_path", "summary_report.md")
	v.SetDefault("report_title", "Summary Report")
	v.SetDefault("clean_mode", "ansi")
	v.SetDefault("clean_keywords", []string{"Duration", "Samples", "Recorded", "CPU time"})
	v.SetDefault("bench_iterations", 1)
	v.SetDefault("top_functions", 10)
	v.SetDefault("profile_dir", "")
	v.SetDefault("log_level", "warning")
}

// Defaults returns the built-in configuration without reading files or env.
func Defaults() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file (cfgFile or ~/.wxstats/config.yaml) > defaults.
// Command-line flags are applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("WXSTATS")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
