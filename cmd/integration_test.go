package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const weatherCSV = `Date,Temperature Minimum,Temperature Maximum,Precipitation
2024-01-01,30,50,0
2024-01-02,40,60,0.5
2024-01-03,,70,0
2024-01-04,50,80,1.5
2024-01-05,60,90,0
`

// resetFlags restores every flag to its default so state does not leak
// between invocations of the shared root command.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func execCmd(args ...string) (string, error) {
	resetFlags(rootCmd)
	cfg = nil
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func setup(t *testing.T) (home, csvPath string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	csvPath = filepath.Join(home, "weather.csv")
	if err := os.WriteFile(csvPath, []byte(weatherCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return home, csvPath
}

func TestCLI_AnalyzeWritesReport(t *testing.T) {
	home, csvPath := setup(t)
	out := filepath.Join(home, "report", "summary.md")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatal(err)
	}

	runCmd(t, "analyze", csvPath, "-o", out, "--clean", "keywords", "--log-level", "error")

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(b)
	for _, want := range []string{
		"# Summary Report",
		"## Descriptive Statistics",
		"| mean | 45.000000 | 70.000000 | 0.400000 |",
		"![images/temperature_minimum_distribution.png](images/temperature_minimum_distribution.png)",
		"![images/precipitation_distribution.png](images/precipitation_distribution.png)",
		"### gota",
		"### dataframe-go",
		"Duration:",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Engine: gota") {
		t.Fatalf("keyword cleaning should drop the engine line:\n%s", md)
	}
	for _, img := range []string{"temperature_minimum", "temperature_maximum", "precipitation"} {
		p := filepath.Join(home, "report", "images", img+"_distribution.png")
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Fatalf("expected image %s: %v", p, err)
		}
	}
}

func TestCLI_AnalyzeNoBench(t *testing.T) {
	home, csvPath := setup(t)
	out := filepath.Join(home, "plain.md")
	runCmd(t, "analyze", csvPath, "-o", out, "--no-bench", "--engine", "dataframe-go", "--backend", "chart", "--title", "RDU")
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	md := string(b)
	if !strings.HasPrefix(md, "# RDU\n") || strings.Contains(md, "## Profiling") {
		t.Fatalf("unexpected report:\n%s", md)
	}
}

func TestCLI_AnalyzeMissingFile(t *testing.T) {
	home, _ := setup(t)
	_, err := execCmd("analyze", filepath.Join(home, "nope.csv"), "-o", filepath.Join(home, "r.md"))
	if err == nil {
		t.Fatalf("expected error for missing input")
	}
	if _, statErr := os.Stat(filepath.Join(home, "r.md")); !os.IsNotExist(statErr) {
		t.Fatalf("report should not be written on failure")
	}
}

func TestCLI_StatsAndHist(t *testing.T) {
	home, csvPath := setup(t)
	out := runCmd(t, "stats", csvPath, "--all-engines")
	if strings.Count(out, "12.909944") != 2 {
		t.Fatalf("expected std_dev for both engines:\n%s", out)
	}
	if !strings.Contains(out, "Max difference dataframe-go vs gota: ") {
		t.Fatalf("expected engine comparison line:\n%s", out)
	}

	img := filepath.Join(home, "tmax.svg")
	runCmd(t, "hist", csvPath, "-c", "Temperature Maximum", "-o", img)
	if b, err := os.ReadFile(img); err != nil || !strings.Contains(string(b), "<svg") {
		t.Fatalf("expected svg at %s: %v", img, err)
	}

	if _, err := execCmd("hist", csvPath, "-c", "Humidity", "-o", filepath.Join(home, "h.png")); err == nil {
		t.Fatalf("expected missing column error")
	}
}

func TestCLI_Bench(t *testing.T) {
	_, csvPath := setup(t)
	out := runCmd(t, "bench", csvPath, "--iterations", "2")
	for _, want := range []string{"=== gota ===", "=== dataframe-go ===", "Iterations: 2", "CPU time:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("bench output missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	setup(t)
	runCmd(t, "config", "set", "bins", "30")
	runCmd(t, "config", "set", "clean_mode", "keywords")
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "bins: 30") || !strings.Contains(out, "clean_mode: keywords") {
		t.Fatalf("config not persisted:\n%s", out)
	}
	if _, err := execCmd("config", "set", "histogram_backend", "matplotlib"); err == nil {
		t.Fatalf("expected invalid backend error")
	}
	if _, err := execCmd("config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}
