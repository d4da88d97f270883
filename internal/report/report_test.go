package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/wxstats-cli/internal/analysis"
	"github.com/KaramelBytes/wxstats-cli/internal/engine"
)

const weatherCSV = `Temperature Minimum,Temperature Maximum,Precipitation
30,50,0
40,60,0.5
50,80,1.5
60,90,0
`

const gotaProfile = "Engine: gota\nRun: 1\nRecorded: 2024-01-01T00:00:00Z\nRows: 4\n\x1b[1mDuration: 12ms\x1b[0m\nSamples: 2\nSampling interval: 10ms\nCPU time: 20ms\n\n+------+\n| flat |\n+------+\n"

func stats(t *testing.T) *analysis.Stats {
	t.Helper()
	p := filepath.Join(t.TempDir(), "weather.csv")
	require.NoError(t, os.WriteFile(p, []byte(weatherCSV), 0o644))
	e, err := engine.New(engine.Gota, engine.DefaultOptions())
	require.NoError(t, err)
	tbl, err := e.Load(context.Background(), p)
	require.NoError(t, err)
	st, err := analysis.Calculate(context.Background(), tbl, analysis.DefaultColumns)
	require.NoError(t, err)
	return st
}

func document(t *testing.T) Document {
	return Document{
		Stats:  stats(t),
		Images: []string{"images/tmin.png", "images/tmax.png"},
		Profiles: []Section{
			{Engine: "gota", Text: gotaProfile},
			{Engine: "dataframe-go", Text: strings.ReplaceAll(gotaProfile, "gota", "dataframe-go")},
		},
	}
}

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

func TestWriteStructure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, Write(out, document(t), Options{Clean: CleanANSI}))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	md := string(b)
	lines := strings.Split(md, "\n")

	assert.Equal(t, "# Summary Report", lines[0])
	assert.Equal(t, 1, countPrefix(lines, "# "))
	assert.Equal(t, 1, countPrefix(lines, "| mean |"))
	assert.Equal(t, 1, countPrefix(lines, "| std_dev |"))
	assert.Equal(t, 2, countPrefix(lines, "!["))
	assert.Equal(t, 2, countPrefix(lines, "```text"))
	assert.Contains(t, md, "### gota\n\n```text\n")
	assert.Contains(t, md, "### dataframe-go\n\n```text\n")
	assert.Contains(t, md, "| mean | 45.000000 | 70.000000 | 0.500000 |")
	assert.NotContains(t, md, "\x1b[")

	// fixed section order
	idx := func(s string) int { return strings.Index(md, s) }
	assert.Less(t, idx("## Descriptive Statistics"), idx("| mean |"))
	assert.Less(t, idx("| std_dev |"), idx("![images/tmin.png](images/tmin.png)"))
	assert.Less(t, idx("![images/tmin.png]"), idx("![images/tmax.png]"))
	assert.Less(t, idx("![images/tmax.png]"), idx("## Profiling"))
	assert.Less(t, idx("### gota"), idx("### dataframe-go"))

	_, err = os.Stat(out + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestRenderWithoutProfiles(t *testing.T) {
	doc := document(t)
	doc.Profiles = nil
	doc.Title = "RDU Weather"
	md := Render(doc, Options{})
	assert.True(t, strings.HasPrefix(md, "# RDU Weather\n"))
	assert.NotContains(t, md, "## Profiling")
}

func TestWriteFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no-such-dir", "report.md")
	err := Write(out, document(t), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrFileWrite))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "Duration: 12ms", StripANSI("\x1b[1mDuration: 12ms\x1b[0m"))
	assert.Equal(t, "title", StripANSI("\x1b]0;x\x07title"))
	assert.Equal(t, gotaProfile, Clean(gotaProfile, CleanNone, nil))

	kept := Clean(gotaProfile, CleanKeywords, nil)
	assert.Equal(t, "Recorded: 2024-01-01T00:00:00Z\nDuration: 12ms\nSamples: 2\nCPU time: 20ms", kept)

	assert.Equal(t, "Rows: 4", Clean(gotaProfile, CleanKeywords, []string{"Rows"}))
}

func TestParseCleanMode(t *testing.T) {
	m, err := ParseCleanMode("")
	require.NoError(t, err)
	assert.Equal(t, CleanANSI, m)
	assert.Equal(t, Clean(gotaProfile, m, nil), Clean(gotaProfile, "", nil))
	assert.NotContains(t, Clean(gotaProfile, "", nil), "\x1b[")

	m, err = ParseCleanMode("Keywords")
	require.NoError(t, err)
	assert.Equal(t, CleanKeywords, m)
	_, err = ParseCleanMode("strip")
	assert.Error(t, err)
}
