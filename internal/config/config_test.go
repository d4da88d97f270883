package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Temperature Minimum", "Temperature Maximum", "Precipitation"}, c.Columns)
	assert.Equal(t, 20, c.Bins)
	assert.Equal(t, "ansi", c.CleanMode)
	assert.Equal(t, []string{"gota", "dataframe-go"}, c.Engines)
	assert.Equal(t, Defaults(), c)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c := Defaults()
	c.Bins = 30
	c.CleanMode = "keywords"
	c.HistogramBackend = "chart"
	require.NoError(t, Save(c, ""))

	dir, err := Dir()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, got.Bins)
	assert.Equal(t, "keywords", got.CleanMode)
	assert.Equal(t, "chart", got.HistogramBackend)
}

func TestLoadExplicitFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "wx.yaml")
	require.NoError(t, os.WriteFile(p, []byte("bins: 12\nimages_dir: plots\n"), 0o644))
	t.Setenv("WXSTATS_IMAGES_DIR", "charts")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 12, c.Bins)
	assert.Equal(t, "charts", c.ImagesDir)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
