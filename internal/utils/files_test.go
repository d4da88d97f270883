package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriteFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.md")
	require.NoError(t, SafeWriteFile(p, []byte("one")))
	require.NoError(t, SafeWriteFile(p, []byte("two")))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
	_, err = os.Stat(p + ".tmp")
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, SafeWriteFile(filepath.Join(dir, "missing", "out.md"), []byte("x")))
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.csv", "a.csv", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	files, err := ExpandInputs([]string{filepath.Join(dir, "*.csv"), filepath.Join(dir, "a.csv")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, files)

	files, err = ExpandInputs([]string{"nope.csv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"nope.csv"}, files)

	_, err = ExpandInputs(nil)
	assert.Error(t, err)
}

func TestRelTo(t *testing.T) {
	assert.Equal(t, "images/a.png", RelTo("out/report.md", "out/images/a.png"))
	assert.Equal(t, "../a.png", RelTo("out/report.md", "a.png"))
}
