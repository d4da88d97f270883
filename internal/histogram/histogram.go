// Package histogram renders the value distribution of one table column to
// an image file.
package histogram

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/KaramelBytes/wxstats-cli/internal/engine"
)

// Backends.
const (
	Plot  = "plot"
	Chart = "chart"
)

// DefaultBins is the number of equal-width bins.
const DefaultBins = 20

// Options controls histogram rendering.
type Options struct {
	Bins    int
	Backend string
	// Width and Height are in inches.
	Width  float64
	Height float64
}

// DefaultOptions returns a 20-bin, 10x5 inch gonum/plot histogram.
func DefaultOptions() Options {
	return Options{Bins: DefaultBins, Backend: Plot, Width: 10, Height: 5}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Bins <= 0 {
		o.Bins = d.Bins
	}
	if o.Backend == "" {
		o.Backend = d.Backend
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// Title is the chart title for a column.
func Title(column string) string { return "Distribution of " + column }

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// FileName derives an image file name such as
// "temperature_minimum_distribution.png" from a column name.
func FileName(column, format string) string {
	base := strings.Trim(nonWord.ReplaceAllString(strings.ToLower(column), "_"), "_")
	if base == "" {
		base = "column"
	}
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	if format == "" {
		format = "png"
	}
	return base + "_distribution." + format
}

// Render draws a histogram of column and writes it to path. The image format
// follows the path's extension. Column problems are reported before any file
// is created; a failed write leaves no file behind.
func Render(t engine.Table, column, path string, opt Options) error {
	opt = opt.withDefaults()
	vals, err := t.Floats(column)
	if err != nil {
		return err
	}
	if len(vals) == 0 {
		return &engine.Error{Kind: engine.ErrNotNumeric, Op: "histogram", Column: column, Err: errors.New("no values")}
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	var img io.WriterTo
	switch opt.Backend {
	case Plot:
		img, err = plotHistogram(column, vals, format, opt)
	case Chart:
		img, err = chartHistogram(column, vals, format, opt)
	default:
		return fmt.Errorf("unknown histogram backend %q (use %s|%s)", opt.Backend, Plot, Chart)
	}
	if err != nil {
		return &engine.Error{Kind: engine.ErrFileWrite, Op: "render histogram", Path: path, Column: column, Err: err}
	}
	return writeImage(path, img)
}

func writeImage(path string, img io.WriterTo) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &engine.Error{Kind: engine.ErrFileWrite, Op: "create image", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = &engine.Error{Kind: engine.ErrFileWrite, Op: "close image", Path: path, Err: cerr}
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	if _, err = img.WriteTo(f); err != nil {
		return &engine.Error{Kind: engine.ErrFileWrite, Op: "write image", Path: path, Err: err}
	}
	return nil
}
