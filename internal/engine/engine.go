// Package engine loads tabular weather data into one of two dataframe
// backends and aggregates numeric columns with that backend's own calls.
//
// Both backends expose the same Table contract so they can be swapped and
// compared by the benchmark harness.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Registered engine names.
const (
	Gota        = "gota"
	DataframeGo = "dataframe-go"
)

// Options controls how input files are parsed.
type Options struct {
	// Delimiter separates CSV fields. Zero selects tab for .tsv and comma otherwise.
	Delimiter rune
	// NaNValues are cell values treated as missing.
	NaNValues []string
	// Sheet selects a worksheet of an .xlsx workbook. Empty means the first sheet.
	Sheet string
}

// DefaultOptions returns the loader defaults.
func DefaultOptions() Options {
	return Options{NaNValues: []string{"", "NA", "NaN", "<nil>"}}
}

// Summary holds the aggregates of one numeric column.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	Median float64
	StdDev float64
}

// Table is a loaded dataset.
type Table interface {
	Engine() string
	Names() []string
	Nrow() int
	// Floats returns the non-missing values of a numeric column in file order.
	Floats(column string) ([]float64, error)
	// Aggregate computes mean, median and sample standard deviation per column.
	Aggregate(ctx context.Context, columns []string) ([]Summary, error)
}

// Engine parses a file into a Table.
type Engine interface {
	Name() string
	Load(ctx context.Context, path string) (Table, error)
}

// Names lists the registered engines in stable order.
func Names() []string { return []string{Gota, DataframeGo} }

// New returns the engine registered under name.
func New(name string, opt Options) (Engine, error) {
	if opt.NaNValues == nil {
		opt.NaNValues = DefaultOptions().NaNValues
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Gota:
		return &gotaEngine{opt: opt}, nil
	case DataframeGo, "dfgo":
		return &dfgoEngine{opt: opt}, nil
	default:
		return nil, fmt.Errorf("unknown engine %q (use %s)", name, strings.Join(Names(), "|"))
	}
}

// NewAll builds each named engine, or every registered engine when names is empty.
func NewAll(names []string, opt Options) ([]Engine, error) {
	if len(names) == 0 {
		names = Names()
	}
	out := make([]Engine, 0, len(names))
	for _, n := range names {
		e, err := New(n, opt)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (o Options) delimiter(path string) rune {
	if o.Delimiter != 0 {
		return o.Delimiter
	}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

func isSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// openInput opens a regular file for reading.
func openInput(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fileAccess("open", path, err)
	}
	if info.IsDir() {
		return nil, fileAccess("open", path, fmt.Errorf("is a directory"))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fileAccess("open", path, err)
	}
	return f, nil
}

func isNaN(v string, nan []string) bool {
	for _, n := range nan {
		if v == n {
			return true
		}
	}
	return false
}
