// Package analysis computes the descriptive statistics table for the weather
// columns and renders it for the terminal and for markdown reports.
package analysis

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/KaramelBytes/wxstats-cli/internal/engine"
)

// Statistic row names, in table order.
const (
	Mean   = "mean"
	Median = "median"
	StdDev = "std_dev"
)

// Statistics lists the rows of a Stats table.
var Statistics = []string{Mean, Median, StdDev}

// DefaultColumns are the weather columns summarized by default.
var DefaultColumns = []string{"Temperature Minimum", "Temperature Maximum", "Precipitation"}

// Stats is a statistics table: one row per statistic, one column per input column.
type Stats struct {
	Engine  string
	Rows    int
	Columns []string
	Counts  []int
	// cells[stat][col]
	cells [3][]float64
}

// Calculate aggregates the given numeric columns of t. The table is not modified.
func Calculate(ctx context.Context, t engine.Table, columns []string) (*Stats, error) {
	if len(columns) == 0 {
		return nil, errors.New("no columns to summarize")
	}
	sums, err := t.Aggregate(ctx, columns)
	if err != nil {
		return nil, errors.Wrapf(err, "summarize %s", t.Engine())
	}
	s := &Stats{
		Engine:  t.Engine(),
		Rows:    t.Nrow(),
		Columns: append([]string(nil), columns...),
		Counts:  make([]int, len(sums)),
	}
	for i := range s.cells {
		s.cells[i] = make([]float64, len(sums))
	}
	for j, sum := range sums {
		s.Counts[j] = sum.Count
		s.cells[0][j] = sum.Mean
		s.cells[1][j] = sum.Median
		s.cells[2][j] = sum.StdDev
	}
	return s, nil
}

func statIndex(stat string) int {
	for i, s := range Statistics {
		if s == stat {
			return i
		}
	}
	return -1
}

// Value returns one cell of the table.
func (s *Stats) Value(stat, column string) (float64, bool) {
	i := statIndex(stat)
	if i < 0 {
		return 0, false
	}
	for j, c := range s.Columns {
		if c == column {
			return s.cells[i][j], true
		}
	}
	return 0, false
}

// MaxAbsDiff returns the largest absolute difference between matching cells
// of two tables over the same columns. NaN cells match only NaN.
func MaxAbsDiff(a, b *Stats) (float64, error) {
	if len(a.Columns) != len(b.Columns) {
		return 0, errors.Errorf("column count differs: %d vs %d", len(a.Columns), len(b.Columns))
	}
	var worst float64
	for j, c := range a.Columns {
		if b.Columns[j] != c {
			return 0, errors.Errorf("column %d differs: %q vs %q", j, c, b.Columns[j])
		}
		for i := range Statistics {
			x, y := a.cells[i][j], b.cells[i][j]
			if math.IsNaN(x) || math.IsNaN(y) {
				if math.IsNaN(x) != math.IsNaN(y) {
					return math.Inf(1), nil
				}
				continue
			}
			worst = math.Max(worst, math.Abs(x-y))
		}
	}
	return worst, nil
}

// FormatValue renders a cell with six decimals.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func (s *Stats) header() []string {
	h := make([]string, 0, len(s.Columns)+1)
	h = append(h, "")
	for _, c := range s.Columns {
		h = append(h, safeName(c))
	}
	return h
}

func (s *Stats) row(i int) []string {
	r := make([]string, 0, len(s.Columns)+1)
	r = append(r, Statistics[i])
	for _, v := range s.cells[i] {
		r = append(r, FormatValue(v))
	}
	return r
}

func toRow(cells []string) table.Row {
	r := make(table.Row, len(cells))
	for i, c := range cells {
		r[i] = c
	}
	return r
}

// Markdown renders the table as a markdown pipe table.
func (s *Stats) Markdown() string {
	tw := table.NewWriter()
	tw.AppendHeader(toRow(s.header()))
	for i := range Statistics {
		tw.AppendRow(toRow(s.row(i)))
	}
	return tw.RenderMarkdown()
}

// Console writes an ASCII table followed by the row and value counts.
func (s *Stats) Console(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader(s.header())
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i := range Statistics {
		tw.Append(s.row(i))
	}
	tw.Render()

	counts := make([]string, len(s.Columns))
	for j, c := range s.Columns {
		counts[j] = fmt.Sprintf("%s=%d", c, s.Counts[j])
	}
	fmt.Fprintf(w, "Engine: %s, rows: %d, values: %s\n", s.Engine, s.Rows, strings.Join(counts, ", "))
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
