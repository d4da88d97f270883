package engine

import (
	"context"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

type gotaEngine struct {
	opt Options
}

func (e *gotaEngine) Name() string { return Gota }

func (e *gotaEngine) loadOptions(path string) []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.WithDelimiter(e.opt.delimiter(path)),
		dataframe.NaNValues(e.opt.NaNValues),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	}
}

func (e *gotaEngine) Load(ctx context.Context, path string) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var df dataframe.DataFrame
	if isSpreadsheet(path) {
		records, err := readSheet(path, e.opt.Sheet)
		if err != nil {
			return nil, err
		}
		df = dataframe.LoadRecords(records, e.loadOptions(path)...)
	} else {
		f, err := openInput(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		df = dataframe.ReadCSV(f, e.loadOptions(path)...)
	}
	if df.Err != nil {
		return nil, parseError(path, df.Err)
	}
	return &gotaTable{df: df}, nil
}

type gotaTable struct {
	df dataframe.DataFrame
}

func (t *gotaTable) Engine() string { return Gota }
func (t *gotaTable) Names() []string { return t.df.Names() }
func (t *gotaTable) Nrow() int { return t.df.Nrow() }

func (t *gotaTable) column(name string) (series.Series, error) {
	s := t.df.Col(name)
	if s.Err != nil {
		return s, missingColumn(name)
	}
	switch s.Type() {
	case series.Int, series.Float:
		return s, nil
	default:
		return s, notNumeric(name, string(s.Type()))
	}
}

func (t *gotaTable) Floats(column string) ([]float64, error) {
	s, err := t.column(column)
	if err != nil {
		return nil, err
	}
	raw := s.Float()
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Aggregate uses gota's series reductions over the non-missing values.
func (t *gotaTable) Aggregate(ctx context.Context, columns []string) ([]Summary, error) {
	out := make([]Summary, 0, len(columns))
	for _, name := range columns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vals, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		s := series.Floats(vals)
		out = append(out, Summary{
			Column: name,
			Count:  s.Len(),
			Mean:   s.Mean(),
			Median: s.Median(),
			StdDev: s.StdDev(),
		})
	}
	return out, nil
}
