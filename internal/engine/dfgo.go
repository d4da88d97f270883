package engine

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
)

// dfgoEngine loads through rocketlaunchr/dataframe-go. The importer accepts a
// single nil token, so every configured missing-value token is blanked
// before the records reach it.
type dfgoEngine struct {
	opt Options
}

func (e *dfgoEngine) Name() string { return DataframeGo }

func (e *dfgoEngine) Load(ctx context.Context, path string) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	comma := e.opt.delimiter(path)

	var records [][]string
	if isSpreadsheet(path) {
		var err error
		if records, err = readSheet(path, e.opt.Sheet); err != nil {
			return nil, err
		}
	} else {
		f, err := openInput(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if records, err = readRecords(f, comma); err != nil {
			return nil, parseError(path, err)
		}
	}
	if len(records) < 2 {
		return nil, parseError(path, errors.New("no data rows"))
	}
	blankMissing(records, e.opt.NaNValues)
	types := columnTypes(records)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma
	if err := w.WriteAll(records); err != nil {
		return nil, parseError(path, err)
	}

	nilValue := ""
	df, err := imports.LoadFromCSV(ctx, bytes.NewReader(buf.Bytes()), imports.CSVLoadOptions{
		Comma:           comma,
		DictateDataType: types,
		NilValue:        &nilValue,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, parseError(path, err)
	}
	return &dfgoTable{df: df}, nil
}

type dfgoTable struct {
	df *dataframe.DataFrame
}

func (t *dfgoTable) Engine() string { return DataframeGo }
func (t *dfgoTable) Names() []string { return t.df.Names() }
func (t *dfgoTable) Nrow() int { return t.df.NRows() }

func (t *dfgoTable) column(name string) (*dataframe.SeriesFloat64, error) {
	idx, err := t.df.NameToColumn(name)
	if err != nil {
		return nil, missingColumn(name)
	}
	s := t.df.Series[idx]
	sf, ok := s.(*dataframe.SeriesFloat64)
	if !ok {
		return nil, notNumeric(name, s.Type())
	}
	return sf, nil
}

func (t *dfgoTable) Floats(column string) ([]float64, error) {
	sf, err := t.column(column)
	if err != nil {
		return nil, err
	}
	return present(sf), nil
}

func present(sf *dataframe.SeriesFloat64) []float64 {
	out := make([]float64, 0, len(sf.Values))
	for _, v := range sf.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Aggregate takes the mean from dataframe-go and the order statistics from
// go-moremath, since the series type has no median or deviation of its own.
func (t *dfgoTable) Aggregate(ctx context.Context, columns []string) ([]Summary, error) {
	out := make([]Summary, 0, len(columns))
	for _, name := range columns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sf, err := t.column(name)
		if err != nil {
			return nil, err
		}
		vals := present(sf)
		sum := Summary{Column: name, Count: len(vals)}
		if len(vals) == 0 {
			sum.Mean, sum.Median, sum.StdDev = math.NaN(), math.NaN(), math.NaN()
			out = append(out, sum)
			continue
		}
		if sum.Mean, err = sf.Mean(ctx); err != nil {
			return nil, err
		}
		sample := stats.Sample{Xs: vals}
		sample.Sort()
		sum.Median = sample.Quantile(0.5)
		sum.StdDev = sample.StdDev()
		out = append(out, sum)
	}
	return out, nil
}
