package engine

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// readRecords parses a whole delimited stream. Rows must all have the
// header's width.
func readRecords(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read records")
	}
	if len(records) == 0 {
		return nil, errors.New("empty input: no header row")
	}
	return records, nil
}

// blankMissing rewrites every data cell listed in nan to the empty string,
// the one nil token dataframe-go's importer understands.
func blankMissing(records [][]string, nan []string) {
	for _, rec := range records[1:] {
		for i, v := range rec {
			if v != "" && isNaN(v, nan) {
				rec[i] = ""
			}
		}
	}
}

// columnTypes reports, per header name, whether every non-empty data cell
// parses as a float. The result is shaped for dataframe-go's
// DictateDataType: float64(0) for numeric, "" for text.
func columnTypes(records [][]string) map[string]interface{} {
	header := records[0]
	numeric := make([]bool, len(header))
	for i := range numeric {
		numeric[i] = true
	}
	for _, rec := range records[1:] {
		for i, v := range rec {
			if !numeric[i] || v == "" {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric[i] = false
			}
		}
	}

	types := make(map[string]interface{}, len(header))
	for i, n := range header {
		if numeric[i] {
			types[n] = float64(0)
		} else {
			types[n] = ""
		}
	}
	return types
}
