package engine

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// readSheet returns the cell text of one worksheet as CSV-style records.
// When sheet is empty the first sheet of the workbook is used.
func readSheet(path, sheet string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fileAccess("open", path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, parseError(path, errors.Wrap(err, "open workbook"))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, parseError(path, errors.New("workbook has no sheets"))
	}
	target := sheets[0]
	if sheet != "" {
		target = ""
		for _, s := range sheets {
			if strings.EqualFold(s, sheet) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, parseError(path, errors.Errorf("sheet %q not found; available sheets: %s", sheet, strings.Join(sheets, ", ")))
		}
	}

	rows, err := f.GetRows(target)
	if err != nil {
		return nil, parseError(path, errors.Wrapf(err, "read sheet %s", target))
	}
	if len(rows) == 0 {
		return nil, parseError(path, errors.Errorf("sheet %s is empty", target))
	}
	// excelize drops trailing empty cells; pad every row to the header width.
	width := len(rows[0])
	for i, r := range rows {
		if len(r) > width {
			return nil, parseError(path, errors.Errorf("row %d has %d cells, header has %d", i+1, len(r), width))
		}
		if len(r) < width {
			padded := make([]string, width)
			copy(padded, r)
			rows[i] = padded
		}
	}
	return rows, nil
}
