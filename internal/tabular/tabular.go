// Package tabular turns the supported input formats into the raw cell
// matrix the ingestion pipeline consumes (row 0 = headers, rows 1..n =
// data). Spreadsheet container decoding is delegated entirely to excelize;
// the pipeline itself never touches file bytes.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("tabular: unsupported file format")

// FromTSV splits pasted spreadsheet text into a matrix: newlines separate
// rows, tabs separate cells. Trailing blank lines are dropped.
func FromTSV(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	matrix := make([][]string, 0, len(lines))
	for _, line := range lines {
		matrix = append(matrix, strings.Split(line, "\t"))
	}
	return matrix
}

// FromCSV reads comma-separated text into a matrix. Rows may have varying
// field counts; the pipeline tolerates short rows.
func FromCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

// FromXLSX decodes the first sheet of a spreadsheet workbook into a matrix
// of raw cell strings.
func FromXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// FromFile decodes an uploaded file by extension: .xlsx/.xls workbooks,
// .csv text, .tsv/.txt tab-separated text.
func FromFile(name string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return FromXLSX(r)
	case ".csv":
		return FromCSV(r)
	case ".tsv", ".txt":
		raw, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		return FromTSV(string(raw)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}
