package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Sheet is one worksheet as positional rows, header rows already dropped.
type Sheet struct {
	Name string
	Rows [][]string
}

// ReadAnySheets picks a parser by extension and returns every worksheet of the file.
// CSV files always yield a single sheet. headerRows leading rows are skipped per sheet.
func ReadAnySheets(r io.Reader, filename string, headerRows int) ([]Sheet, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		sheets []Sheet
		err    error
	)
	switch ext {
	case ".xlsx":
		sheets, err = readXLSX(r)
	case ".xls":
		sheets, err = readXLS(r)
	case ".csv":
		sheets, err = readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	for i := range sheets {
		sheets[i].Rows = dataRows(sheets[i].Rows, headerRows)
	}
	return sheets, nil
}

// ReadAnyRows returns the rows of the first worksheet.
func ReadAnyRows(r io.Reader, filename string, headerRows int) ([][]string, error) {
	sheets, err := ReadAnySheets(r, filename, headerRows)
	if err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		return nil, nil
	}
	return sheets[0].Rows, nil
}

// dataRows drops the header rows, trims every cell and skips fully blank rows.
func dataRows(rows [][]string, headerRows int) [][]string {
	if headerRows < 0 {
		headerRows = 0
	}
	if headerRows >= len(rows) {
		return nil
	}
	out := make([][]string, 0, len(rows)-headerRows)
	for _, rec := range rows[headerRows:] {
		empty := true
		cells := make([]string, len(rec))
		for i, v := range rec {
			cells[i] = normalizeCell(v)
			if cells[i] != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, cells)
		}
	}
	return out
}

var nbsp = strings.NewReplacer("\u00a0", " ", "\u202f", " ")

func normalizeCell(s string) string {
	return strings.TrimSpace(nbsp.Replace(s))
}
