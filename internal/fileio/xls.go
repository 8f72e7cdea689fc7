package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// legacy .xls exports: the library's LastCol is unreliable, so the width is probed
func computeMaxCols(sheet *xls.WorkSheet) int {
	const probeMax = 64
	maxCols := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := 0; j < probeMax; j++ {
			if normalizeCell(r.Col(j)) != "" && j+1 > maxCols {
				maxCols = j + 1
			}
		}
	}
	if maxCols == 0 {
		maxCols = 1
	}
	return maxCols
}

func readXLS(r io.Reader) ([]Sheet, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	wb, err := xls.OpenReader(bytes.NewReader(b), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("xls: failed to open workbook")
	}

	var out []Sheet
	for s := 0; s < wb.NumSheets(); s++ {
		sheet := wb.GetSheet(s)
		if sheet == nil {
			continue
		}
		maxCols := computeMaxCols(sheet)
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for i := 0; i <= int(sheet.MaxRow); i++ {
			row := sheet.Row(i)
			cols := make([]string, maxCols)
			if row != nil {
				for j := 0; j < maxCols; j++ {
					cols[j] = row.Col(j)
				}
			}
			rows = append(rows, cols)
		}
		out = append(out, Sheet{Name: sheet.Name, Rows: rows})
	}
	return out, nil
}
