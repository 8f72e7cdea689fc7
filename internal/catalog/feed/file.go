package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"deals-service/internal/fileio"
)

// FileSource reads the feed from local spreadsheets. With only AmazonPath set
// and a workbook holding two sheets, the second sheet is the Cabela's feed.
type FileSource struct {
	AmazonPath  string
	CabelasPath string
	HeaderRows  int
}

func NewFileSource(amazonPath, cabelasPath string) (*FileSource, error) {
	if amazonPath == "" {
		return nil, ErrNoSource
	}
	return &FileSource{AmazonPath: amazonPath, CabelasPath: cabelasPath, HeaderRows: 1}, nil
}

func (s *FileSource) Name() string { return "file:" + filepath.Base(s.AmazonPath) }

// Paths lists the files the source reads, for change watching.
func (s *FileSource) Paths() []string {
	if s.CabelasPath == "" {
		return []string{s.AmazonPath}
	}
	return []string{s.AmazonPath, s.CabelasPath}
}

func (s *FileSource) Fetch(ctx context.Context) (Sheets, error) {
	if err := ctx.Err(); err != nil {
		return Sheets{}, err
	}
	amazon, err := readSheets(s.AmazonPath, s.HeaderRows)
	if err != nil {
		return Sheets{}, err
	}
	var out Sheets
	if len(amazon) > 0 {
		out.Amazon = amazon[0].Rows
	}
	if s.CabelasPath == "" {
		if len(amazon) > 1 {
			out.Cabelas = amazon[1].Rows
		}
		return out, nil
	}
	cabelas, err := readSheets(s.CabelasPath, s.HeaderRows)
	if err != nil {
		return Sheets{}, err
	}
	if len(cabelas) > 0 {
		out.Cabelas = cabelas[0].Rows
	}
	return out, nil
}

func readSheets(path string, headerRows int) ([]fileio.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", path, err)
	}
	defer f.Close()
	return fileio.ReadAnySheets(f, filepath.Base(path), headerRows)
}

// Upload builds Sheets from already-read spreadsheet data (multipart upload).
// The optional second sheet of the amazon workbook is used when cabelas is nil.
func Upload(amazon, cabelas []fileio.Sheet) Sheets {
	var out Sheets
	if len(amazon) > 0 {
		out.Amazon = amazon[0].Rows
	}
	switch {
	case len(cabelas) > 0:
		out.Cabelas = cabelas[0].Rows
	case cabelas == nil && len(amazon) > 1:
		out.Cabelas = amazon[1].Rows
	}
	return out
}
