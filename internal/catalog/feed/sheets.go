package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig points at one spreadsheet with the Amazon and Cabela's ranges.
type SheetsConfig struct {
	APIKey        string
	SpreadsheetID string
	AmazonRange   string
	CabelasRange  string
	// Endpoint overrides the API base URL (tests).
	Endpoint string
}

// SheetsSource reads the feed from the Google Sheets values API.
type SheetsSource struct {
	cfg SheetsConfig
	srv *sheets.Service
}

func NewSheetsSource(ctx context.Context, cfg SheetsConfig) (*SheetsSource, error) {
	if cfg.APIKey == "" || cfg.SpreadsheetID == "" {
		return nil, ErrNoSource
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &SheetsSource{cfg: cfg, srv: srv}, nil
}

func (s *SheetsSource) Name() string { return "sheets:" + s.cfg.SpreadsheetID }

// Fetch reads both ranges. A failing Cabela's range is logged and treated as empty.
func (s *SheetsSource) Fetch(ctx context.Context) (Sheets, error) {
	amazon, err := s.values(ctx, s.cfg.AmazonRange)
	if err != nil {
		return Sheets{}, fmt.Errorf("amazon range %q: %w", s.cfg.AmazonRange, err)
	}
	var cabelas [][]string
	if s.cfg.CabelasRange != "" {
		cabelas, err = s.values(ctx, s.cfg.CabelasRange)
		if err != nil {
			log.Warn().Err(err).Str("range", s.cfg.CabelasRange).Msg("cabelas range failed, continuing with amazon only")
		}
	}
	return Sheets{Amazon: amazon, Cabelas: cabelas}, nil
}

func (s *SheetsSource) values(ctx context.Context, rng string) ([][]string, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return cellsToRows(resp.Values), nil
}

func cellsToRows(values [][]any) [][]string {
	out := make([][]string, 0, len(values))
	for _, vr := range values {
		row := make([]string, len(vr))
		blank := true
		for i, v := range vr {
			row[i] = strings.TrimSpace(fmt.Sprint(v))
			if row[i] != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
