// Package feed reads the two retailer sheets and turns their rows into deals.
package feed

import (
	"context"
	"errors"

	"deals-service/internal/catalog/model"
	"deals-service/internal/catalog/pairing"
)

var ErrNoSource = errors.New("feed: no source configured")

// Sheets holds the data rows (header excluded) of the Amazon and Cabela's sheets.
type Sheets struct {
	Amazon  [][]string
	Cabelas [][]string
}

func (s Sheets) Empty() bool { return len(s.Amazon) == 0 && len(s.Cabelas) == 0 }

// Source fetches the current sheets.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (Sheets, error)
}

// Stats summarizes one Build.
type Stats struct {
	Rows        int `json:"rows"`
	Skipped     int `json:"skipped"`
	Comparisons int `json:"comparisons"`
	Paired      int `json:"paired"`
	Singles     int `json:"singles"`
}

// Build converts both sheets and pairs matching singles across retailers.
// Order: comparison rows, paired comparisons, Amazon singles, Cabela's singles.
func Build(s Sheets, threshold float64) ([]model.Deal, Stats) {
	var (
		st         Stats
		ready      []model.Deal
		amazon     []model.Deal
		cabelasOut []model.Deal
	)
	for i, row := range s.Amazon {
		st.Rows++
		d, ok := amazonRow(row, i)
		if !ok {
			st.Skipped++
			continue
		}
		if d.CardType == model.CardComparison {
			ready = append(ready, d)
			continue
		}
		amazon = append(amazon, d)
	}
	for i, row := range s.Cabelas {
		st.Rows++
		d, ok := cabelasRow(row, i)
		if !ok {
			st.Skipped++
			continue
		}
		cabelasOut = append(cabelasOut, d)
	}

	res := pairing.Run(amazon, cabelasOut, threshold)
	st.Comparisons = len(ready)
	st.Paired = len(res.Pairs)
	st.Singles = len(res.Amazon) + len(res.Cabelas)

	return append(ready, res.Deals()...), st
}
