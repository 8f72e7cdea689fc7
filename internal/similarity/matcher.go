package similarity

import (
	"fmt"
	"math"
	"sort"

	"deals-service/internal/catalog/model"
)

// Signals is the per-candidate breakdown, each value in [0,1].
type Signals struct {
	TokenOverlap float64 `json:"tokenOverlap"`
	Category     float64 `json:"category"`
	Brand        float64 `json:"brand"`
	Price        float64 `json:"price"`
}

// Match is one ranked entry of a similarity result.
type Match struct {
	Product model.Product `json:"product"`
	Score   float64       `json:"score"`
	Signals Signals       `json:"signals"`
}

// Matcher ranks candidate products by how similar they are to a reference product.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	cfg Config
}

func New(cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Matcher{cfg: cfg}, nil
}

func (m *Matcher) Config() Config { return m.cfg }

// WithMinScore returns a copy of m using a different similarity floor.
func (m *Matcher) WithMinScore(minScore float64) (*Matcher, error) {
	cfg := m.cfg
	cfg.MinScore = minScore
	return New(cfg)
}

// MatchDefault is Match with the configured default limit.
func (m *Matcher) MatchDefault(ref model.Product, candidates []model.Product) ([]Match, error) {
	return m.Match(ref, candidates, m.cfg.DefaultLimit)
}

// Match scores every candidate against ref and returns at most limit entries,
// best first. Candidates sharing ref's ID are skipped; equal scores keep input order.
func (m *Matcher) Match(ref model.Product, candidates []model.Product, limit int) ([]Match, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit %d is negative", ErrInvalidInput, limit)
	}
	out := make([]Match, 0)
	if limit == 0 || len(candidates) == 0 {
		return out, nil
	}

	rp := m.profile(ref.Name)
	for _, c := range candidates {
		if ref.ID != "" && c.ID == ref.ID {
			continue
		}
		cp := m.profile(c.Name)
		s := Signals{
			TokenOverlap: overlapCoefficient(rp.words, cp.words),
			Category:     categorySignal(ref.Category, c.Category),
			Brand:        sharedAny(rp.marks, cp.marks),
			Price:        priceProximity(ref, c),
		}
		score := m.combine(s)
		if score < m.cfg.MinScore {
			continue
		}
		out = append(out, Match{Product: c, Score: score, Signals: s})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Matcher) combine(s Signals) float64 {
	w := m.cfg.Weights
	v := w.TokenOverlap*s.TokenOverlap + w.Category*s.Category + w.Brand*s.Brand + w.Price*s.Price
	return clamp01(v)
}

// overlapCoefficient is |A∩B| / min(|A|,|B|), 0 when either side is empty.
func overlapCoefficient(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	shared := 0
	for t := range small {
		if _, ok := large[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(small))
}

func categorySignal(a, b model.Category) float64 {
	if a == b && a.Known() {
		return 1
	}
	return 0
}

func sharedAny(a, b map[string]struct{}) float64 {
	for t := range a {
		if _, ok := b[t]; ok {
			return 1
		}
	}
	return 0
}

func priceProximity(a, b model.Product) float64 {
	if !a.HasPrice() || !b.HasPrice() {
		return 0
	}
	return clamp01(1 - math.Abs(a.Price-b.Price)/math.Max(a.Price, b.Price))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
