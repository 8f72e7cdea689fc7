package similarity

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deals-service/internal/catalog/model"
)

func newMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := New(DefaultConfig())
	require.NoError(t, err)
	return m
}

func ids(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Product.ID
	}
	return out
}

func pool() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Jackery Explorer 1000 Pro", Category: model.CategoryPower, Price: 999},
		{ID: "p2", Name: "Carhartt Winter Jacket", Category: model.CategoryClothing, Price: 129},
		{ID: "p3", Name: "Goal Zero Yeti 1500X Portable Power Station", Category: model.CategoryPower, Price: 1899},
		{ID: "p4", Name: "Bluetti AC300 Power Station", Category: model.CategoryPower, Price: 2599},
		{ID: "p5", Name: "Jackery Solar Generator 1000 Pro", Category: model.CategoryGenerators, Price: 1299},
		{ID: "p6", Name: "Cubic Mini Wood Stove", Category: model.CategoryStoves, Price: 289},
		{ID: "p7", Name: "Honda EU2200i Generator", Category: model.CategoryGenerators, Price: 1199},
		{ID: "p8", Name: "", Category: model.CategoryOther},
	}
}

func TestMatch_SameBrandAndModelBeatsUnrelated(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Jackery Explorer 1000 Power Station", Category: model.CategoryPower}
	candidates := []model.Product{
		{ID: "jackery", Name: "Jackery Explorer 1000 Pro", Category: model.CategoryPower},
		{ID: "jacket", Name: "Carhartt Winter Jacket", Category: model.CategoryClothing},
	}

	got, err := m.Match(ref, candidates, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "jackery", got[0].Product.ID)
	assert.Greater(t, got[0].Score, DefaultConfig().MinScore)
	assert.Equal(t, 1.0, got[0].Signals.TokenOverlap)
	assert.Equal(t, 1.0, got[0].Signals.Category)
	assert.Equal(t, 1.0, got[0].Signals.Brand)
	assert.Equal(t, 0.0, got[0].Signals.Price)
	assert.InDelta(t, 0.9, got[0].Score, 1e-9)
}

func TestMatch_EmptyReferenceNameYieldsNothing(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "", Category: model.CategoryOther}
	candidates := []model.Product{
		{ID: "a", Name: "Cubic Mini Wood Stove", Category: model.CategoryOther},
		{ID: "b", Name: "Renogy 100W Solar Panel Kit", Category: model.CategoryOther},
		{ID: "c", Name: "the and of", Category: ""},
	}

	got, err := m.Match(ref, candidates, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestMatch_EmptyPool(t *testing.T) {
	m := newMatcher(t)
	got, err := m.Match(model.Product{ID: "x", Name: "Honda EU2200i"}, nil, 4)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatch_NegativeLimit(t *testing.T) {
	m := newMatcher(t)
	_, err := m.Match(model.Product{ID: "x", Name: "Honda EU2200i"}, pool(), -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMatch_TiesKeepInputOrder(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Champion 3800 Watt Dual Fuel Generator", Category: model.CategoryGenerators}
	a := model.Product{ID: "a", Name: "Champion 3800 Watt Generator", Category: model.CategoryGenerators}
	b := model.Product{ID: "b", Name: "Champion 3800 Watt Generator", Category: model.CategoryGenerators}

	got, err := m.Match(ref, []model.Product{a, b}, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, got[0].Score, got[1].Score)
	assert.Equal(t, []string{"a", "b"}, ids(got))

	got, err = m.Match(ref, []model.Product{b, a}, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestMatch_CloserPriceRanksFirst(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Honda EU2200i Generator", Category: model.CategoryGenerators, Price: 100}
	far := model.Product{ID: "far", Name: "Honda EU2200i Generator", Category: model.CategoryGenerators, Price: 900}
	near := model.Product{ID: "near", Name: "Honda EU2200i Generator", Category: model.CategoryGenerators, Price: 105}

	got, err := m.Match(ref, []model.Product{far, near}, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"near", "far"}, ids(got))
	assert.InDelta(t, 1-5.0/105, got[0].Signals.Price, 1e-9)
}

func TestMatch_SelfExclusion(t *testing.T) {
	m := newMatcher(t)
	candidates := pool()
	for _, ref := range candidates {
		got, err := m.Match(ref, candidates, len(candidates))
		require.NoError(t, err)
		for _, g := range got {
			assert.NotEqual(t, ref.ID, g.Product.ID)
		}
	}
}

func TestMatch_DuplicateCandidatesAreKept(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Bluetti AC300 Power Station", Category: model.CategoryPower}
	dup := model.Product{ID: "dup", Name: "Bluetti AC300", Category: model.CategoryPower}

	got, err := m.Match(ref, []model.Product{dup, dup}, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"dup", "dup"}, ids(got))
}

func TestMatch_LimitRespected(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Jackery Explorer 1000 Power Station", Category: model.CategoryPower, Price: 1000}
	for _, limit := range []int{0, 1, 2, 3, 100} {
		got, err := m.Match(ref, pool(), limit)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), limit)
	}
	got, err := m.Match(ref, pool(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatch_ScoresBoundedAndOrdered(t *testing.T) {
	m := newMatcher(t)
	candidates := pool()
	for _, ref := range candidates {
		got, err := m.Match(ref, candidates, 100)
		require.NoError(t, err)
		for i, g := range got {
			assert.GreaterOrEqual(t, g.Score, 0.0)
			assert.LessOrEqual(t, g.Score, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Score, g.Score)
			}
		}
	}
}

func TestMatch_Deterministic(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Jackery Explorer 1000 Power Station", Category: model.CategoryPower, Price: 1000}
	first, err := m.Match(ref, pool(), 5)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := m.Match(ref, pool(), 5)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMatch_MonotonicThreshold(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Jackery Explorer 1000 Power Station", Category: model.CategoryPower, Price: 1000}
	prev := -1
	for _, floor := range []float64{0.21, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0} {
		mm, err := m.WithMinScore(floor)
		require.NoError(t, err)
		got, err := mm.Match(ref, pool(), 100)
		require.NoError(t, err)
		if prev >= 0 {
			assert.LessOrEqual(t, len(got), prev, "floor %v", floor)
		}
		prev = len(got)
	}
}

func TestMatch_CategoryAloneIsNotEnough(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Renogy Solar Panel", Category: model.CategoryPower}
	other := model.Product{ID: "x", Name: "Bluetti AC300 Station", Category: model.CategoryPower}

	got, err := m.Match(ref, []model.Product{other}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatch_MissingCandidateNameDoesNotPanic(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Honda EU2200i Generator", Category: model.CategoryGenerators, Price: 1000}
	noName := model.Product{ID: "blank", Category: model.CategoryGenerators, Price: 1000}

	got, err := m.Match(ref, []model.Product{noName}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	loose, err := m.WithMinScore(0.25)
	require.NoError(t, err)
	got, err = loose.Match(ref, []model.Product{noName}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Signals.TokenOverlap)
	assert.InDelta(t, 0.3, got[0].Score, 1e-9)
}

func TestMatch_CategoryAndEqualPriceAreNotEnough(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Renogy Solar Panel", Category: model.CategoryPower, Price: 100}
	other := model.Product{ID: "x", Name: "Bluetti Station", Category: model.CategoryPower, Price: 100}

	got, err := m.Match(ref, []model.Product{other}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	w := DefaultConfig().Weights
	assert.Greater(t, DefaultConfig().MinScore, w.Category+w.Price)
}

func TestMatch_MultiWordBrand(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Goal Zero Yeti 1500X", Category: model.CategoryOther}
	cand := model.Product{ID: "c", Name: "Goal-Zero Boulder Solar Panel", Category: model.CategoryOther}

	got, err := m.Match(ref, []model.Product{cand}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Signals.Brand)
}

func TestMatch_Stemming(t *testing.T) {
	ref := model.Product{ID: "ref", Name: "Camping Stoves"}
	cand := model.Product{ID: "c", Name: "Camp Stove"}

	plain := newMatcher(t)
	got, err := plain.Match(ref, []model.Product{cand}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	cfg := DefaultConfig()
	cfg.Stemming = true
	stemmed, err := New(cfg)
	require.NoError(t, err)
	got, err = stemmed.Match(ref, []model.Product{cand}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Signals.TokenOverlap)
}

func TestMatchDefault_UsesConfiguredLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLimit = 1
	m, err := New(cfg)
	require.NoError(t, err)

	ref := model.Product{ID: "ref", Name: "Jackery Explorer 1000 Power Station", Category: model.CategoryPower, Price: 1000}
	got, err := m.MatchDefault(ref, pool())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMatch_ConcurrentCallsAgree(t *testing.T) {
	m := newMatcher(t)
	ref := model.Product{ID: "ref", Name: "Jackery Explorer 1000 Power Station", Category: model.CategoryPower, Price: 1000}
	want, err := m.Match(ref, pool(), 5)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.Match(ref, pool(), 5)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"weights do not sum to one", func(c *Config) { c.Weights.Price = 0.3 }, false},
		{"negative weight", func(c *Config) {
			c.Weights = Weights{TokenOverlap: 0.9, Category: 0.2, Brand: 0.1, Price: -0.2}
		}, false},
		{"floor above one", func(c *Config) { c.MinScore = 1.5 }, false},
		{"floor not above category weight", func(c *Config) { c.MinScore = 0.2 }, false},
		{"negative default limit", func(c *Config) { c.DefaultLimit = -1 }, false},
		{"lexical only", func(c *Config) {
			c.Weights = Weights{TokenOverlap: 0.7, Brand: 0.3}
			c.MinScore = 0.1
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSplitName(t *testing.T) {
	assert.Equal(t, []string{"cabela", "100w", "solar", "kit"}, splitName("Cabela's 100W Solar-Kit!"))
	assert.Equal(t, []string{"eu2200i", "2"}, splitName("  EU2200i (2) "))
	assert.Empty(t, splitName("   ...  "))
}
