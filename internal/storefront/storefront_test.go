package storefront

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deals-service/internal/catalog/model"
)

func grid() []model.Deal {
	var deals []model.Deal
	for i := 0; i < 3; i++ {
		deals = append(deals,
			model.Deal{ID: fmt.Sprintf("a%d", i), CardType: model.CardSingle, Retailer: model.RetailerAmazon, SalePrice: 10},
			model.Deal{ID: fmt.Sprintf("c%d", i), CardType: model.CardSingle, Retailer: model.RetailerCabelas, SalePrice: 10},
		)
	}
	deals = append(deals,
		model.Deal{ID: "f1", Featured: true, Retailer: model.RetailerCabelas},
		model.Deal{ID: "f2", Featured: true, Retailer: model.RetailerAmazon},
	)
	return deals
}

func ids(deals []model.Deal) []string {
	out := make([]string, len(deals))
	for i, d := range deals {
		out[i] = d.ID
	}
	return out
}

func TestArrange_FeaturedFirstThenInterleaved(t *testing.T) {
	got := Arrange(grid(), 42)
	require.Len(t, got, 8)
	assert.Equal(t, []string{"f1", "f2"}, ids(got[:2]))
	for i, d := range got[2:] {
		want := model.RetailerAmazon
		if i%2 == 1 {
			want = model.RetailerCabelas
		}
		assert.Equal(t, want, d.Retailer, "position %d", i+2)
	}
	assert.ElementsMatch(t, ids(grid()), ids(got))
}

func TestArrange_StablePerSeed(t *testing.T) {
	assert.Equal(t, ids(Arrange(grid(), 7)), ids(Arrange(grid(), 7)))

	base := ids(Arrange(grid(), 1))
	differs := false
	for seed := uint64(2); seed < 20 && !differs; seed++ {
		differs = fmt.Sprint(ids(Arrange(grid(), seed))) != fmt.Sprint(base)
	}
	assert.True(t, differs, "no seed changed the order")
}

func TestArrange_Empty(t *testing.T) {
	assert.Empty(t, Arrange(nil, 1))
}

func TestPricePolicy_Rules(t *testing.T) {
	p := PricePolicy{Enabled: true, Seed: 9}

	assert.True(t, p.Hidden(model.Deal{ID: "x", CardType: model.CardSingle}), "no price is always hidden")
	assert.False(t, PricePolicy{}.Hidden(model.Deal{ID: "x", SalePrice: 500}), "disabled policy shows prices")
	assert.False(t, p.Hidden(model.Deal{ID: "x", CardType: model.CardComparison, AmazonPrice: 900, CabelasPrice: 950}))

	bigDiscount := model.Deal{ID: "d", CardType: model.CardSingle, Category: model.CategoryStoves, SalePrice: 50, RegularPrice: 100}
	for seed := uint64(0); seed < 50; seed++ {
		assert.False(t, PricePolicy{Enabled: true, Seed: seed}.Hidden(bigDiscount))
	}

	d := model.Deal{ID: "stable", CardType: model.CardSingle, SalePrice: 150}
	assert.Equal(t, p.Hidden(d), p.Hidden(d))
}

func TestPricePolicy_TierRates(t *testing.T) {
	p := PricePolicy{Enabled: true, Seed: 3}
	rate := func(tmpl model.Deal) float64 {
		hidden := 0
		const n = 4000
		for i := 0; i < n; i++ {
			d := tmpl
			d.ID = fmt.Sprintf("deal-%d", i)
			if p.Hidden(d) {
				hidden++
			}
		}
		return float64(hidden) / n
	}
	assert.InDelta(t, 0.8, rate(model.Deal{CardType: model.CardSingle, SalePrice: 900}), 0.04)
	assert.InDelta(t, 0.65, rate(model.Deal{CardType: model.CardSingle, SalePrice: 50, Category: model.CategoryPower}), 0.04)
	assert.InDelta(t, 0.5, rate(model.Deal{CardType: model.CardSingle, SalePrice: 150, Category: model.CategoryCamping}), 0.04)
	assert.InDelta(t, 0.35, rate(model.Deal{CardType: model.CardSingle, SalePrice: 20, Category: model.CategoryCamping}), 0.04)
}

func TestPricePolicy_Apply(t *testing.T) {
	views := PricePolicy{Enabled: true}.Apply([]model.Deal{
		{ID: "free", CardType: model.CardSingle},
		{ID: "cmp", CardType: model.CardComparison, AmazonPrice: 10, CabelasPrice: 12},
	})
	require.Len(t, views, 2)
	assert.True(t, views[0].PriceHidden)
	assert.False(t, views[1].PriceHidden)
	assert.Equal(t, "cmp", views[1].ID)
}

func TestLinks(t *testing.T) {
	l := Links{AmazonTag: "offgriddisc-20", CabelasTag: "offgrid-cabelas"}

	assert.Equal(t, "https://www.amazon.com/s?k=Honda%20EU2200i&tag=offgriddisc-20", l.For("Honda EU2200i", "Amazon"))
	assert.Equal(t, "https://www.cabelas.com/shop/en/search?q=Cubic%20Mini%20Wood%20Stove&affiliate=offgrid-cabelas", l.For("Cubic Mini Wood Stove", "cabelas"))
	assert.Equal(t, "https://www.planarheaters.com/products?search=2D%20Heater", l.For("2D Heater", "Planar"))
	assert.Equal(t, "https://www.mec.ca/en/search?q=stove", l.For("stove", "MEC"))
	assert.Equal(t, "https://www.rei.com/search?q=tent%20%26%20tarp", l.For("tent & tarp", "rei"))
	assert.Equal(t, l.For("stove", "amazon"), l.For("stove", "walmart"))
	assert.Equal(t, "https://www.amazon.com/s?k=stove", Links{}.For("stove", "amazon"))

	retailers := ParseRetailers("Amazon, REI 🛒, Cabela's,  ")
	assert.Equal(t, []string{"Amazon", "REI", "Cabela's"}, retailers)
	all := l.ForAll("stove", retailers)
	assert.Len(t, all, 3)
	assert.Equal(t, l.For("stove", "rei"), all["REI"])
}
