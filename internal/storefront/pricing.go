package storefront

import (
	"math/rand/v2"

	"deals-service/internal/catalog/model"
)

var premiumCategories = map[model.Category]struct{}{
	model.CategoryPower:      {},
	model.CategoryGenerators: {},
	model.CategoryBatteries:  {},
	model.CategoryTools:      {},
}

// PricePolicy decides which single-deal prices are shown as "click for price".
// The decision per deal is stable for a given Seed.
type PricePolicy struct {
	Enabled bool
	Seed    uint64
}

// Hidden reports whether d's price is withheld. A deal without a price is always hidden.
func (p PricePolicy) Hidden(d model.Deal) bool {
	price := d.CurrentPrice()
	if price <= 0 {
		return true
	}
	if !p.Enabled || d.CardType == model.CardComparison {
		return false
	}

	draw := rand.New(rand.NewPCG(p.Seed, hash64(d.ID))).Float64()
	switch {
	case price > 300:
		return draw < 0.8
	case isPremium(d.Category):
		return draw < 0.65
	case discountOf(d) > 30:
		return false
	case price > 100:
		return draw < 0.5
	}
	return draw < 0.35
}

func isPremium(c model.Category) bool {
	_, ok := premiumCategories[c]
	return ok
}

func discountOf(d model.Deal) float64 {
	if d.RegularPrice > 0 {
		return (d.RegularPrice - d.SalePrice) / d.RegularPrice * 100
	}
	return float64(d.DiscountPercent)
}

// DealView is a deal as sent to the page.
type DealView struct {
	model.Deal
	PriceHidden bool `json:"priceHidden"`
}

// Apply renders deals through the policy; hidden single prices are zeroed.
func (p PricePolicy) Apply(deals []model.Deal) []DealView {
	out := make([]DealView, len(deals))
	for i, d := range deals {
		v := DealView{Deal: d, PriceHidden: p.Hidden(d)}
		if v.PriceHidden && d.CardType != model.CardComparison {
			v.SalePrice = 0
		}
		out[i] = v
	}
	return out
}
