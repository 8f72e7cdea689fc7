// Package storefront holds the presentation policies of the deal grid:
// display order, price visibility and affiliate links.
package storefront

import (
	"hash/fnv"
	"math/rand/v2"
	"sort"

	"deals-service/internal/catalog/model"
)

func hash64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Arrange returns the grid order for one visitor seed: featured deals first in
// feed order, then the rest shuffled per retailer and interleaved so one
// retailer never fills a whole row. The same seed always yields the same order.
func Arrange(deals []model.Deal, seed uint64) []model.Deal {
	out := make([]model.Deal, 0, len(deals))
	groups := make(map[model.Retailer][]model.Deal)
	for _, d := range deals {
		if d.Featured {
			out = append(out, d)
			continue
		}
		r := d.DisplayRetailer()
		groups[r] = append(groups[r], d)
	}

	retailers := make([]model.Retailer, 0, len(groups))
	longest := 0
	for r, g := range groups {
		retailers = append(retailers, r)
		rng := rand.New(rand.NewPCG(seed, hash64(string(r))))
		rng.Shuffle(len(g), func(i, j int) { g[i], g[j] = g[j], g[i] })
		longest = max(longest, len(g))
	}
	sort.Slice(retailers, func(i, j int) bool { return retailers[i] < retailers[j] })

	for i := 0; i < longest; i++ {
		for _, r := range retailers {
			if g := groups[r]; i < len(g) {
				out = append(out, g[i])
			}
		}
	}
	return out
}
