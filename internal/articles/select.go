package articles

import (
	"math"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"deals-service/internal/catalog/model"
)

// SelectProducts returns the deals featured by a: deals whose name contains a
// product keyword, ordered by the article's SortBy and cut to MaxResults.
func SelectProducts(a Article, deals []model.Deal) []model.Deal {
	type hit struct {
		deal model.Deal
		hits int
		rank int
	}
	var found []hit
	for _, d := range deals {
		lower := strings.ToLower(d.Name)
		if n := keywordHits(a, lower); n > 0 {
			found = append(found, hit{deal: d, hits: n, rank: fuzzyRank(a.Products.Keywords, d.Name)})
		}
	}

	switch a.Products.SortBy {
	case SortDiscount:
		sort.SliceStable(found, func(i, j int) bool {
			return found[i].deal.DiscountPercent > found[j].deal.DiscountPercent
		})
	case SortPrice:
		sort.SliceStable(found, func(i, j int) bool {
			return sortPrice(found[i].deal) < sortPrice(found[j].deal)
		})
	default:
		sort.SliceStable(found, func(i, j int) bool {
			if found[i].hits != found[j].hits {
				return found[i].hits > found[j].hits
			}
			return found[i].rank < found[j].rank
		})
	}

	limit := a.Products.MaxResults
	if limit <= 0 {
		limit = defaultMaxResults
	}
	out := make([]model.Deal, 0, min(limit, len(found)))
	for _, h := range found {
		if len(out) == limit {
			break
		}
		out = append(out, h.deal)
	}
	return out
}

// sortPrice puts deals without any known price last.
func sortPrice(d model.Deal) float64 {
	if p := d.CurrentPrice(); p > 0 {
		return p
	}
	if d.RegularPrice > 0 {
		return d.RegularPrice
	}
	return math.MaxFloat64
}

// fuzzyRank is the best Levenshtein rank of any keyword as a fuzzy
// subsequence of name; lower is closer, MaxInt when none matches.
func fuzzyRank(keywords []string, name string) int {
	best := math.MaxInt
	for _, k := range keywords {
		if r := fuzzy.RankMatchNormalizedFold(k, name); r >= 0 && r < best {
			best = r
		}
	}
	return best
}
