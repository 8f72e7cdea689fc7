// Package pairing merges single-retailer deals that describe the same product
// into comparison cards.
package pairing

import (
	"math"

	"github.com/google/uuid"

	"deals-service/internal/catalog/model"
)

// DefaultThreshold is the minimum fuzzy name similarity for a pair.
const DefaultThreshold = 0.85

var comparisonNS = uuid.MustParse("6f1c3c52-8d0e-4f7a-9a51-3c2b4d0e7a10")

// Method tells how a pair was found.
type Method string

const (
	MethodModelKey Method = "model_key"
	MethodExact    Method = "exact"
	MethodFuzzy    Method = "fuzzy"
)

// Pair is one merged Amazon/Cabela's couple.
type Pair struct {
	Deal   model.Deal
	Method Method
	Score  float64
}

// Result keeps the input order within each list.
type Result struct {
	Pairs   []Pair
	Amazon  []model.Deal
	Cabelas []model.Deal
}

// Deals flattens r: comparisons, then Amazon singles, then Cabela's singles.
func (r Result) Deals() []model.Deal {
	out := make([]model.Deal, 0, len(r.Pairs)+len(r.Amazon)+len(r.Cabelas))
	for _, p := range r.Pairs {
		out = append(out, p.Deal)
	}
	out = append(out, r.Amazon...)
	return append(out, r.Cabelas...)
}

type item struct {
	deal model.Deal
	key  string
	norm string
	nums []string
}

func newItem(d model.Deal) item {
	n := normalize(d.Name)
	return item{deal: d, key: modelKey(d.Name), norm: n, nums: modelNumbers(n)}
}

// Run pairs amazon against cabelas. Every deal is used at most once; a pair
// needs either the same model key or a fuzzy score >= threshold, and in both
// cases the model numbers of the two names must agree.
func Run(amazon, cabelas []model.Deal, threshold float64) Result {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	bs := make([]item, len(cabelas))
	for i, d := range cabelas {
		bs[i] = newItem(d)
	}
	idx := buildIndex(bs)
	used := make([]bool, len(bs))

	var res Result
	for _, d := range amazon {
		a := newItem(d)
		j, method, score := match(a, bs, idx, used, threshold)
		if j < 0 {
			res.Amazon = append(res.Amazon, d)
			continue
		}
		used[j] = true
		res.Pairs = append(res.Pairs, Pair{Deal: Merge(d, bs[j].deal), Method: method, Score: score})
	}
	for j, b := range bs {
		if !used[j] {
			res.Cabelas = append(res.Cabelas, b.deal)
		}
	}
	return res
}

func match(a item, bs []item, idx *index, used []bool, threshold float64) (int, Method, float64) {
	// (1) model key
	if a.key != "" {
		for _, j := range idx.byKey[a.key] {
			if !used[j] && equalNumbers(a.nums, bs[j].nums) {
				return j, MethodModelKey, 1
			}
		}
	}
	if a.norm == "" {
		return -1, "", 0
	}
	// (2) same normalized name
	if j := firstUnused(idx.byNorm[a.norm], used); j >= 0 {
		return j, MethodExact, 1
	}
	// (3) fuzzy
	bestName, best := "", -1.0
	for _, cand := range idx.candidates(a.norm) {
		if firstUnused(idx.byNorm[cand], used) < 0 {
			continue
		}
		if !equalNumbers(a.nums, modelNumbers(cand)) {
			continue
		}
		if s := bestSimilarity(a.norm, cand); s > best {
			best, bestName = s, cand
		}
	}
	if bestName == "" || best < threshold {
		return -1, "", 0
	}
	return firstUnused(idx.byNorm[bestName], used), MethodFuzzy, best
}

func firstUnused(list []int, used []bool) int {
	for _, j := range list {
		if !used[j] {
			return j
		}
	}
	return -1
}

// Merge builds the comparison card for a and c. Amazon supplies the name,
// image, end date and category; the cheaper known price wins.
func Merge(a, c model.Deal) model.Deal {
	ap, cp := a.SalePrice, c.SalePrice
	d := model.Deal{
		ID:           uuid.NewSHA1(comparisonNS, []byte(a.ID+"|"+c.ID)).String(),
		Name:         a.Name,
		ImageURL:     firstNonEmpty(a.ImageURL, c.ImageURL),
		Category:     a.Category,
		Featured:     a.Featured || c.Featured,
		EndDate:      firstNonEmpty(a.EndDate, c.EndDate),
		CardType:     model.CardComparison,
		AmazonPrice:  ap,
		CabelasPrice: cp,
		AmazonLink:   a.Link,
		CabelasLink:  c.Link,
		BestRetailer: BestRetailer(ap, cp),
	}
	if !d.Category.Known() {
		d.Category = c.Category
	}
	if ap > 0 && cp > 0 {
		d.Savings = math.Round(math.Abs(ap-cp)*100) / 100
	}
	return d
}

// BestRetailer picks the cheaper side; an unknown price never wins.
func BestRetailer(amazonPrice, cabelasPrice float64) model.Retailer {
	switch {
	case amazonPrice > 0 && (cabelasPrice <= 0 || amazonPrice < cabelasPrice):
		return model.RetailerAmazon
	case cabelasPrice > 0:
		return model.RetailerCabelas
	}
	return model.RetailerAmazon
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
