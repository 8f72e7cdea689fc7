package pairing

import "sort"

// index over the Cabela's side: model keys, normalized names and a trigram
// inverted index for fuzzy candidates. Values are positions in the input slice.
type index struct {
	byKey  map[string][]int
	byNorm map[string][]int
	inv    map[string]map[string]struct{} // trigram -> set(normalized name)
}

func buildIndex(items []item) *index {
	idx := &index{
		byKey:  make(map[string][]int),
		byNorm: make(map[string][]int),
		inv:    make(map[string]map[string]struct{}),
	}
	for i, it := range items {
		if it.key != "" {
			idx.byKey[it.key] = append(idx.byKey[it.key], i)
		}
		if it.norm == "" {
			continue
		}
		idx.byNorm[it.norm] = append(idx.byNorm[it.norm], i)
		for g := range trigrams(it.norm) {
			bucket, ok := idx.inv[g]
			if !ok {
				bucket = make(map[string]struct{})
				idx.inv[g] = bucket
			}
			bucket[it.norm] = struct{}{}
		}
	}
	return idx
}

func trigrams(s string) map[string]struct{} {
	m := make(map[string]struct{})
	if s == "" {
		return m
	}
	r := []rune(" " + s + " ")
	if len(r) < 3 {
		m[string(r)] = struct{}{}
		return m
	}
	for i := 0; i+3 <= len(r); i++ {
		m[string(r[i:i+3])] = struct{}{}
	}
	return m
}

// candidates returns every indexed name sharing a trigram with norm, sorted.
func (idx *index) candidates(norm string) []string {
	if norm == "" {
		return nil
	}
	seen := make(map[string]struct{})
	for g := range trigrams(norm) {
		for nn := range idx.inv[g] {
			seen[nn] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for nn := range seen {
		out = append(out, nn)
	}
	sort.Strings(out)
	return out
}

func bestSimilarity(a, b string) float64 {
	return max(similarity(a, b), similarity(tokenSort(a), tokenSort(b)))
}
