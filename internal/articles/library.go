package articles

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("article not found")

// Library is an immutable set of articles in file order.
type Library struct {
	articles []Article
	bySlug   map[string]int
}

type file struct {
	Articles []Article `yaml:"articles"`
}

// Load reads a YAML article file; an empty path gives the built-in articles.
func Load(path string) (*Library, error) {
	if path == "" {
		return New(Defaults())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Library, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse articles: %w", err)
	}
	return New(f.Articles)
}

// New validates list and fills defaults: max results 12, relevance ordering.
func New(list []Article) (*Library, error) {
	lib := &Library{articles: make([]Article, 0, len(list)), bySlug: make(map[string]int, len(list))}
	for i, a := range list {
		a.Slug = strings.TrimSpace(a.Slug)
		if a.Slug == "" {
			return nil, fmt.Errorf("article %d: slug is required", i)
		}
		if _, dup := lib.bySlug[a.Slug]; dup {
			return nil, fmt.Errorf("article %q: duplicate slug", a.Slug)
		}
		if a.Products.MaxResults <= 0 {
			a.Products.MaxResults = defaultMaxResults
		}
		switch a.Products.SortBy {
		case "":
			a.Products.SortBy = SortRelevance
		case SortDiscount, SortPrice, SortRelevance:
		default:
			return nil, fmt.Errorf("article %q: unknown sort %q", a.Slug, a.Products.SortBy)
		}
		lib.bySlug[a.Slug] = len(lib.articles)
		lib.articles = append(lib.articles, a)
	}
	return lib, nil
}

func (l *Library) All() []Article {
	out := make([]Article, len(l.articles))
	copy(out, l.articles)
	return out
}

func (l *Library) Featured() []Article {
	var out []Article
	for _, a := range l.articles {
		if a.Featured {
			out = append(out, a)
		}
	}
	return out
}

func (l *Library) BySlug(slug string) (Article, error) {
	i, ok := l.bySlug[slug]
	if !ok {
		return Article{}, ErrNotFound
	}
	return l.articles[i], nil
}

// keywordHits counts the product keywords of a found in the lower-cased name.
func keywordHits(a Article, lowerName string) int {
	n := 0
	for _, k := range a.Products.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" && strings.Contains(lowerName, k) {
			n++
		}
	}
	return n
}

// ForProduct lists the articles featuring a product with this name.
func (l *Library) ForProduct(name string) []Article {
	lower := strings.ToLower(name)
	var out []Article
	for _, a := range l.articles {
		if keywordHits(a, lower) > 0 {
			out = append(out, a)
		}
	}
	return out
}

// BestForProduct prefers featured articles, then the most keyword hits.
func (l *Library) BestForProduct(name string) (Article, bool) {
	found := l.ForProduct(name)
	if len(found) == 0 {
		return Article{}, false
	}
	lower := strings.ToLower(name)
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Featured != found[j].Featured {
			return found[i].Featured
		}
		return keywordHits(found[i], lower) > keywordHits(found[j], lower)
	})
	return found[0], true
}
