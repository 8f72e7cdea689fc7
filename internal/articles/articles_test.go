package articles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deals-service/internal/catalog/model"
)

func defaultLib(t *testing.T) *Library {
	t.Helper()
	lib, err := Load("")
	require.NoError(t, err)
	return lib
}

func TestLibrary_Defaults(t *testing.T) {
	lib := defaultLib(t)
	assert.Len(t, lib.All(), 2)
	assert.Len(t, lib.Featured(), 2)

	a, err := lib.BySlug("top-camping-stoves-under-100")
	require.NoError(t, err)
	assert.Equal(t, SortPrice, a.Products.SortBy)

	_, err = lib.BySlug("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParse_DefaultsAndValidation(t *testing.T) {
	lib, err := Parse([]byte(`
articles:
  - slug: solar-panels
    title: Best Solar Panels
    products:
      keywords: [solar panel]
`))
	require.NoError(t, err)
	a, err := lib.BySlug("solar-panels")
	require.NoError(t, err)
	assert.Equal(t, 12, a.Products.MaxResults)
	assert.Equal(t, SortRelevance, a.Products.SortBy)

	_, err = Parse([]byte("articles:\n  - title: no slug\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("articles:\n  - slug: a\n  - slug: a\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("articles:\n  - slug: a\n    products: {sort_by: rating}\n"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("articles:\n  - slug: lanterns\n    featured: true\n"), 0o644))
	lib, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, lib.Featured(), 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestForProduct(t *testing.T) {
	lib := defaultLib(t)

	found := lib.ForProduct("Planar 2D Diesel Heater 12V")
	require.Len(t, found, 1)
	assert.Equal(t, "best-diesel-heaters-2025", found[0].Slug)

	best, ok := lib.BestForProduct("Coleman Classic Camping Stove")
	require.True(t, ok)
	assert.Equal(t, "top-camping-stoves-under-100", best.Slug)

	_, ok = lib.BestForProduct("Honda EU2200i Generator")
	assert.False(t, ok)
}

func TestBestForProduct_PrefersFeaturedThenHits(t *testing.T) {
	lib, err := New([]Article{
		{Slug: "one-hit", Featured: true, Products: Products{Keywords: []string{"stove"}}},
		{Slug: "two-hits", Products: Products{Keywords: []string{"stove", "wood"}}},
		{Slug: "three-hits", Featured: true, Products: Products{Keywords: []string{"stove", "wood", "mini"}}},
	})
	require.NoError(t, err)
	best, ok := lib.BestForProduct("Cubic Mini Wood Stove")
	require.True(t, ok)
	assert.Equal(t, "three-hits", best.Slug)
}

func stoves() []model.Deal {
	return []model.Deal{
		{ID: "1", Name: "Coleman Classic Camping Stove", SalePrice: 59.99, DiscountPercent: 10},
		{ID: "2", Name: "Cubic Mini Wood Stove", SalePrice: 289.99, DiscountPercent: 17},
		{ID: "3", Name: "Jetboil Flash Cooking System"},
		{ID: "4", Name: "Camp Chef Outdoor Cooking Stove", DiscountPercent: 25},
		{ID: "5", Name: "Bluetti AC300 Power Station", SalePrice: 10},
	}
}

func TestSelectProducts_Sorts(t *testing.T) {
	byPrice := Article{Products: Products{Keywords: []string{"stove"}, SortBy: SortPrice, MaxResults: 10}}
	assert.Equal(t, []string{"1", "2", "4"}, dealIDs(SelectProducts(byPrice, stoves())))

	byDiscount := byPrice
	byDiscount.Products.SortBy = SortDiscount
	assert.Equal(t, []string{"4", "2", "1"}, dealIDs(SelectProducts(byDiscount, stoves())))

	relevance := Article{Products: Products{Keywords: []string{"camping stove", "stove", "outdoor cooking"}, SortBy: SortRelevance, MaxResults: 2}}
	got := dealIDs(SelectProducts(relevance, stoves()))
	require.Len(t, got, 2)
	// two keyword hits each beat the single hit of the wood stove
	assert.ElementsMatch(t, []string{"1", "4"}, got)
}

func TestSelectProducts_NoKeywords(t *testing.T) {
	assert.Empty(t, SelectProducts(Article{}, stoves()))
}

func dealIDs(deals []model.Deal) []string {
	out := make([]string, len(deals))
	for i, d := range deals {
		out[i] = d.ID
	}
	return out
}
