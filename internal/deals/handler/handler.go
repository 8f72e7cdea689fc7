// Package handler exposes the deal catalog, similar-deal lookups and the
// buying-guide articles over HTTP.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"deals-service/internal/articles"
	"deals-service/internal/catalog"
	"deals-service/internal/catalog/feed"
	"deals-service/internal/catalog/model"
	"deals-service/internal/catalog/store"
	"deals-service/internal/fileio"
	"deals-service/internal/storefront"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Catalog is what the handlers need from catalog.Service.
type Catalog interface {
	All() []model.Deal
	Get(id string) (model.Deal, error)
	Info() store.Info
	DefaultLimit() int
	Similar(id string, q catalog.SimilarQuery) ([]catalog.SimilarDeal, error)
	Refresh(ctx context.Context) (catalog.Result, error)
	Load(ctx context.Context, sheets feed.Sheets, source string) (catalog.Result, error)
}

type Options struct {
	Articles    *articles.Library
	Prices      storefront.PricePolicy
	Links       storefront.Links
	DisplaySeed uint64
	MaxUploadMB int
}

type Handler struct {
	cat  Catalog
	opts Options
}

func New(cat Catalog, opts Options) *Handler {
	if opts.Articles == nil {
		opts.Articles, _ = articles.New(articles.Defaults())
	}
	return &Handler{cat: cat, opts: opts}
}

type dealPage struct {
	Total   int                   `json:"total"`
	Offset  int                   `json:"offset"`
	Limit   int                   `json:"limit"`
	Seed    uint64                `json:"seed"`
	Catalog store.Info            `json:"catalog"`
	Deals   []storefront.DealView `json:"deals"`
}

// ListDeals serves GET /deals?category=&seed=&offset=&limit=.
func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	seed, err := toUint(q.Get("seed"), h.opts.DisplaySeed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := atoi(q.Get("offset"), 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := atoi(q.Get("limit"), defaultPageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if offset < 0 || limit < 0 {
		writeError(w, r, errBadParamf("offset and limit must be >= 0"))
		return
	}
	limit = min(limit, maxPageSize)

	deals := storefront.Arrange(h.cat.All(), seed)
	if c := strings.TrimSpace(q.Get("category")); c != "" && !strings.EqualFold(c, "all") {
		want := model.ParseCategory(c)
		filtered := deals[:0]
		for _, d := range deals {
			if d.Category == want {
				filtered = append(filtered, d)
			}
		}
		deals = filtered
	}

	total := len(deals)
	start := min(offset, total)
	end := min(start+limit, total)
	writeJSON(w, http.StatusOK, dealPage{
		Total:   total,
		Offset:  offset,
		Limit:   limit,
		Seed:    seed,
		Catalog: h.cat.Info(),
		Deals:   h.opts.Prices.Apply(deals[start:end]),
	})
}

// GetDeal serves GET /deals/{id}.
func (h *Handler) GetDeal(w http.ResponseWriter, r *http.Request) {
	d, err := h.cat.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.opts.Prices.Apply([]model.Deal{d})[0])
}

type similarResponse struct {
	ID      string                `json:"id"`
	Limit   int                   `json:"limit"`
	Matches []catalog.SimilarDeal `json:"matches"`
}

// SimilarDeals serves GET /deals/{id}/similar?limit=&min_score=.
func (h *Handler) SimilarDeals(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()
	limit, err := atoi(q.Get("limit"), h.cat.DefaultLimit())
	if err != nil {
		writeError(w, r, err)
		return
	}
	minScore, err := toFloat(q.Get("min_score"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	start := time.Now()
	matches, err := h.cat.Similar(id, catalog.SimilarQuery{Limit: limit, MinScore: minScore})
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Debug().Str("id", id).Int("limit", limit).Int("matches", len(matches)).Dur("dur", time.Since(start)).Msg("similar deals")
	writeJSON(w, http.StatusOK, similarResponse{ID: id, Limit: limit, Matches: matches})
}

type dealArticlesResponse struct {
	Best     *articles.Article  `json:"best,omitempty"`
	Articles []articles.Article `json:"articles"`
}

// DealArticles serves GET /deals/{id}/articles.
func (h *Handler) DealArticles(w http.ResponseWriter, r *http.Request) {
	d, err := h.cat.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := dealArticlesResponse{Articles: h.opts.Articles.ForProduct(d.Name)}
	if resp.Articles == nil {
		resp.Articles = []articles.Article{}
	}
	if best, ok := h.opts.Articles.BestForProduct(d.Name); ok {
		resp.Best = &best
	}
	writeJSON(w, http.StatusOK, resp)
}

// UploadFeed serves POST /feed: multipart "amazon" (required) and "cabelas"
// spreadsheets replace the catalog.
func (h *Handler) UploadFeed(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	maxMem := int64(h.opts.MaxUploadMB) << 20
	if maxMem <= 0 {
		maxMem = 32 << 20
	}
	if err := r.ParseMultipartForm(maxMem); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, err)
			return
		}
		writeError(w, r, errBadParamf("bad multipart form: %v", err))
		return
	}

	amazon, amazonName, err := readUpload(r, "amazon")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if amazon == nil {
		writeError(w, r, errBadParamf("missing file field %q", "amazon"))
		return
	}
	cabelas, _, err := readUpload(r, "cabelas")
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.cat.Load(r.Context(), feed.Upload(amazon, cabelas), "upload:"+amazonName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// readUpload returns nil sheets when the field is absent.
func readUpload(r *http.Request, field string) ([]fileio.Sheet, string, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", errBadParamf("%s: %v", field, err)
	}
	defer f.Close()
	sheets, err := fileio.ReadAnySheets(f, hdr.Filename, 1)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", errBadParam, field, err)
	}
	return sheets, hdr.Filename, nil
}

// RefreshFeed serves POST /feed/refresh.
func (h *Handler) RefreshFeed(w http.ResponseWriter, r *http.Request) {
	res, err := h.cat.Refresh(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListArticles serves GET /articles?featured=.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	list := h.opts.Articles.All()
	if toBool(r.URL.Query().Get("featured"), false) {
		list = h.opts.Articles.Featured()
	}
	if list == nil {
		list = []articles.Article{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": list})
}

type articleResponse struct {
	Article  articles.Article      `json:"article"`
	Products []storefront.DealView `json:"products"`
}

// GetArticle serves GET /articles/{slug} with the deals it features.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	a, err := h.opts.Articles.BySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	products := articles.SelectProducts(a, h.cat.All())
	writeJSON(w, http.StatusOK, articleResponse{Article: a, Products: h.opts.Prices.Apply(products)})
}

// AffiliateLink serves GET /affiliate?product=&retailer= and, with
// retailers="Amazon, REI", the links for each listed retailer.
func (h *Handler) AffiliateLink(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	product := strings.TrimSpace(q.Get("product"))
	if product == "" {
		writeError(w, r, errBadParamf("product is required"))
		return
	}
	if list := q.Get("retailers"); list != "" {
		writeJSON(w, http.StatusOK, map[string]any{"links": h.opts.Links.ForAll(product, storefront.ParseRetailers(list))})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": h.opts.Links.For(product, q.Get("retailer"))})
}
