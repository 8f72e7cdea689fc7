package serverhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deals-service/internal/catalog"
	"deals-service/internal/catalog/feed"
	"deals-service/internal/catalog/store"
	"deals-service/internal/config"
	dealsHnd "deals-service/internal/deals/handler"
	"deals-service/internal/similarity"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	m, err := similarity.New(similarity.DefaultConfig())
	require.NoError(t, err)
	svc := catalog.New(store.NewMemory(), catalog.Options{Matches: similarity.NewCache(m, 8, time.Minute)})
	_, err = svc.Load(context.Background(), feed.Sheets{}, "test")
	require.NoError(t, err)

	cfg := config.Config{AllowOrigins: []string{"*"}, MaxUploadMB: 1}
	return NewRouter(cfg, zerolog.Nop(), dealsHnd.New(svc, dealsHnd.Options{}), svc)
}

func TestRouter_Health(t *testing.T) {
	r := newRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/deals/sample-1/similar", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string                `json:"status"`
		Catalog store.Info            `json:"catalog"`
		Matches similarity.CacheStats `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "sample", body.Catalog.Source)
	assert.Equal(t, len(feed.SampleDeals()), body.Catalog.Count)
	assert.Equal(t, uint64(1), body.Matches.Misses)
	assert.Equal(t, 1, body.Matches.Entries)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_DealsMounted(t *testing.T) {
	r := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/deals", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"source":"sample"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/deals/sample-7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cubic Mini Wood Stove")
}

func TestRouter_OversizedUpload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/feed", strings.NewReader(strings.Repeat("x", 2<<20)))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRouter_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/deals", nil)
	req.Header.Set("Origin", "https://offgrid.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}
