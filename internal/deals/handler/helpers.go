package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"deals-service/internal/articles"
	"deals-service/internal/catalog"
	"deals-service/internal/catalog/feed"
	"deals-service/internal/catalog/store"
	"deals-service/internal/similarity"
)

var errBadParam = errors.New("bad parameter")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

// writeError maps package sentinels onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, errBadParam), errors.Is(err, similarity.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, articles.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrRefreshThrottled):
		status = http.StatusTooManyRequests
	case errors.Is(err, feed.ErrNoSource):
		status = http.StatusConflict
	case errors.As(err, &maxErr):
		status = http.StatusRequestEntityTooLarge
	}
	if status >= 500 {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func atoi(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errBadParamf("%q is not an integer", s)
	}
	return i, nil
}

func toFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errBadParamf("%q is not a number", s)
	}
	return &f, nil
}

func toUint(s string, def uint64) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errBadParamf("%q is not a seed", s)
	}
	return u, nil
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func errBadParamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadParam, fmt.Sprintf(format, args...))
}
