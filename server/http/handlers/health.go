package handlers

import (
	"encoding/json"
	"net/http"

	"deals-service/internal/catalog"
)

type StatusSource interface {
	Status() catalog.Status
}

type health struct {
	State string `json:"status"`
	catalog.Status
}

// Health answers liveness checks with the catalog and match cache counters.
func Health(src StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(health{State: "ok", Status: src.Status()})
	}
}
