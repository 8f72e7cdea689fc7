// Package store keeps the live catalog in memory and snapshots it to SQLite.
package store

import (
	"errors"
	"sync"
	"time"

	"deals-service/internal/catalog/model"
)

var ErrNotFound = errors.New("deal not found")

// Info describes the catalog currently served.
type Info struct {
	Count     int       `json:"count"`
	Source    string    `json:"source"`
	Version   uint64    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Memory is the live catalog. Replace swaps the whole list at once, so readers
// never observe a half-loaded feed.
type Memory struct {
	mu       sync.RWMutex
	deals    []model.Deal
	products []model.Product
	byID     map[string]int
	info     Info
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{byID: map[string]int{}, now: time.Now}
}

// Replace installs deals as the new catalog and returns its Info.
// Later duplicates of an ID are dropped.
func (m *Memory) Replace(deals []model.Deal, source string) Info {
	kept := make([]model.Deal, 0, len(deals))
	byID := make(map[string]int, len(deals))
	for _, d := range deals {
		if _, dup := byID[d.ID]; dup {
			continue
		}
		byID[d.ID] = len(kept)
		kept = append(kept, d)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.deals = kept
	m.products = model.Products(kept)
	m.byID = byID
	m.info = Info{Count: len(kept), Source: source, Version: m.info.Version + 1, UpdatedAt: m.now()}
	return m.info
}

// All returns a copy of the catalog in feed order.
func (m *Memory) All() []model.Deal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Deal, len(m.deals))
	copy(out, m.deals)
	return out
}

// Products returns the matcher view of the catalog. The slice is shared; do not modify.
func (m *Memory) Products() []model.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.products
}

func (m *Memory) Get(id string) (model.Deal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.byID[id]
	if !ok {
		return model.Deal{}, ErrNotFound
	}
	return m.deals[i], nil
}

func (m *Memory) Info() Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.info
}
