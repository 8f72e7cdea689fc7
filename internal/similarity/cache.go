package similarity

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"deals-service/internal/catalog/model"
)

type cacheKey struct {
	ref   string
	fp    uint64
	limit int
}

// CacheStats is a point-in-time view of the cache counters.
type CacheStats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// Cache memoizes Matcher results. Keys cover the reference and a fingerprint of
// every candidate's id, name, category and price, so any feed update misses.
// Entries are evicted least-recently-used beyond capacity and expire after ttl.
type Cache struct {
	matcher *Matcher
	lru     *expirable.LRU[cacheKey, []Match]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewCache wraps m. A capacity <= 0 disables caching; a ttl <= 0 means entries never expire.
func NewCache(m *Matcher, capacity int, ttl time.Duration) *Cache {
	c := &Cache{matcher: m}
	if capacity > 0 {
		c.lru = expirable.NewLRU[cacheKey, []Match](capacity, nil, ttl)
	}
	return c
}

func (c *Cache) Matcher() *Matcher { return c.matcher }

// Match has the same contract as Matcher.Match.
func (c *Cache) Match(ref model.Product, candidates []model.Product, limit int) ([]Match, error) {
	if c.lru == nil || limit < 0 {
		return c.matcher.Match(ref, candidates, limit)
	}
	key := cacheKey{ref: ref.ID, fp: fingerprint(ref, candidates), limit: limit}
	if cached, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return cloneMatches(cached), nil
	}
	c.misses.Add(1)

	matches, err := c.matcher.Match(ref, candidates, limit)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, cloneMatches(matches))
	return matches, nil
}

// Purge drops every entry, e.g. after the catalog was replaced.
func (c *Cache) Purge() {
	if c.lru != nil {
		c.lru.Purge()
	}
}

func (c *Cache) Stats() CacheStats {
	st := CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	if c.lru != nil {
		st.Entries = c.lru.Len()
	}
	return st
}

func cloneMatches(in []Match) []Match {
	out := make([]Match, len(in))
	copy(out, in)
	return out
}

// fingerprint is FNV-1a over the reference and the ordered candidate list.
func fingerprint(ref model.Product, candidates []model.Product) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(p model.Product) {
		h.Write([]byte(p.ID))
		h.Write([]byte{0})
		h.Write([]byte(p.Name))
		h.Write([]byte{0})
		h.Write([]byte(p.Category))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p.Price))
		h.Write(buf[:])
	}
	write(ref)
	for _, c := range candidates {
		write(c)
	}
	return h.Sum64()
}
