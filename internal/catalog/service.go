// Package catalog owns the live deal catalog: loading it from the feed,
// falling back to the last snapshot, and answering similar-deal queries.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"deals-service/internal/catalog/feed"
	"deals-service/internal/catalog/model"
	"deals-service/internal/catalog/store"
	"deals-service/internal/similarity"
)

var ErrRefreshThrottled = errors.New("refresh throttled")

// Options wires the optional collaborators of a Service.
type Options struct {
	Source          feed.Source
	Snapshot        *store.Snapshot
	Matches         *similarity.Cache
	RefreshInterval time.Duration
	PairThreshold   float64
}

// Result reports one catalog load.
type Result struct {
	Info  store.Info `json:"info"`
	Stats feed.Stats `json:"stats"`
}

// SimilarDeal is a ranked catalog entry returned for a reference deal.
type SimilarDeal struct {
	Deal    model.Deal         `json:"deal"`
	Score   float64            `json:"score"`
	Signals similarity.Signals `json:"signals"`
}

type Service struct {
	mem     *store.Memory
	opts    Options
	limiter *rate.Limiter
	loadMu  sync.Mutex
}

func New(mem *store.Memory, opts Options) *Service {
	every := rate.Inf
	if opts.RefreshInterval > 0 {
		every = rate.Every(opts.RefreshInterval)
	}
	return &Service{mem: mem, opts: opts, limiter: rate.NewLimiter(every, 1)}
}

func (s *Service) All() []model.Deal { return s.mem.All() }

func (s *Service) Get(id string) (model.Deal, error) { return s.mem.Get(id) }

func (s *Service) Info() store.Info { return s.mem.Info() }

// Status is the health view of the catalog and the match cache.
type Status struct {
	Catalog store.Info            `json:"catalog"`
	Matches similarity.CacheStats `json:"matches"`
}

func (s *Service) Status() Status {
	st := Status{Catalog: s.mem.Info()}
	if s.opts.Matches != nil {
		st.Matches = s.opts.Matches.Stats()
	}
	return st
}

// DefaultLimit is the matcher's configured result count, 0 without a matcher.
func (s *Service) DefaultLimit() int {
	if s.opts.Matches == nil {
		return 0
	}
	return s.opts.Matches.Matcher().Config().DefaultLimit
}

// Refresh pulls the configured source and installs the result.
// Calls closer together than the refresh interval fail with ErrRefreshThrottled.
func (s *Service) Refresh(ctx context.Context) (Result, error) {
	if s.opts.Source == nil {
		return Result{}, feed.ErrNoSource
	}
	if !s.limiter.Allow() {
		return Result{}, ErrRefreshThrottled
	}
	return s.fetch(ctx)
}

func (s *Service) fetch(ctx context.Context) (Result, error) {
	src := s.opts.Source
	if src == nil {
		return Result{}, feed.ErrNoSource
	}
	start := time.Now()
	sheets, err := src.Fetch(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch %s: %w", src.Name(), err)
	}
	res, err := s.Load(ctx, sheets, src.Name())
	if err == nil {
		log.Info().Str("source", src.Name()).Dur("dur", time.Since(start)).Msg("catalog refreshed")
	}
	return res, err
}

// Load builds the catalog from already-read sheets (e.g. an upload) and
// installs it. Empty sheets install the built-in sample deals.
func (s *Service) Load(ctx context.Context, sheets feed.Sheets, source string) (Result, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	var (
		deals []model.Deal
		st    feed.Stats
	)
	if sheets.Empty() {
		deals = feed.SampleDeals()
		source = "sample"
		log.Warn().Msg("feed is empty, serving sample deals")
	} else {
		deals, st = feed.Build(sheets, s.opts.PairThreshold)
	}

	res := Result{Info: s.install(deals, source), Stats: st}
	log.Info().
		Str("source", source).
		Int("deals", res.Info.Count).
		Int("rows", st.Rows).
		Int("skipped", st.Skipped).
		Int("paired", st.Paired).
		Msg("catalog loaded")

	if s.opts.Snapshot != nil && source != "sample" {
		if err := s.opts.Snapshot.Save(ctx, deals, source); err != nil {
			log.Warn().Err(err).Msg("snapshot save failed")
		}
	}
	return res, nil
}

func (s *Service) install(deals []model.Deal, source string) store.Info {
	info := s.mem.Replace(deals, source)
	if s.opts.Matches != nil {
		s.opts.Matches.Purge()
	}
	return info
}

// Bootstrap loads the first catalog: the live source, else the last snapshot,
// else demo deals. It never leaves the store empty.
func (s *Service) Bootstrap(ctx context.Context) store.Info {
	res, err := s.fetch(ctx)
	if err == nil {
		return res.Info
	}
	log.Warn().Err(err).Msg("initial feed load failed")

	if s.opts.Snapshot != nil {
		deals, source, serr := s.opts.Snapshot.Load(ctx)
		if serr == nil {
			info := s.install(deals, "snapshot:"+source)
			log.Info().Int("deals", info.Count).Str("path", s.opts.Snapshot.Path()).Msg("catalog restored from snapshot")
			return info
		}
		log.Warn().Err(serr).Msg("snapshot restore failed")
	}

	info := s.install(feed.DemoDeals(), "demo")
	log.Warn().Int("deals", info.Count).Msg("serving demo deals")
	return info
}

// SimilarQuery tunes one similar-deals lookup. A nil MinScore keeps the
// matcher's configured floor.
type SimilarQuery struct {
	Limit    int
	MinScore *float64
}

// Similar ranks the rest of the catalog against the deal with the given id.
func (s *Service) Similar(id string, q SimilarQuery) ([]SimilarDeal, error) {
	if s.opts.Matches == nil {
		return nil, errors.New("similarity matcher not configured")
	}
	ref, err := s.mem.Get(id)
	if err != nil {
		return nil, err
	}
	pool := s.mem.Products()

	var matches []similarity.Match
	if q.MinScore != nil {
		m, merr := s.opts.Matches.Matcher().WithMinScore(*q.MinScore)
		if merr != nil {
			return nil, merr
		}
		matches, err = m.Match(ref.Product(), pool, q.Limit)
	} else {
		matches, err = s.opts.Matches.Match(ref.Product(), pool, q.Limit)
	}
	if err != nil {
		return nil, err
	}

	out := make([]SimilarDeal, 0, len(matches))
	for _, mt := range matches {
		d, gerr := s.mem.Get(mt.Product.ID)
		if gerr != nil {
			// catalog swapped between the two reads
			continue
		}
		out = append(out, SimilarDeal{Deal: d, Score: mt.Score, Signals: mt.Signals})
	}
	return out, nil
}
