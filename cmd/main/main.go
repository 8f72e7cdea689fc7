package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deals-service/internal/articles"
	"deals-service/internal/catalog"
	"deals-service/internal/catalog/feed"
	"deals-service/internal/catalog/store"
	"deals-service/internal/config"
	dealsHnd "deals-service/internal/deals/handler"
	"deals-service/internal/similarity"
	"deals-service/internal/storefront"
	serverhttp "deals-service/server/http"
)

const watchDebounce = 2 * time.Second

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mc, err := config.MatcherConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("matcher config")
	}
	matcher, err := similarity.New(mc)
	if err != nil {
		logger.Fatal().Err(err).Msg("matcher")
	}

	src, err := newSource(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("feed source")
	}
	if src == nil {
		logger.Warn().Msg("no feed source configured, only uploads can replace the catalog")
	}

	opts := catalog.Options{
		Source:          src,
		Matches:         similarity.NewCache(matcher, cfg.MatchCacheSize, cfg.MatchCacheTTL),
		RefreshInterval: cfg.RefreshMinInterval,
	}
	if cfg.SnapshotDB != "" {
		snap, err := store.OpenSnapshot(cfg.SnapshotDB)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.SnapshotDB).Msg("snapshot disabled")
		} else {
			defer snap.Close()
			opts.Snapshot = snap
		}
	}

	svc := catalog.New(store.NewMemory(), opts)
	info := svc.Bootstrap(ctx)
	logger.Info().Int("deals", info.Count).Str("source", info.Source).Msg("catalog ready")

	if fs, ok := src.(*feed.FileSource); ok && cfg.FeedWatch {
		go func() {
			if err := svc.Watch(ctx, fs.Paths(), watchDebounce); err != nil {
				logger.Error().Err(err).Msg("feed watch stopped")
			}
		}()
	}

	lib, err := articles.Load(cfg.ArticlesFile)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ArticlesFile).Msg("articles")
	}

	h := dealsHnd.New(svc, dealsHnd.Options{
		Articles:    lib,
		Prices:      storefront.PricePolicy{Enabled: cfg.PriceHiding, Seed: cfg.DisplaySeed},
		Links:       storefront.Links{AmazonTag: cfg.AmazonTag, CabelasTag: cfg.CabelasTag},
		DisplaySeed: cfg.DisplaySeed,
		MaxUploadMB: cfg.MaxUploadMB,
	})
	r := serverhttp.NewRouter(cfg, logger, h, svc)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r, ReadHeaderTimeout: 10 * time.Second}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("bye")
}

// newSource picks the live feed: Google Sheets, else local files, else none.
func newSource(ctx context.Context, cfg config.Config) (feed.Source, error) {
	switch {
	case cfg.HasSheets():
		return feed.NewSheetsSource(ctx, feed.SheetsConfig{
			APIKey:        cfg.SheetsAPIKey,
			SpreadsheetID: cfg.SheetsID,
			AmazonRange:   cfg.SheetsAmazonRange,
			CabelasRange:  cfg.SheetsCabelasRange,
		})
	case cfg.FeedAmazonFile != "":
		return feed.NewFileSource(cfg.FeedAmazonFile, cfg.FeedCabelasFile)
	}
	return nil, nil
}
