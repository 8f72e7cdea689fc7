package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"deals-service/internal/config"
	dealsHnd "deals-service/internal/deals/handler"
	"deals-service/internal/middleware"
	"deals-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, h *dealsHnd.Handler, status handlers.StatusSource) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	r.Get("/health", handlers.Health(status))

	r.Route("/deals", func(r chi.Router) {
		r.Get("/", h.ListDeals)
		r.Get("/{id}", h.GetDeal)
		r.Get("/{id}/similar", h.SimilarDeals)
		r.Get("/{id}/articles", h.DealArticles)
	})

	r.Post("/feed", h.UploadFeed)
	r.Post("/feed/refresh", h.RefreshFeed)

	r.Get("/articles", h.ListArticles)
	r.Get("/articles/{slug}", h.GetArticle)

	r.Get("/affiliate", h.AffiliateLink)

	return r
}
