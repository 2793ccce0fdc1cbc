package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/I-slam404/Movie-App/internal/handlers"
	"github.com/I-slam404/Movie-App/internal/metrics"
	"github.com/I-slam404/Movie-App/internal/middleware"
)

func SetupRouter(r *chi.Mux, baseLogger *zap.Logger, requestTimeout time.Duration, movies *handlers.MoviesHandler, cacheAdmin *handlers.CacheHandler) {

	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.RequestLogger(baseLogger))
	r.Use(middleware.Recoverer())             // panic recovery
	r.Use(middleware.Timeout(requestTimeout)) // request timeout
	r.Use(middleware.MaxBodySize(64 * 1024))  // 64 KB max body, API is GET/DELETE only

	// routes
	r.Route("/v1", func(r chi.Router) {
		r.Get("/movies/{category}", movies.List)
		r.Get("/movies/{category}/stream", movies.Stream)
		r.Get("/search", movies.Search)

		r.Delete("/cache", cacheAdmin.Clear)
		r.Delete("/cache/{category}", cacheAdmin.ClearCategory)
	})

	// health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
