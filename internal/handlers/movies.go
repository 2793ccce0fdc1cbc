package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/I-slam404/Movie-App/internal/catalog"
	"github.com/I-slam404/Movie-App/internal/feed"
	"github.com/I-slam404/Movie-App/internal/tmdb"
	"github.com/I-slam404/Movie-App/pkg/logging"
)

// MoviesHandler serves the listing, search, and stream endpoints on top
// of the feed loader.
type MoviesHandler struct {
	Loader *feed.Loader
	Client tmdb.Client
}

func NewMoviesHandler(loader *feed.Loader, client tmdb.Client) *MoviesHandler {
	return &MoviesHandler{
		Loader: loader,
		Client: client,
	}
}

// listResponse is the terminal JSON body for list and search requests.
type listResponse struct {
	Movies  []catalog.Movie `json:"movies"`
	Page    int             `json:"page"`
	HasMore bool            `json:"has_more"`
	Stale   bool            `json:"stale"`
	Error   string          `json:"error,omitempty"`
}

// stateEvent is one SSE frame on the stream endpoint.
type stateEvent struct {
	Status  string          `json:"status"`
	Movies  []catalog.Movie `json:"movies"`
	HasMore bool            `json:"has_more"`
	Stale   bool            `json:"stale"`
	Error   string          `json:"error,omitempty"`
}

// List handles GET /v1/movies/{category}.
func (h *MoviesHandler) List(w http.ResponseWriter, r *http.Request) {
	category := catalog.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		writeError(w, http.StatusNotFound, "unknown category")
		return
	}

	page := parsePage(r)
	fetch := feed.CategoryFetch(h.Client, category, page)
	h.respond(w, r, category, page, fetch)
}

// Search handles GET /v1/search.
func (h *MoviesHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	category := catalog.SearchCategory(query)
	page := parsePage(r)
	fetch := feed.SearchFetch(h.Client, query, page)
	h.respond(w, r, category, page, fetch)
}

// respond drains the loader's state stream and renders the terminal
// state as a single JSON response. Intermediate states only shape the
// X-Cache header here; the stream endpoint is where callers see them.
func (h *MoviesHandler) respond(w http.ResponseWriter, r *http.Request, category catalog.Category, page int, fetch feed.FetchFunc) {
	ctx := r.Context()
	logger := logging.L(ctx)
	start := time.Now()

	states := h.Loader.Load(ctx, category, page, forceRefresh(r), fetch)

	var last feed.State
	sawLoading := false
	successes := 0
	gotState := false
	for s := range states {
		switch s.Status {
		case feed.StatusLoading:
			sawLoading = true
		case feed.StatusSuccess:
			successes++
		}
		last = s
		gotState = true
	}

	// The channel closes without a terminal state only when the client
	// went away mid-load.
	if !gotState || last.Status == feed.StatusLoading {
		return
	}

	source := cacheSource(last, sawLoading, successes)
	w.Header().Set("X-Cache", source)

	switch last.Status {
	case feed.StatusSuccess:
		logger.Info("listing served",
			zap.String("category", string(category)),
			zap.Int("page", page),
			zap.String("cache", source),
			zap.Int("results", len(last.Movies)),
			zap.Duration("total_latency_ms", time.Since(start)),
		)
		writeJSON(w, http.StatusOK, listResponse{
			Movies:  last.Movies,
			Page:    page,
			HasMore: last.HasMore,
			Stale:   last.Stale,
		})

	case feed.StatusError:
		msg := feed.ErrorMessage(last.Err)
		logger.Warn("listing failed",
			zap.String("category", string(category)),
			zap.Int("page", page),
			zap.String("cache", source),
			zap.Bool("cached_fallback", len(last.Movies) > 0),
			zap.Error(last.Err),
		)
		if len(last.Movies) > 0 {
			// Degraded but usable: the last good data with the error
			// attached, so the caller never loses what it had.
			writeJSON(w, http.StatusOK, listResponse{
				Movies:  last.Movies,
				Page:    page,
				HasMore: last.HasMore,
				Stale:   true,
				Error:   msg,
			})
			return
		}
		status := http.StatusBadGateway
		if tmdb.KindOf(last.Err) == tmdb.ErrKindNetwork {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, msg)
	}
}

// Stream handles GET /v1/movies/{category}/stream: every loader state
// as a Server-Sent Event, ending with a [DONE] sentinel.
func (h *MoviesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)

	category := catalog.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		writeError(w, http.StatusNotFound, "unknown category")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	page := parsePage(r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	fetch := feed.CategoryFetch(h.Client, category, page)
	states := h.Loader.Load(ctx, category, page, forceRefresh(r), fetch)

	events := 0
	for s := range states {
		evt := stateEvent{
			Status:  s.Status.String(),
			Movies:  s.Movies,
			HasMore: s.HasMore,
			Stale:   s.Stale,
		}
		if s.Err != nil {
			evt.Error = feed.ErrorMessage(s.Err)
		}

		data, err := json.Marshal(evt)
		if err != nil {
			logger.Warn("marshal state event failed", zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
		flusher.Flush()
		events++
	}

	if ctx.Err() != nil {
		logger.Info("state stream cancelled",
			zap.String("category", string(category)),
			zap.Int("events", events),
		)
		return
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()

	logger.Info("state stream completed",
		zap.String("category", string(category)),
		zap.Int("page", page),
		zap.Int("events", events),
	)
}

// cacheSource labels what the cache contributed to the served response:
// "hit" when fresh cache satisfied the load outright, "stale" when
// cached data backed a revalidation or an error fallback, "miss" when
// the cache had nothing.
func cacheSource(last feed.State, sawLoading bool, successes int) string {
	if last.Status == feed.StatusError {
		if len(last.Movies) > 0 {
			return "stale"
		}
		return "miss"
	}
	if !sawLoading {
		return "hit"
	}
	if successes > 1 {
		return "stale"
	}
	return "miss"
}
