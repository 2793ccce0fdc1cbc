package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/I-slam404/Movie-App/internal/cache"
	"github.com/I-slam404/Movie-App/internal/catalog"
	"github.com/I-slam404/Movie-App/pkg/logging"
)

// CacheHandler exposes the user-triggered cache clears.
type CacheHandler struct {
	Engine *cache.Engine
}

func NewCacheHandler(engine *cache.Engine) *CacheHandler {
	return &CacheHandler{Engine: engine}
}

// Clear handles DELETE /v1/cache.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)

	if err := h.Engine.InvalidateAll(ctx); err != nil {
		logger.Error("cache clear failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cache clear failed")
		return
	}

	logger.Info("cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

// ClearCategory handles DELETE /v1/cache/{category}.
func (h *CacheHandler) ClearCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)

	category := catalog.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		writeError(w, http.StatusNotFound, "unknown category")
		return
	}

	if err := h.Engine.InvalidateCategory(ctx, category); err != nil {
		logger.Error("category clear failed",
			zap.String("category", string(category)),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "cache clear failed")
		return
	}

	logger.Info("category cleared", zap.String("category", string(category)))
	w.WriteHeader(http.StatusNoContent)
}
