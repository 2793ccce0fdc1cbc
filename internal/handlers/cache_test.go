package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/I-slam404/Movie-App/internal/catalog"
)

func TestCacheClearDropsEverything(t *testing.T) {
	client := &mockCatalogClient{result: pageOf("A")}
	mux, engine := newTestAPI(t, client, 30*time.Second)

	ctx := context.Background()
	if err := engine.Put(ctx, catalog.CategoryPopular, 1, pageOf("A").Movies, 500, true); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := engine.Put(ctx, catalog.CategoryTopRated, 1, pageOf("B").Movies, 500, true); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	rr := doRequest(t, mux, http.MethodDelete, "/v1/cache")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if _, ok := engine.Get(ctx, catalog.CategoryPopular, 1); ok {
		t.Fatal("popular survived the clear")
	}
	if _, ok := engine.Get(ctx, catalog.CategoryTopRated, 1); ok {
		t.Fatal("top_rated survived the clear")
	}

	// The next listing request goes upstream again.
	rr = doRequest(t, mux, http.MethodGet, "/v1/movies/popular")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("X-Cache"); got != "miss" {
		t.Fatalf("X-Cache after clear = %q, want miss", got)
	}
	if client.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", client.calls)
	}
}

func TestCacheClearCategory(t *testing.T) {
	mux, engine := newTestAPI(t, &mockCatalogClient{}, 30*time.Second)

	ctx := context.Background()
	if err := engine.Put(ctx, catalog.CategoryPopular, 1, pageOf("A").Movies, 500, true); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := engine.Put(ctx, catalog.CategoryPopular, 2, pageOf("B").Movies, 500, true); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := engine.Put(ctx, catalog.CategoryTopRated, 1, pageOf("C").Movies, 500, true); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	rr := doRequest(t, mux, http.MethodDelete, "/v1/cache/popular")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if _, ok := engine.Get(ctx, catalog.CategoryPopular, 1); ok {
		t.Fatal("popular page 1 survived")
	}
	if _, ok := engine.Get(ctx, catalog.CategoryPopular, 2); ok {
		t.Fatal("popular page 2 survived")
	}
	if _, ok := engine.Get(ctx, catalog.CategoryTopRated, 1); !ok {
		t.Fatal("top_rated was dropped by a popular clear")
	}
}

func TestCacheClearUnknownCategory(t *testing.T) {
	mux, _ := newTestAPI(t, &mockCatalogClient{}, 30*time.Second)

	rr := doRequest(t, mux, http.MethodDelete, "/v1/cache/romance")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}
