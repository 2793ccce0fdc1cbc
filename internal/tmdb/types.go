package tmdb

import (
	"context"

	"github.com/I-slam404/Movie-App/internal/catalog"
)

// Page is one page of catalog results.
type Page struct {
	Movies       []catalog.Movie
	Page         int
	TotalPages   int
	TotalResults int
}

// Client fetches movie listings from the catalog API. Every method maps
// one logical query; failures come back classified as *Error.
type Client interface {
	Popular(ctx context.Context, page int) (Page, error)
	TopRated(ctx context.Context, page int) (Page, error)
	NowPlaying(ctx context.Context, page int) (Page, error)
	Upcoming(ctx context.Context, page int) (Page, error)
	SearchMovies(ctx context.Context, query string, page int) (Page, error)
}
