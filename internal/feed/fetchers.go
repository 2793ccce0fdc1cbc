package feed

import (
	"context"
	"fmt"

	"github.com/I-slam404/Movie-App/internal/catalog"
	"github.com/I-slam404/Movie-App/internal/tmdb"
)

// CategoryFetch binds one catalog listing call to a FetchFunc for the
// given category and page.
func CategoryFetch(client tmdb.Client, category catalog.Category, page int) FetchFunc {
	return func(ctx context.Context) ([]catalog.Movie, int, error) {
		var (
			result tmdb.Page
			err    error
		)
		switch category {
		case catalog.CategoryPopular:
			result, err = client.Popular(ctx, page)
		case catalog.CategoryTopRated:
			result, err = client.TopRated(ctx, page)
		case catalog.CategoryNowPlaying:
			result, err = client.NowPlaying(ctx, page)
		case catalog.CategoryUpcoming:
			result, err = client.Upcoming(ctx, page)
		default:
			return nil, 0, fmt.Errorf("no fetcher for category %q", category)
		}
		if err != nil {
			return nil, 0, err
		}
		return result.Movies, result.TotalPages, nil
	}
}

// SearchFetch binds a catalog search call to a FetchFunc.
func SearchFetch(client tmdb.Client, query string, page int) FetchFunc {
	return func(ctx context.Context) ([]catalog.Movie, int, error) {
		result, err := client.SearchMovies(ctx, query, page)
		if err != nil {
			return nil, 0, err
		}
		return result.Movies, result.TotalPages, nil
	}
}

// ErrorMessage maps a fetch error to the text shown to users.
// Connectivity and upstream-status failures get fixed messages so the
// raw error text never leaks into those responses.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	switch tmdb.KindOf(err) {
	case tmdb.ErrKindNetwork:
		return "no internet connection"
	case tmdb.ErrKindServer:
		if status := tmdb.StatusOf(err); status > 0 {
			return fmt.Sprintf("server error (status %d)", status)
		}
		return "server error"
	default:
		return err.Error()
	}
}
