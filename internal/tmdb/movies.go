package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/I-slam404/Movie-App/internal/catalog"
)

func (c *client) Popular(ctx context.Context, page int) (Page, error) {
	return c.listMovies(ctx, "/movie/popular", page, nil)
}

func (c *client) TopRated(ctx context.Context, page int) (Page, error) {
	return c.listMovies(ctx, "/movie/top_rated", page, nil)
}

func (c *client) NowPlaying(ctx context.Context, page int) (Page, error) {
	return c.listMovies(ctx, "/movie/now_playing", page, nil)
}

func (c *client) Upcoming(ctx context.Context, page int) (Page, error) {
	return c.listMovies(ctx, "/movie/upcoming", page, nil)
}

func (c *client) SearchMovies(ctx context.Context, query string, page int) (Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Page{}, fmt.Errorf("tmdb: search query is required")
	}
	return c.listMovies(ctx, "/search/movie", page, url.Values{"query": {query}})
}

// listMovies runs one paged GET against the catalog API and maps the
// response into domain movies.
func (c *client) listMovies(parentCtx context.Context, path string, page int, extra url.Values) (Page, error) {
	start := time.Now()

	if page < 1 {
		page = 1
	}

	// Per-request timeout (0 = only use parentCtx)
	var ctx context.Context
	var cancel context.CancelFunc
	if c.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(parentCtx, c.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(parentCtx)
	}
	defer cancel()

	params := url.Values{}
	for k, vs := range extra {
		params[k] = vs
	}
	params.Set("page", strconv.Itoa(page))

	reqURL := c.cfg.BaseURL + path + "?" + params.Encode()

	// doOnce builds a fresh *http.Request for each attempt
	doOnce := func(ctx context.Context) (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build HTTP request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		httpReq.Header.Set("Accept", "application/json")
		return c.httpClient.Do(httpReq)
	}

	resp, err := c.doWithRetry(ctx, doOnce)
	if err != nil {
		c.logger.Error("catalog request failed",
			zap.String("path", path),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return Page{}, err
	}
	defer resp.Body.Close()

	// Handle non-2xx responses
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		var perr providerError
		if jsonErr := json.Unmarshal(body, &perr); jsonErr == nil && perr.StatusMessage != "" {
			c.logger.Error("catalog provider error",
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("error_message", perr.StatusMessage),
			)
			return Page{}, serverError(resp.StatusCode, perr.StatusMessage)
		}

		c.logger.Error("catalog upstream error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(body), 200)),
		)
		return Page{}, serverError(resp.StatusCode, truncate(string(body), 200))
	}

	var pPage providerPage
	if err := json.NewDecoder(resp.Body).Decode(&pPage); err != nil {
		return Page{}, decodeError(err)
	}

	out := Page{
		Page:         pPage.Page,
		TotalPages:   pPage.TotalPages,
		TotalResults: pPage.TotalResults,
		Movies:       make([]catalog.Movie, 0, len(pPage.Results)),
	}
	for _, m := range pPage.Results {
		out.Movies = append(out.Movies, toMovie(m))
	}

	c.logger.Info("catalog request completed",
		zap.String("path", path),
		zap.Int("page", out.Page),
		zap.Int("results", len(out.Movies)),
		zap.Int("total_pages", out.TotalPages),
		zap.Duration("duration", time.Since(start)),
	)

	return out, nil
}

func toMovie(m providerMovie) catalog.Movie {
	return catalog.Movie{
		ID:           m.ID,
		Title:        m.Title,
		Overview:     m.Overview,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		ReleaseDate:  m.ReleaseDate,
		VoteAverage:  m.VoteAverage,
		VoteCount:    m.VoteCount,
		Popularity:   m.Popularity,
		GenreIDs:     m.GenreIDs,
	}
}

// truncate limits string length for logging
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
