package tmdb

// Movie shape the catalog API returns inside list results.
type providerMovie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int64 `json:"genre_ids"`
}

// One page of a listing or search response.
type providerPage struct {
	Page         int             `json:"page"`
	Results      []providerMovie `json:"results"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
}

// Error body the catalog API sends on non-2xx statuses.
type providerError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
