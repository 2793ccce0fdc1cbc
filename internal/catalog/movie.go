package catalog

// Movie is one catalog entry as the rest of the app consumes it.
// PosterPath and BackdropPath stay pointers: the upstream API returns
// null for missing artwork and the codec must round-trip that.
type Movie struct {
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

// Equal reports field-for-field equality. Genre order matters.
func (m Movie) Equal(o Movie) bool {
	if m.ID != o.ID ||
		m.Title != o.Title ||
		m.Overview != o.Overview ||
		m.ReleaseDate != o.ReleaseDate ||
		m.VoteAverage != o.VoteAverage ||
		m.VoteCount != o.VoteCount ||
		m.Popularity != o.Popularity {
		return false
	}
	if !equalStringPtr(m.PosterPath, o.PosterPath) || !equalStringPtr(m.BackdropPath, o.BackdropPath) {
		return false
	}
	if len(m.GenreIDs) != len(o.GenreIDs) {
		return false
	}
	for i := range m.GenreIDs {
		if m.GenreIDs[i] != o.GenreIDs[i] {
			return false
		}
	}
	return true
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
