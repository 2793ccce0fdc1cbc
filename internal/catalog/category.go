package catalog

import "strings"

// Category names a logical catalog listing. Besides the fixed listings
// below, search results are cached under a per-query search category.
type Category string

const (
	CategoryPopular    Category = "popular"
	CategoryTopRated   Category = "top_rated"
	CategoryNowPlaying Category = "now_playing"
	CategoryUpcoming   Category = "upcoming"
)

const searchPrefix = "search:"

// Categories returns the fixed catalog listings in display order.
func Categories() []Category {
	return []Category{
		CategoryPopular,
		CategoryTopRated,
		CategoryNowPlaying,
		CategoryUpcoming,
	}
}

// Valid reports whether c is one of the fixed catalog listings.
func (c Category) Valid() bool {
	switch c {
	case CategoryPopular, CategoryTopRated, CategoryNowPlaying, CategoryUpcoming:
		return true
	}
	return false
}

// IsSearch reports whether c caches search results.
func (c Category) IsSearch() bool {
	return strings.HasPrefix(string(c), searchPrefix)
}

// SearchCategory builds the category under which results for query are
// cached. The query is lowercased and whitespace-collapsed so equivalent
// spellings share one cache slot. Underscores fold to spaces, which
// keeps the cache-key separator out of every search category.
func SearchCategory(query string) Category {
	q := strings.ToLower(query)
	q = strings.ReplaceAll(q, "_", " ")
	q = strings.Join(strings.Fields(q), " ")
	return Category(searchPrefix + q)
}
