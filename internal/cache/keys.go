package cache

import (
	"strconv"
	"strings"

	"github.com/I-slam404/Movie-App/internal/catalog"
)

// pageSeparator joins category and page in a cache key. No category may
// contain it: the fixed listings are constants and search categories
// have underscores folded to spaces before they get here.
const pageSeparator = "_page_"

// keyFor builds the cache key for a (category, page) pair, e.g.
// "popular_page_1". Identical pairs always produce identical keys.
func keyFor(category catalog.Category, page int) string {
	return string(category) + pageSeparator + strconv.Itoa(page)
}

// categoryOf extracts the category segment from a key built by keyFor.
// The split is on the last separator occurrence, so a page-like tail
// inside a search category cannot shift the boundary.
func categoryOf(key string) string {
	i := strings.LastIndex(key, pageSeparator)
	if i < 0 {
		return ""
	}
	return key[:i]
}
