package cache

import (
	"testing"

	"github.com/I-slam404/Movie-App/internal/catalog"
)

func TestKeyForFormat(t *testing.T) {
	t.Parallel()

	if got := keyFor(catalog.CategoryPopular, 1); got != "popular_page_1" {
		t.Fatalf("keyFor(popular, 1) = %q, want popular_page_1", got)
	}
	if got := keyFor(catalog.CategoryTopRated, 12); got != "top_rated_page_12" {
		t.Fatalf("keyFor(top_rated, 12) = %q", got)
	}
}

func TestKeyForUniqueness(t *testing.T) {
	t.Parallel()

	pairs := []struct {
		category catalog.Category
		page     int
	}{
		{catalog.CategoryPopular, 1},
		{catalog.CategoryPopular, 2},
		{catalog.CategoryTopRated, 1},
		{"popular_extra", 1},
		{catalog.SearchCategory("popular"), 1},
	}

	seen := make(map[string]int)
	for i, p := range pairs {
		key := keyFor(p.category, p.page)
		if j, dup := seen[key]; dup {
			t.Fatalf("pairs %d and %d collide on key %q", i, j, key)
		}
		seen[key] = i
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key  string
		want string
	}{
		{"popular_page_1", "popular"},
		{"top_rated_page_3", "top_rated"},
		{"popular_extra_page_1", "popular_extra"},
		{"search:front page_page_2", "search:front page"},
		{"no-separator", ""},
	}
	for _, tc := range cases {
		if got := categoryOf(tc.key); got != tc.want {
			t.Fatalf("categoryOf(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestCategoryOfRoundTrip(t *testing.T) {
	t.Parallel()

	categories := append(catalog.Categories(), catalog.SearchCategory("Star Wars"))
	for _, c := range categories {
		for _, page := range []int{1, 7, 42} {
			key := keyFor(c, page)
			if got := categoryOf(key); got != string(c) {
				t.Fatalf("categoryOf(keyFor(%q, %d)) = %q", c, page, got)
			}
		}
	}
}
