package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Encode renders movies as a compact JSON array. Field order is fixed by
// the struct definition, so structurally equal lists encode to identical
// bytes; Hash comparisons depend on that.
func Encode(movies []Movie) (string, error) {
	if movies == nil {
		movies = []Movie{}
	}
	b, err := json.Marshal(movies)
	if err != nil {
		return "", fmt.Errorf("encode movies: %w", err)
	}
	return string(b), nil
}

// Decode parses a payload produced by Encode. The empty list decodes to
// an empty, non-nil slice so round trips compare equal.
func Decode(payload string) ([]Movie, error) {
	var movies []Movie
	if err := json.Unmarshal([]byte(payload), &movies); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies, nil
}

// Hash digests an encoded payload into a fixed-width hex string.
func Hash(payload string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(payload))
}
