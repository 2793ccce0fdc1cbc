package catalog

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func sampleMovies() []Movie {
	return []Movie{
		{
			ID:           603,
			Title:        "The Matrix",
			Overview:     "A hacker learns the truth.",
			PosterPath:   strPtr("/matrix.jpg"),
			BackdropPath: nil,
			ReleaseDate:  "1999-03-31",
			VoteAverage:  8.2,
			VoteCount:    24000,
			Popularity:   91.3,
			GenreIDs:     []int64{28, 878},
		},
		{
			ID:          550,
			Title:       "Fight Club",
			ReleaseDate: "1999-10-15",
			VoteAverage: 8.4,
			VoteCount:   27000,
			Popularity:  61.0,
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	movies := sampleMovies()

	payload, err := Encode(movies)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(decoded) != len(movies) {
		t.Fatalf("expected %d movies, got %d", len(movies), len(decoded))
	}
	for i := range movies {
		if !decoded[i].Equal(movies[i]) {
			t.Fatalf("movie %d did not survive the round trip: %#v vs %#v", i, decoded[i], movies[i])
		}
	}
	if decoded[0].PosterPath == nil || *decoded[0].PosterPath != "/matrix.jpg" {
		t.Fatalf("poster path lost: %#v", decoded[0].PosterPath)
	}
	if decoded[0].BackdropPath != nil {
		t.Fatalf("nil backdrop path became %q", *decoded[0].BackdropPath)
	}
}

func TestCodecRoundTripEmpty(t *testing.T) {
	t.Parallel()

	payload, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if payload != "[]" {
		t.Fatalf("expected empty JSON array, got %q", payload)
	}

	decoded, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded == nil || len(decoded) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", decoded)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	t.Parallel()

	a, err := Encode(sampleMovies())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(sampleMovies())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if a != b {
		t.Fatalf("equal lists encoded differently:\n%s\n%s", a, b)
	}
	if Hash(a) != Hash(b) {
		t.Fatalf("equal payloads hashed differently")
	}
}

func TestHashDetectsChanges(t *testing.T) {
	t.Parallel()

	movies := sampleMovies()
	base, err := Encode(movies)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	movies[0].Title = "The Matrix Reloaded"
	changed, err := Encode(movies)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if Hash(base) == Hash(changed) {
		t.Fatalf("different payloads produced the same hash")
	}
	if len(Hash(base)) != 16 {
		t.Fatalf("expected a 16-char hex hash, got %q", Hash(base))
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := Decode("{not json"); err == nil {
		t.Fatalf("expected decode error for malformed payload")
	}
}
