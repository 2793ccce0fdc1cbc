package tmdb

// imageBaseURL is the CDN root for poster and backdrop assets.
const imageBaseURL = "https://image.tmdb.org/t/p"

// Image size presets accepted by the CDN.
const (
	ImageW185     = "w185"
	ImageW342     = "w342"
	ImageW500     = "w500"
	ImageOriginal = "original"
)

// ImageURL builds a full CDN URL for a poster or backdrop path. Movie
// records carry nil paths when no artwork exists; those map to "".
func ImageURL(size string, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	if size == "" {
		size = ImageW500
	}
	return imageBaseURL + "/" + size + *path
}
