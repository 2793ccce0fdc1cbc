package feed

import "github.com/I-slam404/Movie-App/internal/catalog"

// Status tells consumers what phase of a load a State belongs to.
type Status int

const (
	// StatusLoading is emitted while a network fetch is in flight. The
	// state may carry stale cached movies for immediate display.
	StatusLoading Status = iota

	// StatusSuccess carries a usable movie list, either from cache or
	// from a completed fetch.
	StatusSuccess

	// StatusError is terminal for a failed load. Movies holds the last
	// good cached data when any exists.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is one snapshot of an in-progress load. A single Load call
// emits at most one cached Success, at most one Loading, then exactly
// one terminal Success or Error, unless the caller cancels first.
type State struct {
	Status Status

	// Movies is the best list available at this point in the load.
	Movies []catalog.Movie

	// HasMore reports whether a following page exists.
	HasMore bool

	// Stale marks cached data that is due for revalidation.
	Stale bool

	// Err is set on StatusError only.
	Err error
}
