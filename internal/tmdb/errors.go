package tmdb

import (
	"errors"
	"fmt"
)

// ErrKind classifies an upstream failure coarsely enough for callers to
// pick a user-facing message.
type ErrKind int

const (
	ErrKindUnknown ErrKind = iota
	ErrKindNetwork
	ErrKindServer
	ErrKindDecode
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNetwork:
		return "network"
	case ErrKindServer:
		return "server"
	case ErrKindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a classified failure from the catalog API.
type Error struct {
	Kind   ErrKind
	Status int    // HTTP status, server kind only
	Msg    string // upstream detail, may be empty
	Err    error  // wrapped cause, may be nil
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrKindNetwork:
		if e.Err != nil {
			return fmt.Sprintf("tmdb: network unreachable: %v", e.Err)
		}
		return "tmdb: network unreachable"
	case ErrKindServer:
		if e.Msg != "" {
			return fmt.Sprintf("tmdb: upstream %d: %s", e.Status, e.Msg)
		}
		return fmt.Sprintf("tmdb: upstream %d", e.Status)
	case ErrKindDecode:
		return fmt.Sprintf("tmdb: decode response: %v", e.Err)
	default:
		if e.Err != nil {
			return fmt.Sprintf("tmdb: %v", e.Err)
		}
		if e.Msg != "" {
			return "tmdb: " + e.Msg
		}
		return "tmdb: unknown error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from err. Errors that never passed
// through this package report ErrKindUnknown.
func KindOf(err error) ErrKind {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return ErrKindUnknown
}

// StatusOf extracts the HTTP status from a classified server error, 0
// otherwise.
func StatusOf(err error) int {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Status
	}
	return 0
}

func networkError(err error) *Error {
	return &Error{Kind: ErrKindNetwork, Err: err}
}

func serverError(status int, msg string) *Error {
	return &Error{Kind: ErrKindServer, Status: status, Msg: msg}
}

func decodeError(err error) *Error {
	return &Error{Kind: ErrKindDecode, Err: err}
}
