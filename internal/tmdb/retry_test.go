package tmdb

import (
	"errors"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestShouldRetryStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		want   bool
	}{
		{0, true},
		{http.StatusOK, false},
		{http.StatusNotModified, false},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{599, true},
	}
	for _, tc := range cases {
		if got := shouldRetryStatus(tc.status); got != tc.want {
			t.Fatalf("shouldRetryStatus(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	mkResp := func(value string) *http.Response {
		resp := &http.Response{Header: http.Header{}}
		if value != "" {
			resp.Header.Set("Retry-After", value)
		}
		return resp
	}

	if got := parseRetryAfter(nil); got != 0 {
		t.Fatalf("nil response: got %v", got)
	}
	if got := parseRetryAfter(mkResp("")); got != 0 {
		t.Fatalf("missing header: got %v", got)
	}
	if got := parseRetryAfter(mkResp("2")); got != 2*time.Second {
		t.Fatalf("seconds form: got %v", got)
	}
	if got := parseRetryAfter(mkResp("900")); got != 5*time.Minute {
		t.Fatalf("cap not applied: got %v", got)
	}
	if got := parseRetryAfter(mkResp("soon")); got != 0 {
		t.Fatalf("invalid header: got %v", got)
	}

	date := time.Now().Add(3 * time.Second).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(mkResp(date)); got <= 0 || got > 3*time.Second {
		t.Fatalf("HTTP date form: got %v", got)
	}

	past := time.Now().Add(-time.Minute).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(mkResp(past)); got != 0 {
		t.Fatalf("past date: got %v", got)
	}
}

func TestComputeBackoffBounds(t *testing.T) {
	t.Parallel()

	for attempt := 0; attempt < 15; attempt++ {
		upper := time.Duration(float64(100*time.Millisecond) * float64(int(1)<<min(attempt, 10)))
		if upper > 60*time.Second {
			upper = 60 * time.Second
		}
		for i := 0; i < 20; i++ {
			got := computeBackoff(100*time.Millisecond, attempt)
			if got < 0 || got > upper {
				t.Fatalf("attempt %d: backoff %v outside [0, %v]", attempt, got, upper)
			}
		}
	}

	// A non-positive base falls back to the default.
	if got := computeBackoff(0, 0); got < 0 || got > 100*time.Millisecond {
		t.Fatalf("zero base: backoff %v", got)
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "deadline" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return false }

func TestIsTransientNetError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout", timeoutErr{}, true},
		{"dns temporary", &net.DNSError{IsTemporary: true}, true},
		{"dns permanent", &net.DNSError{}, false},
		{"dial op", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"connection refused text", errors.New("dial tcp: connection refused"), true},
		{"plain error", errors.New("schema mismatch"), false},
	}
	for _, tc := range cases {
		if got := isTransientNetError(tc.err); got != tc.want {
			t.Fatalf("%s: isTransientNetError = %v, want %v", tc.name, got, tc.want)
		}
	}
}
