package fuel

import (
	"net/http"
	"time"
)

// DefaultHTTPTimeout is the per-request network timeout at the fetch
// boundary. A timed-out fetch is a normal per-operator refresh failure.
const DefaultHTTPTimeout = 10 * time.Second

// NewHTTPClient creates an HTTP client with the given per-request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &http.Transport{},
	}
}

// DefaultHTTPClient returns the client used when the caller does not inject
// its own.
func DefaultHTTPClient() *http.Client {
	return NewHTTPClient(DefaultHTTPTimeout)
}
