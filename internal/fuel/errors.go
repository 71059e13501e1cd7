package fuel

import (
	"errors"
	"fmt"
)

// Lookup errors returned by the registry and company accessors.
var (
	ErrCompanyNotFound = errors.New("fuel: company not found")
	ErrProductNotFound = errors.New("fuel: product not found")
)

// FetchError covers network failures, timeouts and non-success HTTP statuses.
// It is scoped to one company: the failed refresh keeps previous prices.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError covers malformed HTML or JSON from a source. Same scope and
// handling as FetchError.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ParseError means a price string was not numeric after cleaning. It is
// scoped to a single product; other products of the same company continue.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse price %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
