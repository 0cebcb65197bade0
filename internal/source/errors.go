package source

import (
	"errors"
	"fmt"
)

// ErrFetch is the kind of every error returned by Client.
var ErrFetch = errors.New("fetch failed")

// FetchError describes a failed page or image request.
type FetchError struct {
	// URL is the address that was requested.
	URL string

	// StatusCode is the HTTP status of a non-2xx response.
	// Zero means the request never got a response (DNS, TLS, reset, timeout).
	StatusCode int

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements error.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// HasStatus reports whether the server answered with a status code, as
// opposed to the request failing in transit.
func (e *FetchError) HasStatus() bool {
	return e.StatusCode != 0
}
