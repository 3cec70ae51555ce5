package api

import (
	"errors"
	"fmt"
)

// Operation prefixes carried by FetchError.
const (
	opListCountries    = "Error fetching countries"
	opGetCountryByName = "Error fetching country details"
)

// ErrEmptyBaseURL is returned by NewClient when no base URL is given.
var ErrEmptyBaseURL = errors.New("base URL must not be empty")

// FetchError is the single error shape returned by Client.
// Transport failures and HTTP status failures are both collapsed into it.
type FetchError struct {
	// Op is the human-readable operation prefix.
	Op string

	// Err is the underlying failure.
	Err error
}

// Error returns "<Op>: <underlying message>".
func (e *FetchError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying failure.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx response.
type StatusError struct {
	// StatusCode is the HTTP status code received.
	StatusCode int
}

// Error returns "Request failed with status code <N>".
func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// IsStatus reports whether err wraps a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
