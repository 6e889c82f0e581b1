package catalog

import (
	"errors"
	"fmt"
)

// Kind names a catalog level.
type Kind string

const (
	KindBrands Kind = "brands"
	KindModels Kind = "models"
	KindYears  Kind = "years"
)

// ErrUnexpectedShape is returned when a response body is neither a list of
// entries nor an object wrapping one.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// ErrEmptyList is returned when the brand list comes back empty. Nothing
// could be picked from it, so it is treated like a failed fetch.
var ErrEmptyList = errors.New("empty list")

// FetchError reports a failed catalog request. Error returns a message fit
// for the user; the transport, status or decode failure is kept for Unwrap.
type FetchError struct {
	Kind Kind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not load %s", e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError is the cause of a FetchError when the service answered with a
// non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
