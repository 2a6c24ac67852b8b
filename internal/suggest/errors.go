package suggest

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedResponse = errors.New("malformed suggestion response")
	ErrBadStatus         = errors.New("unexpected response status")
	ErrStale             = errors.New("response superseded by a newer query")
	ErrUnknownEndpoint   = errors.New("unknown search endpoint")
)

// StatusError reports a non-2xx answer from a search endpoint.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", ErrBadStatus, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrBadStatus
}
