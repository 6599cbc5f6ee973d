package client

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when an operation that needs a token is
// invoked without one. It is checked locally, before any network call.
var ErrUnauthorized = errors.New("not logged in")

// TransportError reports that every candidate origin failed at the
// transport level. It wraps the last encountered cause.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "all backend origins unreachable"
	}
	return fmt.Sprintf("all backend origins unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError reports that a reachable origin answered with an
// error: a non-2xx status, or a 2xx whose JSON body carries an error
// field. It is never retried across origins.
type ApplicationError struct {
	StatusCode int
	Message    string
}

func (e *ApplicationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// IsTransport reports whether err stems from total origin exhaustion.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
