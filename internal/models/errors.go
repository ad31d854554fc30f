package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownService   = errors.New("unknown service")
	ErrUnsupportedModel = errors.New("model not supported")
	ErrMissingClient    = errors.New("client must be provided")
	ErrInvalidRole      = errors.New("invalid role")
)

// BackendError is a failure which the backend could not convert into a reply.
type BackendError struct {
	Service string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%v API error: %v", e.Service, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
