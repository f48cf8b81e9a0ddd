package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates a request with a missing or malformed field.
// The message is surfaced verbatim to the caller.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrNotFound indicates a result requested before its job completed.
type ErrNotFound struct {
	What string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.What)
}

// ErrUpstream indicates the transcript provider failed; the job has already
// been marked failed in the store when this surfaces.
type ErrUpstream struct {
	Err error
}

func (e *ErrUpstream) Error() string {
	return e.Err.Error()
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
