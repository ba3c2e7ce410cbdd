package server

import "fmt"

// ErrMissingAVP indicates a response builder required an attribute the
// request did not carry. Recoverable: the connection worker answers with
// the generic failure instead of terminating.
type ErrMissingAVP struct {
	Code uint32
}

func (e ErrMissingAVP) Error() string {
	return fmt.Sprintf("required attribute %d missing from request", e.Code)
}

// ErrHandlerPanic indicates a handler panicked; surfaced by the recovery
// middleware so the worker can fall back to the generic failure answer.
type ErrHandlerPanic struct {
	Value any
}

func (e ErrHandlerPanic) Error() string {
	return fmt.Sprintf("handler panic: %v", e.Value)
}
