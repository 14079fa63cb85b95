package vango

import (
	"errors"
	"fmt"
)

// ErrContextNotFound is returned when a required context value has no
// Provider in the enclosing tree. This is a configuration error: the
// component must be mounted below a matching Provider.
var ErrContextNotFound = errors.New("vango: context not found")

// ContextError names the context that failed to resolve.
type ContextError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *ContextError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Name)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ContextError) Unwrap() error {
	return e.Err
}
