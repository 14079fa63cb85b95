package mount

import (
	"errors"
	"fmt"
)

// ErrDisposed is returned when rendering a Root after Dispose.
var ErrDisposed = errors.New("mount: root disposed")

// RenderError wraps a panic raised while a component was rendering.
// Render failures are fatal to the pass; the tree from the previous
// successful pass stays available through Root.Last.
type RenderError struct {
	InstanceID string
	Component  string
	Value      any    // Recovered panic value
	Stack      []byte // Stack trace at recovery
}

// Error returns the error message with component context.
func (e *RenderError) Error() string {
	return fmt.Sprintf("mount: render %s (%s): %v", e.InstanceID, e.Component, e.Value)
}

// Unwrap returns the panic value when it is an error, so errors.Is/As can
// see sentinel errors raised by components.
func (e *RenderError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
