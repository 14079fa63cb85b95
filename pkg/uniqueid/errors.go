package uniqueid

import (
	"errors"
	"fmt"
)

// ErrNoProvider is returned when a component asks for IDs but no Provider
// encloses it. This is a configuration error, not something a render can
// recover from: mount the component below a Provider.
var ErrNoProvider = errors.New("uniqueid: no provider found")

// ErrNoRuntime is returned when a Provider renders without a component
// scope, for example when a tree is serialized without mounting it first.
var ErrNoRuntime = errors.New("uniqueid: provider rendered outside a runtime")

// ConfigError reports which component was rendered in the wrong place.
type ConfigError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Component == "":
		return e.Err.Error()
	case errors.Is(e.Err, ErrNoRuntime):
		return fmt.Sprintf("%v: mount %s with mount.Root", e.Err, e.Component)
	default:
		return fmt.Sprintf("%v: %s must be rendered inside a Provider", e.Err, e.Component)
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
