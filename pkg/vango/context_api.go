package vango

import (
	"fmt"

	"github.com/vango-dev/uniqueid/pkg/vdom"
)

// Context provides dependency injection through the component tree.
// Create a context with CreateContext, provide values with Provider,
// and consume values with Use.
//
// Example:
//
//	var ThemeContext = vango.CreateContext("light")
//
//	func App() vdom.Component {
//	    return vdom.Func(func() *vdom.VNode {
//	        return ThemeContext.Provider("dark",
//	            Header(),
//	            Main(),
//	        )
//	    })
//	}
//
//	func Button() *vdom.VNode {
//	    theme := ThemeContext.Use()
//	    return vdom.Span(vdom.Class("btn-" + theme))
//	}
type Context[T any] struct {
	// key uniquely identifies this context in the owner value map
	key any

	name string

	// defaultValue is returned when no provider is found
	defaultValue T
}

// contextKey wraps Context to create a unique key type
type contextKey[T any] struct {
	ctx *Context[T]
}

// CreateContext creates a new context with the given default value.
// The default value is returned by Use() when no Provider is found
// in the component tree.
func CreateContext[T any](defaultValue T) *Context[T] {
	return CreateNamedContext("", defaultValue)
}

// CreateNamedContext is CreateContext with a name used in error messages.
func CreateNamedContext[T any](name string, defaultValue T) *Context[T] {
	ctx := &Context[T]{
		name:         name,
		defaultValue: defaultValue,
	}
	ctx.key = contextKey[T]{ctx: ctx}
	return ctx
}

// Name returns the context name, or a generic label for unnamed contexts.
func (c *Context[T]) Name() string {
	if c.name == "" {
		return fmt.Sprintf("context[%T]", c.defaultValue)
	}
	return c.name
}

// Provider wraps children with this context's value.
// It returns a component node so the value is stored on the provider's own
// scope: siblings of the provider never see it, descendants always do.
func (c *Context[T]) Provider(value T, children ...any) *vdom.VNode {
	return vdom.Comp(&contextProviderComponent[T]{
		ctx:      c,
		value:    value,
		children: children,
	})
}

// Provide stores value on the currently rendering component's scope.
// Components that render their own children use it instead of Provider
// when they already are the scope the value belongs to.
func (c *Context[T]) Provide(value T) {
	if owner := getCurrentOwner(); owner != nil {
		owner.SetValue(c.key, value)
	}
}

type contextProviderComponent[T any] struct {
	ctx      *Context[T]
	value    T
	children []any
}

// Render stores the value on the current owner and passes children through.
func (p *contextProviderComponent[T]) Render() *vdom.VNode {
	p.ctx.Provide(p.value)
	return vdom.Fragment(p.children...)
}

// Lookup retrieves the value from the nearest Provider ancestor.
// The second result is false when no Provider is in scope.
func (c *Context[T]) Lookup() (T, bool) {
	owner := getCurrentOwner()
	if owner == nil {
		return c.defaultValue, false
	}
	value, ok := owner.LookupValue(c.key)
	if !ok {
		return c.defaultValue, false
	}
	typed, ok := value.(T)
	if !ok {
		return c.defaultValue, false
	}
	return typed, true
}

// Use retrieves the context value from the nearest Provider ancestor.
// If no Provider is found, returns the default value.
//
// It MUST be called during render.
func (c *Context[T]) Use() T {
	value, _ := c.Lookup()
	return value
}

// MustUse is like Use but panics with a *ContextError wrapping
// ErrContextNotFound when no Provider is in scope.
func (c *Context[T]) MustUse() T {
	value, ok := c.Lookup()
	if !ok {
		panic(&ContextError{Name: c.Name(), Err: ErrContextNotFound})
	}
	return value
}

// Default returns the default value for this context.
func (c *Context[T]) Default() T {
	return c.defaultValue
}
