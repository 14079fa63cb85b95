package uniqueid

import (
	"github.com/vango-dev/uniqueid/pkg/vango"
	"github.com/vango-dev/uniqueid/pkg/vdom"
)

// GeneratorContext carries the generator of the nearest enclosing Provider.
var GeneratorContext = vango.CreateNamedContext[*Generator]("uniqueid.Generator", nil)

// ProviderProps are the inputs of a Provider.
type ProviderProps struct {
	// Version resets the counter whenever it differs (by !=) from the
	// value of the previous render. Nil to nil is not a change; nil to a
	// value and a value to nil are. Version must be comparable.
	Version any

	// Observer, when set, receives generator events for this Provider.
	Observer Observer
}

// Provider publishes a generator to every component below it.
//
// The generator is created the first time the Provider renders and lives
// as long as the Provider stays mounted. It is replaced by a fresh one,
// restarting the IDs at 1, when a render sees a different Version. IDs
// already rendered by descendants are left as they are.
//
// Provider needs a runtime that keeps component scopes between renders,
// such as mount.Root. Rendered without one it panics with a *ConfigError
// wrapping ErrNoRuntime.
func Provider(props ProviderProps, children ...any) *vdom.VNode {
	return vdom.Comp(&providerComponent{
		props:    props,
		children: children,
	})
}

type providerComponent struct {
	props    ProviderProps
	children []any
}

// providerState is kept in the Provider's hook slot between renders.
type providerState struct {
	gen     *Generator
	version any
}

func (p *providerComponent) Render() *vdom.VNode {
	owner := vango.CurrentOwner()
	if owner == nil {
		panic(&ConfigError{Component: "uniqueid.Provider", Err: ErrNoRuntime})
	}

	st, _ := owner.UseHookSlot().(*providerState)
	switch {
	case st == nil:
		st = &providerState{
			gen:     newObservedGenerator(p.props.Observer),
			version: p.props.Version,
		}
		owner.SetHookSlot(st)
		p.notifyCreated(false)
	case st.version != p.props.Version:
		st.gen = newObservedGenerator(p.props.Observer)
		st.version = p.props.Version
		p.notifyCreated(true)
	default:
		st.gen.observer = p.props.Observer
	}

	GeneratorContext.Provide(st.gen)
	return vdom.Fragment(p.children...)
}

func (p *providerComponent) notifyCreated(reset bool) {
	if p.props.Observer != nil {
		p.props.Observer.GeneratorCreated(reset)
	}
}

// UseGenerator returns the generator of the nearest enclosing Provider.
// It must be called while a component renders. Without a Provider it
// returns a *ConfigError wrapping ErrNoProvider.
func UseGenerator() (*Generator, error) {
	gen, ok := GeneratorContext.Lookup()
	if !ok || gen == nil {
		return nil, &ConfigError{Err: ErrNoProvider}
	}
	return gen, nil
}

// UseID returns the next ID from the nearest Provider.
// It panics with a *ConfigError when there is none; the runtime reports the
// panic as a render error.
func UseID() int {
	gen, err := UseGenerator()
	if err != nil {
		panic(err)
	}
	return gen.Next()
}
