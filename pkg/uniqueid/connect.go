package uniqueid

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/vango-dev/uniqueid/pkg/vdom"
)

// MapFunc derives props from a generator. It may call next any number of
// times; each call advances the Provider's counter by one.
type MapFunc func(next NextFunc) vdom.Props

// Wrapped is a component rendered from props.
type Wrapped func(props vdom.Props) *vdom.VNode

// Receiver renders a Wrapped component with generated props merged in.
// Calling it returns a component node; the IDs are drawn when that node
// renders, not when the Receiver is called.
type Receiver func(props vdom.Props) *vdom.VNode

// Connect builds receivers that feed IDs from the nearest Provider into a
// component.
//
//	Field := uniqueid.Connect(func(next uniqueid.NextFunc) vdom.Props {
//	    return vdom.Props{"id": next()}
//	})(TextField)
//
//	uniqueid.Provider(uniqueid.ProviderProps{},
//	    Field(vdom.Props{"label": "Name"}),
//	    Field(vdom.Props{"label": "Email"}),
//	)
//
// On every render the receiver calls mapFn with the generator and renders
// the wrapped component with the result merged under the explicit props:
// explicit props win on key collisions. IDs are not stable across
// renders. A "key" entry in the explicit props becomes the node's
// reconciliation key, formatted with fmt.Sprint, and is not forwarded.
func Connect(mapFn MapFunc) func(Wrapped) Receiver {
	return func(wrapped Wrapped) Receiver {
		name := funcName(wrapped)
		return func(props vdom.Props) *vdom.VNode {
			var key string
			if k, ok := props["key"]; ok {
				if k != nil {
					key = fmt.Sprint(k)
				}
				props = props.Clone()
				delete(props, "key")
			}
			return vdom.Keyed(key, vdom.Comp(&receiverComponent{
				name:    name,
				mapFn:   mapFn,
				wrapped: wrapped,
				props:   props,
			}))
		}
	}
}

type receiverComponent struct {
	name    string
	mapFn   MapFunc
	wrapped Wrapped
	props   vdom.Props
}

// receiverIdentity tells receivers of different functions apart, since
// they all share one Go type.
type receiverIdentity struct {
	mapFn, wrapped uintptr
}

// Identity implements vdom.Identified.
func (r *receiverComponent) Identity() any {
	return receiverIdentity{mapFn: funcPointer(r.mapFn), wrapped: funcPointer(r.wrapped)}
}

func (r *receiverComponent) Render() *vdom.VNode {
	gen, err := UseGenerator()
	if err != nil {
		panic(&ConfigError{Component: r.name, Err: ErrNoProvider})
	}

	var idProps vdom.Props
	if r.mapFn != nil {
		idProps = r.mapFn(gen.Func())
	}
	if r.wrapped == nil {
		return nil
	}
	return r.wrapped(vdom.MergeProps(idProps, r.props))
}

func funcPointer(fn any) uintptr {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return 0
	}
	return v.Pointer()
}

func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "<nil>"
	}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return "<unknown>"
}
