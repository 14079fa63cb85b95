package main

import (
	"fmt"

	"github.com/vango-dev/uniqueid/pkg/uniqueid"
	"github.com/vango-dev/uniqueid/pkg/vdom"
)

// demoState is held by the serve command's store.
type demoState struct {
	// Generation is bumped by actionBumpVersion and selects the Provider
	// version.
	Generation int

	// Touches is bumped by actionTouch. The view does not read it.
	Touches int
}

type demoAction string

const (
	actionBumpVersion demoAction = "bump-version"
	actionTouch       demoAction = "touch"
)

func demoReducer(s demoState, action any) demoState {
	switch action {
	case actionBumpVersion:
		s.Generation++
	case actionTouch:
		s.Touches++
	}
	return s
}

// demoVersion maps the configured base version and a generation to a
// Provider version. No base at generation zero means unset.
func demoVersion(base string, generation int) any {
	switch {
	case generation == 0 && base == "":
		return nil
	case generation == 0:
		return base
	default:
		return fmt.Sprintf("%s#%d", base, generation)
	}
}

// field renders a label bound to a text input through a generated ID.
func field(props vdom.Props) *vdom.VNode {
	id := props.String("id")
	return vdom.Div(vdom.Class("field"),
		vdom.Label(vdom.For(id), vdom.Text(props.String("label"))),
		vdom.Input(vdom.ID(id), vdom.Type("text"), vdom.Attr{Key: "name", Value: props.Get("name")}),
	)
}

var connectedField = uniqueid.Connect(func(next uniqueid.NextFunc) vdom.Props {
	return vdom.Props{"id": fmt.Sprintf("field-%d", next())}
})(field)

// demoTree renders a form with items connected fields under one Provider.
func demoTree(items int, version any, obs uniqueid.Observer) vdom.Component {
	return vdom.Func(func() *vdom.VNode {
		fields := make([]*vdom.VNode, items)
		for i := range fields {
			fields[i] = connectedField(vdom.Props{
				"label": fmt.Sprintf("Field %d", i+1),
				"name":  fmt.Sprintf("f%d", i+1),
			})
		}
		return vdom.El("form", vdom.Class("demo"),
			uniqueid.Provider(uniqueid.ProviderProps{Version: version, Observer: obs}, fields),
		)
	})
}
