package vdom

import "strings"

// El creates an element node.
// Arguments can be: nil, Attr, []Attr, Props, *VNode, []*VNode, Component, string.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if !v.IsEmpty() {
				node.Props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Props[a.Key] = a.Value
				}
			}
		case Props:
			for k, val := range v {
				node.Props[k] = val
			}
		default:
			node.Children = appendChildren(node.Children, []any{arg})
		}
	}

	return node
}

// Div creates a <div> element.
func Div(args ...any) *VNode { return El("div", args...) }

// Span creates a <span> element.
func Span(args ...any) *VNode { return El("span", args...) }

// P creates a <p> element.
func P(args ...any) *VNode { return El("p", args...) }

// Ul creates a <ul> element.
func Ul(args ...any) *VNode { return El("ul", args...) }

// Li creates an <li> element.
func Li(args ...any) *VNode { return El("li", args...) }

// Label creates a <label> element.
func Label(args ...any) *VNode { return El("label", args...) }

// Input creates an <input> element.
func Input(args ...any) *VNode { return El("input", args...) }

// ID sets the id attribute.
func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return Attr{Key: "class", Value: strings.Join(classes, " ")} }

// For sets the for attribute of a label.
func For(id string) Attr { return Attr{Key: "for", Value: id} }

// Type sets the type attribute.
func Type(t string) Attr { return Attr{Key: "type", Value: t} }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key string, value any) Attr { return Attr{Key: "data-" + key, Value: value} }
