// Package vdom provides the virtual node tree used by the component runtime.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments, components, and raw HTML. Props holds element attributes and
// component inputs. Component is anything with a Render method.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    Label(For("name"), Text("Name")),
//	    Input(ID("name"), Type("text")),
//	)
//
// # Props
//
// MergeProps combines two prop maps with the right-hand side winning on
// collisions. Components that derive props and also accept explicit ones
// use it so explicit values always take precedence.
package vdom
