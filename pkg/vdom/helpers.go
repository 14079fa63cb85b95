package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Comp wraps a Component in a component node.
func Comp(c Component) *VNode {
	if c == nil {
		return nil
	}
	return &VNode{
		Kind: KindComponent,
		Comp: c,
	}
}

// Keyed sets the reconciliation key on node and returns it.
func Keyed(key string, node *VNode) *VNode {
	if node != nil {
		node.Key = key
	}
	return node
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0, len(children)),
	}
	node.Children = appendChildren(node.Children, children)
	return node
}

// appendChildren converts loosely typed children into nodes.
// Unsupported values are dropped.
func appendChildren(dst []*VNode, children []any) []*VNode {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				dst = append(dst, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					dst = append(dst, c)
				}
			}
		case []any:
			dst = appendChildren(dst, v)
		case string:
			dst = append(dst, Text(v))
		case Component:
			dst = append(dst, Comp(v))
		}
	}
	return dst
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// Walk visits node and its descendants depth-first in document order.
// Returning false from fn skips the children of the visited node.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// Collect returns every node under root (inclusive) for which match is true,
// in document order.
func Collect(root *VNode, match func(*VNode) bool) []*VNode {
	var out []*VNode
	Walk(root, func(n *VNode) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}
