package mount

import (
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/vango-dev/uniqueid/pkg/vango"
	"github.com/vango-dev/uniqueid/pkg/vdom"
)

// instance represents a mounted component with its scope.
// Instances survive re-renders as long as a component of the same type,
// key and identity (see vdom.Identified) appears at the same place in its
// parent's output, which keeps the Owner and its hook slots alive.
type instance struct {
	id string

	// comp is the latest component value rendered at this position.
	comp vdom.Component
	typ   reflect.Type
	ident any
	key   string

	owner *vango.Owner

	// children are the component instances found in the last output,
	// in document order.
	children []*instance
}

// identityOf returns the identity of c, or nil when c does not report one.
func identityOf(c vdom.Component) any {
	if id, ok := c.(vdom.Identified); ok {
		return id.Identity()
	}
	return nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// matches reports whether node can be rendered by this instance.
func (inst *instance) matches(node *vdom.VNode) bool {
	return inst.typ == reflect.TypeOf(node.Comp) &&
		inst.key == node.Key &&
		inst.ident == identityOf(node.Comp)
}

// render runs the component's Render with its owner as the current scope.
// A panic inside Render is recovered and returned as a *RenderError.
func (inst *instance) render() (out *vdom.VNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{
				InstanceID: inst.id,
				Component:  typeName(inst.typ),
				Value:      r,
				Stack:      debug.Stack(),
			}
		}
	}()

	vango.WithOwner(inst.owner, func() {
		inst.owner.StartRender()
		defer inst.owner.EndRender()
		out = inst.comp.Render()
	})
	return out, nil
}

// dispose tears down the instance subtree.
func (inst *instance) dispose(p *pass) {
	for i := len(inst.children) - 1; i >= 0; i-- {
		inst.children[i].dispose(p)
	}
	inst.children = nil
	if inst.owner != nil {
		inst.owner.Dispose()
	}
	p.root.logger.Debug("component unmounted",
		"instance", inst.id,
		"component", typeName(inst.typ))
	p.root.mounted--
}

// childMatcher hands out previous child instances to the component nodes
// of a new output. Keyed nodes match by key, the rest by position.
type childMatcher struct {
	keyed   map[string]*instance
	unkeyed []*instance
	next    int
	used    map[*instance]bool
}

func newChildMatcher(prev []*instance) *childMatcher {
	m := &childMatcher{
		keyed: make(map[string]*instance),
		used:  make(map[*instance]bool, len(prev)),
	}
	for _, c := range prev {
		if c.key != "" {
			m.keyed[c.key] = c
		} else {
			m.unkeyed = append(m.unkeyed, c)
		}
	}
	return m
}

// take returns the previous instance for node if it can be reused.
func (m *childMatcher) take(node *vdom.VNode) *instance {
	var cand *instance
	if node.Key != "" {
		cand = m.keyed[node.Key]
	} else if m.next < len(m.unkeyed) {
		cand = m.unkeyed[m.next]
		m.next++
	}
	if cand == nil || m.used[cand] || !cand.matches(node) {
		return nil
	}
	m.used[cand] = true
	return cand
}

// leftovers returns previous instances that were not reused.
func (m *childMatcher) leftovers(prev []*instance) []*instance {
	var out []*instance
	for _, c := range prev {
		if !m.used[c] {
			out = append(out, c)
		}
	}
	return out
}

// pass is a single top-down render of a Root.
type pass struct {
	root     *Root
	rendered int
}

// mount creates a new instance for a component node under parent.
func (p *pass) mount(node *vdom.VNode, parent *vango.Owner) *instance {
	p.root.seq++
	inst := &instance{
		id:    fmt.Sprintf("c%d", p.root.seq),
		comp:  node.Comp,
		typ:   reflect.TypeOf(node.Comp),
		ident: identityOf(node.Comp),
		key:   node.Key,
		owner: vango.NewOwner(parent),
	}
	p.root.mounted++
	p.root.logger.Debug("component mounted",
		"instance", inst.id,
		"component", typeName(inst.typ),
		"key", inst.key)
	return inst
}

// renderInstance renders inst and expands every component node in its
// output. Children render after their parent, in document order.
func (p *pass) renderInstance(inst *instance) (*vdom.VNode, error) {
	out, err := inst.render()
	if err != nil {
		return nil, err
	}
	p.rendered++

	prev := inst.children
	matcher := newChildMatcher(prev)
	var next []*instance

	expanded, err := p.expand(out, inst, matcher, &next)
	if err != nil {
		// Keep unvisited instances mounted; the next pass can reuse them.
		inst.children = append(next, matcher.leftovers(prev)...)
		return nil, err
	}
	for _, stale := range matcher.leftovers(prev) {
		stale.dispose(p)
	}
	inst.children = next
	return expanded, nil
}

// expand copies node, replacing component nodes by their rendered output.
func (p *pass) expand(node *vdom.VNode, parent *instance, m *childMatcher, next *[]*instance) (*vdom.VNode, error) {
	if node == nil {
		return nil, nil
	}

	if node.Kind == vdom.KindComponent {
		if node.Comp == nil {
			return nil, nil
		}
		child := m.take(node)
		if child == nil {
			child = p.mount(node, parent.owner)
		} else {
			child.comp = node.Comp
		}
		*next = append(*next, child)
		return p.renderInstance(child)
	}

	cp := *node
	if len(node.Children) > 0 {
		cp.Children = make([]*vdom.VNode, 0, len(node.Children))
		for _, c := range node.Children {
			ec, err := p.expand(c, parent, m, next)
			if err != nil {
				return nil, err
			}
			if ec != nil {
				cp.Children = append(cp.Children, ec)
			}
		}
	}
	return &cp, nil
}
