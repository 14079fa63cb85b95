package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/uniqueid/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer serializes VNode trees to HTML.
//
// Trees produced by mount.Root are already expanded. Component nodes that
// are still present are rendered by calling their Render method directly,
// without a component scope, so components relying on context must be
// rendered through a mount.Root first. A panic in such a Render is
// returned as an error.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	sw := &stickyWriter{w: w}
	r.renderNode(sw, node, 0)
	return sw.err
}

// stickyWriter remembers the first write error and drops later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) WriteString(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func (r *Renderer) renderNode(w *stickyWriter, node *vdom.VNode, depth int) {
	if node == nil || w.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindElement:
		r.renderElement(w, node, depth)
	case vdom.KindText:
		w.WriteString(escapeHTML(node.Text))
	case vdom.KindFragment:
		for _, child := range node.Children {
			r.renderNode(w, child, depth)
		}
	case vdom.KindComponent:
		if node.Comp != nil {
			out, err := renderComponent(node.Comp)
			if err != nil {
				w.err = err
				return
			}
			r.renderNode(w, out, depth)
		}
	case vdom.KindRaw:
		w.WriteString(node.Text)
	default:
		w.err = fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderComponent calls c.Render and reports a panic as an error.
// Error panic values are wrapped so errors.Is sees them.
func renderComponent(c vdom.Component) (out *vdom.VNode, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = fmt.Errorf("render: component %T: %w", c, e)
			} else {
				err = fmt.Errorf("render: component %T panicked: %v", c, rec)
			}
		}
	}()
	return c.Render(), nil
}

func (r *Renderer) renderElement(w *stickyWriter, node *vdom.VNode, depth int) {
	tag := node.Tag
	if tag == "" {
		w.err = fmt.Errorf("render: element without tag")
		return
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<" + tag)
	r.renderAttributes(w, node.Props)
	w.WriteString(">")

	if isVoidElement(tag) {
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return
	}

	block := hasBlockChildren(node) && !isInlineElement(tag)
	if r.config.Pretty && block {
		w.WriteString("\n")
	}
	for _, child := range node.Children {
		r.renderNode(w, child, depth+1)
	}
	if r.config.Pretty && block {
		r.writeIndent(w, depth)
	}

	w.WriteString("</" + tag + ">")
	if r.config.Pretty {
		w.WriteString("\n")
	}
}

// hasBlockChildren reports whether node has children other than text.
func hasBlockChildren(node *vdom.VNode) bool {
	for _, c := range node.Children {
		if c != nil && c.Kind != vdom.KindText && c.Kind != vdom.KindRaw {
			return true
		}
	}
	return false
}

// renderAttributes writes attributes sorted by name for deterministic
// output. Keys starting with "_", the "key" prop, nil values and function
// values are skipped.
func (r *Renderer) renderAttributes(w *stickyWriter, props vdom.Props) {
	if len(props) == 0 {
		return
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]
		if key == "key" || strings.HasPrefix(key, "_") || value == nil {
			continue
		}

		name := key
		switch key {
		case "className":
			name = "class"
		case "htmlFor":
			name = "for"
		}

		if isBooleanAttr(name) {
			if b, ok := value.(bool); ok {
				if b {
					w.WriteString(" " + name)
				}
				continue
			}
		}

		s, ok := attrToString(value)
		if !ok {
			continue
		}
		w.WriteString(" " + name + `="` + escapeAttr(s) + `"`)
	}
}

// attrToString formats an attribute value. The second result is false for
// values that have no attribute form.
func attrToString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	case func(), func(any):
		return "", false
	default:
		return fmt.Sprintf("%v", v), true
	}
}

func (r *Renderer) writeIndent(w *stickyWriter, depth int) {
	w.WriteString(strings.Repeat(r.config.Indent, depth))
}
