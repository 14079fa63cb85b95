// Package render serializes VNode trees to HTML.
//
//	r := render.NewRenderer(render.RendererConfig{Pretty: true})
//	html, err := r.RenderToString(tree)
//
// Text and attribute values are escaped; attributes are written in sorted
// order so output is stable across runs.
package render
