// Package mount renders component trees and keeps component instances
// alive between render passes.
//
// A Root owns one tree. Render expands every component node into the
// output of its Render method, creating an instance (with its own
// vango.Owner) the first time a component appears and reusing it on later
// passes while the same component type sits at the same position, or
// under the same key. Instances that disappear from the output are
// disposed.
//
//	root := mount.New(App())
//	tree, err := root.Render(ctx)          // first pass
//	tree, err = root.Update(ctx, App2())   // new root props
//
// Panics raised during a component render are recovered and returned as
// *RenderError. Each pass is traced with OpenTelemetry and reported to
// registered PassObservers.
package mount
