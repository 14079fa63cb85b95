// Package store holds application state outside the component tree and
// feeds it into a mounted tree.
//
// A Store is a reducer-driven state container. Bind subscribes a
// mount.Root to a Store so that the tree re-renders when the part of the
// state it selects changes:
//
//	st := store.New(reduce, AppState{})
//	root := mount.New(nil)
//	unbind, err := store.Bind(ctx, root, st,
//	    func(s AppState) Selected { return Selected{Version: s.Version} },
//	    func(sel Selected) vdom.Component { return Page(sel) },
//	    nil,
//	)
//
// A typical use is driving the Version of a uniqueid.Provider from state,
// so that a state transition restarts the IDs below it.
package store
