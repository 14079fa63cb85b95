// Package vango provides component scopes and ambient context.
//
// # Owners
//
// Every mounted component gets an Owner. Owners form a tree that mirrors
// the component tree; disposing an Owner disposes its subtree and runs the
// registered cleanups. Hook slots give a component state that survives
// re-renders of the same instance.
//
// # Context
//
// Context[T] makes a value available to an arbitrarily deep subtree
// without threading it through every intermediate component:
//
//	var LocaleContext = vango.CreateContext("en")
//
//	LocaleContext.Provider("de", Page())
//
//	// somewhere below Page:
//	locale := LocaleContext.Use()
//
// Lookups start at the Owner of the component currently rendering on the
// calling goroutine and walk up to the nearest provider. The runtime
// establishes that Owner with WithOwner around each component render.
package vango
