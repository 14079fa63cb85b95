package store

import (
	"context"
	"sync"

	"github.com/vango-dev/uniqueid/pkg/mount"
	"github.com/vango-dev/uniqueid/pkg/vdom"
)

// Bind drives a mounted tree from a store.
//
// selector picks the part of the state the view depends on. Bind renders
// view(selector(state)) once immediately, then again after each dispatch
// whose selected value differs (by ==) from the one last rendered.
// Dispatches that leave the selection unchanged do not re-render.
//
// Bind subscribes before the first render. A dispatch made while a render
// is in progress, including one made by the render itself, is picked up
// by a follow-up render once the current one returns.
//
// An error from the first render is returned and the binding is removed.
// Later render errors are passed to onErr, which may be nil. The returned
// function stops the binding.
func Bind[S any, P comparable](
	ctx context.Context,
	root *mount.Root,
	st *Store[S],
	selector func(S) P,
	view func(P) vdom.Component,
	onErr func(error),
) (unbind func(), err error) {
	b := &binding[S, P]{
		ctx:      ctx,
		root:     root,
		store:    st,
		selector: selector,
		view:     view,
		onErr:    onErr,
	}

	unsubscribe := st.Subscribe(func(S) { b.sync(false) })
	if err := b.sync(true); err != nil {
		unsubscribe()
		return nil, err
	}
	return unsubscribe, nil
}

// binding serializes the renders of one Bind call.
type binding[S any, P comparable] struct {
	ctx      context.Context
	root     *mount.Root
	store    *Store[S]
	selector func(S) P
	view     func(P) vdom.Component
	onErr    func(error)

	mu        sync.Mutex
	rendering bool // a goroutine is inside sync's render loop
	pending   bool // state changed while rendering
	rendered  bool // last holds a rendered selection
	last      P
}

// sync renders the current selection if it differs from the last one
// rendered. When another call is already rendering it only marks the
// state as pending; that call re-reads the store before it returns.
//
// With initial set, the error of the first render is returned instead of
// being passed to onErr.
func (b *binding[S, P]) sync(initial bool) error {
	b.mu.Lock()
	if b.rendering {
		b.pending = true
		b.mu.Unlock()
		return nil
	}
	b.rendering = true

	var firstErr error
	first := true
	for {
		b.pending = false
		next := b.selector(b.store.State())
		if b.rendered && next == b.last {
			break
		}
		b.last = next
		b.rendered = true

		b.mu.Unlock()
		_, err := b.root.Update(b.ctx, b.view(next))
		b.mu.Lock()

		if err != nil {
			if initial && first {
				firstErr = err
			} else if b.onErr != nil {
				b.onErr(err)
			}
		}
		first = false
		if !b.pending {
			break
		}
	}

	b.rendering = false
	b.mu.Unlock()
	return firstErr
}
