package vango

import (
	"sync"
	"sync/atomic"
)

// Owner represents a component scope.
// When an Owner is disposed, its cleanups run and all child owners it
// contains are disposed as well.
//
// Owners form a hierarchy: each mounted component gets an Owner that is a
// child of its parent component's Owner. This mirrors the component tree
// and is what context lookups walk.
type Owner struct {
	id uint64

	// parent is nil for the root Owner.
	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	// values stores context values provided at this scope.
	values   map[any]any
	valuesMu sync.RWMutex

	disposed atomic.Bool

	// Hook slot storage for state that survives re-renders.
	hookSlots   []any
	hookSlotIdx int
	renderCount int
}

// NewOwner creates a new Owner with the given parent.
// The new Owner is registered as a child of the parent.
// If parent is nil, creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// RenderCount returns how many renders have completed in this scope.
func (o *Owner) RenderCount() int {
	return o.renderCount
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// Children returns a snapshot of the child owners.
func (o *Owner) Children() []*Owner {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	return append([]*Owner(nil), o.children...)
}

// OnCleanup registers a cleanup function to run when this Owner is disposed.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		// Already disposed, run cleanup immediately
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// SetValue sets a context value on this Owner.
func (o *Owner) SetValue(key, value any) {
	o.valuesMu.Lock()
	defer o.valuesMu.Unlock()

	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = value
}

// GetValueLocal returns the value stored on this Owner only.
func (o *Owner) GetValueLocal(key any) (any, bool) {
	o.valuesMu.RLock()
	defer o.valuesMu.RUnlock()

	val, ok := o.values[key]
	return val, ok
}

// LookupValue retrieves a value from this Owner or the nearest ancestor
// that has one.
func (o *Owner) LookupValue(key any) (any, bool) {
	for cur := o; cur != nil; cur = cur.parent {
		if val, ok := cur.GetValueLocal(key); ok {
			return val, true
		}
	}
	return nil, false
}

// GetValue retrieves a value from this Owner or its parents.
// Returns nil if no value is found.
func (o *Owner) GetValue(key any) any {
	val, _ := o.LookupValue(key)
	return val
}

// Dispose disposes this Owner and all its children and cleanups.
// Children are disposed in reverse order (last created first).
// After disposal, the Owner cannot be used.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := o.children
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.valuesMu.Lock()
	o.values = nil
	o.valuesMu.Unlock()
	o.hookSlots = nil
}

// StartRender is called at the beginning of a component render.
// It rewinds the hook slot index so slots are handed out in call order.
func (o *Owner) StartRender() {
	o.hookSlotIdx = 0
}

// EndRender is called at the end of a component render.
func (o *Owner) EndRender() {
	o.renderCount++
}

// UseHookSlot returns the stored value for the current hook slot,
// or nil on the first render that reaches this slot.
//
// Usage pattern:
//
//	slot := owner.UseHookSlot()
//	if slot != nil {
//	    return slot.(*state) // Subsequent render: return stored instance
//	}
//	s := &state{}
//	owner.SetHookSlot(s)
//	return s
func (o *Owner) UseHookSlot() any {
	idx := o.hookSlotIdx
	o.hookSlotIdx++

	if idx < len(o.hookSlots) {
		return o.hookSlots[idx]
	}
	return nil
}

// SetHookSlot stores a value in the hook slot most recently returned by
// UseHookSlot.
func (o *Owner) SetHookSlot(value any) {
	idx := o.hookSlotIdx - 1
	if idx < 0 {
		idx = 0
	}
	if idx < len(o.hookSlots) {
		o.hookSlots[idx] = value
		return
	}
	for len(o.hookSlots) < idx {
		o.hookSlots = append(o.hookSlots, nil)
	}
	o.hookSlots = append(o.hookSlots, value)
}
