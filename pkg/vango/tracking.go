package vango

import (
	"runtime"
	"sync"
)

// TrackingContext holds the render scope state for a goroutine.
// Each goroutine has its own tracking context so independent roots can
// render concurrently without seeing each other's owners.
type TrackingContext struct {
	// currentOwner is the Owner of the component being rendered.
	// Context lookups start here.
	currentOwner *Owner
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine.
// The runtime stack header has the form "goroutine <id> [...]".
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *TrackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*TrackingContext)
	}

	ctx := &TrackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

func getCurrentOwner() *Owner {
	gid := getGoroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*TrackingContext).currentOwner
	}
	return nil
}

// setCurrentOwner sets the current owner and returns the previous one so it
// can be restored. Clearing the owner drops the goroutine's entry.
func setCurrentOwner(o *Owner) *Owner {
	if o == nil {
		gid := getGoroutineID()
		ctx, ok := trackingContexts.LoadAndDelete(gid)
		if !ok {
			return nil
		}
		return ctx.(*TrackingContext).currentOwner
	}

	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

// CurrentOwner returns the Owner of the component currently rendering on
// this goroutine, or nil outside a render.
func CurrentOwner() *Owner {
	return getCurrentOwner()
}

// WithOwner runs fn with owner as the current owner.
// The previous owner is restored when fn returns or panics.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}
