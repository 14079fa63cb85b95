package vango

import "sync/atomic"

// globalIDCounter is the source of owner IDs.
var globalIDCounter atomic.Uint64

// nextID returns the next owner ID.
// IDs are monotonically increasing and never reused.
func nextID() uint64 {
	return globalIDCounter.Add(1)
}
