package uniqueid

// NextFunc returns the next ID from a generator.
type NextFunc func() int

// Generator hands out increasing integer IDs, starting at 1.
//
// A Generator is owned by the Provider that created it and is only called
// from render passes of that Provider's tree, which are serialized, so it
// carries no locking.
type Generator struct {
	counter  int
	observer Observer
}

// NewGenerator returns a generator whose first call to Next returns 1.
// Generators never share state.
func NewGenerator() *Generator {
	return &Generator{}
}

func newObservedGenerator(o Observer) *Generator {
	return &Generator{observer: o}
}

// Next increments the counter and returns the new value.
func (g *Generator) Next() int {
	g.counter++
	if g.observer != nil {
		g.observer.IDIssued()
	}
	return g.counter
}

// Func returns Next as a plain function value.
func (g *Generator) Func() NextFunc {
	return g.Next
}

// Issued returns the last ID handed out, or 0 if none.
func (g *Generator) Issued() int {
	return g.counter
}

// Reset rewinds the counter so the next call to Next returns 1.
func (g *Generator) Reset() {
	g.counter = 0
}
