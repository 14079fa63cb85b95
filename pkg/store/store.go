package store

import (
	"sync"
)

// Reducer computes the next state from the current state and an action.
// Reducers must not mutate the state they receive.
type Reducer[S any] func(state S, action any) S

// Store holds application state outside the component tree.
// State only changes through Dispatch; subscribers are notified after every
// dispatch, in subscription order, on the dispatching goroutine.
type Store[S any] struct {
	mu      sync.Mutex
	state   S
	reducer Reducer[S]

	listeners map[uint64]func(S)
	order     []uint64
	nextID    uint64
}

// New creates a store with the given reducer and initial state.
func New[S any](reducer Reducer[S], initial S) *Store[S] {
	return &Store[S]{
		state:     initial,
		reducer:   reducer,
		listeners: make(map[uint64]func(S)),
	}
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch runs the reducer and notifies subscribers with the new state.
func (s *Store[S]) Dispatch(action any) S {
	s.mu.Lock()
	if s.reducer != nil {
		s.state = s.reducer(s.state, action)
	}
	state := s.state
	listeners := make([]func(S), 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
	return state
}

// Subscribe registers fn for state changes and returns a function that
// removes it. Calling the returned function more than once is a no-op.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}
