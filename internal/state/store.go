package state

import (
	"log"
	"sync"
)

// Listener is notified after every dispatch with the action and the new
// state. Listeners run in subscription order, one dispatch at a time, so
// they observe states in dispatch order. A listener must not dispatch.
type Listener func(a Action, s State)

type subscription struct {
	id int
	fn Listener
}

// Store is the single holder of application state. Construct one per
// program (or per test) and pass it to every consumer.
type Store struct {
	// notifyMu spans a whole dispatch so notifications never interleave.
	notifyMu  sync.Mutex
	mu        sync.Mutex
	state     State
	listeners []subscription
	nextID    int
	logf      func(format string, args ...any)
}

// NewStore creates a Store holding the initial state.
func NewStore() *Store {
	return &Store{
		state: Initial(),
		logf:  log.Printf,
	}
}

// Dispatch applies a to the current state. Dispatches are serialized in
// call order; each one is applied atomically.
func (s *Store) Dispatch(a Action) State {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}
	s.mu.Unlock()

	if a != nil {
		s.logf("state: %s", a.Kind())
	}
	for _, l := range listeners {
		l(a, next)
	}
	return next
}

// DispatchAll applies the actions in order and returns the final state.
func (s *Store) DispatchAll(actions ...Action) State {
	var st State
	for _, a := range actions {
		st = s.Dispatch(a)
	}
	if len(actions) == 0 {
		return s.State()
	}
	return st
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: l})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
