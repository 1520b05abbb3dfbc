package store

import "sync"

// Listener is notified after every dispatch with the new state and revision.
// Listeners run while the store lock is held and must not call Dispatch.
type Listener func(state State, revision uint64)

// Store is the single writer of application state. Dispatch calls are
// serialized: each action is fully reduced before the next one is read.
type Store struct {
	mu        sync.RWMutex
	state     State
	revision  uint64
	listeners map[int]Listener
	nextID    int
}

// New returns a store holding initial.
func New(initial State) *Store {
	return &Store{
		state:     initial,
		listeners: make(map[int]Listener),
	}
}

// Dispatch reduces action against the current state and returns the result.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)
	s.revision++
	for _, fn := range s.listeners {
		fn(s.state, s.revision)
	}
	return s.state
}

// State returns the current state. Callers must treat it as read-only.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Revision counts dispatched actions. It changes whenever the state may have.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Snapshot returns state and revision read together.
func (s *Store) Snapshot() (State, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.revision
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
