// Package store provides a minimal unidirectional-data-flow store: dispatched
// actions run through a single reducer and are then delivered to listeners in
// subscription order. Thunks from the actions package execute against the
// store via Run.
package store

import (
	"context"
	"sync"

	"github.com/Statekit/statekit_sdk_go/pkg/actions"
)

// Reducer folds an action into the current state and returns the next state.
type Reducer func(state any, action actions.Action) any

type listener struct {
	id int
	fn func(actions.Action)
}

// Store holds application state and fans dispatched actions out to
// listeners. All methods are safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	reducer   Reducer
	state     any
	listeners []listener
	nextID    int
}

// New creates a store. The reducer may be nil, in which case dispatching only
// notifies listeners; that is enough for consumers that record or forward
// actions instead of folding state.
func New(reducer Reducer, initial any) *Store {
	return &Store{reducer: reducer, state: initial}
}

// Dispatch applies the action to the reducer and notifies listeners. The
// reducer runs under the store lock; listeners run outside it.
func (s *Store) Dispatch(action actions.Action) {
	s.mu.Lock()
	if s.reducer != nil {
		s.state = s.reducer(s.state, action)
	}
	notify := make([]listener, len(s.listeners))
	copy(notify, s.listeners)
	s.mu.Unlock()

	for _, l := range notify {
		l.fn(action)
	}
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(fn func(actions.Action)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// State returns the current state.
func (s *Store) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run executes a thunk against the store's own dispatch and blocks until the
// thunk's terminal action has been dispatched.
func (s *Store) Run(ctx context.Context, thunk actions.Thunk) {
	if thunk == nil {
		return
	}
	thunk(ctx, s.Dispatch)
}
