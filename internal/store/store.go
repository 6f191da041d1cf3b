// Package store implements a small unidirectional state container: a pure
// reducer computes each next state, actions flow through an ordered
// middleware chain, and effects run network work off the dispatch path.
package store

import (
	"sync"
)

// KindInit is the sentinel action kind dispatched once during construction
// so reducers can substitute their default state.
const KindInit = "store.init"

// Action is a discrete, immutable description of a state change.
type Action interface {
	// Kind returns the action's discriminator, used for logging and
	// middleware routing. Reducers switch on the concrete type instead.
	Kind() string
}

// DispatchFunc sends an action through the dispatch pipeline.
type DispatchFunc func(Action)

// Reducer computes the next state from the current state and an action.
// Reducers must be pure: no side effects, no panics, unknown actions
// returned unchanged. They receive the zero state on the init dispatch and
// are expected to substitute their default.
type Reducer[S any] func(S, Action) S

// initAction is dispatched through the reducer once at construction.
type initAction struct{}

func (initAction) Kind() string { return KindInit }

// Store holds a single state value, replaced wholesale on every dispatch.
// It is constructed explicitly and passed where needed; there is no
// package-level instance.
type Store[S any] struct {
	// dispatchMu serializes whole dispatches, middleware chain included,
	// so each one runs to completion before the next begins.
	dispatchMu sync.Mutex
	// mu guards the state value and the subscriber set.
	mu      sync.Mutex
	state   S
	reducer Reducer[S]
	entry   DispatchFunc
	subs    map[int]func(S)
	nextSub int
}

// New builds a store around reducer, installing middlewares in order: the
// first middleware sees every action first. The initial state is derived by
// running the zero state through the reducer with a sentinel init action.
func New[S any](reducer Reducer[S], middlewares ...Middleware) *Store[S] {
	s := &Store[S]{
		reducer: reducer,
		subs:    make(map[int]func(S)),
	}

	var zero S
	s.state = reducer(zero, initAction{})

	entry := DispatchFunc(s.apply)
	for i := len(middlewares) - 1; i >= 0; i-- {
		entry = middlewares[i](entry)
	}
	s.entry = entry

	return s
}

// Dispatch sends an action through the middleware chain to the reducer.
// Each dispatch runs to completion, middlewares and subscriber
// notification included, before another dispatch can begin. Middlewares
// may therefore keep unsynchronized state across dispatches.
func (s *Store[S]) Dispatch(action Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.entry(action)
}

// State returns the current state value.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with the new state after every
// dispatch. It returns an unsubscribe function. Subscribers may read the
// store (State works from inside the callback) but must not call Dispatch,
// which would deadlock on the running dispatch; spawn an effect instead.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// apply is the end of the middleware chain: it reduces and swaps the state
// under the state lock, then notifies subscribers outside it so callbacks
// can read the store. The caller holds dispatchMu, so the whole sequence
// still runs to completion per dispatch.
func (s *Store[S]) apply(action Action) {
	s.mu.Lock()
	next := s.reducer(s.state, action)
	s.state = next
	listeners := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}
