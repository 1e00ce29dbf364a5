// Package store runs a reducer against an observable state and accepts
// plain actions or thunks through one dispatch entry point.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/odvcencio/furry-store/reducer"
	"github.com/odvcencio/furry-store/state"
)

// DispatchFunc feeds an action or a thunk to a store.
type DispatchFunc func(action any) any

// Thunk is a deferred action. It receives the store's dispatch and state
// getter instead of being passed to the reducer.
type Thunk[S any] func(dispatch DispatchFunc, getState func() S) any

// ErrInvalidThunk is the panic value's cause when a func of an unsupported
// shape is dispatched.
var ErrInvalidThunk = errors.New("func action is not a thunk")

// InitAction is dispatched once when a store starts from a zero state so
// every slice can produce its default.
var InitAction = reducer.Action{Type: reducer.Init}

// Store holds reducer state in an atom and notifies subscribers on every
// dispatched plain action.
type Store[S any] struct {
	atom   *state.Atom[S]
	reduce reducer.Func[S]
	logger *slog.Logger
}

// New creates a store. When initial is the zero value of S the store
// dispatches InitAction before returning.
func New[S any](reduce reducer.Func[S], initial S, opts ...Option) *Store[S] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if reduce == nil {
		reduce = func(current S, _ any) S { return current }
	}
	s := &Store[S]{
		atom:   state.NewAtom(initial),
		reduce: reduce,
		logger: cfg.Logger,
	}
	if isZero(initial) {
		s.logger.Debug("store bootstrap", slog.String("action", InitAction.Type))
		s.Dispatch(InitAction)
	}
	return s
}

// FromReducer creates a store and returns its dispatch and subscribe
// functions.
func FromReducer[S any](reduce reducer.Func[S], initial S, opts ...Option) (DispatchFunc, func(func(S)) func()) {
	s := New(reduce, initial, opts...)
	return s.Dispatch, s.Subscribe
}

// Dispatch runs a thunk or reduces a plain action.
//
// A thunk is called with Dispatch and Get and its result is returned; it may
// dispatch further actions or thunks. Its dispatch parameter may be declared
// as DispatchFunc or func(any) any, and a thunk with no result returns nil.
// Any other func value panics with ErrInvalidThunk.
//
// Every non-func value goes to the reducer unchanged, the result is written
// to the atom, and Dispatch returns nil. A panicking subscriber propagates
// out of Dispatch.
func (s *Store[S]) Dispatch(action any) any {
	if s == nil {
		return nil
	}
	if thunk, ok := asThunk[S](action); ok {
		s.logger.Debug("dispatch thunk")
		return thunk(s.Dispatch, s.Get)
	}
	if isFunc(action) {
		panic(fmt.Errorf("%w: %T", ErrInvalidThunk, action))
	}
	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.logger.Debug("dispatch action", slog.String("type", reducer.TypeOf(action)))
	}
	s.atom.Set(s.reduce(s.atom.Get(), action))
	return nil
}

// Get returns the current state.
func (s *Store[S]) Get() S {
	if s == nil {
		var zero S
		return zero
	}
	return s.atom.Get()
}

// Subscribe registers fn for state changes. fn is called once with the
// current state before Subscribe returns. The returned func is idempotent.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	if s == nil {
		return func() {}
	}
	return s.atom.Subscribe(fn)
}

// Observe registers a comparable observer at most once.
func (s *Store[S]) Observe(o state.Observer[S]) func() {
	if s == nil {
		return func() {}
	}
	return s.atom.Observe(o)
}

// State exposes the store as a read-only value for adapters.
func (s *Store[S]) State() state.Readable[S] {
	if s == nil {
		return nil
	}
	return s.atom
}

// Subscribers reports the number of registered subscribers.
func (s *Store[S]) Subscribers() int {
	if s == nil {
		return 0
	}
	return s.atom.Len()
}

func asThunk[S any](action any) (Thunk[S], bool) {
	switch fn := action.(type) {
	case Thunk[S]:
		return fn, fn != nil
	case func(DispatchFunc, func() S) any:
		return fn, fn != nil
	case func(func(any) any, func() S) any:
		if fn == nil {
			return nil, false
		}
		return func(dispatch DispatchFunc, getState func() S) any {
			return fn(dispatch, getState)
		}, true
	case func(DispatchFunc, func() S):
		if fn == nil {
			return nil, false
		}
		return func(dispatch DispatchFunc, getState func() S) any {
			fn(dispatch, getState)
			return nil
		}, true
	case func(func(any) any, func() S):
		if fn == nil {
			return nil, false
		}
		return func(dispatch DispatchFunc, getState func() S) any {
			fn(dispatch, getState)
			return nil
		}, true
	}
	return nil, false
}

func isFunc(action any) bool {
	return action != nil && reflect.TypeOf(action).Kind() == reflect.Func
}

func isZero[S any](v S) bool {
	rv := reflect.ValueOf(&v).Elem()
	return rv.IsZero()
}
