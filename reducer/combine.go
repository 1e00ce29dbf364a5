// Package reducer composes keyed slice update functions into a single
// state-transition function.
package reducer

import (
	"fmt"

	"github.com/odvcencio/furry-store/state"
)

// Func computes the next state from the current state and an action.
// Actions of a shape a reducer does not recognise must be ignored.
type Func[S any] func(state S, action any) S

// State is the keyed state a combined reducer works on.
// Treat it as immutable: reducers return a new map instead of writing.
type State map[string]any

// Slice binds one update function to the key it owns.
type Slice struct {
	Key    string
	Reduce func(prev any, action any) any
}

// SliceOf builds a typed slice. A missing slice, or one holding a value of
// another type, is replaced with initial before fn runs.
func SliceOf[T any](key string, initial T, fn func(prev T, action any) T) Slice {
	if fn == nil {
		return Slice{Key: key}
	}
	return Slice{
		Key: key,
		Reduce: func(prev any, action any) any {
			current, ok := prev.(T)
			if !ok {
				current = initial
			}
			return fn(current, action)
		},
	}
}

// Get returns the slice stored under key when it has type T.
func Get[T any](s State, key string) (T, bool) {
	v, ok := s[key].(T)
	return v, ok
}

// Keys lists slice keys in registration order.
func Keys(slices ...Slice) []string {
	keys := make([]string, len(slices))
	for i, slice := range slices {
		keys[i] = slice.Key
	}
	return keys
}

// Combine merges slices into one reducer over State.
//
// The combined reducer runs every slice in order. It returns the input map
// itself when every slice returned its previous value (see state.Same) and
// the input holds exactly the combined keys. Otherwise it returns a new map
// holding only the combined keys.
func Combine(slices ...Slice) (Func[State], error) {
	seen := make(map[string]struct{}, len(slices))
	list := make([]Slice, 0, len(slices))
	for _, slice := range slices {
		if slice.Key == "" {
			return nil, ErrEmptySliceKey
		}
		if slice.Reduce == nil {
			return nil, fmt.Errorf("%w: %q", ErrNilReducer, slice.Key)
		}
		if _, ok := seen[slice.Key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSliceKey, slice.Key)
		}
		seen[slice.Key] = struct{}{}
		list = append(list, slice)
	}

	return func(current State, action any) State {
		next := make(State, len(list))
		changed := false
		for _, slice := range list {
			prev, present := current[slice.Key]
			value := slice.Reduce(prev, action)
			next[slice.Key] = value
			changed = changed || !present || !state.Same(value, prev)
		}
		changed = changed || len(current) != len(list)
		if !changed {
			return current
		}
		return next
	}, nil
}

// MustCombine is like Combine but panics on error.
func MustCombine(slices ...Slice) Func[State] {
	fn, err := Combine(slices...)
	if err != nil {
		panic(err)
	}
	return fn
}
