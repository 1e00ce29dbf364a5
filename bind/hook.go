package bind

import "github.com/odvcencio/furry-store/state"

// Hook shares one atom between every component that uses it.
type Hook[T any] struct {
	atom *state.Atom[T]
}

// FromState creates a hook around a new atom seeded with initial.
func FromState[T any](initial T) *Hook[T] {
	return &Hook[T]{atom: state.NewAtom(initial)}
}

// FromStateWith creates a hook and passes it through factory, so callers can
// wrap it in their own component helpers.
func FromStateWith[T, H any](initial T, factory func(*Hook[T]) H) H {
	hook := FromState(initial)
	if factory == nil {
		var zero H
		if h, ok := any(hook).(H); ok {
			return h
		}
		return zero
	}
	return factory(hook)
}

// Use returns a binding for one component and a setter shared by all.
func (h *Hook[T]) Use(scheduler state.Scheduler) (*Binding[T], Setter[T]) {
	if h == nil {
		return nil, Setter[T]{}
	}
	return NewBinding[T](h.atom, scheduler), Setter[T]{atom: h.atom}
}

// State returns the hook's atom.
func (h *Hook[T]) State() state.Writable[T] {
	if h == nil {
		return nil
	}
	return h.atom
}

// Setter writes to a hook's atom.
type Setter[T any] struct {
	atom *state.Atom[T]
}

// Set replaces the value.
func (s Setter[T]) Set(value T) {
	s.atom.Set(value)
}

// Update replaces the value with fn applied to the current value.
func (s Setter[T]) Update(fn func(T) T) {
	s.atom.Update(fn)
}
