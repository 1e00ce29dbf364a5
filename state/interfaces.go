package state

// Readable exposes read-only observable state.
type Readable[T any] interface {
	Get() T
	Subscribe(fn func(T)) func()
}

// Writable exposes read/write observable state.
type Writable[T any] interface {
	Readable[T]
	Set(value T)
	Update(fn func(T) T)
}

// Observer receives values from an Atom.
// Observers of a comparable type are registered at most once per atom.
type Observer[T any] interface {
	Update(value T)
}

// ObserverFunc adapts a function into an Observer.
// Func types are not comparable, so an ObserverFunc is never de-duplicated.
type ObserverFunc[T any] func(T)

// Update calls f with value.
func (f ObserverFunc[T]) Update(value T) {
	if f != nil {
		f(value)
	}
}

var (
	_ Writable[int] = (*Atom[int])(nil)
	_ Readable[int] = (*Derived[int, int])(nil)
)
