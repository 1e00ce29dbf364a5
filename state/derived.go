package state

import "sync"

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// Derived maps another readable value and republishes the result.
type Derived[S, V any] struct {
	atom      *Atom[V]
	compute   func(S) V
	mu        sync.Mutex
	unsub     func()
	equal     EqualFunc[V]
	scheduler Scheduler
}

// NewDerived creates a value computed from source with fn.
func NewDerived[S, V any](source Readable[S], fn func(S) V) *Derived[S, V] {
	return NewDerivedWithScheduler(nil, source, fn)
}

// NewDerivedWithScheduler creates a derived value and schedules recomputes.
// If scheduler is nil, recomputes run synchronously inside the source's
// notification pass.
func NewDerivedWithScheduler[S, V any](scheduler Scheduler, source Readable[S], fn func(S) V) *Derived[S, V] {
	if fn == nil {
		fn = func(S) V {
			var zero V
			return zero
		}
	}
	d := &Derived[S, V]{
		compute:   fn,
		scheduler: scheduler,
	}
	if source == nil {
		var zero S
		d.atom = NewAtom(fn(zero))
		return d
	}
	d.atom = NewAtom(fn(source.Get()))
	primed := false
	unsub := source.Subscribe(func(value S) {
		if primed {
			d.enqueueRecompute(value)
		}
	})
	primed = true
	d.mu.Lock()
	d.unsub = unsub
	d.mu.Unlock()
	return d
}

// SetEqualFunc configures the equality check used to suppress redundant
// notifications.
func (d *Derived[S, V]) SetEqualFunc(fn EqualFunc[V]) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.equal = fn
	d.mu.Unlock()
}

// Get returns the current derived value.
func (d *Derived[S, V]) Get() V {
	if d == nil {
		var zero V
		return zero
	}
	return d.atom.Get()
}

// Subscribe registers a listener for derived values.
func (d *Derived[S, V]) Subscribe(fn func(V)) func() {
	if d == nil {
		return func() {}
	}
	return d.atom.Subscribe(fn)
}

// Stop detaches from the source.
func (d *Derived[S, V]) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	unsub := d.unsub
	d.unsub = nil
	d.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func (d *Derived[S, V]) recompute(value S) {
	next := d.compute(value)
	d.mu.Lock()
	equal := d.equal
	d.mu.Unlock()
	if equal != nil && equal(d.atom.Get(), next) {
		return
	}
	d.atom.Set(next)
}

func (d *Derived[S, V]) enqueueRecompute(value S) {
	if d.scheduler == nil {
		d.recompute(value)
		return
	}
	d.scheduler.Schedule(func() {
		d.recompute(value)
	})
}
