// Package state provides the observable value holder the store is built on.
//
// An Atom keeps one value and an ordered list of subscribers. Every write
// runs exactly one synchronous notification pass over a snapshot of the
// subscribers taken after the assignment, in the order they subscribed.
package state

import (
	"reflect"
	"sync"
)

type subscriber[T any] struct {
	id       uint64
	fn       func(T)
	observer Observer[T]
}

// Atom holds a value and notifies subscribers on every write.
type Atom[T any] struct {
	mu    sync.Mutex
	value T
	subs  []subscriber[T]
	next  uint64
}

// NewAtom creates an atom with an initial value and no subscribers.
func NewAtom[T any](initial T) *Atom[T] {
	return &Atom[T]{value: initial}
}

// Get returns the current value.
func (a *Atom[T]) Get() T {
	if a == nil {
		var zero T
		return zero
	}
	a.mu.Lock()
	value := a.value
	a.mu.Unlock()
	return value
}

// Set replaces the value and notifies subscribers.
// There is no equality check: every call is a change.
//
// A panicking subscriber aborts the pass and the panic reaches the caller.
// Subscribers after it in the pass are not called.
func (a *Atom[T]) Set(value T) {
	if a == nil {
		return
	}
	a.mu.Lock()
	a.value = value
	subs := a.copySubscribersLocked()
	a.mu.Unlock()

	a.notify(subs)
}

// Update replaces the value with fn applied to the current value.
// fn runs outside the lock; Update is not atomic across goroutines.
func (a *Atom[T]) Update(fn func(T) T) {
	if a == nil || fn == nil {
		return
	}
	a.Set(fn(a.Get()))
}

// Subscribe registers fn and calls it once with the current value before
// returning. The returned func removes the registration and is safe to call
// more than once.
//
// Funcs are not comparable, so each call is a separate registration. Use
// Observe to register a value that must not be added twice.
func (a *Atom[T]) Subscribe(fn func(T)) func() {
	if a == nil || fn == nil {
		return func() {}
	}
	return a.add(subscriber[T]{fn: fn})
}

// Observe registers o unless an equal observer is already registered.
// New observers receive the current value immediately. For an observer that
// is already present nothing is replayed and the returned func still removes
// it.
func (a *Atom[T]) Observe(o Observer[T]) func() {
	if a == nil || o == nil {
		return func() {}
	}
	sub := subscriber[T]{fn: o.Update, observer: o}
	a.mu.Lock()
	if comparableObserver(o) {
		for _, existing := range a.subs {
			if existing.observer != nil && existing.observer == o {
				id := existing.id
				a.mu.Unlock()
				return a.remover(id)
			}
		}
	}
	sub.id = a.addLocked(sub)
	a.mu.Unlock()
	return a.replay(sub)
}

// Len reports the number of registered subscribers.
func (a *Atom[T]) Len() int {
	if a == nil {
		return 0
	}
	a.mu.Lock()
	n := len(a.subs)
	a.mu.Unlock()
	return n
}

func (a *Atom[T]) add(sub subscriber[T]) func() {
	a.mu.Lock()
	sub.id = a.addLocked(sub)
	a.mu.Unlock()
	return a.replay(sub)
}

// addLocked appends sub with a fresh id and returns the id.
func (a *Atom[T]) addLocked(sub subscriber[T]) uint64 {
	if a.subs == nil {
		a.subs = make([]subscriber[T], 0, 1)
	}
	sub.id = a.next
	a.next++
	a.subs = append(a.subs, sub)
	return sub.id
}

func (a *Atom[T]) replay(sub subscriber[T]) func() {
	sub.fn(a.Get())
	return a.remover(sub.id)
}

func (a *Atom[T]) remover(id uint64) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			for i, sub := range a.subs {
				if sub.id == id {
					a.subs = append(a.subs[:i:i], a.subs[i+1:]...)
					break
				}
			}
			a.mu.Unlock()
		})
	}
}

func (a *Atom[T]) copySubscribersLocked() []subscriber[T] {
	if len(a.subs) == 0 {
		return nil
	}
	subs := make([]subscriber[T], len(a.subs))
	copy(subs, a.subs)
	return subs
}

func (a *Atom[T]) notify(subs []subscriber[T]) {
	for _, sub := range subs {
		sub.fn(a.Get())
	}
}

func comparableObserver[T any](o Observer[T]) bool {
	return reflect.TypeOf(o).Comparable()
}
