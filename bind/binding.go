// Package bind connects observable state to components with a mount/unmount
// lifecycle.
//
// A Binding subscribes when mounted and releases its subscription when
// unmounted. Values can be handed to another loop through a
// state.Scheduler, the same way widgets hand updates to a UI thread.
package bind

import (
	"sync"

	"github.com/odvcencio/furry-store/state"
)

// SubscribeFunc registers a callback and returns its unsubscribe.
type SubscribeFunc[T any] func(fn func(T)) func()

// Binding tracks the latest value of a source while mounted.
type Binding[T any] struct {
	subscribe SubscribeFunc[T]
	subs      state.Subscriptions

	mu       sync.Mutex
	value    T
	mounted  bool
	onChange func(T)
}

// NewBinding binds a readable source. The binding starts with the source's
// current value and follows it once mounted.
func NewBinding[T any](source state.Readable[T], scheduler state.Scheduler) *Binding[T] {
	if source == nil {
		return newBinding[T](nil, scheduler)
	}
	b := newBinding[T](source.Subscribe, scheduler)
	b.value = source.Get()
	return b
}

func newBinding[T any](subscribe SubscribeFunc[T], scheduler state.Scheduler) *Binding[T] {
	b := &Binding[T]{subscribe: subscribe}
	b.subs.SetScheduler(scheduler)
	return b
}

// OnChange sets a callback invoked with each value received while mounted.
func (b *Binding[T]) OnChange(fn func(T)) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Value returns the last value received.
func (b *Binding[T]) Value() T {
	if b == nil {
		var zero T
		return zero
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Mounted reports whether the binding is subscribed.
func (b *Binding[T]) Mounted() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mounted
}

// Mount subscribes to the source.
func (b *Binding[T]) Mount() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.mounted = true
	b.mu.Unlock()
	b.subs.Clear()
	if b.subscribe == nil {
		return
	}
	b.subs.Add(b.subscribe(state.Schedule(b.subs.Scheduler(), b.receive)))
}

// Unmount releases the subscription. The last value is kept.
func (b *Binding[T]) Unmount() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.mounted = false
	b.mu.Unlock()
	b.subs.Clear()
}

func (b *Binding[T]) receive(value T) {
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return
	}
	b.value = value
	onChange := b.onChange
	b.mu.Unlock()
	if onChange != nil {
		onChange(value)
	}
}
