package bind

import (
	"maps"
	"sync"

	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

// Source is the contract a store offers to adapters.
type Source[S any] interface {
	Get() S
	Subscribe(fn func(S)) func()
	Dispatch(action any) any
}

var _ Source[int] = (*store.Store[int])(nil)

// Connected exposes mapped store state and mapped dispatch to a component.
type Connected[V, D any] struct {
	*Binding[V]
	dispatch store.DispatchFunc
	actions  D
}

// Connect maps a store for one component. The binding is not subscribed
// until mounted; mapState runs on every notification while mounted. A nil
// mapState passes the state through when S converts to V. A nil
// mapDispatch leaves Actions at its zero value; use Dispatch instead.
func Connect[S, V, D any](src Source[S], mapState func(S) V, mapDispatch func(store.DispatchFunc) D, scheduler state.Scheduler) *Connected[V, D] {
	if src == nil {
		return &Connected[V, D]{Binding: newBinding[V](nil, scheduler)}
	}
	if mapState == nil {
		mapState = func(s S) V {
			v, _ := any(s).(V)
			return v
		}
	}
	subscribe := func(fn func(V)) func() {
		return src.Subscribe(func(s S) {
			fn(mapState(s))
		})
	}
	c := &Connected[V, D]{
		Binding:  newBinding[V](subscribe, scheduler),
		dispatch: src.Dispatch,
	}
	if mapDispatch != nil {
		c.actions = mapDispatch(c.dispatch)
	}
	return c
}

// Actions returns the mapped dispatch.
func (c *Connected[V, D]) Actions() D {
	return c.actions
}

// Dispatch returns the store's dispatch.
func (c *Connected[V, D]) Dispatch() store.DispatchFunc {
	return c.dispatch
}

// Props is a property bag fed by a store: each notification merges the
// mapped state over the previous props, then the mapped actions are laid on
// top.
type Props struct {
	*Binding[map[string]any]

	mu      sync.Mutex
	merged  map[string]any
	actions map[string]any
}

// ConnectProps binds a store to a property bag.
func ConnectProps[S any](src Source[S], mapState func(S) map[string]any, mapDispatch func(store.DispatchFunc) map[string]any, scheduler state.Scheduler) *Props {
	p := &Props{merged: map[string]any{}}
	if src == nil || mapState == nil {
		p.Binding = newBinding[map[string]any](nil, scheduler)
		return p
	}
	if mapDispatch != nil {
		p.actions = mapDispatch(src.Dispatch)
	}
	subscribe := func(fn func(map[string]any)) func() {
		return src.Subscribe(func(s S) {
			fn(p.merge(mapState(s)))
		})
	}
	p.Binding = newBinding[map[string]any](subscribe, scheduler)
	return p
}

// Get returns the current props.
func (p *Props) Get() map[string]any {
	out := maps.Clone(p.Value())
	if out == nil {
		out = map[string]any{}
	}
	maps.Copy(out, p.actions)
	return out
}

func (p *Props) merge(mapped map[string]any) map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := maps.Clone(p.merged)
	maps.Copy(next, mapped)
	p.merged = next
	return next
}
