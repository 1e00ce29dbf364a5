package bind

import (
	"testing"

	"github.com/odvcencio/furry-store/reducer"
	"github.com/odvcencio/furry-store/state"
	"github.com/odvcencio/furry-store/store"
)

func todoStore() *store.Store[reducer.State] {
	count := reducer.SliceOf("count", 0, func(prev int, action any) int {
		if reducer.IsType(action, "INC") {
			return prev + 1
		}
		return prev
	})
	label := reducer.SliceOf("label", "todo", func(prev string, action any) string {
		if s, ok := reducer.PayloadOf[string](action); ok && reducer.IsType(action, "RENAME") {
			return s
		}
		return prev
	})
	return store.New(reducer.MustCombine(count, label), reducer.State(nil))
}

type counterActions struct {
	Increment func()
}

func TestConnect(t *testing.T) {
	st := todoStore()
	conn := Connect(st,
		func(s reducer.State) int {
			n, _ := reducer.Get[int](s, "count")
			return n
		},
		func(dispatch store.DispatchFunc) counterActions {
			return counterActions{Increment: func() { dispatch(reducer.Action{Type: "INC"}) }}
		},
		nil,
	)

	if st.Subscribers() != 0 {
		t.Fatalf("expected no subscription before mount")
	}
	conn.Mount()
	conn.Actions().Increment()
	conn.Actions().Increment()
	if conn.Value() != 2 {
		t.Fatalf("expected mapped count 2, got %d", conn.Value())
	}

	conn.Dispatch()(reducer.Action{Type: "INC"})
	if conn.Value() != 3 {
		t.Fatalf("expected raw dispatch to reach the store, got %d", conn.Value())
	}

	conn.Unmount()
	if st.Subscribers() != 0 {
		t.Fatalf("expected subscription released on unmount, got %d", st.Subscribers())
	}
}

func TestConnect_Scheduler(t *testing.T) {
	st := todoStore()
	queue := state.NewQueue()
	conn := Connect[reducer.State, string, struct{}](st,
		func(s reducer.State) string {
			v, _ := reducer.Get[string](s, "label")
			return v
		},
		nil,
		queue,
	)

	conn.Mount()
	st.Dispatch(reducer.Action{Type: "RENAME", Payload: "done"})
	if conn.Value() != "" {
		t.Fatalf("expected no value before flush, got %q", conn.Value())
	}
	queue.Flush()
	if conn.Value() != "done" {
		t.Fatalf("expected label done after flush, got %q", conn.Value())
	}
}

func TestConnectProps_MergesOverPrevious(t *testing.T) {
	st := todoStore()
	calls := 0
	props := ConnectProps[reducer.State](st,
		func(s reducer.State) map[string]any {
			n, _ := reducer.Get[int](s, "count")
			if n == 0 {
				return map[string]any{"count": n, "first": true}
			}
			return map[string]any{"count": n}
		},
		func(dispatch store.DispatchFunc) map[string]any {
			return map[string]any{"inc": func() { calls++; dispatch(reducer.Action{Type: "INC"}) }}
		},
		nil,
	)

	props.Mount()
	inc := props.Get()["inc"].(func())
	inc()

	got := props.Get()
	if got["count"] != 1 {
		t.Fatalf("expected count 1, got %v", got["count"])
	}
	if got["first"] != true {
		t.Fatalf("expected earlier props to survive the merge, got %v", got)
	}
	if calls != 1 {
		t.Fatalf("expected mapped action called once, got %d", calls)
	}
}

func TestConnect_NilMapStatePassesThrough(t *testing.T) {
	st := store.New[int](func(n int, action any) int {
		if reducer.IsType(action, "INC") {
			return n + 1
		}
		return n
	}, 4)
	conn := Connect[int, int, struct{}](st, nil, nil, nil)

	conn.Mount()
	defer conn.Unmount()
	conn.Dispatch()(reducer.Action{Type: "INC"})
	if conn.Value() != 5 {
		t.Fatalf("expected state passed through, got %d", conn.Value())
	}
}
