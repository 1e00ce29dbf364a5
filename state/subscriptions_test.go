package state

import "testing"

func TestSubscriptions_Clear(t *testing.T) {
	subs := &Subscriptions{}
	calls := 0

	subs.Add(func() { calls++ })
	subs.Add(func() { calls++ })
	if subs.Len() != 2 {
		t.Fatalf("expected 2 tracked callbacks, got %d", subs.Len())
	}

	subs.Clear()
	if calls != 2 {
		t.Fatalf("expected 2 unsubscribe calls, got %d", calls)
	}

	subs.Clear()
	if calls != 2 {
		t.Fatalf("expected no extra calls after clear, got %d", calls)
	}
}

func TestSubscriptions_WatchWithScheduler(t *testing.T) {
	atom := NewAtom(1)
	queue := NewQueue()
	subs := NewSubscriptions(queue)
	var seen []int

	Watch[int](subs, atom, func(v int) {
		seen = append(seen, v)
	})
	if len(seen) != 0 {
		t.Fatalf("expected replay to be queued, got %v", seen)
	}

	atom.Set(2)
	if flushed := queue.Flush(); flushed != 2 {
		t.Fatalf("expected replay and update flushed, got %d", flushed)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("unexpected values after flush: %v", seen)
	}

	subs.Clear()
	atom.Set(3)
	if flushed := queue.Flush(); flushed != 0 {
		t.Fatalf("expected nothing queued after clear, got %d", flushed)
	}
}

func TestSubscriptions_WatchDirect(t *testing.T) {
	atom := NewAtom("a")
	subs := &Subscriptions{}
	var last string

	Watch[string](subs, atom, func(v string) { last = v })
	if last != "a" {
		t.Fatalf("expected synchronous replay, got %q", last)
	}

	atom.Set("b")
	if last != "b" {
		t.Fatalf("expected synchronous update, got %q", last)
	}
}
