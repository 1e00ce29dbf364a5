package bind

import (
	"testing"

	"github.com/odvcencio/furry-store/state"
)

func TestBinding_LifecycleDirect(t *testing.T) {
	atom := state.NewAtom("start")
	binding := NewBinding[string](atom, nil)
	changes := 0
	binding.OnChange(func(string) { changes++ })

	if binding.Value() != "start" {
		t.Fatalf("expected initial value start, got %q", binding.Value())
	}
	atom.Set("ignored")
	if binding.Value() != "start" || changes != 0 {
		t.Fatalf("expected no updates before mount, got %q (%d changes)", binding.Value(), changes)
	}

	binding.Mount()
	if binding.Value() != "ignored" || changes != 1 {
		t.Fatalf("expected replay on mount, got %q (%d changes)", binding.Value(), changes)
	}

	atom.Set("next")
	if binding.Value() != "next" || changes != 2 {
		t.Fatalf("expected update while mounted, got %q (%d changes)", binding.Value(), changes)
	}

	binding.Unmount()
	atom.Set("final")
	if binding.Value() != "next" {
		t.Fatalf("expected value to stay next after unmount, got %q", binding.Value())
	}
	if atom.Len() != 0 {
		t.Fatalf("expected subscription released, got %d", atom.Len())
	}
}

func TestBinding_LifecycleQueue(t *testing.T) {
	atom := state.NewAtom("start")
	queue := state.NewQueue()
	binding := NewBinding[string](atom, queue)

	binding.Mount()
	atom.Set("next")
	if binding.Value() != "start" {
		t.Fatalf("expected text to update after flush, got %q", binding.Value())
	}
	if flushed := queue.Flush(); flushed != 2 {
		t.Fatalf("expected replay and update queued, got %d", flushed)
	}
	if binding.Value() != "next" {
		t.Fatalf("expected updated value next, got %q", binding.Value())
	}

	binding.Unmount()
	atom.Set("final")
	if flushed := queue.Flush(); flushed != 0 {
		t.Fatalf("expected no queued callbacks after unmount, got %d", flushed)
	}
}

func TestBinding_RemountDoesNotDuplicate(t *testing.T) {
	atom := state.NewAtom(0)
	binding := NewBinding[int](atom, nil)

	binding.Mount()
	binding.Mount()
	if atom.Len() != 1 {
		t.Fatalf("expected a single subscription after remount, got %d", atom.Len())
	}
	binding.Unmount()
	binding.Unmount()
	if binding.Mounted() {
		t.Fatalf("expected binding to be unmounted")
	}
}

func TestBinding_DroppedQueuedValueAfterUnmount(t *testing.T) {
	atom := state.NewAtom(1)
	queue := state.NewQueue()
	binding := NewBinding[int](atom, queue)

	binding.Mount()
	queue.Flush()
	atom.Set(2)
	binding.Unmount()
	queue.Flush()
	if binding.Value() != 1 {
		t.Fatalf("expected queued value dropped after unmount, got %d", binding.Value())
	}
}

type node struct {
	name     string
	children []Lifecycle
	log      *[]string
}

func (n *node) Mount()                { *n.log = append(*n.log, "mount "+n.name) }
func (n *node) Unmount()              { *n.log = append(*n.log, "unmount "+n.name) }
func (n *node) Children() []Lifecycle { return n.children }

func TestMountTree(t *testing.T) {
	var log []string
	child := &node{name: "child", log: &log}
	root := &node{name: "root", children: []Lifecycle{child}, log: &log}

	MountTree(root)
	UnmountTree(root)

	want := []string{"mount root", "mount child", "unmount child", "unmount root"}
	if len(log) != len(want) {
		t.Fatalf("unexpected lifecycle calls: %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("unexpected lifecycle calls: %v", log)
		}
	}
}

func TestGroup(t *testing.T) {
	var log []string
	a := &node{name: "a", log: &log}
	b := &node{name: "b", log: &log}
	group := Group{a, b}

	group.Mount()
	group.Unmount()

	want := []string{"mount a", "mount b", "unmount b", "unmount a"}
	for i := range want {
		if i >= len(log) || log[i] != want[i] {
			t.Fatalf("unexpected lifecycle calls: %v", log)
		}
	}
}
