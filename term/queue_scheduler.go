package term

import (
	"sync/atomic"

	"github.com/odvcencio/furry-store/state"
)

// QueueScheduler enqueues callbacks and wakes the event loop to flush.
// Wake-ups are coalesced until the loop flushes.
type QueueScheduler struct {
	queue   *state.Queue
	post    func(any) bool
	pending atomic.Bool
}

// NewQueueScheduler wires a queue to a post function.
func NewQueueScheduler(queue *state.Queue, post func(any) bool) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{
		queue: queue,
		post:  post,
	}
}

// Schedule enqueues the callback and posts a flush request.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || s.queue == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	if s.post == nil {
		return
	}
	if s.pending.CompareAndSwap(false, true) {
		if !s.post(flushMsg{}) {
			s.pending.Store(false)
		}
	}
}

func (s *QueueScheduler) resetPending() {
	if s == nil {
		return
	}
	s.pending.Store(false)
}
