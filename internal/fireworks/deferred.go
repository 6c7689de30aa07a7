package fireworks

import (
	"container/heap"
	"time"
)

type task struct {
	at  time.Duration
	seq uint64
	run func(now time.Duration)
}

type taskHeap []task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = task{}
	*h = old[:n-1]
	return t
}

// Deferred is a queue of callbacks keyed by target time. It is drained by
// the tick driver, so callbacks never interleave with a simulation step.
// Tasks due at the same time run in scheduling order.
type Deferred struct {
	tasks taskHeap
	seq   uint64
}

// Schedule queues fn to run on the first drain at or after at.
func (d *Deferred) Schedule(at time.Duration, fn func(now time.Duration)) {
	d.seq++
	heap.Push(&d.tasks, task{at: at, seq: d.seq, run: fn})
}

// Drain runs every task due at now, including tasks queued by other tasks
// during the drain, and returns how many ran.
func (d *Deferred) Drain(now time.Duration) int {
	ran := 0
	for len(d.tasks) > 0 && d.tasks[0].at <= now {
		t := heap.Pop(&d.tasks).(task)
		t.run(now)
		ran++
	}
	return ran
}

// Len returns the number of queued tasks.
func (d *Deferred) Len() int { return len(d.tasks) }
