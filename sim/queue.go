// Implements the ExecutionQueue, which holds every job that still owes work.
// Jobs are popped in order of work already performed, which yields round-robin rotation.

package sim

import (
	"container/heap"
	"fmt"
	"strings"
)

// jobHeap implements heap.Interface over *Job.
// Ordering: executedTime → job ID (lower first, deterministic tie-breaker).
type jobHeap []*Job

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	if h[i].ExecutedTime != h[j].ExecutedTime {
		return h[i].ExecutedTime < h[j].ExecutedTime
	}
	return h[i].ID < h[j].ID
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Push appends a job. Called by heap.Push; do not call directly.
func (h *jobHeap) Push(x any) {
	*h = append(*h, x.(*Job))
}

// Pop removes the last job. Called by heap.Pop; do not call directly.
func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	j := old[n-1]
	old[n-1] = nil // avoid memory leak
	*h = old[:n-1]
	return j
}

// ExecutionQueue is a binary min-heap of jobs keyed by ExecutedTime.
// Each Simulator owns its own queue; there is no shared storage between instances.
type ExecutionQueue struct {
	jobs jobHeap
}

// NewExecutionQueue creates an empty execution queue.
func NewExecutionQueue() *ExecutionQueue {
	q := &ExecutionQueue{jobs: make(jobHeap, 0)}
	heap.Init(&q.jobs)
	return q
}

// Push adds a job to the queue.
func (q *ExecutionQueue) Push(j *Job) {
	if j == nil {
		panic("Push: job must not be nil")
	}
	heap.Push(&q.jobs, j)
}

// PopMin removes and returns the job with the least executed time.
// Returns (nil, false) if the queue is empty.
func (q *ExecutionQueue) PopMin() (*Job, bool) {
	if len(q.jobs) == 0 {
		return nil, false
	}
	return heap.Pop(&q.jobs).(*Job), true
}

// Peek returns the job PopMin would return, without removing it.
// Returns (nil, false) if the queue is empty.
func (q *ExecutionQueue) Peek() (*Job, bool) {
	if len(q.jobs) == 0 {
		return nil, false
	}
	return q.jobs[0], true
}

// Len returns the number of queued jobs.
func (q *ExecutionQueue) Len() int {
	return len(q.jobs)
}

// IsEmpty reports whether the queue holds no jobs.
func (q *ExecutionQueue) IsEmpty() bool {
	return len(q.jobs) == 0
}

func (q *ExecutionQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, j := range q.jobs {
		sb.WriteString(fmt.Sprintf("%d:%d", j.ID, j.ExecutedTime))
		if i < len(q.jobs)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
