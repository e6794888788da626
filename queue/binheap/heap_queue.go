package binheap

import (
	"container/heap"
	"github.com/farwydi/triage"
	"golang.org/x/exp/constraints"
	"sort"
	"sync"
)

type heapItem[P constraints.Ordered, E triage.Ranked[P]] struct {
	entry triage.Entry[P, E]
	seq   uint64
}

func (a heapItem[P, E]) less(b heapItem[P, E]) bool {
	if a.entry.Priority != b.entry.Priority {
		return a.entry.Priority < b.entry.Priority
	}
	return a.seq < b.seq
}

type heapImpl[P constraints.Ordered, E triage.Ranked[P]] []heapItem[P, E]

func (h heapImpl[P, E]) Len() int { return len(h) }

func (h heapImpl[P, E]) Less(i, j int) bool { return h[i].less(h[j]) }

func (h heapImpl[P, E]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *heapImpl[P, E]) Push(x any) {
	*h = append(*h, x.(heapItem[P, E]))
}

func (h *heapImpl[P, E]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = heapItem[P, E]{} // avoid memory leak
	*h = old[0 : n-1]
	return item
}

func NewQueue[P constraints.Ordered, E triage.Ranked[P]](config ...Config) *Queue[P, E] {
	cfg := configDefault(config...)
	return &Queue[P, E]{
		cfg:  cfg,
		heap: make(heapImpl[P, E], 0, cfg.SizeHint),
	}
}

// Queue is a binary heap ordered by (priority, arrival sequence).
type Queue[P constraints.Ordered, E triage.Ranked[P]] struct {
	cfg  Config
	heap heapImpl[P, E]
	seq  uint64
	mx   sync.Mutex
}

func (q *Queue[P, E]) Enqueue(entity E) error {
	item := heapItem[P, E]{
		entry: triage.Entry[P, E]{
			Entity:   entity,
			Priority: entity.Priority(),
		},
	}

	q.mx.Lock()
	defer q.mx.Unlock()

	if q.cfg.Capacity > 0 && len(q.heap) >= q.cfg.Capacity {
		return triage.ErrQueueFull
	}

	item.seq = q.seq
	q.seq++
	heap.Push(&q.heap, item)
	return nil
}

func (q *Queue[P, E]) Dequeue() (entity E, ok bool) {
	q.mx.Lock()
	defer q.mx.Unlock()

	if len(q.heap) == 0 {
		return entity, false
	}

	item := heap.Pop(&q.heap).(heapItem[P, E])
	return item.entry.Entity, true
}

func (q *Queue[P, E]) PeekAll() []triage.Entry[P, E] {
	q.mx.Lock()
	items := make([]heapItem[P, E], len(q.heap))
	copy(items, q.heap)
	q.mx.Unlock()

	sort.Slice(items, func(i, j int) bool {
		return items[i].less(items[j])
	})

	entries := make([]triage.Entry[P, E], len(items))
	for i, item := range items {
		entries[i] = item.entry
	}
	return entries
}

func (q *Queue[P, E]) Len() int {
	q.mx.Lock()
	defer q.mx.Unlock()
	return len(q.heap)
}

func (q *Queue[P, E]) IsEmpty() bool {
	return q.Len() == 0
}
