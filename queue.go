package triage

import "golang.org/x/exp/constraints"

// Ranked is anything that can wait in an admission queue.
// A smaller priority is served first.
type Ranked[P constraints.Ordered] interface {
	Priority() P
}

// Entry is a queued entity together with the priority captured at enqueue time.
type Entry[P constraints.Ordered, E Ranked[P]] struct {
	Entity   E
	Priority P
}

type Queue[P constraints.Ordered, E Ranked[P]] interface {
	Enqueue(entity E) error
	Dequeue() (entity E, ok bool)
	PeekAll() []Entry[P, E]
	Len() int
	IsEmpty() bool
}
