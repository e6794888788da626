package triage

import "golang.org/x/exp/constraints"

// Routed entities are spread across one queue per route (department).
type Routed[P constraints.Ordered] interface {
	Ranked[P]
	Route() string
}

type Pool[P constraints.Ordered, E Routed[P]] interface {
	Append(entities []E) error
	Push(entity E) error
	Eject(limit int) (entities []E, err error)
	Len() int
	Snapshot() map[string][]Entry[P, E]
}
