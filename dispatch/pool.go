package dispatch

import (
	"github.com/farwydi/triage"
	"golang.org/x/exp/constraints"
	"sort"
	"sync"
)

type NewQueueFunc[P constraints.Ordered, E triage.Routed[P]] func(route string) (triage.Queue[P, E], error)

// NewPool keeps one admission queue per route, created on first use.
func NewPool[P constraints.Ordered, E triage.Routed[P]](newQueue NewQueueFunc[P, E]) *Pool[P, E] {
	return &Pool[P, E]{
		newQueue:  newQueue,
		openQueue: map[string]triage.Queue[P, E]{},
	}
}

type Pool[P constraints.Ordered, E triage.Routed[P]] struct {
	newQueue  NewQueueFunc[P, E]
	ofsMx     sync.Mutex
	openQueue map[string]triage.Queue[P, E]
}

func (p *Pool[P, E]) getQueue(route string) (triage.Queue[P, E], error) {
	var err error
	queue, isInit := p.openQueue[route]
	if !isInit {
		queue, err = p.newQueue(route)
		if err != nil {
			return nil, err
		}

		p.openQueue[route] = queue
	}

	return queue, nil
}

// routes returns open routes in name order so draining is deterministic.
func (p *Pool[P, E]) routes() []string {
	routes := make([]string, 0, len(p.openQueue))
	for route := range p.openQueue {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

func (p *Pool[P, E]) Append(entities []E) error {
	p.ofsMx.Lock()
	defer p.ofsMx.Unlock()

	for _, entity := range entities {
		queue, err := p.getQueue(entity.Route())
		if err != nil {
			return err
		}

		err = queue.Enqueue(entity)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Pool[P, E]) Push(entity E) error {
	p.ofsMx.Lock()
	defer p.ofsMx.Unlock()

	queue, err := p.getQueue(entity.Route())
	if err != nil {
		return err
	}

	return queue.Enqueue(entity)
}

// Eject takes up to limit heads, exhausting each route before the next.
// A negative limit takes everything.
func (p *Pool[P, E]) Eject(limit int) (entities []E, err error) {
	p.ofsMx.Lock()
	defer p.ofsMx.Unlock()

	maxLimit := p.size()

	if limit > maxLimit {
		limit = maxLimit
	}

	if limit < 0 {
		limit = maxLimit
	}

	if limit == 0 {
		return nil, nil
	}

	entities = make([]E, 0, limit)
	for _, route := range p.routes() {
		queue := p.openQueue[route]
		for len(entities) < limit {
			entity, ok := queue.Dequeue()
			if !ok {
				break
			}
			entities = append(entities, entity)
		}

		if len(entities) >= limit {
			return entities, nil
		}
	}
	return entities, nil
}

func (p *Pool[P, E]) size() int {
	n := 0
	for _, queue := range p.openQueue {
		n += queue.Len()
	}
	return n
}

func (p *Pool[P, E]) Len() int {
	p.ofsMx.Lock()
	defer p.ofsMx.Unlock()
	return p.size()
}

func (p *Pool[P, E]) Snapshot() map[string][]triage.Entry[P, E] {
	p.ofsMx.Lock()
	defer p.ofsMx.Unlock()

	snapshot := make(map[string][]triage.Entry[P, E], len(p.openQueue))
	for route, queue := range p.openQueue {
		if entries := queue.PeekAll(); len(entries) > 0 {
			snapshot[route] = entries
		}
	}
	return snapshot
}
