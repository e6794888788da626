package memory

import (
	"container/list"
	"context"
	"github.com/farwydi/triage"
	"golang.org/x/exp/constraints"
	"sync"
)

func NewQueue[P constraints.Ordered, E triage.Ranked[P]](config ...Config) *Queue[P, E] {
	return &Queue[P, E]{
		cfg:    configDefault(config...),
		buffer: list.New(),
		notify: make(chan struct{}),
	}
}

// Queue keeps entries sorted by priority, equal priorities in arrival order.
type Queue[P constraints.Ordered, E triage.Ranked[P]] struct {
	cfg    Config
	buffer *list.List
	mx     sync.Mutex

	// closed and replaced on every enqueue
	notify chan struct{}
}

func (m *Queue[P, E]) Enqueue(entity E) error {
	entry := triage.Entry[P, E]{
		Entity:   entity,
		Priority: entity.Priority(),
	}

	m.mx.Lock()
	defer m.mx.Unlock()

	if m.cfg.Capacity > 0 && m.buffer.Len() >= m.cfg.Capacity {
		return triage.ErrQueueFull
	}

	m.insert(entry)

	close(m.notify)
	m.notify = make(chan struct{})

	return nil
}

func (m *Queue[P, E]) insert(entry triage.Entry[P, E]) {
	back := m.buffer.Back()
	if back == nil || back.Value.(triage.Entry[P, E]).Priority <= entry.Priority {
		m.buffer.PushBack(entry)
		return
	}

	for e := m.buffer.Front(); e != nil; e = e.Next() {
		if e.Value.(triage.Entry[P, E]).Priority > entry.Priority {
			m.buffer.InsertBefore(entry, e)
			return
		}
	}

	// unordered priorities (NaN) compare greater than nothing
	m.buffer.PushBack(entry)
}

func (m *Queue[P, E]) Dequeue() (entity E, ok bool) {
	m.mx.Lock()
	defer m.mx.Unlock()

	return m.popFront()
}

// DequeueWait blocks until an entity is available or ctx is done.
func (m *Queue[P, E]) DequeueWait(ctx context.Context) (entity E, err error) {
	var ok bool
	for {
		m.mx.Lock()
		entity, ok = m.popFront()
		wait := m.notify
		m.mx.Unlock()

		if ok {
			return entity, nil
		}

		select {
		case <-ctx.Done():
			return entity, ctx.Err()
		case <-wait:
		}
	}
}

func (m *Queue[P, E]) popFront() (entity E, ok bool) {
	front := m.buffer.Front()
	if front == nil {
		return entity, false
	}

	return m.buffer.Remove(front).(triage.Entry[P, E]).Entity, true
}

func (m *Queue[P, E]) PeekAll() []triage.Entry[P, E] {
	m.mx.Lock()
	defer m.mx.Unlock()

	entries := make([]triage.Entry[P, E], 0, m.buffer.Len())
	for e := m.buffer.Front(); e != nil; e = e.Next() {
		entries = append(entries, e.Value.(triage.Entry[P, E]))
	}
	return entries
}

func (m *Queue[P, E]) Len() int {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.buffer.Len()
}

func (m *Queue[P, E]) IsEmpty() bool {
	return m.Len() == 0
}
