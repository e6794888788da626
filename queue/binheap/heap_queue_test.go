package binheap

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

type testStruct struct {
	S string
	M float64
}

func (t *testStruct) Priority() float64 {
	return t.M
}

func TestQueue_EnqueueAndDequeue(t *testing.T) {
	q := NewQueue[float64, *testStruct](Config{Capacity: 3})

	assert.NoError(t, q.Enqueue(&testStruct{S: "1", M: 20.0}))
	assert.NoError(t, q.Enqueue(&testStruct{S: "2", M: 10.0}))
	assert.NoError(t, q.Enqueue(&testStruct{S: "3", M: 100.0}))
	assert.Error(t, q.Enqueue(&testStruct{S: "4", M: 200.0}))

	// { 10.0: 2, 20.0: 1, 100.0: 3 }
	val, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "2", val.S)

	// { 20.0: 1, 100.0: 3 }
	assert.NoError(t, q.Enqueue(&testStruct{S: "5", M: 20.0}))

	// { 20.0: 1, 20.0: 5, 100.0: 3 }
	val, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "1", val.S)

	val, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "5", val.S)

	val, ok = q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, "3", val.S)

	// { }
	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestQueue_StringPriority(t *testing.T) {
	q := NewQueue[string, rank]()

	require.NoError(t, q.Enqueue(rank("b")))
	require.NoError(t, q.Enqueue(rank("a")))
	require.NoError(t, q.Enqueue(rank("c")))

	entries := q.PeekAll()
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Priority)
	assert.Equal(t, "b", entries[1].Priority)
	assert.Equal(t, "c", entries[2].Priority)
	assert.Equal(t, 3, q.Len())
}

type rank string

func (r rank) Priority() string {
	return string(r)
}

func TestQueue_ConcurrentEnqueueKeepsSequence(t *testing.T) {
	q := NewQueue[float64, *testStruct]()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				assert.NoError(t, q.Enqueue(&testStruct{M: float64(i % 3)}))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 800, q.Len())
	assert.Equal(t, uint64(800), q.seq)

	prev := -1.0
	for !q.IsEmpty() {
		val, ok := q.Dequeue()
		require.True(t, ok)
		require.LessOrEqual(t, prev, val.M)
		prev = val.M
	}
}

func TestConfigDefault(t *testing.T) {
	assert.Equal(t, ConfigDefault, configDefault())
	cfg := configDefault(Config{Capacity: 4, SizeHint: 100})
	assert.Equal(t, 4, cfg.SizeHint)
	assert.Equal(t, 16, configDefault(Config{}).SizeHint)
}
