package memory

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type testStruct struct {
	M int
}

func (t *testStruct) Priority() int {
	return t.M
}

func TestRace(t *testing.T) {
	q := NewQueue[int, *testStruct]()

	countWorker := 50
	var c int32
	var wg sync.WaitGroup
	wg.Add(countWorker * 2)
	for i := 0; i < countWorker; i++ {
		go func() {
			defer wg.Done()

			for n := 0; n < 100; n++ {
				err := q.Enqueue(&testStruct{M: n % 10})
				assert.NoError(t, err)
				atomic.AddInt32(&c, 1)
			}
		}()
		go func() {
			defer wg.Done()

			for n := 0; n < 50; n++ {
				if _, ok := q.Dequeue(); ok {
					atomic.AddInt32(&c, -1)
				}
				_ = q.PeekAll()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, c, q.Len())

	prev := -1
	for {
		m, ok := q.Dequeue()
		if !ok {
			break
		}
		require.LessOrEqual(t, prev, m.M)
		prev = m.M
	}
}

func TestDequeueWaitReturnsQueued(t *testing.T) {
	q := NewQueue[int, *testStruct]()
	require.NoError(t, q.Enqueue(&testStruct{M: 3}))
	require.NoError(t, q.Enqueue(&testStruct{M: 1}))

	m, err := q.DequeueWait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, m.M)
	assert.Equal(t, 1, q.Len())
}

func TestDequeueWaitBlocksUntilEnqueue(t *testing.T) {
	q := NewQueue[int, *testStruct]()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := make(chan *testStruct, 1)
	go func() {
		m, err := q.DequeueWait(ctx)
		assert.NoError(t, err)
		result <- m
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, q.Enqueue(&testStruct{M: 7}))

	select {
	case m := <-result:
		require.NotNil(t, m)
		assert.Equal(t, 7, m.M)
	case <-ctx.Done():
		t.Fatal("DequeueWait did not wake up")
	}
	assert.True(t, q.IsEmpty())
}

func TestDequeueWaitCancel(t *testing.T) {
	q := NewQueue[int, *testStruct]()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	m, err := q.DequeueWait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, m)

	// still usable after a cancelled wait
	require.NoError(t, q.Enqueue(&testStruct{M: 2}))
	require.NoError(t, q.Enqueue(&testStruct{M: 1}))
	assert.Equal(t, 2, q.Len())
	m, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 1, m.M)
}

func TestConfigDefault(t *testing.T) {
	assert.Equal(t, ConfigDefault, configDefault())
	assert.Equal(t, 0, configDefault(Config{Capacity: -5}).Capacity)
	assert.Equal(t, 3, configDefault(Config{Capacity: 3}).Capacity)
}
