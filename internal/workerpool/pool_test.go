package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := New(4)

	var n atomic.Int32
	for i := range 100 {
		err := p.Submit(context.Background(), string(rune('a'+i%26)), func() { n.Add(1) })
		require.NoError(t, err)
	}

	p.Close()
	assert.Equal(t, int32(100), n.Load())
}

func TestPoolSameKeyRunsInOrder(t *testing.T) {
	p := New(4)

	var (
		mu    sync.Mutex
		order []int
	)
	for i := range 50 {
		require.NoError(t, p.Submit(context.Background(), "same", func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}
	p.Close()

	require.Len(t, order, 50)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestPoolDefaultSize(t *testing.T) {
	p := New(0)
	defer p.Close()

	assert.Positive(t, p.Size())
}

func TestPoolSubmitAfterClose(t *testing.T) {
	p := New(2)
	p.Close()
	p.Close()

	err := p.Submit(context.Background(), "k", func() {})
	require.ErrorIs(t, err, ErrClosed)
}

func TestPoolSubmitHonoursContext(t *testing.T) {
	p := New(1)

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), "k", func() {
		close(started)
		<-block
	}))
	<-started

	// Fill the queue of the single blocked worker.
	for range cap(p.queues[0]) {
		require.NoError(t, p.Submit(context.Background(), "k", func() {}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.Submit(ctx, "k", func() {})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
	p.Close()
}
