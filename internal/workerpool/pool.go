// Package workerpool runs closures on a fixed set of goroutines.
package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/geosearch/internal/hash"
)

// ErrClosed is returned when submitting to a closed pool.
var ErrClosed = errors.New("worker pool closed")

// Pool manages a fixed pool of goroutines. Every worker owns a queue, and tasks
// submitted with the same key always run on the same worker in submission order.
type Pool struct {
	queues   []chan func()
	wg       sync.WaitGroup
	closed   atomic.Bool
	submitMu sync.RWMutex
}

// New creates a pool with numWorkers goroutines.
// numWorkers <= 0 selects runtime.GOMAXPROCS(0).
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		queues: make([]chan func(), numWorkers),
	}

	p.wg.Add(numWorkers)
	for i := range p.queues {
		p.queues[i] = make(chan func(), 2) // small buffer for pipelining
		go p.worker(p.queues[i])
	}

	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.queues)
}

func (p *Pool) worker(queue <-chan func()) {
	defer p.wg.Done()

	for task := range queue {
		task()
	}
}

// Submit enqueues task on the worker owning key.
//
// It blocks while that worker's queue is full and returns ErrClosed if the pool
// is closed or ctx.Err() if ctx ends first.
func (p *Pool) Submit(ctx context.Context, key string, task func()) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if p.closed.Load() {
		return ErrClosed
	}

	select {
	case p.queues[hash.Route(key, len(p.queues))] <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work and waits until every queued task has run.
// It is safe to call Close more than once.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	p.submitMu.Lock()
	for _, q := range p.queues {
		close(q)
	}
	p.submitMu.Unlock()

	p.wg.Wait()
}
