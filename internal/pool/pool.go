// Package pool provides a persistent, bounded worker pool.
//
// A Pool starts a fixed number of goroutines once and feeds them through a
// task queue. Callers submit a batch of tasks and block until every task of
// that batch has finished, which makes each batch a synchronous barrier.
// Panics inside a task are recovered and reported as a *TaskError.
package pool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned when a batch is submitted to a closed pool.
var ErrClosed = errors.New("pool: closed")

// TaskError describes a failed task of a batch.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type TaskError struct {
	// Task is the index of the task within its batch.
	Task int
	// Panic holds the recovered value when the task panicked.
	Panic any
	// Stack is the goroutine stack captured at the panic site.
	Stack []byte
	cause error
}

func (e *TaskError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("task %d panicked: %v", e.Task, e.Panic)
	}
	return fmt.Sprintf("task %d failed: %v", e.Task, e.cause)
}

func (e *TaskError) Unwrap() error { return e.cause }

type job struct {
	index int
	fn    func() error
	errs  []error
	wg    *sync.WaitGroup
}

func (j job) run() {
	defer j.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			j.errs[j.index] = &TaskError{Task: j.index, Panic: r, Stack: debug.Stack()}
		}
	}()
	if err := j.fn(); err != nil {
		j.errs[j.index] = &TaskError{Task: j.index, cause: err}
	}
}

// Pool is a fixed-size set of worker goroutines sharing one task queue.
// It is safe for concurrent use; batches from different callers interleave.
type Pool struct {
	size   int
	queue  chan job
	group  errgroup.Group
	mu     sync.RWMutex
	closed atomic.Bool
}

// New starts a pool with size workers. size is raised to 1 if smaller.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		size:  size,
		queue: make(chan job, size),
	}
	for range size {
		p.group.Go(p.loop)
	}
	return p
}

func (p *Pool) loop() error {
	for j := range p.queue {
		j.run()
	}
	return nil
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Run executes fns on the pool and waits for all of them to return.
//
// The returned error is the failure of the lowest-indexed task, so the
// outcome does not depend on scheduling. If ctx is cancelled while tasks are
// still being queued, no further tasks are queued, the queued ones are
// awaited and ctx.Err() is returned.
func (p *Pool) Run(ctx context.Context, fns []func() error) error {
	if len(fns) == 0 {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed.Load() {
		return ErrClosed
	}

	errs := make([]error, len(fns))
	var wg sync.WaitGroup

	var cancelled error
submit:
	for i, fn := range fns {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		wg.Add(1)
		select {
		case p.queue <- job{index: i, fn: fn, errs: errs, wg: &wg}:
		case <-ctx.Done():
			wg.Done()
			cancelled = ctx.Err()
			break submit
		}
	}
	wg.Wait()

	if cancelled != nil {
		return cancelled
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Map runs fn(i) for every i in [0,n) on the pool and returns the results in
// index order.
func Map[T any](ctx context.Context, p *Pool, n int, fn func(i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	fns := make([]func() error, n)
	for i := range fns {
		fns[i] = func() error {
			v, err := fn(i)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		}
	}
	if err := p.Run(ctx, fns); err != nil {
		return nil, err
	}
	return out, nil
}

// Close stops the workers after the queue drains. It is idempotent and
// waits for in-flight batches to complete.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(p.queue)
	return p.group.Wait()
}
