// Package asyncrt is a shared, process-wide cooperative runtime that
// multiplexes Promises and `await`-points onto a bounded goroutine pool,
// plus the bounded fan-out primitives
// `promise_all`/`parallel_map`/`par_each`.
//
// Isolation-oriented `spawn { ... }` is deliberately NOT part of this
// package — it runs on its own OS thread via a fresh evaluator, outside
// the shared pool.
package asyncrt

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/rufflang/ruff/internal/runtime"
)

// DefaultPoolSize is the default task-pool size.
const DefaultPoolSize = 256

// Runtime is the shared cooperative executor. One process-wide instance
// is lazily constructed by Shared().
type Runtime struct {
	mu sync.Mutex
	size int
	sem *semaphore.Weighted
}

var (
	sharedOnce sync.Once
	sharedRT *Runtime
)

// Shared returns the process-wide Runtime, constructing it on first use.
func Shared() *Runtime {
	sharedOnce.Do(func() {
		sharedRT = &Runtime{size: DefaultPoolSize, sem: semaphore.NewWeighted(DefaultPoolSize)}
	})
	return sharedRT
}

// PoolSize returns the current task-pool size.
func (r *Runtime) PoolSize() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// SetPoolSize implements `set_task_pool_size(n)`: n must be a
// positive integer, else an Error value is returned.
func (r *Runtime) SetPoolSize(n int) runtime.Value {
	if n <= 0 {
		return &runtime.ErrorValue{Message: "set_task_pool_size: n must be a positive integer"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = n
	r.sem = semaphore.NewWeighted(int64(n))
	return runtime.Null
}

// AsyncBody is the thunk an async function call or spawned task runs to
// completion; the evaluator supplies this closure so asyncrt never needs
// to import the evaluator package.
type AsyncBody func() (runtime.Value, error)

// Spawn runs body on the shared pool (blocking for a free slot up to the
// pool's weight) and returns a Promise that resolves with its result.
func (r *Runtime) Spawn(body AsyncBody) *runtime.PromiseValue {
	ch := make(chan runtime.AsyncResult, 1)
	done := make(chan struct{})
	handle := &runtime.TaskHandleValue{Done: done}

	r.mu.Lock()
	sem := r.sem
	r.mu.Unlock()

	go func() {
		_ = sem.Acquire(context.Background(), 1)
		defer sem.Release(1)
		defer close(done)

		if handle.IsCancelled() {
			ch <- runtime.AsyncResult{Err: "task cancelled"}
			return
		}
		val, err := body()
		if err != nil {
			ch <- runtime.AsyncResult{Err: err.Error()}
			return
		}
		if runtime.IsError(val) {
			ch <- runtime.AsyncResult{Err: runtime.Stringify(val)}
			return
		}
		ch <- runtime.AsyncResult{Value: val}
	}()

	p := runtime.NewPromise(ch)
	p.Handle = handle
	return p
}

// CancelTask implements `cancel_task(handle)`: marks the handle
// cancelled; the underlying task runs to completion but a subsequent
// await observes the cancellation.
func CancelTask(handle *runtime.TaskHandleValue) runtime.Value {
	handle.Cancel()
	return runtime.Null
}
