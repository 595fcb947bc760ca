package asyncrt

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/rufflang/ruff/internal/runtime"
)

// Await blocks the calling goroutine on p's channel, caching the result
// so a second await on the same promise is idempotent: awaiting p twice
// returns the same value.
func Await(p *runtime.PromiseValue) runtime.Value {
	if p.Handle != nil && p.Handle.IsCancelled() {
		return &runtime.ErrorValue{Message: "task cancelled"}
	}
	p.Mu.Lock()
	if p.Polled {
		cached := p.Cached
		p.Mu.Unlock()
		return resultToValue(*cached)
	}
	p.Mu.Unlock()

	res, ok := <-p.Recv
	if !ok {
		res = runtime.AsyncResult{Err: "promise channel closed without a result"}
	}

	p.Mu.Lock()
	p.Polled = true
	p.Cached = &res
	p.Mu.Unlock()

	return resultToValue(res)
}

func resultToValue(res runtime.AsyncResult) runtime.Value {
	if res.Err != "" {
		return &runtime.ErrorValue{Message: res.Err}
	}
	if res.Value == nil {
		return runtime.Null
	}
	return res.Value
}

// PromiseAll executes promises with at most `limit` outstanding at once.
// Ordering of the result array matches input ordering regardless of
// completion order. If any promise rejects, returns an Error value
// identifying which index rejected. limit <= 0 means "use the shared
// runtime's current pool size".
func PromiseAll(promises []*runtime.PromiseValue, limit int) runtime.Value {
	if len(promises) == 0 {
		return runtime.NewArray(nil)
	}
	if limit <= 0 {
		limit = Shared().PoolSize()
	}

	results := make([]runtime.Value, len(promises))
	errs := make([]string, len(promises))
	sem := semaphore.NewWeighted(int64(limit))
	var wg sync.WaitGroup
	ctx := context.Background()

	for i, p := range promises {
		i, p := i, p
		wg.Add(1)
		_ = sem.Acquire(ctx, 1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			v := Await(p)
			if runtime.IsError(v) {
				errs[i] = runtime.Stringify(v)
				return
			}
			results[i] = v
		}()
	}
	wg.Wait()

	for i, e := range errs {
		if e != "" {
			return &runtime.ErrorValue{Message: "promise_all: promise at index " + strconv.Itoa(i) + " rejected: " + e}
		}
	}
	for i, v := range results {
		if v == nil {
			results[i] = runtime.Null
		}
	}
	return runtime.NewArray(results)
}

// MapFn is a user function applied by ParallelMap; it may itself return a
// Promise (to be awaited) or a plain value (used directly).
type MapFn func(item runtime.Value) (runtime.Value, error)

// ParallelMap applies fn to each element of items with bounded
// concurrency, preserving input order.
// ignoreResults implements the `par_each` alias, which still propagates
// errors but discards values.
func ParallelMap(items []runtime.Value, fn MapFn, limit int, ignoreResults bool) runtime.Value {
	if limit <= 0 {
		limit = Shared().PoolSize()
	}
	results := make([]runtime.Value, len(items))
	errs := make([]string, len(items))
	sem := semaphore.NewWeighted(int64(limit))
	var wg sync.WaitGroup
	ctx := context.Background()

	for i, item := range items {
		i, item := i, item
		wg.Add(1)
		_ = sem.Acquire(ctx, 1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			v, err := fn(item)
			if err != nil {
				errs[i] = err.Error()
				return
			}
			if runtime.IsError(v) {
				errs[i] = runtime.Stringify(v)
				return
			}
			results[i] = v
		}()
	}
	wg.Wait()

	for i, e := range errs {
		if e != "" {
			return &runtime.ErrorValue{Message: "parallel_map: item at index " + strconv.Itoa(i) + " failed: " + e}
		}
	}
	if ignoreResults {
		return runtime.Null
	}
	for i, v := range results {
		if v == nil {
			results[i] = runtime.Null
		}
	}
	return runtime.NewArray(results)
}

// AsyncTimeout races a timeout against a promise; on expiry it yields a
// timeout error value.
func AsyncTimeout(p *runtime.PromiseValue, ms int64) runtime.Value {
	type outcome struct{ v runtime.Value }
	done := make(chan outcome, 1)
	go func() { done <- outcome{Await(p)} }()

	select {
	case o := <-done:
		return o.v
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return &runtime.ErrorValue{Message: "async_timeout: promise did not resolve within the deadline"}
	}
}
