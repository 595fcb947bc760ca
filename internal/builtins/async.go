package builtins

import (
	"errors"
	"time"

	"github.com/rufflang/ruff/internal/asyncrt"
	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerAsync installs the async-runtime bridge category named in
// spec.md §4.5/§8: every native here is a thin call into
// internal/asyncrt's already-concurrent implementation, the same
// bridge internal/evaluator's async calls (calls.go) and await
// (expressions.go) use.
func registerAsync() {
	evaluator.RegisterNative("promise_all", promiseAllNative("promise_all"))
	evaluator.RegisterNative("await_all", promiseAllNative("await_all"))

	evaluator.RegisterNative("parallel_map", parallelMapNative("parallel_map", false))
	evaluator.RegisterNative("par_map", parallelMapNative("par_map", false))
	evaluator.RegisterNative("par_each", parallelMapNative("par_each", true))

	evaluator.RegisterNative("async_sleep", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("async_sleep", 1, len(args))
		}
		ms, ok := args[0].(*runtime.IntValue)
		if !ok {
			return typeError("async_sleep", "int", args[0])
		}
		d := time.Duration(ms.Value) * time.Millisecond
		return asyncrt.Shared().Spawn(func() (runtime.Value, error) {
			time.Sleep(d)
			return runtime.Null, nil
		})
	})

	evaluator.RegisterNative("set_task_pool_size", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("set_task_pool_size", 1, len(args))
		}
		n, ok := args[0].(*runtime.IntValue)
		if !ok {
			return typeError("set_task_pool_size", "int", args[0])
		}
		return asyncrt.Shared().SetPoolSize(int(n.Value))
	})

	evaluator.RegisterNative("cancel_task", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("cancel_task", 1, len(args))
		}
		h, ok := args[0].(*runtime.TaskHandleValue)
		if !ok {
			return typeError("cancel_task", "task handle", args[0])
		}
		return asyncrt.CancelTask(h)
	})

	evaluator.RegisterNative("async_timeout", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("async_timeout", 2, len(args))
		}
		p, ok := args[0].(*runtime.PromiseValue)
		if !ok {
			return typeError("async_timeout", "promise", args[0])
		}
		ms, ok := args[1].(*runtime.IntValue)
		if !ok {
			return typeError("async_timeout", "int", args[1])
		}
		return asyncrt.AsyncTimeout(p, ms.Value)
	})
}

func promiseAllNative(name string) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) < 1 || len(args) > 2 {
			return arityError(name, 1, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError(name, "array of promises", args[0])
		}
		promises := make([]*runtime.PromiseValue, arr.Len())
		for i, e := range arr.Elems {
			p, ok := e.(*runtime.PromiseValue)
			if !ok {
				return typeError(name, "array of promises", e)
			}
			promises[i] = p
		}
		limit := 0
		if len(args) == 2 {
			n, ok := args[1].(*runtime.IntValue)
			if !ok {
				return typeError(name, "int", args[1])
			}
			limit = int(n.Value)
		}
		return asyncrt.PromiseAll(promises, limit)
	}
}

// parallelMapNative backs parallel_map/par_map/par_each: apply a
// callback (which may itself return a Promise) to every array element
// with bounded concurrency, reentering the evaluator via
// CallValueConcurrently since — unlike the synchronous map/filter/reduce
// natives — these workers genuinely run at once.
func parallelMapNative(name string, ignoreResults bool) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) < 2 || len(args) > 3 {
			return arityError(name, 2, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError(name, "array", args[0])
		}
		fn := args[1]
		limit := 0
		if len(args) == 3 {
			n, ok := args[2].(*runtime.IntValue)
			if !ok {
				return typeError(name, "int", args[2])
			}
			limit = int(n.Value)
		}
		return asyncrt.ParallelMap(arr.Elems, func(item runtime.Value) (runtime.Value, error) {
			result := ev.CallValueConcurrently(fn, []runtime.Value{item})
			if p, ok := result.(*runtime.PromiseValue); ok {
				result = asyncrt.Await(p)
			}
			if runtime.IsError(result) {
				return nil, errors.New(runtime.Stringify(result))
			}
			return result, nil
		}, limit, ignoreResults)
	}
}
