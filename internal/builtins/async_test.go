package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/asyncrt"
	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

func TestAsyncSleepReturnsPromiseOfNull(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "async_sleep", &runtime.IntValue{Value: 1})
	p, ok := got.(*runtime.PromiseValue)
	if !ok {
		t.Fatalf("got %v, want promise", got)
	}
	v := asyncrt.Await(p)
	if _, ok := v.(*runtime.NullValue); !ok {
		t.Fatalf("awaited %v, want null", v)
	}
}

func TestSetTaskPoolSize(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "set_task_pool_size", &runtime.IntValue{Value: 4})
	if runtime.IsError(got) {
		t.Fatalf("got %v, want success", got)
	}
}

func TestPromiseAllCollectsResults(t *testing.T) {
	ev := setup(t)
	p1 := asyncrt.Shared().Spawn(func() (runtime.Value, error) { return &runtime.IntValue{Value: 1}, nil })
	p2 := asyncrt.Shared().Spawn(func() (runtime.Value, error) { return &runtime.IntValue{Value: 2}, nil })

	got := call(t, ev, "promise_all", runtime.NewArray([]runtime.Value{p1, p2}))
	arr, ok := got.(*runtime.ArrayValue)
	if !ok || arr.Len() != 2 {
		t.Fatalf("got %v, want 2-element array", got)
	}
}

func TestParallelMapAppliesCallback(t *testing.T) {
	ev := setup(t)
	double := &runtime.NativeFunctionValue{Name: "__test_double"}
	evaluator.RegisterNative("__test_double", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		n := args[0].(*runtime.IntValue)
		return &runtime.IntValue{Value: n.Value * 2}
	})

	items := runtime.NewArray([]runtime.Value{
		&runtime.IntValue{Value: 1}, &runtime.IntValue{Value: 2}, &runtime.IntValue{Value: 3},
	})
	got := call(t, ev, "parallel_map", items, double)
	arr, ok := got.(*runtime.ArrayValue)
	if !ok || arr.Len() != 3 {
		t.Fatalf("got %v, want 3-element array", got)
	}
	wantInt(t, arr.Elems[0], 2)
	wantInt(t, arr.Elems[2], 6)
}

// TestParallelMapConcurrentClosureCalls drives enough workers through
// parallel_map at once to exercise nativeRegistry's concurrent lookups
// and CallValueConcurrently's per-worker CallStack isolation under
// `go test -race`.
func TestParallelMapConcurrentClosureCalls(t *testing.T) {
	ev := setup(t)
	const n = 200
	elems := make([]runtime.Value, n)
	for i := range elems {
		elems[i] = &runtime.IntValue{Value: int64(i)}
	}
	evaluator.RegisterNative("__test_square", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		v := args[0].(*runtime.IntValue)
		return &runtime.IntValue{Value: v.Value * v.Value}
	})
	fn := &runtime.NativeFunctionValue{Name: "__test_square"}

	got := call(t, ev, "parallel_map", runtime.NewArray(elems), fn, &runtime.IntValue{Value: 16})
	arr, ok := got.(*runtime.ArrayValue)
	if !ok || arr.Len() != n {
		t.Fatalf("got %v, want %d-element array", got, n)
	}
	wantInt(t, arr.Elems[10], 100)
	wantInt(t, arr.Elems[19], 361)
}
