package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

func ints(vs ...int64) *runtime.ArrayValue {
	elems := make([]runtime.Value, len(vs))
	for i, v := range vs {
		elems[i] = &runtime.IntValue{Value: v}
	}
	return runtime.NewArray(elems)
}

func TestPushPopLen(t *testing.T) {
	ev := setup(t)
	arr := ints(1, 2, 3)
	wantInt(t, call(t, ev, "len", arr), 3)

	pushed := call(t, ev, "push", arr, &runtime.IntValue{Value: 4})
	wantInt(t, call(t, ev, "len", pushed), 4)

	popped := call(t, ev, "pop", arr)
	wantInt(t, call(t, ev, "len", popped), 2)
}

func TestMapFilterReduceReenterEvaluator(t *testing.T) {
	evaluator.RegisterNative("__test_double", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		iv := args[0].(*runtime.IntValue)
		return &runtime.IntValue{Value: iv.Value * 2}
	})
	evaluator.RegisterNative("__test_is_even", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		iv := args[0].(*runtime.IntValue)
		return &runtime.BoolValue{Value: iv.Value%2 == 0}
	})
	evaluator.RegisterNative("__test_sum", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		acc := args[0].(*runtime.IntValue)
		n := args[1].(*runtime.IntValue)
		return &runtime.IntValue{Value: acc.Value + n.Value}
	})

	ev := setup(t)
	doubled := call(t, ev, "map", ints(1, 2, 3), &runtime.NativeFunctionValue{Name: "__test_double"})
	arr := doubled.(*runtime.ArrayValue)
	wantInt(t, arr.Elems[0], 2)
	wantInt(t, arr.Elems[1], 4)
	wantInt(t, arr.Elems[2], 6)

	evens := call(t, ev, "filter", ints(1, 2, 3, 4), &runtime.NativeFunctionValue{Name: "__test_is_even"})
	earr := evens.(*runtime.ArrayValue)
	if earr.Len() != 2 {
		t.Fatalf("filter got %v", earr)
	}

	sum := call(t, ev, "reduce", ints(1, 2, 3, 4), &runtime.NativeFunctionValue{Name: "__test_sum"}, &runtime.IntValue{Value: 0})
	wantInt(t, sum, 10)

	wantBool(t, call(t, ev, "any", ints(1, 3, 4), &runtime.NativeFunctionValue{Name: "__test_is_even"}), true)
	wantBool(t, call(t, ev, "all", ints(2, 4, 6), &runtime.NativeFunctionValue{Name: "__test_is_even"}), true)
	wantBool(t, call(t, ev, "all", ints(2, 3, 4), &runtime.NativeFunctionValue{Name: "__test_is_even"}), false)

	found := call(t, ev, "find", ints(1, 3, 4, 5), &runtime.NativeFunctionValue{Name: "__test_is_even"})
	wantInt(t, found, 4)
}
