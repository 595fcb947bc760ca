package builtins

import (
	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerArrays installs the array/higher-order category named in
// spec.md §4.6, grounded on the teacher's builtins_arrays.go
// (push/pop/slice family) plus builtins_functional.go (map/filter/
// reduce) — the higher-order natives reenter the evaluator via the
// exported Evaluator.CallValue, the same reentry point
// internal/httpserver uses to invoke a route handler.
func registerArrays() {
	evaluator.RegisterNative("push", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("push", 2, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError("push", "array", args[0])
		}
		return arr.WithPush(args[1])
	})

	evaluator.RegisterNative("pop", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("pop", 1, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError("pop", "array", args[0])
		}
		rest, _ := arr.WithPop()
		return rest
	})

	evaluator.RegisterNative("len", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("len", 1, len(args))
		}
		switch v := args[0].(type) {
		case *runtime.ArrayValue:
			return &runtime.IntValue{Value: int64(v.Len())}
		case *runtime.StringValue:
			return &runtime.IntValue{Value: int64(len(v.Value))}
		case *runtime.DictValue:
			return &runtime.IntValue{Value: int64(v.Len())}
		default:
			return typeError("len", "array, string, or dict", args[0])
		}
	})

	evaluator.RegisterNative("map", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("map", 2, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError("map", "array", args[0])
		}
		out := make([]runtime.Value, arr.Len())
		for i, elem := range arr.Elems {
			result := ev.CallValue(args[1], []runtime.Value{elem})
			if runtime.IsError(result) {
				return result
			}
			out[i] = result
		}
		return runtime.NewArray(out)
	})

	evaluator.RegisterNative("filter", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("filter", 2, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError("filter", "array", args[0])
		}
		var out []runtime.Value
		for _, elem := range arr.Elems {
			result := ev.CallValue(args[1], []runtime.Value{elem})
			if runtime.IsError(result) {
				return result
			}
			if b, ok := result.(*runtime.BoolValue); ok && b.Value {
				out = append(out, elem)
			}
		}
		return runtime.NewArray(out)
	})

	evaluator.RegisterNative("reduce", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 3 {
			return arityError("reduce", 3, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError("reduce", "array", args[0])
		}
		acc := args[2]
		for _, elem := range arr.Elems {
			acc = ev.CallValue(args[1], []runtime.Value{acc, elem})
			if runtime.IsError(acc) {
				return acc
			}
		}
		return acc
	})

	evaluator.RegisterNative("find", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("find", 2, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError("find", "array", args[0])
		}
		for _, elem := range arr.Elems {
			result := ev.CallValue(args[1], []runtime.Value{elem})
			if runtime.IsError(result) {
				return result
			}
			if b, ok := result.(*runtime.BoolValue); ok && b.Value {
				return elem
			}
		}
		return runtime.Null
	})

	evaluator.RegisterNative("any", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("any", 2, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError("any", "array", args[0])
		}
		for _, elem := range arr.Elems {
			result := ev.CallValue(args[1], []runtime.Value{elem})
			if runtime.IsError(result) {
				return result
			}
			if b, ok := result.(*runtime.BoolValue); ok && b.Value {
				return &runtime.BoolValue{Value: true}
			}
		}
		return &runtime.BoolValue{Value: false}
	})

	evaluator.RegisterNative("all", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("all", 2, len(args))
		}
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return typeError("all", "array", args[0])
		}
		for _, elem := range arr.Elems {
			result := ev.CallValue(args[1], []runtime.Value{elem})
			if runtime.IsError(result) {
				return result
			}
			if b, ok := result.(*runtime.BoolValue); !ok || !b.Value {
				return &runtime.BoolValue{Value: false}
			}
		}
		return &runtime.BoolValue{Value: true}
	})
}
