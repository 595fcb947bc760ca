package builtins

import (
	"strconv"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerConvert installs the type-conversion category named in
// spec.md §4.6, grounded on the teacher's builtins_convert.go
// (to_int/to_float/to_bool family) — each conversion that can fail
// (e.g. a non-numeric string to to_int) returns a ConversionError
// rather than panicking.
func registerConvert() {
	evaluator.RegisterNative("to_int", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("to_int", 1, len(args))
		}
		switch v := args[0].(type) {
		case *runtime.IntValue:
			return v
		case *runtime.FloatValue:
			return &runtime.IntValue{Value: int64(v.Value)}
		case *runtime.BoolValue:
			if v.Value {
				return &runtime.IntValue{Value: 1}
			}
			return &runtime.IntValue{Value: 0}
		case *runtime.StringValue:
			n, err := strconv.ParseInt(v.Value, 10, 64)
			if err != nil {
				return &runtime.ErrorValue{Message: runtime.NewConversionError(v, "int", "not a valid integer").Error()}
			}
			return &runtime.IntValue{Value: n}
		default:
			return typeError("to_int", "int, float, bool, or string", args[0])
		}
	})

	evaluator.RegisterNative("to_float", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("to_float", 1, len(args))
		}
		switch v := args[0].(type) {
		case *runtime.FloatValue:
			return v
		case *runtime.IntValue:
			return &runtime.FloatValue{Value: float64(v.Value)}
		case *runtime.StringValue:
			f, err := strconv.ParseFloat(v.Value, 64)
			if err != nil {
				return &runtime.ErrorValue{Message: runtime.NewConversionError(v, "float", "not a valid float").Error()}
			}
			return &runtime.FloatValue{Value: f}
		default:
			return typeError("to_float", "int, float, or string", args[0])
		}
	})

	evaluator.RegisterNative("to_bool", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("to_bool", 1, len(args))
		}
		switch v := args[0].(type) {
		case *runtime.BoolValue:
			return v
		case *runtime.IntValue:
			return &runtime.BoolValue{Value: v.Value != 0}
		case *runtime.StringValue:
			return &runtime.BoolValue{Value: v.Value != ""}
		case *runtime.NullValue:
			return &runtime.BoolValue{Value: false}
		default:
			return &runtime.BoolValue{Value: true}
		}
	})

	evaluator.RegisterNative("is_error", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("is_error", 1, len(args))
		}
		return &runtime.BoolValue{Value: runtime.IsError(args[0])}
	})
}
