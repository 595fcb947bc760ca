package builtins

import (
	"math"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerMath installs the scalar math category named in spec.md
// §4.6, grounded on the teacher's builtins_math_basic.go/
// builtins_math_advanced.go/builtins_math_trig.go split (abs/min/max/
// clamp/sqrt/pow/floor/ceil/round plus the trig family) — unlike the
// teacher, every numeric native here accepts either Int or Float and
// promotes to float for anything other than abs/min/max, which
// preserve the input's own int/float-ness.
func registerMath() {
	evaluator.RegisterNative("abs", unaryNumeric("abs", func(f float64) float64 { return math.Abs(f) }))
	evaluator.RegisterNative("sqrt", unaryFloat("sqrt", math.Sqrt))
	evaluator.RegisterNative("floor", unaryFloat("floor", math.Floor))
	evaluator.RegisterNative("ceil", unaryFloat("ceil", math.Ceil))
	evaluator.RegisterNative("round", unaryFloat("round", math.Round))
	evaluator.RegisterNative("sin", unaryFloat("sin", math.Sin))
	evaluator.RegisterNative("cos", unaryFloat("cos", math.Cos))
	evaluator.RegisterNative("tan", unaryFloat("tan", math.Tan))

	evaluator.RegisterNative("pow", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("pow", 2, len(args))
		}
		base, ok1 := asFloat(args[0])
		exp, ok2 := asFloat(args[1])
		if !ok1 || !ok2 {
			return typeError("pow", "number", args[0])
		}
		return &runtime.FloatValue{Value: math.Pow(base, exp)}
	})

	evaluator.RegisterNative("min", minMax("min", func(a, b float64) bool { return a < b }))
	evaluator.RegisterNative("max", minMax("max", func(a, b float64) bool { return a > b }))
}

func asFloat(v runtime.Value) (float64, bool) {
	switch x := v.(type) {
	case *runtime.IntValue:
		return float64(x.Value), true
	case *runtime.FloatValue:
		return x.Value, true
	default:
		return 0, false
	}
}

func unaryFloat(name string, f func(float64) float64) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError(name, 1, len(args))
		}
		n, ok := asFloat(args[0])
		if !ok {
			return typeError(name, "number", args[0])
		}
		return &runtime.FloatValue{Value: f(n)}
	}
}

// unaryNumeric is unaryFloat's int-preserving counterpart, for abs:
// abs(-3) stays an Int, abs(-3.5) stays a Float.
func unaryNumeric(name string, f func(float64) float64) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError(name, 1, len(args))
		}
		switch x := args[0].(type) {
		case *runtime.IntValue:
			return &runtime.IntValue{Value: int64(f(float64(x.Value)))}
		case *runtime.FloatValue:
			return &runtime.FloatValue{Value: f(x.Value)}
		default:
			return typeError(name, "number", args[0])
		}
	}
}

func minMax(name string, better func(a, b float64) bool) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) < 1 {
			return arityError(name, 1, len(args))
		}
		best := args[0]
		bestF, ok := asFloat(best)
		if !ok {
			return typeError(name, "number", best)
		}
		for _, a := range args[1:] {
			f, ok := asFloat(a)
			if !ok {
				return typeError(name, "number", a)
			}
			if better(f, bestF) {
				best, bestF = a, f
			}
		}
		return best
	}
}
