package builtins

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerRandom installs the random-number category named in
// spec.md §4.6 on stdlib math/rand/v2, plus google/uuid for `uuid()`
// — identifier generation is a distinct ecosystem concern from general
// randomness, and the teacher's go.mod already pulls in uuid for it.
func registerRandom() {
	evaluator.RegisterNative("random", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 0 {
			return arityError("random", 0, len(args))
		}
		return &runtime.FloatValue{Value: rand.Float64()}
	})

	evaluator.RegisterNative("random_int", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("random_int", 2, len(args))
		}
		lo, ok1 := args[0].(*runtime.IntValue)
		hi, ok2 := args[1].(*runtime.IntValue)
		if !ok1 || !ok2 {
			return typeError("random_int", "int", args[0])
		}
		if hi.Value < lo.Value {
			return &runtime.ErrorValue{Message: "random_int: max must be >= min"}
		}
		span := hi.Value - lo.Value + 1
		return &runtime.IntValue{Value: lo.Value + rand.Int64N(span)}
	})

	evaluator.RegisterNative("uuid", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 0 {
			return arityError("uuid", 0, len(args))
		}
		return runtime.Str(uuid.New().String())
	})
}
