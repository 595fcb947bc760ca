package builtins

import (
	"fmt"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerCore installs print/println and the type-introspection
// primitives every other category leans on, grounded on the teacher's
// builtinPrint/builtinPrintLn (builtins_core.go): concatenate every
// argument's String() form, println adds a trailing newline.
func registerCore() {
	evaluator.RegisterNative("print", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		for _, a := range args {
			ev.Write(runtime.Stringify(a))
		}
		return runtime.Null
	})
	evaluator.RegisterNative("println", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		for _, a := range args {
			ev.Write(runtime.Stringify(a))
		}
		ev.Write("\n")
		return runtime.Null
	})
	evaluator.RegisterNative("type_of", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("type_of", 1, len(args))
		}
		return runtime.Str(args[0].Type())
	})
	evaluator.RegisterNative("to_string", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("to_string", 1, len(args))
		}
		return runtime.Str(runtime.Stringify(args[0]))
	})
}

// arityError is the shared arity-mismatch error every native function
// in this package returns — spec.md §4.6 requires "a specific Error
// whose message names the expected signature," pinned by tests, so
// every builtin reports arity failures through this one helper rather
// than each hand-rolling its own message form.
func arityError(name string, want, got int) *runtime.ErrorValue {
	return &runtime.ErrorValue{Message: fmt.Sprintf("%s expects %d argument(s), got %d", name, want, got)}
}

// typeError reports a wrong-type argument using the typed
// TypeMismatchError's wording, so every native function describes a
// shape mismatch the same way.
func typeError(context, expected string, got runtime.Value) *runtime.ErrorValue {
	return &runtime.ErrorValue{Message: runtime.NewTypeMismatchError(context, expected, got).Error()}
}
