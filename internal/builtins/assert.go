package builtins

import (
	"fmt"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerAssert installs the assertion natives a `test` body calls,
// per spec.md §4.9: a failed assertion raises an uncaught Error, which
// Evaluator.Run already propagates as the stop value internal/testrunner
// reads back to mark a test failed — there is no separate assertion
// result channel.
func registerAssert() {
	evaluator.RegisterNative("assert", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) < 1 || len(args) > 2 {
			return arityError("assert", 1, len(args))
		}
		b, ok := args[0].(*runtime.BoolValue)
		if !ok {
			return typeError("assert", "bool", args[0])
		}
		if b.Value {
			return runtime.Null
		}
		return &runtime.ErrorValue{Message: assertMessage("assertion failed", args)}
	})

	evaluator.RegisterNative("assert_eq", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) < 2 || len(args) > 3 {
			return arityError("assert_eq", 2, len(args))
		}
		if runtime.Equal(args[0], args[1]) {
			return runtime.Null
		}
		msg := fmt.Sprintf("assertion failed: expected %s, got %s", runtime.Stringify(args[1]), runtime.Stringify(args[0]))
		if len(args) == 3 {
			if s, ok := args[2].(*runtime.StringValue); ok {
				msg = s.Value + ": " + msg
			}
		}
		return &runtime.ErrorValue{Message: msg}
	})

	evaluator.RegisterNative("assert_raises", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("assert_raises", 1, len(args))
		}
		result := ev.CallValue(args[0], nil)
		if runtime.IsError(result) {
			return runtime.Null
		}
		return &runtime.ErrorValue{Message: "assertion failed: expected call to raise an error"}
	})
}

func assertMessage(base string, args []runtime.Value) string {
	if len(args) == 2 {
		if s, ok := args[1].(*runtime.StringValue); ok {
			return s.Value + ": " + base
		}
	}
	return base
}
