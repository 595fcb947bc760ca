package builtins

import (
	"strings"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerStrings installs the string category named in spec.md §4.6,
// grounded on the teacher's builtins_strings.go (trim/upper/lower/
// split/join/contains/replace family) — every native here takes the
// subject string as its first argument, matching the teacher's
// convention of "receiver-first" builtin argument order.
func registerStrings() {
	evaluator.RegisterNative("trim", unaryString("trim", strings.TrimSpace))
	evaluator.RegisterNative("upper", unaryString("upper", strings.ToUpper))
	evaluator.RegisterNative("lower", unaryString("lower", strings.ToLower))

	evaluator.RegisterNative("split", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("split", 2, len(args))
		}
		s, ok1 := args[0].(*runtime.StringValue)
		sep, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("split", "string", args[0])
		}
		parts := strings.Split(s.Value, sep.Value)
		elems := make([]runtime.Value, len(parts))
		for i, p := range parts {
			elems[i] = runtime.Str(p)
		}
		return runtime.NewArray(elems)
	})

	evaluator.RegisterNative("join", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("join", 2, len(args))
		}
		arr, ok1 := args[0].(*runtime.ArrayValue)
		sep, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("join", "array", args[0])
		}
		parts := make([]string, arr.Len())
		for i, e := range arr.Elems {
			parts[i] = runtime.Stringify(e)
		}
		return runtime.Str(strings.Join(parts, sep.Value))
	})

	evaluator.RegisterNative("contains", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("contains", 2, len(args))
		}
		s, ok1 := args[0].(*runtime.StringValue)
		sub, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("contains", "string", args[0])
		}
		return &runtime.BoolValue{Value: strings.Contains(s.Value, sub.Value)}
	})

	evaluator.RegisterNative("replace", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 3 {
			return arityError("replace", 3, len(args))
		}
		s, ok1 := args[0].(*runtime.StringValue)
		old, ok2 := args[1].(*runtime.StringValue)
		new, ok3 := args[2].(*runtime.StringValue)
		if !ok1 || !ok2 || !ok3 {
			return typeError("replace", "string", args[0])
		}
		return runtime.Str(strings.ReplaceAll(s.Value, old.Value, new.Value))
	})

	evaluator.RegisterNative("starts_with", stringPredicate("starts_with", strings.HasPrefix))
	evaluator.RegisterNative("ends_with", stringPredicate("ends_with", strings.HasSuffix))
}

func unaryString(name string, f func(string) string) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError(name, 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError(name, "string", args[0])
		}
		return runtime.Str(f(s.Value))
	}
}

func stringPredicate(name string, f func(s, prefix string) bool) evaluator.NativeFunc {
	return func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError(name, 2, len(args))
		}
		s, ok1 := args[0].(*runtime.StringValue)
		p, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError(name, "string", args[0])
		}
		return &runtime.BoolValue{Value: f(s.Value, p.Value)}
	}
}
