package builtins

import (
	"path/filepath"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerPath installs the path-utility category named in spec.md
// §4.6 on stdlib path/filepath — every example repo that manipulates
// filesystem paths uses filepath directly rather than a third-party
// wrapper, since the stdlib already handles OS-specific separators.
func registerPath() {
	evaluator.RegisterNative("path_join", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) == 0 {
			return arityError("path_join", 1, len(args))
		}
		parts := make([]string, len(args))
		for i, a := range args {
			s, ok := a.(*runtime.StringValue)
			if !ok {
				return typeError("path_join", "string", a)
			}
			parts[i] = s.Value
		}
		return runtime.Str(filepath.Join(parts...))
	})

	evaluator.RegisterNative("path_dir", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("path_dir", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("path_dir", "string", args[0])
		}
		return runtime.Str(filepath.Dir(s.Value))
	})

	evaluator.RegisterNative("path_base", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("path_base", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("path_base", "string", args[0])
		}
		return runtime.Str(filepath.Base(s.Value))
	})

	evaluator.RegisterNative("path_ext", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("path_ext", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("path_ext", "string", args[0])
		}
		return runtime.Str(filepath.Ext(s.Value))
	})

	evaluator.RegisterNative("path_abs", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("path_abs", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("path_abs", "string", args[0])
		}
		abs, err := filepath.Abs(s.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "path_abs: " + err.Error()}
		}
		return runtime.Str(abs)
	})
}
