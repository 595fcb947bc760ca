package builtins

import (
	"os"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerIO installs the file/binary I/O category named in spec.md
// §4.6 on stdlib os — no example repo wraps file access in a
// third-party library, since os.ReadFile/WriteFile already cover the
// whole surface a dynamically-typed scripting runtime needs.
func registerIO() {
	evaluator.RegisterNative("read_file", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("read_file", 1, len(args))
		}
		path, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("read_file", "string", args[0])
		}
		data, err := os.ReadFile(path.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "read_file: " + err.Error()}
		}
		return runtime.Str(string(data))
	})

	evaluator.RegisterNative("write_file", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("write_file", 2, len(args))
		}
		path, ok1 := args[0].(*runtime.StringValue)
		content, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("write_file", "string", args[0])
		}
		if err := os.WriteFile(path.Value, []byte(content.Value), 0o644); err != nil {
			return &runtime.ErrorValue{Message: "write_file: " + err.Error()}
		}
		return runtime.Null
	})

	evaluator.RegisterNative("read_bytes", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("read_bytes", 1, len(args))
		}
		path, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("read_bytes", "string", args[0])
		}
		data, err := os.ReadFile(path.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "read_bytes: " + err.Error()}
		}
		return &runtime.BytesValue{Value: data}
	})

	evaluator.RegisterNative("write_bytes", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("write_bytes", 2, len(args))
		}
		path, ok1 := args[0].(*runtime.StringValue)
		content, ok2 := args[1].(*runtime.BytesValue)
		if !ok1 || !ok2 {
			return typeError("write_bytes", "string, bytes", args[0])
		}
		if err := os.WriteFile(path.Value, content.Value, 0o644); err != nil {
			return &runtime.ErrorValue{Message: "write_bytes: " + err.Error()}
		}
		return runtime.Null
	})

	evaluator.RegisterNative("file_exists", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("file_exists", 1, len(args))
		}
		path, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("file_exists", "string", args[0])
		}
		_, err := os.Stat(path.Value)
		return &runtime.BoolValue{Value: err == nil}
	})
}
