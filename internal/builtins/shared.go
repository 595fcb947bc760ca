package builtins

import (
	"github.com/rufflang/ruff/internal/asyncrt"
	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerShared installs the cross-thread shared value store named in
// spec.md §5, backed by internal/asyncrt's process-wide SharedStore —
// the same store `spawn`-ed threads observe through their own
// Environment.Snapshot-seeded evaluator.
func registerShared() {
	evaluator.RegisterNative("shared_set", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("shared_set", 2, len(args))
		}
		key, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("shared_set", "string", args[0])
		}
		asyncrt.SharedValueStore().Set(key.Value, args[1])
		return runtime.Null
	})

	evaluator.RegisterNative("shared_get", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("shared_get", 1, len(args))
		}
		key, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("shared_get", "string", args[0])
		}
		v, ok := asyncrt.SharedValueStore().Get(key.Value)
		if !ok {
			return runtime.Null
		}
		return v
	})

	evaluator.RegisterNative("shared_has", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("shared_has", 1, len(args))
		}
		key, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("shared_has", "string", args[0])
		}
		return &runtime.BoolValue{Value: asyncrt.SharedValueStore().Has(key.Value)}
	})

	evaluator.RegisterNative("shared_delete", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("shared_delete", 1, len(args))
		}
		key, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("shared_delete", "string", args[0])
		}
		asyncrt.SharedValueStore().Delete(key.Value)
		return runtime.Null
	})

	evaluator.RegisterNative("shared_add_int", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("shared_add_int", 2, len(args))
		}
		key, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("shared_add_int", "string", args[0])
		}
		delta, ok := args[1].(*runtime.IntValue)
		if !ok {
			return typeError("shared_add_int", "int", args[1])
		}
		return asyncrt.SharedValueStore().AddInt(key.Value, delta.Value)
	})
}
