package builtins

import (
	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerCollections installs the set/queue/stack category named in
// spec.md §4.6/Glossary. Constructors are ordinary natives; instance
// methods are registered under the "__method_<TYPE>_<name>" convention
// the evaluator's generic method-call fallback looks up for any value
// that isn't one of the capability objects with a dedicated dispatch
// function (internal/evaluator/calls.go).
func registerCollections() {
	evaluator.RegisterNative("set_new", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 0 {
			return arityError("set_new", 0, len(args))
		}
		return runtime.NewSet()
	})
	evaluator.RegisterNative("queue_new", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 0 {
			return arityError("queue_new", 0, len(args))
		}
		return runtime.NewQueue()
	})
	evaluator.RegisterNative("stack_new", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 0 {
			return arityError("stack_new", 0, len(args))
		}
		return runtime.NewStack()
	})

	evaluator.RegisterNative("__method_SET_add", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("Set.add", 1, len(args)-1)
		}
		s, ok := args[0].(*runtime.SetValue)
		if !ok {
			return typeError("Set.add", "Set", args[0])
		}
		return &runtime.BoolValue{Value: s.Add(args[1])}
	})
	evaluator.RegisterNative("__method_SET_contains", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("Set.contains", 1, len(args)-1)
		}
		s, ok := args[0].(*runtime.SetValue)
		if !ok {
			return typeError("Set.contains", "Set", args[0])
		}
		return &runtime.BoolValue{Value: s.Contains(args[1])}
	})
	evaluator.RegisterNative("__method_SET_size", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("Set.size", 0, len(args)-1)
		}
		s, ok := args[0].(*runtime.SetValue)
		if !ok {
			return typeError("Set.size", "Set", args[0])
		}
		return &runtime.IntValue{Value: int64(len(s.Elems))}
	})

	evaluator.RegisterNative("__method_QUEUE_enqueue", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("Queue.enqueue", 1, len(args)-1)
		}
		q, ok := args[0].(*runtime.QueueValue)
		if !ok {
			return typeError("Queue.enqueue", "Queue", args[0])
		}
		q.Enqueue(args[1])
		return runtime.Null
	})
	evaluator.RegisterNative("__method_QUEUE_dequeue", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("Queue.dequeue", 0, len(args)-1)
		}
		q, ok := args[0].(*runtime.QueueValue)
		if !ok {
			return typeError("Queue.dequeue", "Queue", args[0])
		}
		val, ok := q.Dequeue()
		if !ok {
			return runtime.Null
		}
		return val
	})
	evaluator.RegisterNative("__method_QUEUE_size", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("Queue.size", 0, len(args)-1)
		}
		q, ok := args[0].(*runtime.QueueValue)
		if !ok {
			return typeError("Queue.size", "Queue", args[0])
		}
		return &runtime.IntValue{Value: int64(len(q.Elems))}
	})

	evaluator.RegisterNative("__method_STACK_push", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("Stack.push", 1, len(args)-1)
		}
		s, ok := args[0].(*runtime.StackValue)
		if !ok {
			return typeError("Stack.push", "Stack", args[0])
		}
		s.Push(args[1])
		return runtime.Null
	})
	evaluator.RegisterNative("__method_STACK_pop", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("Stack.pop", 0, len(args)-1)
		}
		s, ok := args[0].(*runtime.StackValue)
		if !ok {
			return typeError("Stack.pop", "Stack", args[0])
		}
		val, ok := s.Pop()
		if !ok {
			return runtime.Null
		}
		return val
	})
	evaluator.RegisterNative("__method_STACK_size", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("Stack.size", 0, len(args)-1)
		}
		s, ok := args[0].(*runtime.StackValue)
		if !ok {
			return typeError("Stack.size", "Stack", args[0])
		}
		return &runtime.IntValue{Value: int64(len(s.Elems))}
	})

	evaluator.RegisterNative("channel_new", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		buffer := 0
		if len(args) == 1 {
			n, ok := args[0].(*runtime.IntValue)
			if !ok {
				return typeError("channel_new", "int", args[0])
			}
			buffer = int(n.Value)
		} else if len(args) != 0 {
			return arityError("channel_new", 0, len(args))
		}
		return runtime.NewChannel(buffer)
	})
}
