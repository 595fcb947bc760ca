package evaluator

import (
	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/generator"
	"github.com/rufflang/ruff/internal/runtime"
)

// evalIteratorMethod implements the lazy filter/map/take/collect pipeline
// shared by arrays and generators: filter/map/take all return a new
// *IteratorValue wrapping the receiver; collect/next/to_array force it.
func (e *Evaluator) evalIteratorMethod(n *ast.MethodCall, recv runtime.Value, args []runtime.Value) runtime.Value {
	switch n.Method {
	case "filter":
		if len(args) != 1 {
			return e.newError(n, "filter expects 1 argument")
		}
		return chainIterator(recv, func(it *runtime.IteratorValue) { it.FilterFn = args[0] })
	case "map":
		if len(args) != 1 {
			return e.newError(n, "map expects 1 argument")
		}
		return chainIterator(recv, func(it *runtime.IteratorValue) { it.Transformer = args[0] })
	case "take":
		if len(args) != 1 {
			return e.newError(n, "take expects 1 argument")
		}
		iv, ok := args[0].(*runtime.IntValue)
		if !ok {
			return e.newError(n, "take expects an integer argument")
		}
		limit := int(iv.Value)
		return chainIterator(recv, func(it *runtime.IteratorValue) { it.TakeLimit = &limit })
	case "collect", "to_array":
		return e.collectIterator(n, recv)
	case "next":
		return e.iteratorNext(n, recv)
	case "push":
		if arr, ok := recv.(*runtime.ArrayValue); ok && len(args) == 1 {
			return arr.WithPush(args[0])
		}
		return e.newError(n, "push is only defined on arrays")
	case "pop":
		if arr, ok := recv.(*runtime.ArrayValue); ok {
			next, popped := arr.WithPop()
			return runtime.NewArray([]runtime.Value{next, popped})
		}
		return e.newError(n, "pop is only defined on arrays")
	case "len":
		if arr, ok := recv.(*runtime.ArrayValue); ok {
			return &runtime.IntValue{Value: int64(arr.Len())}
		}
		return e.newError(n, "len is only defined on arrays")
	default:
		return e.newError(n, "%s has no method %q", recv.Type(), n.Method)
	}
}

// chainIterator wraps recv in a fresh *IteratorValue (if it isn't one
// already) and applies configure, returning a new value so the original
// iterator/array is left untouched — filter/map/take never mutate their
// receiver.
func chainIterator(recv runtime.Value, configure func(*runtime.IteratorValue)) *runtime.IteratorValue {
	base, ok := recv.(*runtime.IteratorValue)
	if !ok {
		base = &runtime.IteratorValue{Source: recv}
	} else {
		cp := *base
		base = &cp
	}
	configure(base)
	return base
}

// collectIterator forces an *IteratorValue (or bare array/generator) to
// completion and returns an *ArrayValue of every element that survives
// its filter, after its transformer, honoring TakeLimit.
func (e *Evaluator) collectIterator(n *ast.MethodCall, recv runtime.Value) runtime.Value {
	it, ok := recv.(*runtime.IteratorValue)
	if !ok {
		it = &runtime.IteratorValue{Source: recv}
	}
	var out []runtime.Value
	for {
		if it.TakeLimit != nil && len(out) >= *it.TakeLimit {
			break
		}
		v, ok, errv := e.pullOne(n, it)
		if errv != nil {
			return errv
		}
		if !ok {
			break
		}
		out = append(out, v)
	}
	return runtime.NewArray(out)
}

// iteratorNext pulls exactly one element, returning an OptionValue —
// the surface `next()` sees when driving a generator or iterator
// manually from `for`.
func (e *Evaluator) iteratorNext(n *ast.MethodCall, recv runtime.Value) runtime.Value {
	it, ok := recv.(*runtime.IteratorValue)
	if !ok {
		it = &runtime.IteratorValue{Source: recv}
	}
	v, ok, errv := e.pullOne(n, it)
	if errv != nil {
		return errv
	}
	return &runtime.OptionValue{IsSome: ok, Value: v}
}

// pullOne advances it.Source by one element (applying FilterFn/
// Transformer), skipping filtered-out elements, until it either produces
// a value or the source is exhausted.
func (e *Evaluator) pullOne(n *ast.MethodCall, it *runtime.IteratorValue) (runtime.Value, bool, runtime.Value) {
	for {
		raw, ok, errv := e.nextFromSource(n, it)
		if errv != nil {
			return nil, false, errv
		}
		if !ok {
			return nil, false, nil
		}
		if it.FilterFn != nil {
			keep := e.call(n, it.FilterFn, []runtime.Value{raw})
			if runtime.IsError(keep) {
				return nil, false, keep
			}
			if !runtime.Truthy(keep) {
				continue
			}
		}
		if it.Transformer != nil {
			transformed := e.call(n, it.Transformer, []runtime.Value{raw})
			if runtime.IsError(transformed) {
				return nil, false, transformed
			}
			raw = transformed
		}
		return raw, true, nil
	}
}

func (e *Evaluator) nextFromSource(n *ast.MethodCall, it *runtime.IteratorValue) (runtime.Value, bool, runtime.Value) {
	switch src := it.Source.(type) {
	case *runtime.ArrayValue:
		if it.Index >= len(src.Elems) {
			return nil, false, nil
		}
		v := src.Elems[it.Index]
		it.Index++
		return v, true, nil
	case *runtime.GeneratorValue:
		return e.pullGenerator(n, src)
	case *runtime.IteratorValue:
		return e.pullOne(n, src)
	default:
		return nil, false, e.newError(n, "cannot iterate over %s", it.Source.Type())
	}
}

// pullGenerator drives one resumption of a generator via the Generator
// Driver, running the generator's own body through a fresh Evaluator
// whose genYield bridges yield expressions back into the driver session.
func (e *Evaluator) pullGenerator(n *ast.MethodCall, gen *runtime.GeneratorValue) (runtime.Value, bool, runtime.Value) {
	run := func(yield func(runtime.Value)) error {
		sub := &Evaluator{
			env: gen.Env, callStack: runtime.NewCallStack(0), output: e.output,
			modules: e.modules, genYield: yield, source: e.source,
			structDefs: e.structDefs,
		}
		sub.execBlock(gen.Body.Statements)
		if runtime.IsError(sub.returnValue) {
			return genBodyError{sub.returnValue}
		}
		return nil
	}
	v, ok, err := generator.Next(gen, run)
	if err != nil {
		if ge, isGenErr := err.(genBodyError); isGenErr {
			return nil, false, ge.val
		}
		return nil, false, e.newError(n, "generator body failed: %v", err)
	}
	return v, ok, nil
}

// genBodyError lets pullGenerator recover the original runtime.Value
// (with its stack/line info) across the Generator Driver's plain `error`
// return type instead of collapsing it to a string.
type genBodyError struct{ val runtime.Value }

func (g genBodyError) Error() string { return runtime.Stringify(g.val) }
