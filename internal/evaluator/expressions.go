package evaluator

import (
	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/asyncrt"
	"github.com/rufflang/ruff/internal/runtime"
)

// evalExpr dispatches one expression node to its concrete handler. This
// mirrors execStmt's type switch rather than a Visit-interface-per-node
// scheme: with one Evaluator method per node and no separate visitor
// type, callers just call Eval/evalExpr directly.
func (e *Evaluator) evalExpr(node ast.Expression) runtime.Value {
	switch n := node.(type) {
	case *ast.IntLit:
		return &runtime.IntValue{Value: n.Value}
	case *ast.FloatLit:
		return &runtime.FloatValue{Value: n.Value}
	case *ast.StringLit:
		return runtime.Str(n.Value)
	case *ast.BoolLit:
		return &runtime.BoolValue{Value: n.Value}
	case *ast.NullLit:
		return runtime.Null
	case *ast.InterpolatedString:
		return e.evalInterpolatedString(n)
	case *ast.Identifier:
		return e.evalIdentifier(n)
	case *ast.FunctionExpr:
		return e.evalFunctionExpr(n)
	case *ast.UnaryOp:
		return e.evalUnaryOp(n)
	case *ast.BinaryOp:
		return e.evalBinaryOp(n)
	case *ast.Call:
		return e.evalCall(n)
	case *ast.MethodCall:
		return e.evalMethodCall(n)
	case *ast.Tag:
		return e.evalTag(n)
	case *ast.StructInstance:
		return e.evalStructInstance(n)
	case *ast.FieldAccess:
		return e.evalFieldAccess(n)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n)
	case *ast.DictLiteral:
		return e.evalDictLiteral(n)
	case *ast.IndexAccess:
		return e.evalIndexAccess(n)
	case *ast.OkExpr:
		return &runtime.ResultValue{IsOk: true, Value: e.evalExpr(n.Value)}
	case *ast.ErrExpr:
		return &runtime.ResultValue{IsOk: false, Value: e.evalExpr(n.Value)}
	case *ast.SomeExpr:
		return &runtime.OptionValue{IsSome: true, Value: e.evalExpr(n.Value)}
	case *ast.NoneExpr:
		return &runtime.OptionValue{IsSome: false}
	case *ast.TryOp:
		return e.evalTryOp(n)
	case *ast.Yield:
		return e.evalYield(n)
	case *ast.Await:
		return e.evalAwait(n)
	default:
		return e.newError(node, "cannot evaluate expression of type %T", node)
	}
}

func (e *Evaluator) evalInterpolatedString(n *ast.InterpolatedString) runtime.Value {
	out := ""
	for _, part := range n.Parts {
		if s, ok := part.(*ast.StringLit); ok {
			out += s.Value
			continue
		}
		v := e.evalExpr(part)
		if runtime.IsError(v) {
			return v
		}
		out += runtime.Stringify(v)
	}
	return runtime.Str(out)
}

func (e *Evaluator) evalIdentifier(n *ast.Identifier) runtime.Value {
	if n.Name == "null" {
		return runtime.Null
	}
	if val, ok := e.env.Get(n.Name); ok {
		return val
	}
	if def, ok := e.structDefs.Get(n.Name); ok {
		return def
	}
	return e.newError(n, "undefined variable: %s", n.Name)
}

func (e *Evaluator) evalFunctionExpr(n *ast.FunctionExpr) runtime.Value {
	if n.IsGenerator {
		return &runtime.GeneratorDefValue{Params: n.Params, Body: n.Body, Captured: e.env}
	}
	if n.IsAsync {
		return &runtime.AsyncFunctionValue{Params: n.Params, Body: n.Body, Captured: e.env}
	}
	return &runtime.FunctionValue{Params: n.Params, Body: n.Body, Captured: e.env}
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral) runtime.Value {
	elems := make([]runtime.Value, 0, len(n.Elements))
	for _, elExpr := range n.Elements {
		if sp, ok := elExpr.(*ast.Spread); ok {
			v := e.evalExpr(sp.Value)
			if runtime.IsError(v) {
				return v
			}
			arr, ok := v.(*runtime.ArrayValue)
			if !ok {
				return e.newError(sp, "spread target is not an array: %s", v.Type())
			}
			elems = append(elems, arr.Elems...)
			continue
		}
		v := e.evalExpr(elExpr)
		if runtime.IsError(v) {
			return v
		}
		elems = append(elems, v)
	}
	return runtime.NewArray(elems)
}

func (e *Evaluator) evalDictLiteral(n *ast.DictLiteral) runtime.Value {
	d := runtime.NewDict()
	for _, pair := range n.Pairs {
		if pair.Spread != nil {
			v := e.evalExpr(pair.Spread)
			if runtime.IsError(v) {
				return v
			}
			src, ok := v.(*runtime.DictValue)
			if !ok {
				return e.newError(n, "spread target is not a dict: %s", v.Type())
			}
			for _, k := range src.Keys() {
				val, _ := src.Get(k)
				d.Set(k, val)
			}
			continue
		}
		keyVal := e.evalExpr(pair.Key)
		if runtime.IsError(keyVal) {
			return keyVal
		}
		val := e.evalExpr(pair.Value)
		if runtime.IsError(val) {
			return val
		}
		d.Set(runtime.Stringify(keyVal), val)
	}
	return d
}

func (e *Evaluator) evalIndexAccess(n *ast.IndexAccess) runtime.Value {
	obj := e.evalExpr(n.Object)
	if runtime.IsError(obj) {
		return obj
	}
	idx := e.evalExpr(n.Index)
	if runtime.IsError(idx) {
		return idx
	}
	switch o := obj.(type) {
	case *runtime.ArrayValue:
		i, ok := idx.(*runtime.IntValue)
		if !ok {
			return e.newError(n, "array index must be an integer, got %s", idx.Type())
		}
		pos := int(i.Value)
		if pos < 0 {
			pos += o.Len()
		}
		val, ok := o.Get(pos)
		if !ok {
			return e.newError(n, "array index %d out of bounds (len %d)", i.Value, o.Len())
		}
		return val
	case *runtime.StringValue:
		i, ok := idx.(*runtime.IntValue)
		if !ok {
			return e.newError(n, "string index must be an integer, got %s", idx.Type())
		}
		r := []rune(o.Value)
		pos := int(i.Value)
		if pos < 0 {
			pos += len(r)
		}
		if pos < 0 || pos >= len(r) {
			return e.newError(n, "string index %d out of bounds (len %d)", i.Value, len(r))
		}
		return runtime.Str(string(r[pos]))
	case *runtime.DictValue:
		key := runtime.Stringify(idx)
		val, ok := o.Get(key)
		if !ok {
			return runtime.Null
		}
		return val
	default:
		return e.newError(n, "cannot index into %s", obj.Type())
	}
}

func (e *Evaluator) evalTryOp(n *ast.TryOp) runtime.Value {
	v := e.evalExpr(n.Value)
	if runtime.IsError(v) {
		return v
	}
	res, ok := v.(*runtime.ResultValue)
	if !ok {
		return e.newError(n, "`?` operator requires a Result, got %s", v.Type())
	}
	if res.IsOk {
		return res.Value
	}
	e.returnValue = &runtime.ResultValue{IsOk: false, Value: res.Value}
	return res.Value
}

// evalYield is only reachable while genYield is bound, i.e. while the
// evaluator is running inside a generator body on its own goroutine (see
// internal/generator). Evaluating a bare `yield` outside a generator is a
// parser/semantic-analysis concern, not something this evaluator guards
// against defensively.
func (e *Evaluator) evalYield(n *ast.Yield) runtime.Value {
	v := e.evalExpr(n.Value)
	if runtime.IsError(v) {
		return v
	}
	if e.genYield == nil {
		return e.newError(n, "yield outside of a generator body")
	}
	e.genYield(v)
	return runtime.Null
}

func (e *Evaluator) evalAwait(n *ast.Await) runtime.Value {
	v := e.evalExpr(n.Value)
	if runtime.IsError(v) {
		return v
	}
	p, ok := v.(*runtime.PromiseValue)
	if !ok {
		return e.newError(n, "await requires a Promise, got %s", v.Type())
	}
	return asyncrt.Await(p)
}
