package evaluator

import (
	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/runtime"
)

// execStmt dispatches one statement node. It never returns a value
// directly — outcomes are communicated through e.returnValue/breaking/
// continuing, inspected by execBlock's caller after each statement.
func (e *Evaluator) execStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Let:
		e.execLet(s.Target, s.Value)
	case *ast.Const:
		e.execLet(s.Target, s.Value)
	case *ast.Assign:
		e.execAssign(s)
	case *ast.FuncDef:
		e.execFuncDef(s)
	case *ast.EnumDef:
		e.execEnumDef(s)
	case *ast.StructDef:
		e.execStructDef(s)
	case *ast.Import:
		e.execImport(s)
	case *ast.Export:
		e.execStmt(s.Stmt)
	case *ast.MatchStmt:
		e.execMatchStmt(s)
	case *ast.If:
		e.execIf(s)
	case *ast.Loop:
		e.execLoop(s)
	case *ast.For:
		e.execFor(s)
	case *ast.While:
		e.execWhile(s)
	case *ast.Break:
		e.breaking = true
	case *ast.Continue:
		e.continuing = true
	case *ast.Return:
		e.execReturn(s)
	case *ast.TryExcept:
		e.execTryExcept(s)
	case *ast.Block:
		e.execBlockScoped(s)
	case *ast.Spawn:
		e.execSpawn(s)
	case *ast.ExprStmt:
		v := e.evalExpr(s.Expr)
		if runtime.IsError(v) {
			e.returnValue = v
		}
	case *ast.Test, *ast.TestSetup, *ast.TestTeardown, *ast.TestGroup:
		// Collected and driven separately by internal/testrunner; a no-op
		// under normal evaluation.
	default:
		e.returnValue = e.newError(stmt, "cannot execute statement of type %T", stmt)
	}
}

func (e *Evaluator) execLet(target ast.Pattern, valueExpr ast.Expression) {
	v := e.evalExpr(valueExpr)
	if runtime.IsError(v) {
		e.returnValue = v
		return
	}
	if errv := e.bindPattern(target, v); errv != nil {
		e.returnValue = errv
	}
}

func (e *Evaluator) execAssign(s *ast.Assign) {
	v := e.evalExpr(s.Value)
	if runtime.IsError(v) {
		e.returnValue = v
		return
	}
	if s.Op != ":=" {
		current := e.evalExpr(s.Target)
		if runtime.IsError(current) {
			e.returnValue = current
			return
		}
		op := s.Op[:len(s.Op)-1] // "+=" -> "+"
		v = e.applyBinary(s, op, current, v)
		if runtime.IsError(v) {
			e.returnValue = v
			return
		}
	}

	switch target := s.Target.(type) {
	case *ast.Identifier:
		e.env.Set(target.Name, v)
	case *ast.IndexAccess:
		e.execIndexAssign(s, target, v)
	case *ast.FieldAccess:
		e.execFieldAssign(s, target, v)
	default:
		e.returnValue = e.newError(s, "invalid assignment target %T", s.Target)
	}
}

func (e *Evaluator) execIndexAssign(site ast.Node, target *ast.IndexAccess, v runtime.Value) {
	obj := e.evalExpr(target.Object)
	if runtime.IsError(obj) {
		e.returnValue = obj
		return
	}
	idx := e.evalExpr(target.Index)
	if runtime.IsError(idx) {
		e.returnValue = idx
		return
	}
	switch o := obj.(type) {
	case *runtime.ArrayValue:
		i, ok := idx.(*runtime.IntValue)
		if !ok {
			e.returnValue = e.newError(site, "array index must be an integer")
			return
		}
		pos := int(i.Value)
		if pos < 0 {
			pos += o.Len()
		}
		if pos < 0 || pos >= o.Len() {
			e.returnValue = e.newError(site, "array index %d out of bounds (len %d)", i.Value, o.Len())
			return
		}
		e.writeBack(target.Object, o.WithSet(pos, v))
	case *runtime.DictValue:
		o.Set(runtime.Stringify(idx), v)
	default:
		e.returnValue = e.newError(site, "cannot index-assign into %s", obj.Type())
	}
}

func (e *Evaluator) execFieldAssign(site ast.Node, target *ast.FieldAccess, v runtime.Value) {
	obj := e.evalExpr(target.Object)
	if runtime.IsError(obj) {
		e.returnValue = obj
		return
	}
	sv, ok := obj.(*runtime.StructValue)
	if !ok {
		e.returnValue = e.newError(site, "cannot assign field on %s", obj.Type())
		return
	}
	sv.Fields[target.Field] = v
}

// writeBack stores a recomputed value back through the identifier an
// expression ultimately reads from; arrays are copy-on-write, so `a[i] =
// x` rebinds `a` to the new array rather than mutating in place.
func (e *Evaluator) writeBack(target ast.Expression, v runtime.Value) {
	switch t := target.(type) {
	case *ast.Identifier:
		e.env.Set(t.Name, v)
	case *ast.IndexAccess:
		e.execIndexAssign(t, t, v)
	case *ast.FieldAccess:
		e.execFieldAssign(t, t, v)
	}
}

func (e *Evaluator) execFuncDef(s *ast.FuncDef) {
	switch {
	case s.IsGenerator:
		e.env.Define(s.Name, &runtime.GeneratorDefValue{Name: s.Name, Params: s.Params, Body: s.Body, Captured: e.env})
	case s.IsAsync:
		e.env.Define(s.Name, &runtime.AsyncFunctionValue{Name: s.Name, Params: s.Params, Body: s.Body, Captured: e.env})
	default:
		// Top-level/nested FuncDef does not capture: Captured stays nil
		// so calls resolve names against the call-site environment.
		e.env.Define(s.Name, &runtime.FunctionValue{Name: s.Name, Params: s.Params, Body: s.Body})
	}
}

func (e *Evaluator) execEnumDef(s *ast.EnumDef) {
	for _, variant := range s.Variants {
		if len(variant.Fields) == 0 {
			e.env.Define(variant.Name, &runtime.TaggedValue{Tag: variant.Name, Fields: map[string]runtime.Value{}})
			continue
		}
		e.registerEnumConstructor(variant)
	}
}

func (e *Evaluator) registerEnumConstructor(variant ast.EnumVariant) {
	fields := variant.Fields
	e.env.Define(variant.Name, &runtime.NativeFunctionValue{Name: "__enum_ctor_" + variant.Name})
	RegisterNative("__enum_ctor_"+variant.Name, func(_ *Evaluator, args []runtime.Value) runtime.Value {
		out := make(map[string]runtime.Value, len(fields))
		for i, f := range fields {
			if i < len(args) {
				out[f] = args[i]
			} else {
				out[f] = runtime.Null
			}
		}
		return &runtime.TaggedValue{Tag: variant.Name, Fields: out}
	})
}

func (e *Evaluator) execStructDef(s *ast.StructDef) {
	methods := make(map[string]*runtime.FunctionValue, len(s.Methods))
	def := &runtime.StructDefValue{Name: s.Name, FieldNames: s.Fields, Methods: methods}
	e.structDefs.Set(s.Name, def)
	e.env.Define(s.Name, def)
	for _, m := range s.Methods {
		methods[m.Name] = &runtime.FunctionValue{Name: m.Name, Params: m.Params, Body: m.Body, Captured: e.env}
	}
}

func (e *Evaluator) execImport(s *ast.Import) {
	if e.modules == nil {
		e.returnValue = e.newError(s, "import %q: no module loader configured", s.Module)
		return
	}
	exports, err := e.modules.Load(s.Module)
	if err != nil {
		e.returnValue = &runtime.ErrorObjectValue{Message: err.Error(), Stack: e.callStack.Frames()}
		return
	}
	if s.Symbols == nil {
		for name, v := range exports {
			e.env.Define(name, v)
		}
		return
	}
	for _, sym := range s.Symbols {
		v, ok := exports[sym.Name]
		if !ok {
			e.returnValue = e.newError(s, "module %q has no export %q", s.Module, sym.Name)
			return
		}
		name := sym.Alias
		if name == "" {
			name = sym.Name
		}
		e.env.Define(name, v)
	}
}

func (e *Evaluator) execIf(s *ast.If) {
	cond := e.evalExpr(s.Cond)
	if runtime.IsError(cond) {
		e.returnValue = cond
		return
	}
	if runtime.Truthy(cond) {
		e.execBlockScoped(s.Then)
		return
	}
	if s.Else != nil {
		e.execBlockScoped(s.Else)
	}
}

func (e *Evaluator) execBlockScoped(b *ast.Block) {
	e.env.PushScope()
	defer e.env.PopScope()
	e.execBlock(b.Statements)
}

func (e *Evaluator) execLoop(s *ast.Loop) {
	for {
		if s.Cond != nil {
			cond := e.evalExpr(s.Cond)
			if runtime.IsError(cond) {
				e.returnValue = cond
				return
			}
			if !runtime.Truthy(cond) {
				return
			}
		}
		e.execBlockScoped(s.Body)
		if e.breaking {
			e.breaking = false
			return
		}
		if e.continuing {
			e.continuing = false
		}
		if e.returnValue != nil {
			return
		}
	}
}

func (e *Evaluator) execWhile(s *ast.While) {
	for {
		cond := e.evalExpr(s.Cond)
		if runtime.IsError(cond) {
			e.returnValue = cond
			return
		}
		if !runtime.Truthy(cond) {
			return
		}
		e.execBlockScoped(s.Body)
		if e.breaking {
			e.breaking = false
			return
		}
		if e.continuing {
			e.continuing = false
		}
		if e.returnValue != nil {
			return
		}
	}
}

func (e *Evaluator) execFor(s *ast.For) {
	iterable := e.evalExpr(s.Iterable)
	if runtime.IsError(iterable) {
		e.returnValue = iterable
		return
	}
	if d, isDict := iterable.(*runtime.DictValue); isDict {
		keys := d.Keys()
		elems := make([]runtime.Value, len(keys))
		for i, k := range keys {
			elems[i] = runtime.Str(k)
		}
		iterable = runtime.NewArray(elems)
	}
	it, ok := iterable.(*runtime.IteratorValue)
	if !ok {
		it = &runtime.IteratorValue{Source: iterable}
	}
	for {
		v, ok, errv := e.pullOne(&ast.MethodCall{Position: s.Position}, it)
		if errv != nil {
			e.returnValue = errv
			return
		}
		if !ok {
			return
		}
		e.env.PushScope()
		e.env.Define(s.Var, v)
		e.execBlock(s.Body.Statements)
		e.env.PopScope()
		if e.breaking {
			e.breaking = false
			return
		}
		if e.continuing {
			e.continuing = false
		}
		if e.returnValue != nil {
			return
		}
	}
}

func (e *Evaluator) execReturn(s *ast.Return) {
	if s.Expr == nil {
		e.returnValue = &runtime.ReturnValue{Value: runtime.Null}
		return
	}
	v := e.evalExpr(s.Expr)
	if runtime.IsError(v) {
		e.returnValue = v
		return
	}
	e.returnValue = &runtime.ReturnValue{Value: v}
}

func (e *Evaluator) execTryExcept(s *ast.TryExcept) {
	e.execBlockScoped(s.Try)
	if !runtime.IsError(e.returnValue) {
		return
	}
	caught := e.returnValue
	e.returnValue = nil
	e.env.PushScope()
	defer e.env.PopScope()
	e.env.Define(s.ExceptVar, errorValueAsStruct(caught))
	e.execBlock(s.Except.Statements)
}

func errorValueAsStruct(v runtime.Value) runtime.Value {
	switch x := v.(type) {
	case *runtime.ErrorObjectValue:
		return x.AsStruct()
	case *runtime.ErrorValue:
		return &runtime.StructValue{TypeName: "Error", Fields: map[string]runtime.Value{
			"message": runtime.Str(x.Message),
			"stack":   runtime.NewArray(nil),
			"line":    runtime.Null,
			"cause":   runtime.Null,
		}}
	default:
		return v
	}
}

func (e *Evaluator) execSpawn(s *ast.Spawn) {
	e.spawnThread(s)
}
