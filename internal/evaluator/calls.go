package evaluator

import (
	"fmt"
	"sync"

	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/asyncrt"
	"github.com/rufflang/ruff/internal/runtime"
)

// NativeFunc is a host-implemented builtin. It receives the calling
// Evaluator so builtins that need to re-enter evaluation (array
// filter/map callbacks, `test`/assert helpers, spawn-adjacent primitives)
// can do so without importing this package themselves.
type NativeFunc func(ev *Evaluator, args []runtime.Value) runtime.Value

// nativeRegistry is the Native Dispatcher's lookup table, populated by
// internal/builtins.Register during program startup. Keeping it
// package-level (rather than a field on Evaluator) lets every Evaluator
// instance — including ones spun up ad hoc for spawned threads or
// generator bodies — share the same builtin set without re-wiring it.
//
// Registration isn't only a startup-time event: an `enum` declaration
// with fields installs its constructor lazily (registerEnumConstructor,
// statements.go), which can happen inside a spawned thread while another
// goroutine is mid-dispatch on an unrelated call. nativeRegistryMu makes
// that interleaving safe.
var (
	nativeRegistryMu sync.RWMutex
	nativeRegistry   = map[string]NativeFunc{}
)

// RegisterNative installs a builtin under name, overwriting any previous
// registration. Called from internal/builtins during startup, and from
// registerEnumConstructor at arbitrary program runtime.
func RegisterNative(name string, fn NativeFunc) {
	nativeRegistryMu.Lock()
	defer nativeRegistryMu.Unlock()
	nativeRegistry[name] = fn
}

func lookupNative(name string) (NativeFunc, bool) {
	nativeRegistryMu.RLock()
	defer nativeRegistryMu.RUnlock()
	fn, ok := nativeRegistry[name]
	return fn, ok
}

func (e *Evaluator) evalCall(n *ast.Call) runtime.Value {
	fnVal := e.evalExpr(n.Fn)
	if runtime.IsError(fnVal) {
		return fnVal
	}
	args, errv := e.evalArgs(n.Args)
	if errv != nil {
		return errv
	}
	return e.call(n, fnVal, args)
}

func (e *Evaluator) evalArgs(exprs []ast.Expression) ([]runtime.Value, runtime.Value) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, a := range exprs {
		if sp, ok := a.(*ast.Spread); ok {
			v := e.evalExpr(sp.Value)
			if runtime.IsError(v) {
				return nil, v
			}
			arr, ok := v.(*runtime.ArrayValue)
			if !ok {
				return nil, e.newError(sp, "spread call argument is not an array: %s", v.Type())
			}
			args = append(args, arr.Elems...)
			continue
		}
		v := e.evalExpr(a)
		if runtime.IsError(v) {
			return nil, v
		}
		args = append(args, v)
	}
	return args, nil
}

// applyCallable evaluates fnExpr then calls it with args — the shared
// path for `|>` and for passing a plain identifier/function-expr wherever
// a callable is expected (filter/map/etc. callbacks).
func (e *Evaluator) applyCallable(fnExpr ast.Expression, site ast.Node, args []runtime.Value) runtime.Value {
	fnVal := e.evalExpr(fnExpr)
	if runtime.IsError(fnVal) {
		return fnVal
	}
	return e.call(site, fnVal, args)
}

// call dispatches on the callee's runtime type: native, plain function,
// async function (returns a Promise immediately), or a generator
// definition (returns a fresh GeneratorValue instance).
func (e *Evaluator) call(site ast.Node, fnVal runtime.Value, args []runtime.Value) runtime.Value {
	switch fn := fnVal.(type) {
	case *runtime.NativeFunctionValue:
		impl, ok := lookupNative(fn.Name)
		if !ok {
			return e.newError(site, "native function %q is not registered", fn.Name)
		}
		return impl(e, args)
	case *runtime.FunctionValue:
		return e.callFunctionValue(site, fn, args, false)
	case *runtime.AsyncFunctionValue:
		return e.callAsyncFunction(fn, args)
	case *runtime.GeneratorDefValue:
		env := fn.Captured.Clone()
		env.PushScope()
		bindParams(env, fn.Params, args)
		return &runtime.GeneratorValue{Params: fn.Params, Body: fn.Body, Env: env}
	case *runtime.StructDefValue:
		return e.constructStruct(site, fn, args)
	default:
		return e.newError(site, "value of type %s is not callable", fnVal.Type())
	}
}

func bindParams(env *runtime.Environment, params []string, args []runtime.Value) {
	for i, p := range params {
		if i < len(args) {
			env.Define(p, args[i])
		} else {
			env.Define(p, runtime.Null)
		}
	}
}

// callFunctionValue runs fn's body against fn's own captured Environment
// (or the call site's, for FuncDef top-level functions with no capture),
// pushing and popping one frame scope directly on that shared pointer
// rather than cloning it. This is what makes closures share-mutate: two
// calls to the same closure push/pop their own param scope on top of the
// same underlying scope stack, so a write to a binding that lives in a
// scope below the current call frame is visible on the next call.
// isMethod has no effect: the frame is recorded on the call stack under
// fn.Name (or "<anonymous>") either way.
func (e *Evaluator) callFunctionValue(site ast.Node, fn *runtime.FunctionValue, args []runtime.Value, isMethod bool) runtime.Value {
	base := fn.Captured
	if base == nil {
		base = e.env
	}
	base.PushScope()
	defer base.PopScope()
	bindParams(base, fn.Params, args)

	frame := fn.Name
	if frame == "" {
		frame = "<anonymous>"
	}
	if err := e.callStack.Push(frame); err != nil {
		return &runtime.ErrorObjectValue{Message: err.Error(), Stack: e.callStack.Frames()}
	}
	defer e.callStack.Pop()

	sub := &Evaluator{
		env: base, callStack: e.callStack, output: e.output, modules: e.modules,
		genYield: e.genYield, source: e.source, structDefs: e.structDefs,
	}
	sub.execBlock(fn.Body.Statements)
	return unwrapReturn(sub.returnValue)
}

func unwrapReturn(v runtime.Value) runtime.Value {
	if v == nil {
		return runtime.Null
	}
	if rv, ok := v.(*runtime.ReturnValue); ok {
		return rv.Value
	}
	return v
}

// callAsyncFunction runs fn's body on the shared cooperative pool
// (internal/asyncrt) and returns immediately with a Promise.
func (e *Evaluator) callAsyncFunction(fn *runtime.AsyncFunctionValue, args []runtime.Value) runtime.Value {
	base := fn.Captured
	if base == nil {
		base = e.env
	}
	callEnv := base.Clone()
	callEnv.PushScope()
	bindParams(callEnv, fn.Params, args)

	p := asyncrt.Shared().Spawn(func() (runtime.Value, error) {
		sub := &Evaluator{
			env: callEnv, callStack: runtime.NewCallStack(0), output: e.output,
			modules: e.modules, source: e.source, structDefs: e.structDefs,
		}
		sub.execBlock(fn.Body.Statements)
		result := unwrapReturn(sub.returnValue)
		if runtime.IsError(result) {
			return nil, fmt.Errorf("%s", runtime.Stringify(result))
		}
		return result, nil
	})
	return p
}

func (e *Evaluator) constructStruct(site ast.Node, def *runtime.StructDefValue, args []runtime.Value) runtime.Value {
	if len(args) != len(def.FieldNames) {
		return e.newError(site, "%s constructor expects %d arguments, got %d", def.Name, len(def.FieldNames), len(args))
	}
	fields := make(map[string]runtime.Value, len(args))
	for i, name := range def.FieldNames {
		fields[name] = args[i]
	}
	return &runtime.StructValue{TypeName: def.Name, Fields: fields}
}

func (e *Evaluator) evalStructInstance(n *ast.StructInstance) runtime.Value {
	fields := make(map[string]runtime.Value, len(n.FieldNames))
	for i, name := range n.FieldNames {
		v := e.evalExpr(n.FieldVals[i])
		if runtime.IsError(v) {
			return v
		}
		fields[name] = v
	}
	return &runtime.StructValue{TypeName: n.TypeName, Fields: fields}
}

func (e *Evaluator) evalFieldAccess(n *ast.FieldAccess) runtime.Value {
	obj := e.evalExpr(n.Object)
	if runtime.IsError(obj) {
		return obj
	}
	if n.Optional {
		if _, isNull := obj.(*runtime.NullValue); isNull {
			return runtime.Null
		}
	}
	switch o := obj.(type) {
	case *runtime.StructValue:
		if v, ok := o.Fields[n.Field]; ok {
			return v
		}
		if def, ok := e.structDefs.Get(o.TypeName); ok {
			if m, ok := def.Methods[n.Field]; ok {
				return boundMethod{recv: o, fn: m}
			}
		}
		return e.newError(n, "%s has no field or method %q", o.TypeName, n.Field)
	case *runtime.HttpResponseValue:
		switch n.Field {
		case "status":
			return &runtime.IntValue{Value: int64(o.Status)}
		case "body":
			return runtime.Str(o.Body)
		}
	case *runtime.TaggedValue:
		if v, ok := o.Fields[n.Field]; ok {
			return v
		}
	}
	return e.newError(n, "cannot access field %q on %s", n.Field, obj.Type())
}

// boundMethod carries a struct method's captured receiver between
// FieldAccess (`obj.method`) and a following Call, mirroring how the
// grammar always sees `obj.method(...)` as one MethodCall node in
// practice; boundMethod exists for the rarer case of passing a method
// value around without immediately calling it.
type boundMethod struct {
	recv *runtime.StructValue
	fn   *runtime.FunctionValue
}

func (boundMethod) Type() string   { return "BOUND_METHOD" }
func (b boundMethod) String() string { return b.fn.Name + " bound to " + b.recv.TypeName }

func (e *Evaluator) evalMethodCall(n *ast.MethodCall) runtime.Value {
	obj := e.evalExpr(n.Object)
	if runtime.IsError(obj) {
		return obj
	}
	args, errv := e.evalArgs(n.Args)
	if errv != nil {
		return errv
	}

	switch o := obj.(type) {
	case *runtime.StructValue:
		def, ok := e.structDefs.Get(o.TypeName)
		if !ok {
			return e.newError(n, "unknown struct type %q", o.TypeName)
		}
		fn, ok := def.Methods[n.Method]
		if !ok {
			return e.newError(n, "%s has no method %q", o.TypeName, n.Method)
		}
		return e.callFunctionValue(n, fn, append([]runtime.Value{o}, args...), true)
	case *runtime.ArrayValue, *runtime.GeneratorValue, *runtime.IteratorValue:
		return e.evalIteratorMethod(n, obj, args)
	case *runtime.HttpServerValue:
		return e.evalHttpServerMethod(n, o, args)
	case *runtime.ChannelValue:
		return e.evalChannelMethod(n, o, args)
	case boundMethod:
		return e.callFunctionValue(n, o.fn, append([]runtime.Value{o.recv}, args...), true)
	default:
		if impl, ok := lookupNative("__method_" + obj.Type() + "_" + n.Method); ok {
			return impl(e, append([]runtime.Value{obj}, args...))
		}
		return e.newError(n, "%s has no method %q", obj.Type(), n.Method)
	}
}

func (e *Evaluator) evalChannelMethod(n *ast.MethodCall, ch *runtime.ChannelValue, args []runtime.Value) runtime.Value {
	switch n.Method {
	case "send":
		if len(args) != 1 {
			return e.newError(n, "send expects 1 argument")
		}
		if err := ch.Send(args[0]); err != nil {
			return &runtime.ErrorValue{Message: err.Error()}
		}
		return runtime.Null
	case "receive":
		v, ok := ch.Receive()
		return &runtime.OptionValue{IsSome: ok, Value: v}
	case "close":
		ch.Close()
		return runtime.Null
	case "closed":
		return &runtime.BoolValue{Value: ch.Closed()}
	default:
		return e.newError(n, "Channel has no method %q", n.Method)
	}
}

func (e *Evaluator) evalHttpServerMethod(n *ast.MethodCall, srv *runtime.HttpServerValue, args []runtime.Value) runtime.Value {
	switch n.Method {
	case "route":
		if len(args) != 3 {
			return e.newError(n, "route expects (method, pattern, handler)")
		}
		method, ok := args[0].(*runtime.StringValue)
		if !ok {
			return e.newError(n, "route: method must be a string")
		}
		pattern, ok := args[1].(*runtime.StringValue)
		if !ok {
			return e.newError(n, "route: pattern must be a string")
		}
		return srv.WithRoute(method.Value, pattern.Value, args[2])
	case "listen":
		if len(args) != 0 {
			return e.newError(n, "listen expects no arguments")
		}
		// internal/httpserver imports this package to reenter handler
		// callbacks, so the reverse dependency is bridged through the
		// same nativeRegistry every other native function uses, rather
		// than an import of internal/httpserver here.
		impl, ok := lookupNative("__http_listen")
		if !ok {
			return e.newError(n, "listen: http server support is not registered")
		}
		return impl(e, []runtime.Value{srv})
	default:
		return e.newError(n, "HttpServer has no method %q", n.Method)
	}
}

func (e *Evaluator) evalTag(n *ast.Tag) runtime.Value {
	if ctor, ok := e.env.Get(n.Name); ok {
		args, errv := e.evalArgs(n.Args)
		if errv != nil {
			return errv
		}
		return e.call(n, ctor, args)
	}
	fields := make(map[string]runtime.Value, len(n.Args))
	for i, a := range n.Args {
		v := e.evalExpr(a)
		if runtime.IsError(v) {
			return v
		}
		fields[fmt.Sprintf("$%d", i)] = v
	}
	return &runtime.TaggedValue{Tag: n.Name, Fields: fields}
}
