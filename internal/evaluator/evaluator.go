// Package evaluator is the tree-walking evaluator: it walks an *ast.Program
// and drives every statement/expression/operator/call/pattern-match
// dispatch against the runtime value model in internal/runtime.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/runtime"
)

// ModuleLoader resolves an import's module path to its exported bindings.
// internal/modules provides the concrete, in-memory implementation; the
// evaluator only depends on this interface to avoid an import cycle.
type ModuleLoader interface {
	// Load returns every export of module, or an error if it cannot be
	// resolved.
	Load(module string) (map[string]runtime.Value, error)
}

// Evaluator walks an AST against one Environment. A single Evaluator
// value's own fields (returnValue/breaking/continuing) are never shared
// across goroutines — every call constructs its own `sub` Evaluator (see
// callFunctionValue, pullGenerator, spawnThread, CallValueConcurrently)
// before executing a body, so two concurrent calls never see each
// other's unwind state. What those sub-Evaluators do share by pointer —
// env, callStack, structDefs — are each individually safe for concurrent
// access (runtime.Environment, runtime.CallStack, runtime.StructDefs all
// guard their own state with a mutex).
type Evaluator struct {
	env       *runtime.Environment
	callStack *runtime.CallStack
	output    io.Writer
	modules   ModuleLoader

	// returnValue is the shared "stop executing further statements"
	// slot: set by an explicit `return`, and also by any uncaught
	// Error/ErrorObject, so both cases unwind a block/function body the
	// same way. nil means "keep going".
	returnValue runtime.Value
	breaking    bool
	continuing  bool

	// genYield is non-nil while running inside a generator body; a
	// `yield` expression calls it instead of erroring.
	genYield func(runtime.Value)

	source       string
	structDefs   *runtime.StructDefs
}

// Option configures a new Evaluator.
type Option func(*Evaluator)

// WithOutput sets the writer `print`/`println` write to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option { return func(e *Evaluator) { e.output = w } }

// WithModuleLoader wires in a module resolver for `import`.
func WithModuleLoader(l ModuleLoader) Option { return func(e *Evaluator) { e.modules = l } }

// WithSourceName sets the file name recorded in error positions.
func WithSourceName(name string) Option { return func(e *Evaluator) { e.source = name } }

// WithCallStackDepth overrides the default maximum call depth.
func WithCallStackDepth(n int) Option {
	return func(e *Evaluator) { e.callStack = runtime.NewCallStack(n) }
}

// New constructs an Evaluator with a fresh global Environment.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		env:          runtime.NewEnvironment(),
		callStack:    runtime.NewCallStack(0),
		output:       os.Stdout,
		structDefs:   runtime.NewStructDefs(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Env exposes the evaluator's environment, e.g. for the Test Runner to
// snapshot/restore bindings between tests.
func (e *Evaluator) Env() *runtime.Environment { return e.env }

// CallStack exposes the call stack, e.g. for internal/cleanup and
// diagnostics.
func (e *Evaluator) CallStack() *runtime.CallStack { return e.callStack }

// Run evaluates every top-level statement in prog and returns the value of
// the last ExprStmt, or the explicit/propagated return value, whichever
// stopped execution. Null if the program ran to completion without either.
//
// Run resets the stop-state (returnValue/breaking/continuing) before
// returning, so the same Evaluator can run a further top-level program
// afterwards — internal/testrunner relies on this to run a test's
// setup, body, and teardown blocks as three separate Run calls against
// one Evaluator sharing one Environment.
func (e *Evaluator) Run(prog *ast.Program) runtime.Value {
	last := e.execBlock(prog.Statements)
	result := last
	if e.returnValue != nil {
		result = unwrapReturn(e.returnValue)
	}
	e.returnValue = nil
	e.breaking = false
	e.continuing = false
	if result == nil {
		return runtime.Null
	}
	return result
}

// execBlock runs stmts in order, stopping early on return/break/continue/
// error. It returns the value of the last ExprStmt encountered (used by
// REPL-style top-level evaluation), or nil if none ran.
func (e *Evaluator) execBlock(stmts []ast.Statement) runtime.Value {
	var last runtime.Value
	for _, stmt := range stmts {
		if es, ok := stmt.(*ast.ExprStmt); ok {
			last = e.evalExpr(es.Expr)
			if runtime.IsError(last) {
				e.returnValue = last
			}
		} else {
			e.execStmt(stmt)
		}
		if e.stopped() {
			return last
		}
	}
	return last
}

// stopped reports whether block execution should unwind: either an
// explicit/propagated return (including an uncaught error) or a
// break/continue escaping to an enclosing loop.
func (e *Evaluator) stopped() bool {
	return e.returnValue != nil || e.breaking || e.continuing
}

// Eval dispatches an expression to evalExpr and a statement to execStmt. Exported so the Generator
// Driver and iterator pipeline can re-enter evaluation without reaching
// into unexported fields.
func (e *Evaluator) Eval(node ast.Node) runtime.Value {
	switch n := node.(type) {
	case ast.Expression:
		return e.evalExpr(n)
	case ast.Statement:
		e.execStmt(n)
		return e.returnValue
	default:
		return e.newError(node, "cannot evaluate node of type %T", node)
	}
}

// CallValue invokes fn (any callable runtime.Value — native, plain,
// async, or struct constructor) with args, the same dispatch evalCall
// uses. Exported so internal/httpserver and internal/testrunner can
// reenter the evaluator to run a user-supplied handler/test body
// without importing this package's unexported call path.
func (e *Evaluator) CallValue(fn runtime.Value, args []runtime.Value) runtime.Value {
	return e.call(nil, fn, args)
}

// CallValueConcurrently is CallValue for callers that reenter the same
// Evaluator from multiple goroutines at once, such as parallel_map/
// par_each's worker pool (internal/builtins/async.go). It runs against a
// private CallStack instead of e's, so concurrent workers never share a
// single frame slice; the Environment and struct-def table they still
// share are safe for concurrent access in their own right (see
// runtime.Environment and runtime.StructDefs).
func (e *Evaluator) CallValueConcurrently(fn runtime.Value, args []runtime.Value) runtime.Value {
	sub := &Evaluator{
		env: e.env, callStack: runtime.NewCallStack(0), output: e.output,
		modules: e.modules, source: e.source, structDefs: e.structDefs,
	}
	return sub.call(nil, fn, args)
}

func (e *Evaluator) newError(node ast.Node, format string, args ...any) *runtime.ErrorObjectValue {
	msg := fmt.Sprintf(format, args...)
	var line *int
	if node != nil {
		l := node.Pos().Line
		line = &l
	}
	return &runtime.ErrorObjectValue{
		Message: msg,
		Stack:   e.callStack.Frames(),
		Line:    line,
	}
}

func (e *Evaluator) write(s string) {
	if e.output != nil {
		io.WriteString(e.output, s)
	}
}

// Write exposes the configured output writer to internal/builtins'
// print/println natives, which live outside this package to keep the
// Native Dispatcher's registrations decoupled from evaluator internals.
func (e *Evaluator) Write(s string) { e.write(s) }
