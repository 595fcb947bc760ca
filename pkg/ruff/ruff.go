// Package ruff is the embeddable entry point: construct an Interpreter,
// feed it an already-parsed *ast.Program, and run it. Lexing and
// parsing source text into that Program are out of scope here (see
// DESIGN.md); this package wires together the value model, the
// evaluator, the module loader, the HTTP server loop, the test runner,
// and shutdown cleanup the way the teacher's pkg/dwscript wires its own
// Engine around its interpreter core.
package ruff

import (
	"io"
	"os"
	"sync"

	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/asyncrt"
	"github.com/rufflang/ruff/internal/builtins"
	"github.com/rufflang/ruff/internal/cleanup"
	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/modules"
	"github.com/rufflang/ruff/internal/runtime"
	"github.com/rufflang/ruff/internal/testrunner"
)

// registerBuiltinsOnce installs the Native Dispatcher's registry
// exactly once per process: builtins.Register wires every name in
// nativeRegistry (internal/evaluator/calls.go), and that table is
// process-wide, so a second NewInterpreter in the same process must
// not pay for (or race on) re-registering it.
var registerBuiltinsOnce sync.Once

// Interpreter is the embeddable entry point: one Environment, one
// module registry, and the evaluator options built from them.
type Interpreter struct {
	ev       *evaluator.Evaluator
	registry *modules.Registry
}

// Option configures a new Interpreter.
type Option func(*options)

type options struct {
	output        io.Writer
	sourceName    string
	maxCallDepth  int
	taskPoolSize  int
}

// WithOutput sets the writer `print`/`println` write to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option { return func(o *options) { o.output = w } }

// WithSourceName sets the file name recorded in error positions.
func WithSourceName(name string) Option { return func(o *options) { o.sourceName = name } }

// WithMaxCallDepth overrides the default maximum call-stack depth.
func WithMaxCallDepth(n int) Option { return func(o *options) { o.maxCallDepth = n } }

// WithTaskPoolSize overrides the shared async runtime's bounded task
// pool size (spec.md §4.5's "task pool size governs concurrency
// limit"). This is process-wide state, not per-Interpreter: asyncrt's
// shared runtime backs every Interpreter in the process.
func WithTaskPoolSize(n int) Option { return func(o *options) { o.taskPoolSize = n } }

// NewInterpreter builds an Interpreter with a fresh Environment and an
// empty module registry (see RegisterModule to populate it before
// running a program that imports anything).
func NewInterpreter(opts ...Option) *Interpreter {
	registerBuiltinsOnce.Do(builtins.Register)

	o := &options{output: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	if o.taskPoolSize > 0 {
		asyncrt.Shared().SetPoolSize(o.taskPoolSize)
	}

	registry := modules.NewRegistry()
	evalOpts := []evaluator.Option{
		evaluator.WithOutput(o.output),
		evaluator.WithModuleLoader(registry),
	}
	if o.sourceName != "" {
		evalOpts = append(evalOpts, evaluator.WithSourceName(o.sourceName))
	}
	if o.maxCallDepth > 0 {
		evalOpts = append(evalOpts, evaluator.WithCallStackDepth(o.maxCallDepth))
	}

	return &Interpreter{ev: evaluator.New(evalOpts...), registry: registry}
}

// RegisterModule installs a module's export set, resolved by `import`
// statements the program's evaluator later runs.
func (in *Interpreter) RegisterModule(name string, exports map[string]runtime.Value) {
	in.registry.Register(name, exports)
}

// Run evaluates prog against the Interpreter's Environment and returns
// its result value.
func (in *Interpreter) Run(prog *ast.Program) runtime.Value {
	return in.ev.Run(prog)
}

// RunTests collects and runs every Test/TestSetup/TestTeardown/
// TestGroup in prog, seeded from the Interpreter's current Environment
// (so a prior Run's top-level imports/bindings are visible to every
// test).
func (in *Interpreter) RunTests(prog *ast.Program) *testrunner.Report {
	return testrunner.Run(prog, in.ev.Env(), in.registry)
}

// Shutdown waits for outstanding `spawn`-ed threads and rolls back any
// database transaction still open across the Interpreter's Environment.
func (in *Interpreter) Shutdown() []error {
	return cleanup.Run(in.ev.Env())
}

// Env exposes the Interpreter's Environment, e.g. to seed bindings
// before Run or to inspect results after it.
func (in *Interpreter) Env() *runtime.Environment { return in.ev.Env() }
