// Package testrunner collects ast.Test/TestSetup/TestTeardown/TestGroup
// statements out of a program and runs each test in its own fresh
// evaluator, per spec.md §4.9.
package testrunner

import (
	"fmt"
	"time"

	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// Result is one test's outcome.
type Result struct {
	Name     string
	Passed   bool
	Message  string
	Duration time.Duration
}

// Report is the full run's summary.
type Report struct {
	Results []Result
	Total   int
	Passed  int
	Failed  int
}

// ExitCode is 0 if every test passed, 1 otherwise.
func (r *Report) ExitCode() int {
	if r.Failed > 0 {
		return 1
	}
	return 0
}

// testCase is one collected Test with its inherited setup/teardown
// chains, outermost group first.
type testCase struct {
	name     string
	body     *ast.Block
	setup    []*ast.Block
	teardown []*ast.Block
}

// Run walks prog collecting every test, then runs each one against a
// fresh Evaluator seeded with env's current bindings (so a top-level
// `import` is visible to every test body), sharing modules as the
// module loader.
func Run(prog *ast.Program, env *runtime.Environment, modules evaluator.ModuleLoader) *Report {
	var cases []testCase
	collect(prog.Statements, nil, nil, "", &cases)

	report := &Report{Total: len(cases)}
	snapshot := env.Snapshot()
	for _, tc := range cases {
		result := runOne(tc, snapshot, modules)
		report.Results = append(report.Results, result)
		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	return report
}

// collect recurses through stmts accumulating the setup/teardown chain
// in effect at each nesting level — setup is inherited outermost-first
// (appended as we descend), teardown the same way but run in reverse
// (innermost-first) by runOne.
func collect(stmts []ast.Statement, setup, teardown []*ast.Block, prefix string, out *[]testCase) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.TestSetup:
			setup = append(setup, s.Body)
		case *ast.TestTeardown:
			teardown = append(teardown, s.Body)
		case *ast.Test:
			*out = append(*out, testCase{
				name:     prefix + s.Name,
				body:     s.Body,
				setup:    append([]*ast.Block(nil), setup...),
				teardown: append([]*ast.Block(nil), teardown...),
			})
		case *ast.TestGroup:
			collect(s.Body.Statements, setup, teardown, prefix+s.Name+"/", out)
		}
	}
}

func runOne(tc testCase, envSnapshot map[string]runtime.Value, modules evaluator.ModuleLoader) Result {
	ev := evaluator.New(evaluator.WithModuleLoader(modules))
	for name, v := range envSnapshot {
		ev.Env().Define(name, v)
	}

	for _, setup := range tc.setup {
		v := ev.Run(&ast.Program{Statements: setup.Statements})
		if runtime.IsError(v) {
			return Result{Name: tc.name, Message: fmt.Sprintf("setup failed: %s", runtime.Stringify(v))}
		}
	}

	start := time.Now()
	result := ev.Run(&ast.Program{Statements: tc.body.Statements})
	duration := time.Since(start)

	passed := !runtime.IsError(result)
	message := ""
	if !passed {
		message = runtime.Stringify(result)
	}

	// Teardown errors are not fatal to the test's own outcome; they are
	// reported to the caller in message if the test itself otherwise
	// passed (when several teardowns fail, the last one run is kept), matching spec.md §4.9's "errors do not fail the
	// test but may be logged".
	for i := len(tc.teardown) - 1; i >= 0; i-- {
		if v := ev.Run(&ast.Program{Statements: tc.teardown[i].Statements}); runtime.IsError(v) && passed {
			message = fmt.Sprintf("teardown error (test passed): %s", runtime.Stringify(v))
		}
	}

	return Result{Name: tc.name, Passed: passed, Message: message, Duration: duration}
}
