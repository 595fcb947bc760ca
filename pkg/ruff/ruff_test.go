package ruff

import (
	"testing"

	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/runtime"
)

func ident(name string) *ast.Identifier       { return &ast.Identifier{Name: name} }
func intLit(v int64) *ast.IntLit              { return &ast.IntLit{Value: v} }
func block(stmts ...ast.Statement) *ast.Block { return &ast.Block{Statements: stmts} }
func letStmt(name string, val ast.Expression) *ast.Let {
	return &ast.Let{Target: &ast.IdentPattern{Name: name}, Value: val}
}

// TestTryExceptBindsThrownError exercises spec.md §8 scenario 3 end to
// end through the embeddable Interpreter.
func TestTryExceptBindsThrownError(t *testing.T) {
	in := NewInterpreter()
	result := in.Run(&ast.Program{Statements: []ast.Statement{
		&ast.TryExcept{
			Try: block(&ast.ExprStmt{Expr: &ast.BinaryOp{
				Op: "/", Left: intLit(1), Right: intLit(0),
			}}),
			ExceptVar: "err",
			Except: block(
				letStmt("msg", &ast.FieldAccess{Object: ident("err"), Field: "message"}),
				&ast.Return{Expr: ident("msg")},
			),
		},
	}})
	sv, ok := result.(*runtime.StringValue)
	if !ok || sv.Value != "division by zero" {
		t.Fatalf("got %v, want %q", result, "division by zero")
	}
}

// TestRunTestsReportsPassFail exercises the embeddable Interpreter's
// test-runner wiring end to end.
func TestRunTestsReportsPassFail(t *testing.T) {
	in := NewInterpreter()
	report := in.RunTests(&ast.Program{Statements: []ast.Statement{
		&ast.Test{Name: "one equals one", Body: block(
			&ast.ExprStmt{Expr: &ast.BinaryOp{Op: "==", Left: intLit(1), Right: intLit(1)}},
		)},
	}})
	if report.Total != 1 || report.Passed != 1 || report.ExitCode() != 0 {
		t.Fatalf("got total=%d passed=%d exit=%d, want 1/1/0", report.Total, report.Passed, report.ExitCode())
	}
}

func TestShutdownWaitsForSpawnedThreads(t *testing.T) {
	in := NewInterpreter()
	in.Env().Define("x", &runtime.IntValue{Value: 1})
	in.Run(&ast.Program{Statements: []ast.Statement{
		&ast.Spawn{Body: block(&ast.ExprStmt{Expr: intLit(1)})},
	}})
	if errs := in.Shutdown(); len(errs) != 0 {
		t.Fatalf("unexpected shutdown errors: %v", errs)
	}
}
