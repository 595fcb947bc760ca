package evaluator

import (
	"testing"

	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/runtime"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func letStmt(name string, val ast.Expression) *ast.Let {
	return &ast.Let{Target: &ast.IdentPattern{Name: name}, Value: val}
}

func intLit(v int64) *ast.IntLit { return &ast.IntLit{Value: v} }

func block(stmts ...ast.Statement) *ast.Block { return &ast.Block{Statements: stmts} }

func run(stmts ...ast.Statement) (*Evaluator, runtime.Value) {
	ev := New()
	v := ev.Run(&ast.Program{Statements: stmts})
	return ev, v
}

func TestArithmeticPrecedenceFreeBinaryOps(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want int64
	}{
		{"add", &ast.BinaryOp{Op: "+", Left: intLit(2), Right: intLit(3)}, 5},
		{"sub", &ast.BinaryOp{Op: "-", Left: intLit(10), Right: intLit(4)}, 6},
		{"mul", &ast.BinaryOp{Op: "*", Left: intLit(6), Right: intLit(7)}, 42},
		{"div", &ast.BinaryOp{Op: "/", Left: intLit(9), Right: intLit(3)}, 3},
		{"mod", &ast.BinaryOp{Op: "%", Left: intLit(10), Right: intLit(3)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, v := run(&ast.ExprStmt{Expr: tt.expr})
			iv, ok := v.(*runtime.IntValue)
			if !ok || iv.Value != tt.want {
				t.Fatalf("got %v, want %d", v, tt.want)
			}
		})
	}
}

// TestClosureSharesMutatedEnvironment builds the counter-closure scenario
// directly as AST: a counter closure that increments a captured binding
// across two separate calls sees the mutation from the first call.
func TestClosureSharesMutatedEnvironment(t *testing.T) {
	makeCounter := &ast.FunctionExpr{
		Body: block(
			&ast.Return{Expr: &ast.FunctionExpr{
				Body: block(
					&ast.Assign{Target: ident("count"), Op: "+=", Value: intLit(1)},
					&ast.Return{Expr: ident("count")},
				),
			}},
		),
	}
	ev, v := run(
		letStmt("count", intLit(0)),
		letStmt("counter", &ast.Call{Fn: makeCounter}),
	)
	if runtime.IsError(v) {
		t.Fatalf("setup failed: %v", v)
	}
	counterVal, _ := ev.Env().Get("counter")
	fn := counterVal.(*runtime.FunctionValue)

	first := ev.callFunctionValue(nil, fn, nil, false)
	second := ev.callFunctionValue(nil, fn, nil, false)
	if iv := first.(*runtime.IntValue); iv.Value != 1 {
		t.Fatalf("first call = %d, want 1", iv.Value)
	}
	if iv := second.(*runtime.IntValue); iv.Value != 2 {
		t.Fatalf("second call = %d, want 2, closures must share-mutate their captured environment", iv.Value)
	}
}

func TestTryExceptBindsThrownError(t *testing.T) {
	_, v := run(
		&ast.TryExcept{
			Try: block(&ast.ExprStmt{Expr: &ast.BinaryOp{
				Op: "/", Left: intLit(1), Right: intLit(0),
			}}),
			ExceptVar: "err",
			Except:    block(&ast.Return{Expr: &ast.FieldAccess{Object: ident("err"), Field: "message"}}),
		},
	)
	sv, ok := v.(*runtime.StringValue)
	if !ok || sv.Value != "division by zero" {
		t.Fatalf("got %v, want bound err.message == %q", v, "division by zero")
	}
}

func TestMatchDispatchesOnResultTag(t *testing.T) {
	prog := []ast.Statement{
		&ast.MatchStmt{
			Value: &ast.OkExpr{Value: intLit(7)},
			Cases: []ast.MatchCase{
				{Tag: "Ok", Binds: []string{"x"}, Body: block(&ast.Return{Expr: ident("x")})},
				{Tag: "Err", Binds: []string{"e"}, Body: block(&ast.Return{Expr: ident("e")})},
			},
		},
	}
	_, v := run(prog...)
	iv, ok := v.(*runtime.IntValue)
	if !ok || iv.Value != 7 {
		t.Fatalf("got %v, want 7", v)
	}
}

func TestIteratorFilterMapTakeCollect(t *testing.T) {
	arrExpr := &ast.ArrayLiteral{Elements: []ast.Expression{intLit(1), intLit(2), intLit(3), intLit(4), intLit(5), intLit(6)}}
	isEven := &ast.FunctionExpr{Params: []string{"n"}, Body: block(
		&ast.Return{Expr: &ast.BinaryOp{Op: "==", Left: &ast.BinaryOp{Op: "%", Left: ident("n"), Right: intLit(2)}, Right: intLit(0)}},
	)}
	double := &ast.FunctionExpr{Params: []string{"n"}, Body: block(
		&ast.Return{Expr: &ast.BinaryOp{Op: "*", Left: ident("n"), Right: intLit(2)}},
	)}
	pipeline := &ast.MethodCall{
		Object: &ast.MethodCall{
			Object: &ast.MethodCall{Object: arrExpr, Method: "filter", Args: []ast.Expression{isEven}},
			Method: "map", Args: []ast.Expression{double},
		},
		Method: "take", Args: []ast.Expression{intLit(2)},
	}
	collect := &ast.MethodCall{Object: pipeline, Method: "collect"}

	_, v := run(&ast.ExprStmt{Expr: collect})
	arr, ok := v.(*runtime.ArrayValue)
	if !ok {
		t.Fatalf("got %v, want array", v)
	}
	want := []int64{4, 8}
	if len(arr.Elems) != len(want) {
		t.Fatalf("got %d elements, want %d", len(arr.Elems), len(want))
	}
	for i, w := range want {
		if iv := arr.Elems[i].(*runtime.IntValue); iv.Value != w {
			t.Fatalf("elem %d = %d, want %d", i, iv.Value, w)
		}
	}
}

// TestGeneratorDrivenThroughIteratorNext exercises a generator whose
// yield sits inside a nested Loop body, driven one next() at a time —
// the scenario that ruled out a flat program-counter resumption model
// (see internal/generator).
func TestGeneratorDrivenThroughIteratorNext(t *testing.T) {
	genBody := block(
		letStmt("a", intLit(0)),
		letStmt("b", intLit(1)),
		&ast.Loop{Body: block(
			&ast.ExprStmt{Expr: &ast.Yield{Value: ident("a")}},
			letStmt("tmp", ident("b")),
			&ast.Assign{Target: ident("b"), Op: ":=", Value: &ast.BinaryOp{Op: "+", Left: ident("a"), Right: ident("b")}},
			&ast.Assign{Target: ident("a"), Op: ":=", Value: ident("tmp")},
		)},
	)
	genExpr := &ast.FunctionExpr{IsGenerator: true, Body: genBody}

	ev := New()
	genVal := ev.Run(&ast.Program{Statements: []ast.Statement{
		letStmt("gen", &ast.Call{Fn: genExpr}),
	}})
	if runtime.IsError(genVal) {
		t.Fatalf("setup failed: %v", genVal)
	}
	genv, _ := ev.Env().Get("gen")
	gen := genv.(*runtime.GeneratorValue)

	want := []int64{0, 1, 1, 2, 3, 5, 8}
	call := &ast.MethodCall{Object: &ast.NullLit{}, Method: "next"}
	for i, w := range want {
		result := ev.evalIteratorMethod(call, gen, nil)
		opt, ok := result.(*runtime.OptionValue)
		if !ok || !opt.IsSome {
			t.Fatalf("iteration %d: got %v, want Some(%d)", i, result, w)
		}
		if iv := opt.Value.(*runtime.IntValue); iv.Value != w {
			t.Fatalf("iteration %d: got %d, want %d", i, iv.Value, w)
		}
	}
}

func TestStructOperatorMethodOverload(t *testing.T) {
	def := &ast.StructDef{
		Name:   "Vec2",
		Fields: []string{"x", "y"},
		Methods: []ast.MethodDef{
			{Name: "op_add", Params: []string{"self", "other"}, Body: block(
				&ast.Return{Expr: &ast.StructInstance{
					TypeName:   "Vec2",
					FieldNames: []string{"x", "y"},
					FieldVals: []ast.Expression{
						&ast.BinaryOp{Op: "+", Left: &ast.FieldAccess{Object: ident("self"), Field: "x"}, Right: &ast.FieldAccess{Object: ident("other"), Field: "x"}},
						&ast.BinaryOp{Op: "+", Left: &ast.FieldAccess{Object: ident("self"), Field: "y"}, Right: &ast.FieldAccess{Object: ident("other"), Field: "y"}},
					},
				}},
			)},
		},
	}
	mkVec := func(x, y int64) *ast.StructInstance {
		return &ast.StructInstance{TypeName: "Vec2", FieldNames: []string{"x", "y"}, FieldVals: []ast.Expression{intLit(x), intLit(y)}}
	}
	_, v := run(
		def,
		&ast.Return{Expr: &ast.BinaryOp{Op: "+", Left: mkVec(1, 2), Right: mkVec(3, 4)}},
	)
	sv, ok := v.(*runtime.StructValue)
	if !ok {
		t.Fatalf("got %v, want Vec2 struct", v)
	}
	if x := sv.Fields["x"].(*runtime.IntValue).Value; x != 4 {
		t.Fatalf("x = %d, want 4", x)
	}
	if y := sv.Fields["y"].(*runtime.IntValue).Value; y != 6 {
		t.Fatalf("y = %d, want 6", y)
	}
}
