package evaluator

import (
	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/runtime"
)

func (e *Evaluator) evalUnaryOp(n *ast.UnaryOp) runtime.Value {
	v := e.evalExpr(n.Operand)
	if runtime.IsError(v) {
		return v
	}
	if sv, ok := v.(*runtime.StructValue); ok {
		if result, handled := e.tryUnaryOperatorMethod(n, sv, n.Op); handled {
			return result
		}
	}

	switch n.Op {
	case "-":
		switch x := v.(type) {
		case *runtime.IntValue:
			return &runtime.IntValue{Value: -x.Value}
		case *runtime.FloatValue:
			return &runtime.FloatValue{Value: -x.Value}
		default:
			return e.newError(n, "cannot negate %s", v.Type())
		}
	case "!":
		return &runtime.BoolValue{Value: !runtime.Truthy(v)}
	default:
		return e.newError(n, "unknown unary operator %q", n.Op)
	}
}

// tryUnaryOperatorMethod dispatches op_neg/op_not for a struct operand,
// the unary counterpart of tryOperatorMethod.
func (e *Evaluator) tryUnaryOperatorMethod(n ast.Node, sv *runtime.StructValue, op string) (runtime.Value, bool) {
	def, ok := e.structDefs.Get(sv.TypeName)
	if !ok {
		return nil, false
	}
	methodName, ok := unaryOperatorMethodNames[op]
	if !ok {
		return nil, false
	}
	fn, ok := def.Methods[methodName]
	if !ok {
		return nil, false
	}
	return e.callFunctionValue(n, fn, []runtime.Value{sv}, true), true
}

var unaryOperatorMethodNames = map[string]string{"-": "op_neg", "!": "op_not"}

// evalBinaryOp handles short-circuit operators directly, then delegates
// everything else (arithmetic/comparison) to applyBinary once both
// operands are evaluated.
func (e *Evaluator) evalBinaryOp(n *ast.BinaryOp) runtime.Value {
	switch n.Op {
	case "&&":
		l := e.evalExpr(n.Left)
		if runtime.IsError(l) || !runtime.Truthy(l) {
			return l
		}
		return e.evalExpr(n.Right)
	case "||":
		l := e.evalExpr(n.Left)
		if runtime.IsError(l) || runtime.Truthy(l) {
			return l
		}
		return e.evalExpr(n.Right)
	case "??":
		l := e.evalExpr(n.Left)
		if runtime.IsError(l) {
			return l
		}
		if _, isNull := l.(*runtime.NullValue); isNull {
			return e.evalExpr(n.Right)
		}
		if opt, ok := l.(*runtime.OptionValue); ok && !opt.IsSome {
			return e.evalExpr(n.Right)
		}
		return l
	case "|>":
		l := e.evalExpr(n.Left)
		if runtime.IsError(l) {
			return l
		}
		return e.applyCallable(n.Right, n, []runtime.Value{l})
	}

	left := e.evalExpr(n.Left)
	if runtime.IsError(left) {
		return left
	}
	right := e.evalExpr(n.Right)
	if runtime.IsError(right) {
		return right
	}
	return e.applyBinary(n, n.Op, left, right)
}

func (e *Evaluator) applyBinary(n ast.Node, op string, left, right runtime.Value) runtime.Value {
	// Operator-method overload: a struct with an op_<name> method takes
	// priority over the builtin numeric/string/structural behavior below.
	if sv, ok := left.(*runtime.StructValue); ok {
		if result, handled := e.tryOperatorMethod(n, sv, op, right); handled {
			return result
		}
	}

	switch op {
	case "==":
		return &runtime.BoolValue{Value: runtime.Equal(left, right)}
	case "!=":
		return &runtime.BoolValue{Value: !runtime.Equal(left, right)}
	}

	if op == "+" {
		if ls, ok := left.(*runtime.StringValue); ok {
			if rs, ok := right.(*runtime.StringValue); ok {
				return runtime.Str(ls.Value + rs.Value)
			}
		}
		if la, ok := left.(*runtime.ArrayValue); ok {
			if ra, ok := right.(*runtime.ArrayValue); ok {
				combined := make([]runtime.Value, 0, len(la.Elems)+len(ra.Elems))
				combined = append(combined, la.Elems...)
				combined = append(combined, ra.Elems...)
				return runtime.NewArray(combined)
			}
		}
	}

	switch op {
	case "<", "<=", ">", ">=":
		return e.compare(n, op, left, right)
	}

	lf, lIsFloat, lOk := numericOperand(left)
	rf, rIsFloat, rOk := numericOperand(right)
	if !lOk || !rOk {
		return e.newError(n, "operator %s not defined for %s and %s", op, left.Type(), right.Type())
	}
	useFloat := lIsFloat || rIsFloat

	switch op {
	case "+", "-", "*":
		if useFloat {
			return &runtime.FloatValue{Value: floatArith(op, lf, rf)}
		}
		li, _ := left.(*runtime.IntValue)
		ri, _ := right.(*runtime.IntValue)
		return &runtime.IntValue{Value: intArith(op, li.Value, ri.Value)}
	case "/":
		if useFloat || rf == 0 {
			if rf == 0 && !useFloat {
				return e.newError(n, "division by zero")
			}
			return &runtime.FloatValue{Value: lf / rf}
		}
		li, _ := left.(*runtime.IntValue)
		ri, _ := right.(*runtime.IntValue)
		return &runtime.IntValue{Value: li.Value / ri.Value}
	case "%":
		if useFloat {
			return e.newError(n, "%% requires integer operands")
		}
		li, _ := left.(*runtime.IntValue)
		ri, _ := right.(*runtime.IntValue)
		if ri.Value == 0 {
			return e.newError(n, "modulo by zero")
		}
		return &runtime.IntValue{Value: li.Value % ri.Value}
	default:
		return e.newError(n, "unknown binary operator %q", op)
	}
}

func (e *Evaluator) compare(n ast.Node, op string, left, right runtime.Value) runtime.Value {
	if ls, ok := left.(*runtime.StringValue); ok {
		if rs, ok := right.(*runtime.StringValue); ok {
			return &runtime.BoolValue{Value: stringCompare(op, ls.Value, rs.Value)}
		}
	}
	lf, _, lOk := numericOperand(left)
	rf, _, rOk := numericOperand(right)
	if !lOk || !rOk {
		return e.newError(n, "operator %s not defined for %s and %s", op, left.Type(), right.Type())
	}
	switch op {
	case "<":
		return &runtime.BoolValue{Value: lf < rf}
	case "<=":
		return &runtime.BoolValue{Value: lf <= rf}
	case ">":
		return &runtime.BoolValue{Value: lf > rf}
	default:
		return &runtime.BoolValue{Value: lf >= rf}
	}
}

func stringCompare(op, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

func numericOperand(v runtime.Value) (f float64, isFloat, ok bool) {
	switch x := v.(type) {
	case *runtime.IntValue:
		return float64(x.Value), false, true
	case *runtime.FloatValue:
		return x.Value, true, true
	default:
		return 0, false, false
	}
}

func floatArith(op string, a, b float64) float64 {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	default:
		return a * b
	}
}

func intArith(op string, a, b int64) int64 {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	default:
		return a * b
	}
}

// tryOperatorMethod dispatches `op_add`/`op_eq`/etc. for struct operands;
// handled is false if sv's struct def has no such method, meaning the
// caller should fall through to the builtin behavior.
func (e *Evaluator) tryOperatorMethod(n ast.Node, sv *runtime.StructValue, op string, other runtime.Value) (runtime.Value, bool) {
	def, ok := e.structDefs.Get(sv.TypeName)
	if !ok {
		return nil, false
	}
	methodName, ok := operatorMethodNames[op]
	if !ok {
		return nil, false
	}
	fn, ok := def.Methods[methodName]
	if !ok {
		return nil, false
	}
	return e.callFunctionValue(n, fn, []runtime.Value{sv, other}, true), true
}

var operatorMethodNames = map[string]string{
	"+": "op_add", "-": "op_sub", "*": "op_mul", "/": "op_div", "%": "op_mod",
	"==": "op_eq", "<": "op_lt", "<=": "op_le", ">": "op_gt", ">=": "op_ge",
}
