package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestAbsPreservesNumericKind(t *testing.T) {
	ev := setup(t)
	wantInt(t, call(t, ev, "abs", &runtime.IntValue{Value: -3}), 3)
	wantFloat(t, call(t, ev, "abs", &runtime.FloatValue{Value: -3.5}), 3.5)
}

func TestSqrtPow(t *testing.T) {
	ev := setup(t)
	wantFloat(t, call(t, ev, "sqrt", &runtime.FloatValue{Value: 9}), 3)
	wantFloat(t, call(t, ev, "pow", &runtime.IntValue{Value: 2}, &runtime.IntValue{Value: 10}), 1024)
}

func TestMinMaxAcrossMultipleArgs(t *testing.T) {
	ev := setup(t)
	wantInt(t, call(t, ev, "min", &runtime.IntValue{Value: 5}, &runtime.IntValue{Value: 1}, &runtime.IntValue{Value: 3}), 1)
	wantInt(t, call(t, ev, "max", &runtime.IntValue{Value: 5}, &runtime.IntValue{Value: 1}, &runtime.IntValue{Value: 3}), 5)
}

func TestFloorCeilRound(t *testing.T) {
	ev := setup(t)
	wantFloat(t, call(t, ev, "floor", &runtime.FloatValue{Value: 1.7}), 1)
	wantFloat(t, call(t, ev, "ceil", &runtime.FloatValue{Value: 1.2}), 2)
	wantFloat(t, call(t, ev, "round", &runtime.FloatValue{Value: 1.5}), 2)
}

func TestMathWrongTypeYieldsError(t *testing.T) {
	ev := setup(t)
	v := call(t, ev, "sqrt", runtime.Str("nope"))
	if !runtime.IsError(v) {
		t.Fatalf("expected error, got %v", v)
	}
}
