package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestToIntFromVariousKinds(t *testing.T) {
	ev := setup(t)
	wantInt(t, call(t, ev, "to_int", &runtime.FloatValue{Value: 3.9}), 3)
	wantInt(t, call(t, ev, "to_int", runtime.Str("42")), 42)
	wantInt(t, call(t, ev, "to_int", &runtime.BoolValue{Value: true}), 1)
}

func TestToIntInvalidStringYieldsConversionError(t *testing.T) {
	ev := setup(t)
	v := call(t, ev, "to_int", runtime.Str("not a number"))
	if !runtime.IsError(v) {
		t.Fatalf("expected error, got %v", v)
	}
}

func TestToFloatToBool(t *testing.T) {
	ev := setup(t)
	wantFloat(t, call(t, ev, "to_float", runtime.Str("3.5")), 3.5)
	wantBool(t, call(t, ev, "to_bool", &runtime.IntValue{Value: 0}), false)
	wantBool(t, call(t, ev, "to_bool", runtime.Str("x")), true)
	wantBool(t, call(t, ev, "to_bool", runtime.Null), false)
}

func TestIsError(t *testing.T) {
	ev := setup(t)
	wantBool(t, call(t, ev, "is_error", &runtime.ErrorValue{Message: "boom"}), true)
	wantBool(t, call(t, ev, "is_error", &runtime.IntValue{Value: 1}), false)
}
