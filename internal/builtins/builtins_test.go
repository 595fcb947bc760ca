package builtins

import (
	"sync"
	"testing"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerOnce installs every native function exactly once per test
// binary run, mirroring Register's own "safe to call more than once"
// contract but avoiding redundant re-registration noise across table
// cases in this package's tests.
var registerOnce sync.Once

func setup(t *testing.T) *evaluator.Evaluator {
	t.Helper()
	registerOnce.Do(Register)
	return evaluator.New()
}

func call(t *testing.T, ev *evaluator.Evaluator, name string, args ...runtime.Value) runtime.Value {
	t.Helper()
	return ev.CallValue(&runtime.NativeFunctionValue{Name: name}, args)
}

func wantInt(t *testing.T, v runtime.Value, want int64) {
	t.Helper()
	iv, ok := v.(*runtime.IntValue)
	if !ok || iv.Value != want {
		t.Fatalf("got %v, want int %d", v, want)
	}
}

func wantFloat(t *testing.T, v runtime.Value, want float64) {
	t.Helper()
	fv, ok := v.(*runtime.FloatValue)
	if !ok || fv.Value != want {
		t.Fatalf("got %v, want float %g", v, want)
	}
}

func wantString(t *testing.T, v runtime.Value, want string) {
	t.Helper()
	sv, ok := v.(*runtime.StringValue)
	if !ok || sv.Value != want {
		t.Fatalf("got %v, want string %q", v, want)
	}
}

func wantBool(t *testing.T, v runtime.Value, want bool) {
	t.Helper()
	bv, ok := v.(*runtime.BoolValue)
	if !ok || bv.Value != want {
		t.Fatalf("got %v, want bool %v", v, want)
	}
}
