package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestRandomBounds(t *testing.T) {
	ev := setup(t)
	for i := 0; i < 50; i++ {
		got := call(t, ev, "random_int", &runtime.IntValue{Value: 5}, &runtime.IntValue{Value: 8})
		iv, ok := got.(*runtime.IntValue)
		if !ok || iv.Value < 5 || iv.Value > 8 {
			t.Fatalf("got %v, want int in [5,8]", got)
		}
	}
}

func TestRandomIntInvalidRange(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "random_int", &runtime.IntValue{Value: 10}, &runtime.IntValue{Value: 1})
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}

func TestRandomFloatInUnitRange(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "random")
	fv, ok := got.(*runtime.FloatValue)
	if !ok || fv.Value < 0 || fv.Value >= 1 {
		t.Fatalf("got %v, want float in [0,1)", got)
	}
}

func TestUuidLooksLikeUuid(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "uuid")
	sv, ok := got.(*runtime.StringValue)
	if !ok || len(sv.Value) != 36 {
		t.Fatalf("got %v, want 36-char uuid string", got)
	}
}
