package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestSharedSetGetHasDelete(t *testing.T) {
	ev := setup(t)
	key := runtime.Str("shared_test_key")

	wantBool(t, call(t, ev, "shared_has", key), false)
	call(t, ev, "shared_set", key, runtime.Str("value"))
	wantBool(t, call(t, ev, "shared_has", key), true)
	wantString(t, call(t, ev, "shared_get", key), "value")
	call(t, ev, "shared_delete", key)
	wantBool(t, call(t, ev, "shared_has", key), false)
}

func TestSharedGetMissingReturnsNull(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "shared_get", runtime.Str("shared_test_missing"))
	if _, ok := got.(*runtime.NullValue); !ok {
		t.Fatalf("got %v, want null", got)
	}
}

func TestSharedAddInt(t *testing.T) {
	ev := setup(t)
	key := runtime.Str("shared_test_counter")
	call(t, ev, "shared_set", key, &runtime.IntValue{Value: 10})
	got := call(t, ev, "shared_add_int", key, &runtime.IntValue{Value: 5})
	wantInt(t, got, 15)
}

func TestSharedAddIntMissingKey(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "shared_add_int", runtime.Str("shared_test_absent"), &runtime.IntValue{Value: 1})
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}
