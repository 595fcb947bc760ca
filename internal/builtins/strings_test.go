package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestTrimUpperLower(t *testing.T) {
	ev := setup(t)
	wantString(t, call(t, ev, "trim", runtime.Str("  hi  ")), "hi")
	wantString(t, call(t, ev, "upper", runtime.Str("hi")), "HI")
	wantString(t, call(t, ev, "lower", runtime.Str("HI")), "hi")
}

func TestSplitJoinRoundTrip(t *testing.T) {
	ev := setup(t)
	parts := call(t, ev, "split", runtime.Str("a,b,c"), runtime.Str(","))
	arr, ok := parts.(*runtime.ArrayValue)
	if !ok || arr.Len() != 3 {
		t.Fatalf("split got %v", parts)
	}
	joined := call(t, ev, "join", arr, runtime.Str("-"))
	wantString(t, joined, "a-b-c")
}

func TestContainsReplaceStartsEndsWith(t *testing.T) {
	ev := setup(t)
	wantBool(t, call(t, ev, "contains", runtime.Str("hello"), runtime.Str("ell")), true)
	wantString(t, call(t, ev, "replace", runtime.Str("foo bar foo"), runtime.Str("foo"), runtime.Str("baz")), "baz bar baz")
	wantBool(t, call(t, ev, "starts_with", runtime.Str("hello"), runtime.Str("he")), true)
	wantBool(t, call(t, ev, "ends_with", runtime.Str("hello"), runtime.Str("lo")), true)
}
