package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestBase64RoundTrip(t *testing.T) {
	ev := setup(t)
	encoded := call(t, ev, "base64_encode", runtime.Str("hello world"))
	wantString(t, encoded, "aGVsbG8gd29ybGQ=")
	decoded := call(t, ev, "base64_decode", encoded)
	wantString(t, decoded, "hello world")
}

func TestBase64DecodeInvalid(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "base64_decode", runtime.Str("not valid base64!!"))
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}

func TestRegexMatch(t *testing.T) {
	ev := setup(t)
	wantBool(t, call(t, ev, "regex_match", runtime.Str(`^\d+$`), runtime.Str("12345")), true)
	wantBool(t, call(t, ev, "regex_match", runtime.Str(`^\d+$`), runtime.Str("abc")), false)
}

func TestRegexFind(t *testing.T) {
	ev := setup(t)
	wantString(t, call(t, ev, "regex_find", runtime.Str(`\d+`), runtime.Str("abc123def")), "123")
	got := call(t, ev, "regex_find", runtime.Str(`\d+`), runtime.Str("abcdef"))
	if _, ok := got.(*runtime.NullValue); !ok {
		t.Fatalf("got %v, want null", got)
	}
}

func TestRegexReplace(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "regex_replace", runtime.Str(`\d+`), runtime.Str("abc123def456"), runtime.Str("#"))
	wantString(t, got, "abc#def#")
}

func TestRegexInvalidPattern(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "regex_match", runtime.Str("("), runtime.Str("x"))
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}
