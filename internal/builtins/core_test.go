package builtins

import (
	"bytes"
	"testing"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

func TestPrintlnWritesArgumentsAndNewline(t *testing.T) {
	registerOnce.Do(Register)
	var buf bytes.Buffer
	ev := evaluator.New(evaluator.WithOutput(&buf))
	call(t, ev, "println", runtime.Str("hi"), &runtime.IntValue{Value: 1})
	if buf.String() != "hi1\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestTypeOfReportsRuntimeType(t *testing.T) {
	ev := setup(t)
	wantString(t, call(t, ev, "type_of", &runtime.IntValue{Value: 1}), "INT")
	wantString(t, call(t, ev, "type_of", runtime.Str("x")), "STRING")
}

func TestToStringFormatsValue(t *testing.T) {
	ev := setup(t)
	wantString(t, call(t, ev, "to_string", &runtime.IntValue{Value: 42}), "42")
}
