package builtins

import (
	"runtime"
	"testing"

	runtimeValues "github.com/rufflang/ruff/internal/runtime"
)

func TestProcessRunEcho(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("echo argv test assumes a posix shell environment")
	}
	ev := setup(t)
	got := call(t, ev, "process_run", runtimeValues.Str("echo"), runtimeValues.Str("hello"))
	d, ok := got.(*runtimeValues.DictValue)
	if !ok {
		t.Fatalf("got %v, want dict", got)
	}
	exitCode, _ := d.Get("exit_code")
	wantInt(t, exitCode, 0)
	output, _ := d.Get("output")
	wantString(t, output, "hello\n")
}

func TestProcessRunMissingBinary(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "process_run", runtimeValues.Str("definitely-not-a-real-binary-xyz"))
	if !runtimeValues.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}
