package modules

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestLoadReturnsRegisteredExports(t *testing.T) {
	r := NewRegistry()
	r.Register("math", map[string]runtime.Value{"pi": &runtime.FloatValue{Value: 3.14}})

	exports, err := r.Load("math")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pi, ok := exports["pi"].(*runtime.FloatValue)
	if !ok || pi.Value != 3.14 {
		t.Fatalf("got %v, want pi = 3.14", exports["pi"])
	}
}

func TestLoadUnknownModuleErrors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Load("nope"); err == nil {
		t.Fatal("expected an error for an unregistered module")
	}
}
