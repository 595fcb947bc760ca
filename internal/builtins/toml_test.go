package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestTomlParse(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "toml_parse", runtime.Str("name = \"ruff\"\ncount = 5\n"))
	d, ok := got.(*runtime.DictValue)
	if !ok {
		t.Fatalf("got %v, want dict", got)
	}
	name, _ := d.Get("name")
	wantString(t, name, "ruff")
	count, _ := d.Get("count")
	wantInt(t, count, 5)
}

func TestTomlParseInvalid(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "toml_parse", runtime.Str("not = [valid"))
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}

func TestToTomlRequiresDict(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "to_toml", runtime.Str("not a dict"))
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want type error", got)
	}
}

func TestToTomlRoundTrip(t *testing.T) {
	ev := setup(t)
	d := runtime.NewDict()
	d.Set("key", runtime.Str("value"))
	encoded := call(t, ev, "to_toml", d)
	sv, ok := encoded.(*runtime.StringValue)
	if !ok {
		t.Fatalf("got %v, want string", encoded)
	}
	back := call(t, ev, "toml_parse", sv)
	backDict := back.(*runtime.DictValue)
	v, _ := backDict.Get("key")
	wantString(t, v, "value")
}
