package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestYamlParse(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "yaml_parse", runtime.Str("name: ruff\ncount: 2\n"))
	d, ok := got.(*runtime.DictValue)
	if !ok {
		t.Fatalf("got %v, want dict", got)
	}
	name, _ := d.Get("name")
	wantString(t, name, "ruff")
	count, _ := d.Get("count")
	wantInt(t, count, 2)
}

func TestYamlParseInvalid(t *testing.T) {
	ev := setup(t)
	got := call(t, ev, "yaml_parse", runtime.Str("key: [unterminated"))
	if !runtime.IsError(got) {
		t.Fatalf("got %v, want error", got)
	}
}

func TestToYamlRoundTrip(t *testing.T) {
	ev := setup(t)
	d := runtime.NewDict()
	d.Set("key", runtime.Str("value"))
	encoded := call(t, ev, "to_yaml", d)
	sv, ok := encoded.(*runtime.StringValue)
	if !ok {
		t.Fatalf("got %v, want string", encoded)
	}
	back := call(t, ev, "yaml_parse", sv)
	backDict := back.(*runtime.DictValue)
	v, _ := backDict.Get("key")
	wantString(t, v, "value")
}
