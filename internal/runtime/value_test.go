package runtime

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v Value
		want bool
	}{
		{"zero int", &IntValue{Value: 0}, false},
		{"nonzero int", &IntValue{Value: 1}, true},
		{"zero float", &FloatValue{Value: 0}, false},
		{"empty string", Str(""), false},
		{"literal false string", Str("false"), false},
		{"literal true string", Str("true"), true},
		{"other string", Str("hello"), true},
		{"null", Null, false},
		{"empty array", NewArray(nil), false},
		{"nonempty array", NewArray([]Value{&IntValue{Value: 1}}), true},
		{"empty dict", NewDict(), false},
		{"bool false", &BoolValue{Value: false}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Truthy(c.v); got != c.want {
				t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
			}
		})
	}
}

func TestEqualFloatTolerance(t *testing.T) {
	a := &FloatValue{Value: 1.0}
	b := &IntValue{Value: 1}
	if !Equal(a, b) {
		t.Errorf("expected 1.0 == 1 across int/float")
	}
}

func TestEqualArraysRecursive(t *testing.T) {
	a := NewArray([]Value{&IntValue{Value: 1}, Str("x")})
	b := NewArray([]Value{&IntValue{Value: 1}, Str("x")})
	c := NewArray([]Value{&IntValue{Value: 1}, Str("y")})
	if !Equal(a, b) {
		t.Errorf("expected structurally equal arrays to be Equal")
	}
	if Equal(a, c) {
		t.Errorf("expected structurally different arrays to not be Equal")
	}
}

func TestStringifyTagged(t *testing.T) {
	tag := &TaggedValue{Tag: "Point", Fields: map[string]Value{"$0": &IntValue{Value: 1}, "$1": &IntValue{Value: 2}}}
	if got, want := tag.String(), "Point(1, 2)"; got != want {
		t.Errorf("Stringify tagged = %q, want %q", got, want)
	}
}

func TestStringifyStructSortedKeys(t *testing.T) {
	s := &StructValue{TypeName: "P", Fields: map[string]Value{"b": &IntValue{Value: 2}, "a": &IntValue{Value: 1}}}
	if got, want := s.String(), "P { a: 1, b: 2 }"; got != want {
		t.Errorf("Stringify struct = %q, want %q", got, want)
	}
}

func TestStringifyResultOption(t *testing.T) {
	ok := &ResultValue{IsOk: true, Value: &IntValue{Value: 5}}
	if got, want := ok.String(), "Ok(5)"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	none := &OptionValue{IsSome: false}
	if got, want := none.String(), "None"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestArrayCopyOnWrite(t *testing.T) {
	a := NewArray([]Value{&IntValue{Value: 1}, &IntValue{Value: 2}})
	b := a.WithPush(&IntValue{Value: 3})
	if a.Len() != 2 {
		t.Errorf("original array mutated: len = %d", a.Len())
	}
	if b.Len() != 3 {
		t.Errorf("pushed array len = %d, want 3", b.Len())
	}
}

func TestDictInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set("z", &IntValue{Value: 1})
	d.Set("a", &IntValue{Value: 2})
	keys := d.Keys()
	if len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Errorf("Keys() = %v, want insertion order [z a]", keys)
	}
	if got, want := d.String(), `{"a": 2, "z": 1}`; got != want {
		t.Errorf("String() = %q, want %q (sorted for stringification)", got, want)
	}
}
