package runtime

import "testing"

func TestEnvironmentDefineShadow(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", &IntValue{Value: 1})
	env.PushScope()
	env.Define("x", &IntValue{Value: 2})
	v, ok := env.Get("x")
	if !ok || v.(*IntValue).Value != 2 {
		t.Fatalf("expected shadowed x=2, got %v", v)
	}
	env.PopScope()
	v, ok = env.Get("x")
	if !ok || v.(*IntValue).Value != 1 {
		t.Fatalf("expected outer x=1 after pop, got %v", v)
	}
}

func TestEnvironmentSetFallsBackToDefine(t *testing.T) {
	env := NewEnvironment()
	env.Set("y", &IntValue{Value: 42})
	v, ok := env.Get("y")
	if !ok || v.(*IntValue).Value != 42 {
		t.Fatalf("Set should define when absent, got %v, %v", v, ok)
	}
}

func TestEnvironmentSetUpdatesOuterScope(t *testing.T) {
	env := NewEnvironment()
	env.Define("c", &IntValue{Value: 0})
	env.PushScope()
	env.Set("c", &IntValue{Value: 1})
	env.PopScope()
	v, _ := env.Get("c")
	if v.(*IntValue).Value != 1 {
		t.Fatalf("Set should update the scope where c lives, got %v", v)
	}
}

func TestEnvironmentClosureCounter(t *testing.T) {
	// Two nested scopes sharing one Environment see each other's
	// mutations: closures share-mutate their captured environment across
	// invocations.
	env := NewEnvironment()
	env.Define("counter", &IntValue{Value: 0})

	increment := func() int64 {
		env.PushScope()
		defer env.PopScope()
		cur, _ := env.Get("counter")
		next := cur.(*IntValue).Value + 1
		env.Set("counter", &IntValue{Value: next})
		return next
	}

	if a, b, c := increment(), increment(), increment(); a != 1 || b != 2 || c != 3 {
		t.Fatalf("got a=%d b=%d c=%d, want 1,2,3", a, b, c)
	}
}

func TestEnvironmentCloneIsIndependent(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", &IntValue{Value: 1})
	clone := env.Clone()
	clone.Set("x", &IntValue{Value: 99})
	v, _ := env.Get("x")
	if v.(*IntValue).Value != 1 {
		t.Fatalf("mutating clone's scope should not affect original, got %v", v)
	}
}

func TestEnvironmentMutate(t *testing.T) {
	env := NewEnvironment()
	env.Define("arr", NewArray([]Value{&IntValue{Value: 1}}))
	env.Mutate("arr", func(v Value) Value {
		return v.(*ArrayValue).WithPush(&IntValue{Value: 2})
	})
	v, _ := env.Get("arr")
	if v.(*ArrayValue).Len() != 2 {
		t.Fatalf("Mutate should have appended, got len %d", v.(*ArrayValue).Len())
	}
}
