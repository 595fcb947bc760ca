package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestSetAddContains(t *testing.T) {
	ev := setup(t)
	s := call(t, ev, "set_new")
	wantBool(t, call(t, ev, "__method_SET_add", s, runtime.Str("a")), true)
	wantBool(t, call(t, ev, "__method_SET_add", s, runtime.Str("a")), false)
	wantBool(t, call(t, ev, "__method_SET_contains", s, runtime.Str("a")), true)
	wantBool(t, call(t, ev, "__method_SET_contains", s, runtime.Str("b")), false)
	wantInt(t, call(t, ev, "__method_SET_size", s), 1)
}

func TestQueueFIFO(t *testing.T) {
	ev := setup(t)
	q := call(t, ev, "queue_new")
	call(t, ev, "__method_QUEUE_enqueue", q, runtime.Str("first"))
	call(t, ev, "__method_QUEUE_enqueue", q, runtime.Str("second"))
	wantString(t, call(t, ev, "__method_QUEUE_dequeue", q), "first")
	wantInt(t, call(t, ev, "__method_QUEUE_size", q), 1)
}

func TestStackLIFO(t *testing.T) {
	ev := setup(t)
	s := call(t, ev, "stack_new")
	call(t, ev, "__method_STACK_push", s, runtime.Str("bottom"))
	call(t, ev, "__method_STACK_push", s, runtime.Str("top"))
	wantString(t, call(t, ev, "__method_STACK_pop", s), "top")
	wantInt(t, call(t, ev, "__method_STACK_size", s), 1)
}

func TestQueueDequeueEmpty(t *testing.T) {
	ev := setup(t)
	q := call(t, ev, "queue_new")
	got := call(t, ev, "__method_QUEUE_dequeue", q)
	if _, ok := got.(*runtime.NullValue); !ok {
		t.Fatalf("got %v, want null", got)
	}
}

func TestChannelNewReturnsChannel(t *testing.T) {
	ev := setup(t)
	ch := call(t, ev, "channel_new")
	if _, ok := ch.(*runtime.ChannelValue); !ok {
		t.Fatalf("got %v, want ChannelValue", ch)
	}
}
