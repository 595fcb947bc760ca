package builtins

import (
	"strings"
	"time"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerTime installs the time category named in spec.md §4.6 on
// stdlib time — no example repo pulls in a third-party clock/calendar
// library; Unix-millisecond IntValues keep `now()` arithmetic
// (durations, comparisons) working through ordinary INT operators
// without a dedicated DateTime value type.
func registerTime() {
	evaluator.RegisterNative("now", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 0 {
			return arityError("now", 0, len(args))
		}
		return &runtime.IntValue{Value: time.Now().UnixMilli()}
	})

	evaluator.RegisterNative("sleep", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("sleep", 1, len(args))
		}
		ms, ok := args[0].(*runtime.IntValue)
		if !ok {
			return typeError("sleep", "int", args[0])
		}
		time.Sleep(time.Duration(ms.Value) * time.Millisecond)
		return runtime.Null
	})

	evaluator.RegisterNative("time_format", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("time_format", 2, len(args))
		}
		ms, ok1 := args[0].(*runtime.IntValue)
		layout, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("time_format", "int, string", args[0])
		}
		return runtime.Str(time.UnixMilli(ms.Value).UTC().Format(goLayout(layout.Value)))
	})

	evaluator.RegisterNative("time_parse", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("time_parse", 2, len(args))
		}
		layout, ok1 := args[0].(*runtime.StringValue)
		s, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("time_parse", "string", args[0])
		}
		t, err := time.Parse(goLayout(layout.Value), s.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "time_parse: " + err.Error()}
		}
		return &runtime.IntValue{Value: t.UnixMilli()}
	})
}

// goLayout translates the strftime-style tokens spec.md's date-format
// strings use into Go's reference-time layout, so scripts write
// "YYYY-MM-DD" rather than Go's "2006-01-02".
func goLayout(format string) string {
	replacer := []struct{ from, to string }{
		{"YYYY", "2006"}, {"MM", "01"}, {"DD", "02"},
		{"HH", "15"}, {"mm", "04"}, {"ss", "05"},
	}
	out := format
	for _, r := range replacer {
		out = strings.ReplaceAll(out, r.from, r.to)
	}
	return out
}
