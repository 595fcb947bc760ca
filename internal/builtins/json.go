package builtins

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerJSON installs the JSON category named in spec.md §4.6,
// grounded on gjson/sjson's path-query model rather than
// encoding/json's struct-tag model — this language has no static
// struct shape to unmarshal into, so a path-addressable reader/writer
// over raw JSON text fits its dynamic value model directly.
func registerJSON() {
	evaluator.RegisterNative("json_parse", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("json_parse", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("json_parse", "string", args[0])
		}
		if !gjson.Valid(s.Value) {
			return &runtime.ErrorValue{Message: "json_parse: invalid JSON"}
		}
		return gjsonToValue(gjson.Parse(s.Value))
	})

	evaluator.RegisterNative("json_get", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("json_get", 2, len(args))
		}
		s, ok1 := args[0].(*runtime.StringValue)
		path, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("json_get", "string", args[0])
		}
		res := gjson.Get(s.Value, path.Value)
		if !res.Exists() {
			return runtime.Null
		}
		return gjsonToValue(res)
	})

	evaluator.RegisterNative("json_set", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 3 {
			return arityError("json_set", 3, len(args))
		}
		s, ok1 := args[0].(*runtime.StringValue)
		path, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("json_set", "string", args[0])
		}
		out, err := sjson.Set(s.Value, path.Value, valueToGo(args[2]))
		if err != nil {
			return &runtime.ErrorValue{Message: "json_set: " + err.Error()}
		}
		return runtime.Str(out)
	})

	evaluator.RegisterNative("to_json", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("to_json", 1, len(args))
		}
		out, err := sjson.Set("{}", "_", valueToGo(args[0]))
		if err != nil {
			return &runtime.ErrorValue{Message: "to_json: " + err.Error()}
		}
		return runtime.Str(gjson.Get(out, "_").Raw)
	})
}

// gjsonToValue walks a parsed gjson.Result tree into a runtime.Value,
// json_parse/json_get's shared conversion.
func gjsonToValue(res gjson.Result) runtime.Value {
	switch res.Type {
	case gjson.Null:
		return runtime.Null
	case gjson.False:
		return &runtime.BoolValue{Value: false}
	case gjson.True:
		return &runtime.BoolValue{Value: true}
	case gjson.Number:
		f := res.Float()
		if f == float64(int64(f)) {
			return &runtime.IntValue{Value: int64(f)}
		}
		return &runtime.FloatValue{Value: f}
	case gjson.String:
		return runtime.Str(res.Str)
	default:
		if res.IsArray() {
			var elems []runtime.Value
			res.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, gjsonToValue(v))
				return true
			})
			return runtime.NewArray(elems)
		}
		if res.IsObject() {
			d := runtime.NewDict()
			res.ForEach(func(k, v gjson.Result) bool {
				d.Set(k.Str, gjsonToValue(v))
				return true
			})
			return d
		}
		return runtime.Null
	}
}
