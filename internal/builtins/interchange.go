package builtins

import (
	"fmt"

	"github.com/rufflang/ruff/internal/runtime"
)

// valueToGo converts a runtime.Value into a plain Go value a
// reflection-based codec (encoding/json, goccy/go-yaml,
// pelletier/go-toml) can marshal — used by json.go/yaml.go/toml.go so
// the same conversion backs all three text-interchange formats.
func valueToGo(v runtime.Value) any {
	switch x := v.(type) {
	case *runtime.IntValue:
		return x.Value
	case *runtime.FloatValue:
		return x.Value
	case *runtime.StringValue:
		return x.Value
	case *runtime.BoolValue:
		return x.Value
	case *runtime.NullValue, nil:
		return nil
	case *runtime.ArrayValue:
		out := make([]any, len(x.Elems))
		for i, e := range x.Elems {
			out[i] = valueToGo(e)
		}
		return out
	case *runtime.DictValue:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			e, _ := x.Get(k)
			out[k] = valueToGo(e)
		}
		return out
	default:
		return runtime.Stringify(v)
	}
}

// goToValue is valueToGo's inverse, converting a decoded
// map[string]any/[]any/scalar tree (the shape every interchange-format
// decoder in this package produces) back into a runtime.Value.
func goToValue(v any) runtime.Value {
	switch x := v.(type) {
	case nil:
		return runtime.Null
	case string:
		return runtime.Str(x)
	case bool:
		return &runtime.BoolValue{Value: x}
	case int64:
		return &runtime.IntValue{Value: x}
	case int:
		return &runtime.IntValue{Value: int64(x)}
	case uint64:
		return &runtime.IntValue{Value: int64(x)}
	case float64:
		return &runtime.FloatValue{Value: x}
	case []any:
		elems := make([]runtime.Value, len(x))
		for i, e := range x {
			elems[i] = goToValue(e)
		}
		return runtime.NewArray(elems)
	case map[string]any:
		d := runtime.NewDict()
		for k, e := range x {
			d.Set(k, goToValue(e))
		}
		return d
	default:
		return runtime.Str(fmt.Sprintf("%v", x))
	}
}
