package builtins

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerYAML installs the YAML category named in spec.md §4.6,
// grounded on goccy/go-yaml's Marshal/Unmarshal into/from
// map[string]any — the same Go-interface{} tree json.go/toml.go share
// via interchange.go's valueToGo/goToValue.
func registerYAML() {
	evaluator.RegisterNative("yaml_parse", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("yaml_parse", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("yaml_parse", "string", args[0])
		}
		var decoded any
		if err := yaml.Unmarshal([]byte(s.Value), &decoded); err != nil {
			return &runtime.ErrorValue{Message: "yaml_parse: " + err.Error()}
		}
		return goToValue(normalizeYAMLMaps(decoded))
	})

	evaluator.RegisterNative("to_yaml", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("to_yaml", 1, len(args))
		}
		out, err := yaml.Marshal(valueToGo(args[0]))
		if err != nil {
			return &runtime.ErrorValue{Message: "to_yaml: " + err.Error()}
		}
		return runtime.Str(string(out))
	})
}

// normalizeYAMLMaps recurses a decoded YAML tree converting any
// map[any]any (goccy/go-yaml's default for non-string-keyed mappings)
// into map[string]any so goToValue's type switch handles it uniformly
// with json.go/toml.go's decoders.
func normalizeYAMLMaps(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeYAMLMaps(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprintf("%v", k)] = normalizeYAMLMaps(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeYAMLMaps(e)
		}
		return out
	default:
		return x
	}
}
