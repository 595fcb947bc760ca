package builtins

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerTOML installs the TOML category named in spec.md §4.6,
// grounded on pelletier/go-toml/v2's Marshal/Unmarshal into/from
// map[string]any, sharing interchange.go's valueToGo/goToValue with
// json.go/yaml.go.
func registerTOML() {
	evaluator.RegisterNative("toml_parse", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("toml_parse", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("toml_parse", "string", args[0])
		}
		var decoded map[string]any
		if err := toml.Unmarshal([]byte(s.Value), &decoded); err != nil {
			return &runtime.ErrorValue{Message: "toml_parse: " + err.Error()}
		}
		return goToValue(decoded)
	})

	evaluator.RegisterNative("to_toml", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("to_toml", 1, len(args))
		}
		d, ok := args[0].(*runtime.DictValue)
		if !ok {
			return typeError("to_toml", "dict", args[0])
		}
		out, err := toml.Marshal(valueToGo(d))
		if err != nil {
			return &runtime.ErrorValue{Message: "to_toml: " + err.Error()}
		}
		return runtime.Str(string(out))
	})
}
