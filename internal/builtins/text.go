package builtins

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerText installs title_case on golang.org/x/text/cases — Go's
// stdlib strings.Title is deprecated precisely because naive upper-first
// casing breaks on non-ASCII text, and cases.Title is the replacement
// the x/text module ships for it.
func registerText() {
	titler := cases.Title(language.Und)
	evaluator.RegisterNative("title_case", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("title_case", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("title_case", "string", args[0])
		}
		return runtime.Str(titler.String(s.Value))
	})
}
