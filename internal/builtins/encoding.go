package builtins

import (
	"encoding/base64"
	"regexp"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerEncoding installs the base64 and regex categories named in
// spec.md §4.6 — both are thin wrappers over stdlib encoding/base64
// and regexp; no example repo pulls in a third-party regex or base64
// engine, and Go's RE2-based regexp is the idiomatic choice anywhere
// in the pack that does pattern matching.
func registerEncoding() {
	evaluator.RegisterNative("base64_encode", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("base64_encode", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("base64_encode", "string", args[0])
		}
		return runtime.Str(base64.StdEncoding.EncodeToString([]byte(s.Value)))
	})

	evaluator.RegisterNative("base64_decode", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("base64_decode", 1, len(args))
		}
		s, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("base64_decode", "string", args[0])
		}
		decoded, err := base64.StdEncoding.DecodeString(s.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "base64_decode: " + err.Error()}
		}
		return runtime.Str(string(decoded))
	})

	evaluator.RegisterNative("regex_match", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		re, rest, errv := compileRegexArg("regex_match", args)
		if errv != nil {
			return errv
		}
		s, ok := rest[0].(*runtime.StringValue)
		if !ok {
			return typeError("regex_match", "string", rest[0])
		}
		return &runtime.BoolValue{Value: re.MatchString(s.Value)}
	})

	evaluator.RegisterNative("regex_find", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		re, rest, errv := compileRegexArg("regex_find", args)
		if errv != nil {
			return errv
		}
		s, ok := rest[0].(*runtime.StringValue)
		if !ok {
			return typeError("regex_find", "string", rest[0])
		}
		m := re.FindString(s.Value)
		if m == "" && !re.MatchString(s.Value) {
			return runtime.Null
		}
		return runtime.Str(m)
	})

	evaluator.RegisterNative("regex_replace", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		re, rest, errv := compileRegexArg("regex_replace", args)
		if errv != nil {
			return errv
		}
		if len(rest) != 2 {
			return arityError("regex_replace", 3, len(args))
		}
		s, ok1 := rest[0].(*runtime.StringValue)
		repl, ok2 := rest[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("regex_replace", "string", rest[0])
		}
		return runtime.Str(re.ReplaceAllString(s.Value, repl.Value))
	})
}

// compileRegexArg pulls the leading pattern string off args, compiles
// it, and returns the remaining arguments for the caller to validate —
// every regex_* native shares this same "pattern first" signature.
func compileRegexArg(name string, args []runtime.Value) (*regexp.Regexp, []runtime.Value, runtime.Value) {
	if len(args) < 2 {
		return nil, nil, arityError(name, 2, len(args))
	}
	pattern, ok := args[0].(*runtime.StringValue)
	if !ok {
		return nil, nil, typeError(name, "string", args[0])
	}
	re, err := regexp.Compile(pattern.Value)
	if err != nil {
		return nil, nil, &runtime.ErrorValue{Message: name + ": invalid pattern: " + err.Error()}
	}
	return re, args[1:], nil
}
