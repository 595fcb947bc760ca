package builtins

import (
	"os/exec"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerProcess installs the process-spawning category named in
// spec.md §4.6/Glossary on stdlib os/exec — no example repo wraps
// subprocess execution in a third-party library.
func registerProcess() {
	evaluator.RegisterNative("process_run", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) < 1 {
			return arityError("process_run", 1, len(args))
		}
		name, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("process_run", "string", args[0])
		}
		argv := make([]string, len(args)-1)
		for i, a := range args[1:] {
			s, ok := a.(*runtime.StringValue)
			if !ok {
				return typeError("process_run", "string", a)
			}
			argv[i] = s.Value
		}
		out, err := exec.Command(name.Value, argv...).CombinedOutput()
		result := runtime.NewDict()
		result.Set("output", runtime.Str(string(out)))
		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				result.Set("exit_code", &runtime.IntValue{Value: int64(exitErr.ExitCode())})
			} else {
				return &runtime.ErrorValue{Message: "process_run: " + err.Error()}
			}
		} else {
			result.Set("exit_code", &runtime.IntValue{Value: 0})
		}
		return result
	})
}
