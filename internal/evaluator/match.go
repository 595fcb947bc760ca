package evaluator

import (
	"strconv"

	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/runtime"
)

// execMatchStmt dispatches on the scrutinee's tag: a *TaggedValue's own
// Tag, "Ok"/"Err" for *ResultValue, "Some"/"None" for *OptionValue, or
// the value's plain stringified form for every other (literal) value.
func (e *Evaluator) execMatchStmt(s *ast.MatchStmt) {
	v := e.evalExpr(s.Value)
	if runtime.IsError(v) {
		e.returnValue = v
		return
	}
	tag, fields := matchTagAndFields(v)

	for _, c := range s.Cases {
		if c.Tag != tag {
			continue
		}
		e.env.PushScope()
		for i, name := range c.Binds {
			val, ok := fields[fieldKey(i)]
			if !ok {
				val = runtime.Null
			}
			e.env.Define(name, val)
		}
		e.execBlock(c.Body.Statements)
		e.env.PopScope()
		return
	}
	if s.Default != nil {
		e.execBlockScoped(s.Default)
	}
}

func fieldKey(i int) string { return "$" + strconv.Itoa(i) }

// matchTagAndFields normalizes every scrutinee shape into the
// (tag, positional-fields) form MatchCase compares against.
func matchTagAndFields(v runtime.Value) (string, map[string]runtime.Value) {
	switch x := v.(type) {
	case *runtime.TaggedValue:
		return x.Tag, x.Fields
	case *runtime.ResultValue:
		if x.IsOk {
			return "Ok", map[string]runtime.Value{"$0": x.Value}
		}
		return "Err", map[string]runtime.Value{"$0": x.Value}
	case *runtime.OptionValue:
		if x.IsSome {
			return "Some", map[string]runtime.Value{"$0": x.Value}
		}
		return "None", nil
	default:
		return runtime.Stringify(v), nil
	}
}
