package evaluator

import (
	"github.com/rufflang/ruff/ast"
	"github.com/rufflang/ruff/internal/runtime"
)

// bindPattern destructures v against pat, defining every bound name in
// the current innermost scope. Returns a non-nil error Value if v's
// shape doesn't match pat (e.g. too few array elements).
func (e *Evaluator) bindPattern(pat ast.Pattern, v runtime.Value) runtime.Value {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		e.env.Define(p.Name, v)
		return nil
	case *ast.IgnorePattern:
		return nil
	case *ast.ArrayPattern:
		return e.bindArrayPattern(p, v)
	case *ast.DictPattern:
		return e.bindDictPattern(p, v)
	default:
		return e.newError(pat, "unsupported pattern type %T", pat)
	}
}

func (e *Evaluator) bindArrayPattern(p *ast.ArrayPattern, v runtime.Value) runtime.Value {
	arr, ok := v.(*runtime.ArrayValue)
	if !ok {
		return e.newError(p, "cannot destructure %s as an array", v.Type())
	}
	if len(arr.Elems) < len(p.Elements) {
		return e.newError(p, "array pattern expects at least %d elements, got %d", len(p.Elements), len(arr.Elems))
	}
	for i, elemPat := range p.Elements {
		if errv := e.bindPattern(elemPat, arr.Elems[i]); errv != nil {
			return errv
		}
	}
	if p.Rest != nil {
		rest := append([]runtime.Value{}, arr.Elems[len(p.Elements):]...)
		e.env.Define(*p.Rest, runtime.NewArray(rest))
	}
	return nil
}

func (e *Evaluator) bindDictPattern(p *ast.DictPattern, v runtime.Value) runtime.Value {
	d, ok := v.(*runtime.DictValue)
	if !ok {
		return e.newError(p, "cannot destructure %s as a dict", v.Type())
	}
	taken := make(map[string]bool, len(p.Keys))
	for _, key := range p.Keys {
		val, ok := d.Get(key)
		if !ok {
			return e.newError(p, "dict pattern expects key %q", key)
		}
		e.env.Define(key, val)
		taken[key] = true
	}
	if p.Rest != nil {
		rest := runtime.NewDict()
		for _, k := range d.Keys() {
			if !taken[k] {
				val, _ := d.Get(k)
				rest.Set(k, val)
			}
		}
		e.env.Define(*p.Rest, rest)
	}
	return nil
}
