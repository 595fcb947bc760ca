// Package runtime holds the tree-walking evaluator's value model: the
// tagged-union Value variants, the Environment scope stack,
// and the call stack used for error-object construction.
package runtime

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is the common interface every runtime value satisfies. Concrete
// variants live one-per-file-group below, one concrete type per variant
// with Type()/String() colocated, rather than a single switched-on struct.
type Value interface {
	// Type returns the variant's canonical type name, e.g. "INT", "ARRAY".
	Type() string
	// String returns the canonical, total stringification.
	String() string
}

// Epsilon is the tolerance Equal uses when comparing floats.
const Epsilon = 2.220446049250313e-16

// IntValue is a 64-bit signed integer. Arithmetic on it wraps on overflow.
type IntValue struct{ Value int64 }

func (v *IntValue) Type() string { return "INT" }
func (v *IntValue) String() string { return strconv.FormatInt(v.Value, 10) }

// FloatValue is a 64-bit float. Division by zero follows IEEE-754
// semantics (producing +Inf/-Inf/NaN rather than erroring).
type FloatValue struct{ Value float64 }

func (v *FloatValue) Type() string { return "FLOAT" }
func (v *FloatValue) String() string {
	if math.IsInf(v.Value, 1) {
		return "inf"
	}
	if math.IsInf(v.Value, -1) {
		return "-inf"
	}
	if math.IsNaN(v.Value) {
		return "nan"
	}
	return strconv.FormatFloat(v.Value, 'g', -1, 64)
}

// BoolValue is a boolean.
type BoolValue struct{ Value bool }

func (v *BoolValue) Type() string { return "BOOL" }
func (v *BoolValue) String() string { return strconv.FormatBool(v.Value) }

// NullValue is the null/nil literal.
type NullValue struct{}

func (v *NullValue) Type() string { return "NULL" }
func (v *NullValue) String() string { return "null" }

// Null is the single shared null instance; comparisons and the
// environment's special-cased `null` identifier both use it.
var Null = &NullValue{}

// StringValue is an immutable UTF-8 string, shared by reference (cheap to
// clone: copying the Go pointer is enough since the string itself is
// immutable after construction).
type StringValue struct{ Value string }

func (v *StringValue) Type() string { return "STRING" }
func (v *StringValue) String() string { return v.Value }

// Str is a small helper for constructing a *StringValue.
func Str(s string) *StringValue { return &StringValue{Value: s} }

// BytesValue is an owned byte blob (file contents, HTTP bodies,...).
type BytesValue struct{ Value []byte }

func (v *BytesValue) Type() string { return "BYTES" }
func (v *BytesValue) String() string { return fmt.Sprintf("Bytes(%d)", len(v.Value)) }

// Truthy implements the boolean-coercion rules: bool
// returns itself; numeric zero is false; empty string/array/dict/set is
// false; null is false; everything else is true. The legacy string
// "true"/"false" quirk is preserved deliberately.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case *BoolValue:
		return x.Value
	case *IntValue:
		return x.Value != 0
	case *FloatValue:
		return x.Value != 0
	case *NullValue, nil:
		return false
	case *StringValue:
		switch x.Value {
		case "true":
			return true
		case "false":
			return false
		default:
			return x.Value != ""
		}
	case *BytesValue:
		return len(x.Value) > 0
	case *ArrayValue:
		return len(x.Elems) > 0
	case *DictValue:
		return x.Len() > 0
	case *SetValue:
		return len(x.Elems) > 0
	default:
		return true
	}
}

// Equal implements recursive structural equality with float tolerance.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null
	}
	if b == nil {
		b = Null
	}
	switch x := a.(type) {
	case *IntValue:
		switch y := b.(type) {
		case *IntValue:
			return x.Value == y.Value
		case *FloatValue:
			return math.Abs(float64(x.Value)-y.Value) <= Epsilon
		}
		return false
	case *FloatValue:
		switch y := b.(type) {
		case *FloatValue:
			return math.Abs(x.Value-y.Value) <= Epsilon
		case *IntValue:
			return math.Abs(x.Value-float64(y.Value)) <= Epsilon
		}
		return false
	case *StringValue:
		y, ok := b.(*StringValue)
		return ok && x.Value == y.Value
	case *BoolValue:
		y, ok := b.(*BoolValue)
		return ok && x.Value == y.Value
	case *NullValue:
		_, ok := b.(*NullValue)
		return ok
	case *BytesValue:
		y, ok := b.(*BytesValue)
		if !ok || len(x.Value) != len(y.Value) {
			return false
		}
		for i := range x.Value {
			if x.Value[i] != y.Value[i] {
				return false
			}
		}
		return true
	case *ArrayValue:
		y, ok := b.(*ArrayValue)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *DictValue:
		y, ok := b.(*DictValue)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.Keys() {
			yv, present := y.Get(k)
			if !present {
				return false
			}
			xv, _ := x.Get(k)
			if !Equal(xv, yv) {
				return false
			}
		}
		return true
	case *TaggedValue:
		y, ok := b.(*TaggedValue)
		if !ok || x.Tag != y.Tag || len(x.Fields) != len(y.Fields) {
			return false
		}
		for k, v := range x.Fields {
			yv, present := y.Fields[k]
			if !present || !Equal(v, yv) {
				return false
			}
		}
		return true
	case *ResultValue:
		y, ok := b.(*ResultValue)
		return ok && x.IsOk == y.IsOk && Equal(x.Value, y.Value)
	case *OptionValue:
		y, ok := b.(*OptionValue)
		return ok && x.IsSome == y.IsSome && (!x.IsSome || Equal(x.Value, y.Value))
	default:
		return a == b
	}
}

// Stringify renders a value using its total, deterministic text form:
// tagged values as `Tag(f0, f1, …)`, structs as `Name { k: v, … }` with
// keys sorted, dicts with keys sorted and quoted, results/options as
// `Ok(v)`/`Err(e)`/`Some(v)`/`None`.
func Stringify(v Value) string {
	if v == nil {
		return "null"
	}
	return v.String()
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinFieldsSorted(fields map[string]Value) string {
	keys := sortedKeys(fields)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, Stringify(fields[k]))
	}
	return strings.Join(parts, ", ")
}
