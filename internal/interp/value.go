package interp

import (
	"fmt"
	"strconv"

	"github.com/freddie-nelson/golox/internal/token"
)

// gettable is implemented by runtime values that support property access
// (*Instance for fields/methods/getters, *Class for static members).
type gettable interface {
	get(it *Interpreter, name token.Token) (interface{}, error)
}

// settable is implemented by runtime values that hold assignable fields
// (*Instance for instance fields, *Class for static fields set via
// `this.x = ...`/`ClassName.x = ...` from inside a static method).
type settable interface {
	Set(name token.Token, value interface{})
}

// isTruthy: false and nil are falsy, everything else is truthy.
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual: same variant and same value. Go's == on an interface{} already
// yields false for differing dynamic types and already treats float64
// NaN as unequal to itself, so no special-casing is needed here.
func isEqual(a, b interface{}) bool {
	return a == b
}

// Stringify renders a value the way `print` and string concatenation do:
// nil -> "nil", numbers trim a trailing ".0", everything else via its own
// String()/fmt formatting.
func Stringify(v interface{}) string {
	if v == nil {
		return "nil"
	}

	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
