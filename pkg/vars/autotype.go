package vars

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AutoType converts a value into the best-fitting scalar type.
// Booleans become the strings "yes"/"no", integer-valued numbers become
// int, other numbers float64, and anything else a string. Numeric parsing
// uses a single locale-independent grammar (Go's strconv), which keeps
// script files portable between machines with different locales.
func AutoType(val any) any {
	switch v := val.(type) {
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case int:
		return v
	case int64:
		return int(v)
	case float32:
		return narrowFloat(float64(v))
	case float64:
		return narrowFloat(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return v
		}
		return narrowFloat(f)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// narrowFloat stores integer-valued floats as int, so "3" and "3.0" both
// coerce to the integer 3.
func narrowFloat(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return int(f)
	}
	return f
}

// ToString renders a coerced scalar in its canonical textual form, the
// form used for substitution and serialization.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
