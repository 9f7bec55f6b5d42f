// Package money normalizes the heterogeneous price and quantity
// representations emitted by the remote catalog into canonical numeric
// values. The catalog may serialize a price as a JSON number or as a
// currency-formatted string such as "$19.99"; all arithmetic downstream
// assumes the normalized form.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize converts a raw price value into a float64 amount.
// Nil yields 0, numeric values pass through unchanged, and strings are
// stripped of everything but digits, decimal points, and minus signs
// before parsing. Parse failures and non-finite results yield 0; the
// function never returns NaN or infinity.
func Normalize(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return parseDecimal(string(v))
	case string:
		return parseDecimal(v)
	default:
		return 0
	}
}

// ToInt coerces a raw quantity or delta value into an integer, truncating
// toward zero. Values that are not finite numbers yield fallback. It is
// used to sanitize numeric inputs from untrusted call sites before they
// reach the cart invariants.
func ToInt(raw any, fallback int) int {
	switch v := raw.(type) {
	case nil:
		return fallback
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fallback
		}
		return int(math.Trunc(v))
	case float32:
		return ToInt(float64(v), fallback)
	case json.Number:
		return parseInt(string(v), fallback)
	case string:
		return parseInt(v, fallback)
	default:
		return fallback
	}
}

// Format renders an amount as a display price, e.g. "$19.99".
// Non-finite amounts render as zero.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return fmt.Sprintf("$%.2f", v)
}

func parseDecimal(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(n)
}

func parseInt(s string, fallback int) int {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return int(math.Trunc(n))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
