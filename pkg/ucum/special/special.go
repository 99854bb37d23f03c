// Package special implements the fifteen named non-linear unit functions
// UCUM uses for temperature scales, logarithmic levels, trigonometric
// clinical units, homeopathic potencies, and sqrt-dimensioned units.
package special

import (
	"errors"
	"math"
)

// ErrUnknownFunction identifies a name outside the frozen fifteen-entry
// table. Lookup reports such a name through its boolean result and does not
// return this error.
var ErrUnknownFunction = errors.New("special: unknown function name")

// Function is a forward/inverse pair with optional domain guards.
//
// Forward maps a value expressed in the function's natural (reference)
// unit to its special scale; Inverse is its mathematical inverse.
// InputDomain validates a natural-unit value — the argument passed to
// Forward, or the value Inverse just produced. OutputDomain validates a
// special-scale value — the argument passed to Inverse, or the value
// Forward just produced. None of the fifteen entries below constrain the
// scale side; OutputDomain defaults to always-true.
type Function struct {
	Forward      func(float64) float64
	Inverse      func(float64) float64
	InputDomain  func(float64) bool
	OutputDomain func(float64) bool
}

func nonNegative(x float64) bool { return x >= 0 }
func positive(x float64) bool    { return x > 0 }
func always(float64) bool        { return true }

var registry = map[string]Function{
	"Cel": {
		Forward:     func(k float64) float64 { return k - 273.15 },
		Inverse:     func(c float64) float64 { return c + 273.15 },
		InputDomain: nonNegative, // Kelvin operand must be >= 0
	},
	"degF": {
		Forward:     func(k float64) float64 { return k*9/5 - 459.67 },
		Inverse:     func(f float64) float64 { return (f + 459.67) * 5 / 9 },
		InputDomain: nonNegative,
	},
	"degRe": {
		Forward:     func(k float64) float64 { return (k - 273.15) * 4 / 5 },
		Inverse:     func(r float64) float64 { return r*5/4 + 273.15 },
		InputDomain: nonNegative,
	},
	"ln": {
		Forward:     math.Log,
		Inverse:     math.Exp,
		InputDomain: positive,
	},
	"lg": {
		Forward:     math.Log10,
		Inverse:     func(x float64) float64 { return math.Pow(10, x) },
		InputDomain: positive,
	},
	"lgTimes2": {
		Forward:     func(x float64) float64 { return 2 * math.Log10(x) },
		Inverse:     func(x float64) float64 { return math.Pow(10, x/2) },
		InputDomain: positive,
	},
	"ld": {
		Forward:     math.Log2,
		Inverse:     func(x float64) float64 { return math.Pow(2, x) },
		InputDomain: positive,
	},
	"pH": {
		Forward:     func(x float64) float64 { return -math.Log10(x) },
		Inverse:     func(x float64) float64 { return math.Pow(10, -x) },
		InputDomain: positive,
	},
	"tanTimes100": {
		Forward: func(rad float64) float64 { return 100 * math.Tan(rad) },
		Inverse: func(x float64) float64 { return math.Atan(x / 100) },
	},
	"100tan": {
		Forward: func(deg float64) float64 { return 100 * math.Tan(deg*math.Pi/180) },
		Inverse: func(x float64) float64 { return math.Atan(x/100) * 180 / math.Pi },
	},
	"hpX": {
		Forward:     func(x float64) float64 { return -math.Log10(x) },
		Inverse:     func(x float64) float64 { return math.Pow(10, -x) },
		InputDomain: positive,
	},
	"hpC": {
		Forward:     func(x float64) float64 { return -math.Log(x) / math.Log(100) },
		Inverse:     func(x float64) float64 { return math.Pow(100, -x) },
		InputDomain: positive,
	},
	"hpM": {
		Forward:     func(x float64) float64 { return -math.Log(x) / math.Log(1000) },
		Inverse:     func(x float64) float64 { return math.Pow(1000, -x) },
		InputDomain: positive,
	},
	"hpQ": {
		Forward:     func(x float64) float64 { return -math.Log(x) / math.Log(50000) },
		Inverse:     func(x float64) float64 { return math.Pow(50000, -x) },
		InputDomain: positive,
	},
	"sqrt": {
		Forward:     math.Sqrt,
		Inverse:     func(x float64) float64 { return x * x },
		InputDomain: nonNegative,
	},
}

func init() {
	// Fill in the always-true default so callers never need a nil check.
	for name, fn := range registry {
		if fn.InputDomain == nil {
			fn.InputDomain = always
		}
		if fn.OutputDomain == nil {
			fn.OutputDomain = always
		}
		registry[name] = fn
	}
}

// Lookup returns the Function registered under name.
func Lookup(name string) (Function, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// IsNaNOrInf is a defensive backstop applied after calling Forward/Inverse,
// consistent with the teacher's domain-guard-then-math.X idiom: a domain
// check can pass and the underlying math function can still misbehave at
// the edge of float64 precision.
func IsNaNOrInf(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
