package ucum

import (
	"fmt"
	"math"
	"strconv"
	"sync"
)

// unitKind classifies a canonical form for the purposes of the arithmetic
// and comparison rules in spec.md §4.6: proper units compose freely, special
// (non-linear) units reject all arithmetic, arbitrary units only compose
// with themselves.
type unitKind int

const (
	kindProper unitKind = iota
	kindSpecial
	kindArbitrary
)

func unitKindOf(cf *CanonicalForm) unitKind {
	switch {
	case cf.Special != nil:
		return kindSpecial
	case cf.Arbitrary:
		return kindArbitrary
	default:
		return kindProper
	}
}

// Quantity pairs a float64 value with a UCUM unit code. Its canonical form
// is computed once and memoized, mirroring the compute-once,
// safe-for-concurrent-read idiom the teacher uses for expression caching.
type Quantity struct {
	value float64
	unit  string

	once      sync.Once
	canonical *CanonicalForm
	canonErr  error
}

// NewQuantity parses and canonicalizes unit eagerly, so a construction-time
// error always surfaces as ErrInvalidUnit rather than being deferred to the
// first operation.
func NewQuantity(value float64, unit string) (*Quantity, error) {
	q := &Quantity{value: value, unit: unit}
	if _, err := q.form(); err != nil {
		return nil, wrapUnit(unit, fmt.Errorf("%w: %v", ErrInvalidUnit, err))
	}
	return q, nil
}

func (q *Quantity) form() (*CanonicalForm, error) {
	q.once.Do(func() {
		q.canonical, _, q.canonErr = ToCanonical(q.unit)
	})
	return q.canonical, q.canonErr
}

// Value returns the quantity's numeric value in its own unit.
func (q *Quantity) Value() float64 { return q.value }

// Unit returns the quantity's unit code as given at construction (or as
// rewritten by ToUnit/Multiply/Divide/Pow).
func (q *Quantity) Unit() string { return q.unit }

// Dimension returns the quantity's base-dimension vector.
func (q *Quantity) Dimension() (Dimension, error) {
	cf, err := q.form()
	if err != nil {
		return Dimension{}, err
	}
	return cf.Dimension, nil
}

// AreCompatible reports whether q and other share a commensurable
// dimension. Returns false (not an error) if either side fails to
// canonicalize, since compatibility is meant as a cheap pre-flight check.
func (q *Quantity) AreCompatible(other *Quantity) bool {
	cf, err := q.form()
	if err != nil {
		return false
	}
	ocf, err := other.form()
	if err != nil {
		return false
	}
	return dimensionsCompatible(cf, ocf)
}

// Add returns q+other, converting other into q's unit first. Rejects if
// either operand is a special unit. Arbitrary-unit operands must share the
// exact same unit code.
func (q *Quantity) Add(other *Quantity) (*Quantity, error) {
	return q.addSub(other, 1)
}

// Subtract returns q-other, under the same rules as Add.
func (q *Quantity) Subtract(other *Quantity) (*Quantity, error) {
	return q.addSub(other, -1)
}

func (q *Quantity) addSub(other *Quantity, sign float64) (*Quantity, error) {
	cf, err := q.form()
	if err != nil {
		return nil, err
	}
	ocf, err := other.form()
	if err != nil {
		return nil, err
	}
	if unitKindOf(cf) == kindSpecial || unitKindOf(ocf) == kindSpecial {
		return nil, wrapUnit(q.unit, ErrSpecialUnitArithmetic)
	}
	if unitKindOf(cf) == kindArbitrary || unitKindOf(ocf) == kindArbitrary {
		if q.unit != other.unit {
			return nil, wrapUnit(q.unit, ErrArbitraryUnitConversion)
		}
		return &Quantity{value: q.value + sign*other.value, unit: q.unit}, nil
	}
	converted, err := Convert(other.value, other.unit, q.unit)
	if err != nil {
		return nil, err
	}
	return &Quantity{value: q.value + sign*converted, unit: q.unit}, nil
}

// MultiplyScalar returns q scaled by factor, keeping q's unit. Rejects if q
// is a special unit; allowed (unit unchanged) for arbitrary units.
func (q *Quantity) MultiplyScalar(factor float64) (*Quantity, error) {
	cf, err := q.form()
	if err != nil {
		return nil, err
	}
	if unitKindOf(cf) == kindSpecial {
		return nil, wrapUnit(q.unit, ErrSpecialUnitArithmetic)
	}
	return &Quantity{value: q.value * factor, unit: q.unit}, nil
}

// DivideScalar returns q divided by divisor, keeping q's unit. Rejects a
// zero divisor and special-unit operands.
func (q *Quantity) DivideScalar(divisor float64) (*Quantity, error) {
	cf, err := q.form()
	if err != nil {
		return nil, err
	}
	if unitKindOf(cf) == kindSpecial {
		return nil, wrapUnit(q.unit, ErrSpecialUnitArithmetic)
	}
	if divisor == 0 {
		return nil, wrapUnit(q.unit, ErrDivisionByZero)
	}
	return &Quantity{value: q.value / divisor, unit: q.unit}, nil
}

// Multiply returns q*other: values multiply, units combine into a compound
// unit string. Rejects special-unit operands; arbitrary-unit operands are
// allowed and the result stays flagged arbitrary, but need not share a code.
func (q *Quantity) Multiply(other *Quantity) (*Quantity, error) {
	return q.mulDiv(other, ".")
}

// Divide returns q/other, under the same rules as Multiply, plus a
// zero-divisor check on other's value.
func (q *Quantity) Divide(other *Quantity) (*Quantity, error) {
	if other.value == 0 {
		return nil, wrapUnit(other.unit, ErrDivisionByZero)
	}
	return q.mulDiv(other, "/")
}

func (q *Quantity) mulDiv(other *Quantity, op string) (*Quantity, error) {
	cf, err := q.form()
	if err != nil {
		return nil, err
	}
	ocf, err := other.form()
	if err != nil {
		return nil, err
	}
	if unitKindOf(cf) == kindSpecial || unitKindOf(ocf) == kindSpecial {
		return nil, wrapUnit(q.unit, ErrSpecialUnitArithmetic)
	}

	value := q.value * other.value
	if op == "/" {
		value = q.value / other.value
	}
	return &Quantity{value: value, unit: buildCompoundUnit(op, q.unit, other.unit)}, nil
}

// buildCompoundUnit joins two unit codes with op ("." or "/"), simplifying
// only the same-code cancellations spec.md §4.6 names: u/u -> "1",
// 1.u -> u, u.1 -> u.
func buildCompoundUnit(op, a, b string) string {
	if a == "1" && op == "." {
		return b
	}
	if b == "1" {
		return a
	}
	if op == "/" && a == b {
		return "1"
	}
	return a + op + b
}

// Pow returns q raised to an integer power n. n==0 always yields the
// dimensionless quantity 1 and n==1 always returns q unchanged, even for
// special or arbitrary units (spec.md §4.6 permits this short-circuit
// before the rejection check). Any other n rejects special or arbitrary
// operands.
func (q *Quantity) Pow(n int) (*Quantity, error) {
	if n == 0 {
		return &Quantity{value: 1, unit: "1"}, nil
	}
	if n == 1 {
		return &Quantity{value: q.value, unit: q.unit}, nil
	}

	cf, err := q.form()
	if err != nil {
		return nil, err
	}
	switch unitKindOf(cf) {
	case kindSpecial:
		return nil, wrapUnit(q.unit, ErrSpecialUnitArithmetic)
	case kindArbitrary:
		return nil, wrapUnit(q.unit, ErrArbitraryUnitConversion)
	}

	return &Quantity{value: math.Pow(q.value, float64(n)), unit: powUnitString(q.unit, n)}, nil
}

func powUnitString(unit string, n int) string {
	if unit == "1" {
		return "1"
	}
	return unit + strconv.Itoa(n)
}

// Equals reports whether q and other carry the same value once converted
// to a common unit, within an optional tolerance (default 0, i.e. exact).
// Special units compare by converting through their forward/inverse
// functions like any other conversion; arbitrary units only compare equal
// when they share the exact same unit code.
func (q *Quantity) Equals(other *Quantity, tolerance ...float64) (bool, error) {
	tol := 0.0
	if len(tolerance) > 0 {
		tol = tolerance[0]
	}

	cf, err := q.form()
	if err != nil {
		return false, err
	}
	ocf, err := other.form()
	if err != nil {
		return false, err
	}

	if unitKindOf(cf) == kindArbitrary || unitKindOf(ocf) == kindArbitrary {
		if q.unit != other.unit {
			return false, nil
		}
		return math.Abs(q.value-other.value) <= tol, nil
	}

	converted, err := Convert(other.value, other.unit, q.unit)
	if err != nil {
		return false, err
	}
	return math.Abs(q.value-converted) <= tol, nil
}

// LessThan reports whether q orders strictly before other. Arbitrary-unit
// operands must share the exact same unit code, or ordering is undefined
// and an error is returned.
func (q *Quantity) LessThan(other *Quantity) (bool, error) {
	cf, err := q.form()
	if err != nil {
		return false, err
	}
	ocf, err := other.form()
	if err != nil {
		return false, err
	}

	if unitKindOf(cf) == kindArbitrary || unitKindOf(ocf) == kindArbitrary {
		if q.unit != other.unit {
			return false, wrapUnit(q.unit, ErrArbitraryUnitConversion)
		}
		return q.value < other.value, nil
	}

	converted, err := Convert(other.value, other.unit, q.unit)
	if err != nil {
		return false, err
	}
	return q.value < converted, nil
}

// ToUnit returns q re-expressed in target. Arbitrary units may only convert
// to themselves (the same unit code); any other target is rejected.
func (q *Quantity) ToUnit(target string) (*Quantity, error) {
	cf, err := q.form()
	if err != nil {
		return nil, err
	}

	if unitKindOf(cf) == kindArbitrary {
		if target != q.unit {
			return nil, wrapUnit(q.unit, ErrArbitraryUnitConversion)
		}
		return &Quantity{value: q.value, unit: target}, nil
	}

	converted, err := Convert(q.value, q.unit, target)
	if err != nil {
		return nil, err
	}
	return &Quantity{value: converted, unit: target}, nil
}
