package ucum

import (
	"github.com/atomic-ehr/ucum/pkg/ucum/special"
)

// Convert converts value from fromCode's unit to toCode's unit. Both codes
// must be commensurable (same dimension); special (non-linear) units are
// bridged via their forward/inverse functions per UCUM §21-22.
func Convert(value float64, fromCode, toCode string) (float64, error) {
	if fromCode == toCode {
		return value, nil
	}

	fromCF, _, err := ToCanonical(fromCode)
	if err != nil {
		return 0, err
	}
	toCF, _, err := ToCanonical(toCode)
	if err != nil {
		return 0, err
	}
	return convertCanonical(value, fromCF, toCF, fromCode, toCode)
}

// IsConvertible reports whether fromCode and toCode are commensurable.
func IsConvertible(fromCode, toCode string) (bool, error) {
	fromCF, _, err := ToCanonical(fromCode)
	if err != nil {
		return false, err
	}
	toCF, _, err := ToCanonical(toCode)
	if err != nil {
		return false, err
	}
	return dimensionsCompatible(fromCF, toCF), nil
}

// ConversionFactor returns the scalar ratio to multiply a fromCode value by
// to get a toCode value. Errors if either side is a special unit, since a
// single ratio cannot represent a non-linear conversion.
func ConversionFactor(fromCode, toCode string) (float64, error) {
	fromCF, _, err := ToCanonical(fromCode)
	if err != nil {
		return 0, err
	}
	toCF, _, err := ToCanonical(toCode)
	if err != nil {
		return 0, err
	}
	if fromCF.Special != nil || toCF.Special != nil {
		return 0, wrapUnit(fromCode+"->"+toCode, ErrSpecialUnitArithmetic)
	}
	if !dimensionsCompatible(fromCF, toCF) {
		return 0, wrapUnit(fromCode+"->"+toCode, ErrIncompatibleDimensions)
	}
	if toCF.Magnitude == 0 {
		return 0, wrapUnit(toCode, ErrDivisionByZero)
	}
	return fromCF.Magnitude / toCF.Magnitude, nil
}

func convertCanonical(value float64, from, to *CanonicalForm, fromCode, toCode string) (float64, error) {
	if !dimensionsCompatible(from, to) {
		return 0, wrapUnit(fromCode+"->"+toCode, ErrIncompatibleDimensions)
	}
	if structurallyEqual(from, to) {
		return value, nil
	}

	if from.Special == nil && to.Special == nil {
		if to.Magnitude == 0 {
			return 0, wrapUnit(toCode, ErrDivisionByZero)
		}
		return value * from.Magnitude / to.Magnitude, nil
	}

	return convertSpecial(value, from, to, fromCode, toCode)
}

// convertSpecial implements UCUM's r_s = f(m/u)/α and m = f⁻¹(α·r_s)·u
// formulas (spec §4.5): bridge through a base-SI value, using each side's
// scale factor α (scaleFactor) and reference-unit magnitude u
// (SpecialRef.RefMagnitude).
func convertSpecial(value float64, from, to *CanonicalForm, fromCode, toCode string) (float64, error) {
	var baseVal float64

	if from.Special != nil {
		fn, ok := special.Lookup(from.Special.FunctionName)
		if !ok {
			return 0, wrapUnit(fromCode, ErrRegistryMiss)
		}
		alpha := scaleFactor(from)
		scaled := alpha * value
		if !fn.OutputDomain(scaled) {
			return 0, wrapUnit(fromCode, ErrDomainViolation)
		}
		natural := fn.Inverse(scaled)
		if !fn.InputDomain(natural) || special.IsNaNOrInf(natural) {
			return 0, wrapUnit(fromCode, ErrDomainViolation)
		}
		baseVal = natural * from.Special.RefMagnitude
	} else {
		baseVal = value * from.Magnitude
	}

	if to.Special != nil {
		fn, ok := special.Lookup(to.Special.FunctionName)
		if !ok {
			return 0, wrapUnit(toCode, ErrRegistryMiss)
		}
		if to.Special.RefMagnitude == 0 {
			return 0, wrapUnit(toCode, ErrDivisionByZero)
		}
		natural := baseVal / to.Special.RefMagnitude
		if !fn.InputDomain(natural) {
			return 0, wrapUnit(toCode, ErrDomainViolation)
		}
		alpha := scaleFactor(to)
		if alpha == 0 {
			return 0, wrapUnit(toCode, ErrDivisionByZero)
		}
		result := fn.Forward(natural) / alpha
		if !fn.OutputDomain(result) || special.IsNaNOrInf(result) {
			return 0, wrapUnit(toCode, ErrDomainViolation)
		}
		return result, nil
	}

	if to.Magnitude == 0 {
		return 0, wrapUnit(toCode, ErrDivisionByZero)
	}
	return baseVal / to.Magnitude, nil
}

// scaleFactor implements the closed enumeration of spec §6.4: only Cel,
// ln, lg, and ld carry a base (unprefixed) canonical magnitude of 1, so
// only for those four does a magnitude != 1 indicate a metric prefix. For
// every other special function α is always 1 — any magnitude deviation
// there comes from the reference unit, not a prefix.
func scaleFactor(cf *CanonicalForm) float64 {
	if cf.Special == nil {
		return 1
	}
	switch cf.Special.FunctionName {
	case "Cel", "ln", "lg", "ld":
		return cf.Magnitude
	default:
		return 1
	}
}

func dimensionsCompatible(a, b *CanonicalForm) bool {
	aSqrt, bSqrt := isSqrtSpecial(a), isSqrtSpecial(b)
	if aSqrt || bSqrt {
		return aSqrt && bSqrt && a.Dimension.Equals(b.Dimension)
	}
	return a.Dimension.Equals(b.Dimension)
}

func isSqrtSpecial(cf *CanonicalForm) bool {
	return cf.Special != nil && cf.Special.FunctionName == "sqrt"
}

func structurallyEqual(a, b *CanonicalForm) bool {
	if a.Magnitude != b.Magnitude {
		return false
	}
	if !a.Dimension.Equals(b.Dimension) {
		return false
	}
	if len(a.BaseTerms) != len(b.BaseTerms) {
		return false
	}
	for i := range a.BaseTerms {
		if a.BaseTerms[i] != b.BaseTerms[i] {
			return false
		}
	}
	if (a.Special == nil) != (b.Special == nil) {
		return false
	}
	if a.Special != nil && *a.Special != *b.Special {
		return false
	}
	return true
}
