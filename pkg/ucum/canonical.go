package ucum

import (
	"fmt"
	"math"
	"sort"

	"github.com/atomic-ehr/ucum/pkg/ucum/ast"
	"github.com/atomic-ehr/ucum/pkg/ucum/diag"
	"github.com/atomic-ehr/ucum/pkg/ucum/dimension"
	"github.com/atomic-ehr/ucum/pkg/ucum/parser"
	"github.com/atomic-ehr/ucum/pkg/ucum/registry"
)

// maxDefinitionDepth guards against a cyclic registry definition; the
// registry is a Go literal so a cycle can only be a typo, but a recursion
// cap is still cheaper than proving acyclicity at build time.
const maxDefinitionDepth = 16

// Dimension is the seven-slot base-dimension exponent vector, re-exported
// from pkg/ucum/dimension so callers of the public API never need to
// import the subpackage directly.
type Dimension = dimension.Dimension

// BaseTerm is one (base unit, exponent) pair in a CanonicalForm's
// normalized term list.
type BaseTerm struct {
	Base     string
	Exponent int
}

// SpecialRef records which non-linear function a canonical form's source
// expression invoked, and the reference value/unit its conversion formulas
// are defined against.
type SpecialRef struct {
	FunctionName string
	RefValueStr  string
	RefUnitStr   string
	// RefMagnitude is the canonical magnitude of RefUnitStr itself — the
	// "u" in UCUM's r_s = f(m/u)/α and m = f⁻¹(α·r_s)·u formulas (§4.5).
	// Computed once during canonicalization so the conversion engine never
	// has to re-parse RefUnitStr.
	RefMagnitude float64
}

// CanonicalForm is the reduction of a unit expression to a scalar
// magnitude, a base-dimension vector, and (for non-linear units) a Special
// marker.
//
// Special is set iff the source expression contained a special unit atom
// anywhere in the tree. Dimension alone is not the full commensurability
// test for a sqrt-special canonical (see IsConvertible): Dimension only
// tracks integer exponents, while sqrt logically introduces a half-integer
// exponent that the Special marker carries instead.
type CanonicalForm struct {
	Magnitude float64
	Dimension Dimension
	BaseTerms []BaseTerm
	Special   *SpecialRef
	Arbitrary bool
}

// ToCanonical parses and canonicalizes a unit expression in one call.
func ToCanonical(source string) (*CanonicalForm, *diag.Diagnostics, error) {
	res := parser.Parse(source)
	d := &diag.Diagnostics{Errors: res.Errors, Warnings: res.Warnings}

	if res.AST == nil || len(res.Errors) > 0 {
		return nil, d, wrapUnit(source, ErrInvalidUnit)
	}

	cf, err := toCanonicalNode(res.AST, 0)
	if err != nil {
		return nil, d, err
	}
	return cf, d, nil
}

// ToCanonicalAST canonicalizes an already-parsed expression tree.
func ToCanonicalAST(node ast.Expression) (*CanonicalForm, error) {
	return toCanonicalNode(node, 0)
}

func toCanonicalNode(node ast.Expression, depth int) (*CanonicalForm, error) {
	if depth > maxDefinitionDepth {
		return nil, wrapUnit(describe(node), fmt.Errorf("%w: unit definition recursion too deep (cyclic registry?)", ErrRegistryMiss))
	}

	switch n := node.(type) {
	case *ast.Factor:
		return &CanonicalForm{Magnitude: float64(n.Value)}, nil
	case *ast.Unit:
		return canonicalizeUnit(n, depth)
	case *ast.Binary:
		return canonicalizeBinary(n, depth)
	case *ast.Unary:
		return canonicalizeUnary(n, depth)
	case *ast.Group:
		return toCanonicalNode(n.Inner, depth)
	default:
		return nil, fmt.Errorf("ucum: unhandled AST node type %T", node)
	}
}

func canonicalizeUnit(n *ast.Unit, depth int) (*CanonicalForm, error) {
	exponent := 1
	if n.HasExponent {
		exponent = n.Exponent
	}

	alpha := 1.0
	if n.HasPrefix {
		pfx, ok := registry.LookupPrefix(n.Prefix)
		if !ok {
			return nil, wrapUnit(n.Prefix+n.Atom, ErrRegistryMiss)
		}
		alpha = pfx.Multiplier
	}

	if slot, isBase := dimension.BaseUnitSlot[n.Atom]; isBase {
		terms := []BaseTerm{{Base: n.Atom, Exponent: exponent}}
		_ = slot // slot membership already established; Dimension is recomputed below
		return &CanonicalForm{
			Magnitude: math.Pow(alpha, float64(exponent)),
			Dimension: recomputeDimension(terms),
			BaseTerms: terms,
		}, nil
	}

	rec, ok := registry.LookupUnit(n.Atom)
	if !ok {
		return nil, wrapUnit(fullAtomText(n), ErrRegistryMiss)
	}

	if rec.IsSpecial {
		if n.HasExponent && n.Exponent != 1 {
			return nil, wrapUnit(fullAtomText(n), ErrSpecialUnderCompound)
		}
		sub, err := canonicalizeDefinitionExpr(rec.Definition.RefUnitStr, depth+1)
		if err != nil {
			return nil, err
		}
		return &CanonicalForm{
			Magnitude: math.Pow(alpha, float64(exponent)),
			Dimension: sub.Dimension,
			BaseTerms: sub.BaseTerms,
			Special: &SpecialRef{
				FunctionName: rec.Definition.FunctionName,
				RefValueStr:  rec.Definition.RefValueStr,
				RefUnitStr:   rec.Definition.RefUnitStr,
				RefMagnitude: sub.Magnitude,
			},
			Arbitrary: sub.Arbitrary,
		}, nil
	}

	def := rec.Definition
	if def.UnitExpr == "1" {
		return &CanonicalForm{
			Magnitude: math.Pow(alpha*def.Scalar, float64(exponent)),
			Arbitrary: rec.IsArbitrary(),
		}, nil
	}

	sub, err := canonicalizeDefinitionExpr(def.UnitExpr, depth+1)
	if err != nil {
		return nil, err
	}
	terms := scaleBaseTerms(sub.BaseTerms, exponent)
	return &CanonicalForm{
		Magnitude: math.Pow(alpha*def.Scalar*sub.Magnitude, float64(exponent)),
		Dimension: recomputeDimension(terms),
		BaseTerms: terms,
		Special:   sub.Special,
		Arbitrary: sub.Arbitrary || rec.IsArbitrary(),
	}, nil
}

func canonicalizeDefinitionExpr(expr string, depth int) (*CanonicalForm, error) {
	if depth > maxDefinitionDepth {
		return nil, wrapUnit(expr, fmt.Errorf("%w: unit definition recursion too deep (cyclic registry?)", ErrRegistryMiss))
	}
	res := parser.Parse(expr)
	if res.AST == nil || len(res.Errors) > 0 {
		return nil, wrapUnit(expr, fmt.Errorf("%w: malformed unit definition %q", ErrRegistryMiss, expr))
	}
	return toCanonicalNode(res.AST, depth)
}

func canonicalizeBinary(n *ast.Binary, depth int) (*CanonicalForm, error) {
	left, err := toCanonicalNode(n.Left, depth)
	if err != nil {
		return nil, err
	}
	right, err := toCanonicalNode(n.Right, depth)
	if err != nil {
		return nil, err
	}

	if left.Special != nil && right.Special != nil {
		return nil, wrapUnit(describe(n), ErrSpecialCombination)
	}
	if left.Special != nil || right.Special != nil {
		return nil, wrapUnit(describe(n), ErrSpecialUnderCompound)
	}

	sign := 1
	var magnitude float64
	if n.Op == ast.OpMul {
		magnitude = left.Magnitude * right.Magnitude
	} else {
		sign = -1
		if right.Magnitude == 0 {
			return nil, wrapUnit(describe(n), ErrDivisionByZero)
		}
		magnitude = left.Magnitude / right.Magnitude
	}

	terms := mergeBaseTerms(left.BaseTerms, right.BaseTerms, sign)
	return &CanonicalForm{
		Magnitude: magnitude,
		Dimension: recomputeDimension(terms),
		BaseTerms: terms,
		Arbitrary: left.Arbitrary || right.Arbitrary,
	}, nil
}

func canonicalizeUnary(n *ast.Unary, depth int) (*CanonicalForm, error) {
	operand, err := toCanonicalNode(n.Operand, depth)
	if err != nil {
		return nil, err
	}
	if operand.Special != nil {
		return nil, wrapUnit(describe(n), ErrSpecialUnderCompound)
	}
	if operand.Magnitude == 0 {
		return nil, wrapUnit(describe(n), ErrDivisionByZero)
	}

	terms := make([]BaseTerm, len(operand.BaseTerms))
	for i, t := range operand.BaseTerms {
		terms[i] = BaseTerm{Base: t.Base, Exponent: -t.Exponent}
	}
	return &CanonicalForm{
		Magnitude: 1 / operand.Magnitude,
		Dimension: recomputeDimension(terms),
		BaseTerms: terms,
		Arbitrary: operand.Arbitrary,
	}, nil
}

// mergeBaseTerms combines two normalized term lists, negating right's
// exponents first when sign is -1 (division), summing same-base entries,
// dropping zero-exponent results, and sorting by base-unit key.
func mergeBaseTerms(left, right []BaseTerm, sign int) []BaseTerm {
	acc := make(map[string]int, len(left)+len(right))
	for _, t := range left {
		acc[t.Base] += t.Exponent
	}
	for _, t := range right {
		acc[t.Base] += sign * t.Exponent
	}
	return normalizeBaseTerms(acc)
}

func scaleBaseTerms(terms []BaseTerm, factor int) []BaseTerm {
	acc := make(map[string]int, len(terms))
	for _, t := range terms {
		acc[t.Base] += t.Exponent * factor
	}
	return normalizeBaseTerms(acc)
}

func normalizeBaseTerms(acc map[string]int) []BaseTerm {
	out := make([]BaseTerm, 0, len(acc))
	for base, exp := range acc {
		if exp != 0 {
			out = append(out, BaseTerm{Base: base, Exponent: exp})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base < out[j].Base })
	return out
}

// recomputeDimension derives a Dimension from a normalized BaseTerm list
// using the fixed base-unit->slot map, so Dimension is always exactly the
// derived view of BaseTerms (spec invariant) rather than a value tracked in
// parallel that could drift.
func recomputeDimension(terms []BaseTerm) Dimension {
	slots := make(map[dimension.DimSlot]int, len(terms))
	for _, t := range terms {
		if slot, ok := dimension.BaseUnitSlot[t.Base]; ok {
			slots[slot] += t.Exponent
		}
	}
	return dimension.NewDimension(slots)
}

func fullAtomText(n *ast.Unit) string {
	if n.HasPrefix {
		return n.Prefix + n.Atom
	}
	return n.Atom
}

// describe renders a best-effort source-like string for an AST node, used
// only to give error messages a human-readable expression to point at.
func describe(node ast.Expression) string {
	switch n := node.(type) {
	case *ast.Unit:
		return fullAtomText(n)
	case *ast.Factor:
		return fmt.Sprintf("%d", n.Value)
	case *ast.Binary:
		op := "."
		if n.Op == ast.OpDiv {
			op = "/"
		}
		return describe(n.Left) + op + describe(n.Right)
	case *ast.Unary:
		return "/" + describe(n.Operand)
	case *ast.Group:
		return "(" + describe(n.Inner) + ")"
	default:
		return "?"
	}
}
