// Package registry holds the static prefix and unit tables that back
// lexing/parsing disambiguation (prefix-vs-atom splitting) and the
// canonical-form engine's base-unit lookups. Split out from the main ucum
// package so that pkg/ucum/parser can depend on it without importing the
// main package (which itself depends on parser), avoiding an import cycle.
package registry

import (
	"sort"

	"github.com/atomic-ehr/ucum/pkg/ucum/dimension"
)

// Prefix is a metric multiplier, e.g. "k" (kilo, x1000) or "Ki" (kibi,
// x1024). Multiplier is always an exact power of ten or of 1024.
type Prefix struct {
	Symbol     string
	Name       string
	Multiplier float64
}

// DefinitionKind distinguishes a proper (scalar-and-unit-expression)
// definition from a special-function definition, per spec.md §3.1.
type DefinitionKind int

const (
	DefinitionScalar DefinitionKind = iota
	DefinitionSpecial
)

// UnitDefinition is a unit record's right-hand side: either a scalar
// multiplier over a unit-expression string (e.g. hour = 60 · "min"), or a
// named special function over a reference value+unit (e.g. Cel = Cel(1,
// "K")).
type UnitDefinition struct {
	Kind DefinitionKind

	// Scalar / UnitExpr are populated when Kind == DefinitionScalar.
	Scalar   float64
	UnitExpr string

	// FunctionName / RefValueStr / RefUnitStr are populated when
	// Kind == DefinitionSpecial.
	FunctionName string
	RefValueStr  string
	RefUnitStr   string
}

// UnitRecord is one entry of the static unit table (spec.md §3.1/§6.1).
type UnitRecord struct {
	Code       string
	Class      string
	Property   string
	IsBase     bool
	IsMetric   bool
	IsSpecial  bool
	Dimension  dimension.Dimension // meaningful only when IsBase
	Definition UnitDefinition
}

// IsArbitrary reports whether this unit has no physical commensurability
// outside its own code (spec.md glossary "Arbitrary unit").
func (u UnitRecord) IsArbitrary() bool {
	return u.Property == "arbitrary"
}

// prefixes is the minimum SI + binary prefix table required by spec.md §6.1.
var prefixes = []Prefix{
	{"Y", "yotta", 1e24},
	{"Z", "zetta", 1e21},
	{"E", "exa", 1e18},
	{"P", "peta", 1e15},
	{"T", "tera", 1e12},
	{"G", "giga", 1e9},
	{"M", "mega", 1e6},
	{"k", "kilo", 1e3},
	{"h", "hecto", 1e2},
	{"da", "deka", 1e1},
	{"d", "deci", 1e-1},
	{"c", "centi", 1e-2},
	{"m", "milli", 1e-3},
	{"u", "micro", 1e-6},
	{"n", "nano", 1e-9},
	{"p", "pico", 1e-12},
	{"f", "femto", 1e-15},
	{"a", "atto", 1e-18},
	{"z", "zepto", 1e-21},
	{"y", "yocto", 1e-24},
	{"Ki", "kibi", 1024},
	{"Mi", "mebi", 1024 * 1024},
	{"Gi", "gibi", 1024 * 1024 * 1024},
	{"Ti", "tebi", 1024 * 1024 * 1024 * 1024},
}

// units is a representative UCUM unit table: the seven base units, the SI
// prefix-eligible derived units, and the special/arbitrary/clinical units
// exercised by spec.md §8.2's concrete scenarios. A production deployment
// generates the full upstream essence table instead of hand-listing it
// here (spec.md §1's registry-contents non-goal; see DESIGN.md).
var units = []UnitRecord{
	// Seven base units.
	{Code: "m", Class: "si", IsBase: true, IsMetric: true, Dimension: dimension.NewDimension(map[dimension.DimSlot]int{dimension.DimL: 1})},
	{Code: "s", Class: "si", IsBase: true, IsMetric: true, Dimension: dimension.NewDimension(map[dimension.DimSlot]int{dimension.DimT: 1})},
	{Code: "g", Class: "si", IsBase: true, IsMetric: true, Dimension: dimension.NewDimension(map[dimension.DimSlot]int{dimension.DimM: 1})},
	{Code: "rad", Class: "si", IsBase: true, IsMetric: true, Dimension: dimension.NewDimension(map[dimension.DimSlot]int{dimension.DimA: 1})},
	{Code: "K", Class: "si", IsBase: true, IsMetric: true, Dimension: dimension.NewDimension(map[dimension.DimSlot]int{dimension.DimTheta: 1})},
	{Code: "C", Class: "si", IsBase: true, IsMetric: true, Dimension: dimension.NewDimension(map[dimension.DimSlot]int{dimension.DimQ: 1})},
	{Code: "cd", Class: "si", IsBase: true, IsMetric: true, Dimension: dimension.NewDimension(map[dimension.DimSlot]int{dimension.DimF: 1})},

	// Dimensionless pure-number units: definition (scalar, "1").
	{Code: "1", Class: "dimless", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "1"}},
	{Code: "%", Class: "dimless", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 0.01, UnitExpr: "1"}},
	{Code: "[pi]", Class: "const", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 3.14159265358979, UnitExpr: "1"}},
	{Code: "10*", Class: "dimless", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 10, UnitExpr: "1"}},
	{Code: "10^", Class: "dimless", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 10, UnitExpr: "1"}},
	{Code: "mol", Class: "si", IsMetric: true, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 6.0221367e23, UnitExpr: "1"}},

	// SI-derived units built recursively on the base units.
	{Code: "min", Class: "iso1000", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 60, UnitExpr: "s"}},
	{Code: "h", Class: "iso1000", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 60, UnitExpr: "min"}},
	{Code: "d", Class: "iso1000", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 24, UnitExpr: "h"}},
	{Code: "wk", Class: "iso1000", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 7, UnitExpr: "d"}},
	{Code: "mo", Class: "iso1000", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 30, UnitExpr: "d"}},
	{Code: "a", Class: "iso1000", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 365.25, UnitExpr: "d"}},
	{Code: "L", Class: "si", IsMetric: true, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "dm3"}},
	{Code: "sr", Class: "si", IsMetric: true, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "rad2"}},
	{Code: "Hz", Class: "si", IsMetric: true, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "s-1"}},
	{Code: "N", Class: "si", IsMetric: true, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "kg.m/s2"}},
	{Code: "Pa", Class: "si", IsMetric: true, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "N/m2"}},
	{Code: "J", Class: "si", IsMetric: true, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "N.m"}},
	{Code: "W", Class: "si", IsMetric: true, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "J/s"}},
	{Code: "V", Class: "si", IsMetric: true, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "J/C"}},
	{Code: "deg", Class: "iso1000", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1.0 / 180.0, UnitExpr: "[pi].rad"}},

	// International / customary length units.
	{Code: "[in_i]", Class: "intcust", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 2.54, UnitExpr: "cm"}},
	{Code: "[ft_i]", Class: "intcust", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 12, UnitExpr: "[in_i]"}},

	// Special (non-linear) units.
	{Code: "Cel", Class: "si", IsMetric: true, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "Cel", RefValueStr: "1", RefUnitStr: "K"}},
	{Code: "[degF]", Class: "heat", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "degF", RefValueStr: "1", RefUnitStr: "K"}},
	{Code: "[degRe]", Class: "heat", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "degRe", RefValueStr: "1", RefUnitStr: "K"}},
	{Code: "[pH]", Class: "chem", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "pH", RefValueStr: "1", RefUnitStr: "mol/L"}},
	{Code: "Np", Class: "const", IsMetric: true, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "ln", RefValueStr: "1", RefUnitStr: "1"}},
	{Code: "B", Class: "const", IsMetric: true, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "lg", RefValueStr: "1", RefUnitStr: "1"}},
	{Code: "B[W]", Class: "const", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "lg", RefValueStr: "1", RefUnitStr: "W"}},
	{Code: "[p'diop]", Class: "clinical", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "tanTimes100", RefValueStr: "1", RefUnitStr: "rad"}},
	{Code: "%[slope]", Class: "clinical", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "100tan", RefValueStr: "1", RefUnitStr: "deg"}},
	{Code: "[hp'_X]", Class: "homeopathic", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "hpX", RefValueStr: "1", RefUnitStr: "1"}},
	{Code: "[hp'_C]", Class: "homeopathic", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "hpC", RefValueStr: "1", RefUnitStr: "1"}},
	{Code: "[hp'_M]", Class: "homeopathic", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "hpM", RefValueStr: "1", RefUnitStr: "1"}},
	{Code: "[hp'_Q]", Class: "homeopathic", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "hpQ", RefValueStr: "1", RefUnitStr: "1"}},
	{Code: "[m/s2/Hz^(1/2)]", Class: "clinical", IsMetric: false, IsSpecial: true, Definition: UnitDefinition{Kind: DefinitionSpecial, FunctionName: "sqrt", RefValueStr: "1", RefUnitStr: "m/s2/Hz"}},

	// Arbitrary (procedure-defined) units.
	{Code: "[IU]", Class: "arbitrary", Property: "arbitrary", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "1"}},
	{Code: "[arb'U]", Class: "arbitrary", Property: "arbitrary", IsMetric: false, Definition: UnitDefinition{Kind: DefinitionScalar, Scalar: 1, UnitExpr: "1"}},
}

var (
	prefixBySymbol map[string]Prefix
	unitByCode     map[string]UnitRecord
)

func init() {
	prefixBySymbol = make(map[string]Prefix, len(prefixes))
	for _, p := range prefixes {
		prefixBySymbol[p.Symbol] = p
	}

	unitByCode = make(map[string]UnitRecord, len(units))
	for _, u := range units {
		unitByCode[u.Code] = u
	}
}

// LookupPrefix returns the Prefix registered under symbol.
func LookupPrefix(symbol string) (Prefix, bool) {
	p, ok := prefixBySymbol[symbol]
	return p, ok
}

// LookupUnit returns the UnitRecord registered under code.
func LookupUnit(code string) (UnitRecord, bool) {
	u, ok := unitByCode[code]
	return u, ok
}

// prefixSplit is a candidate (prefix, unit) decomposition of an atom.
type prefixSplit struct {
	prefix Prefix
	unit   UnitRecord
}

// SplitPrefixAtom tries every registered prefix as a leading substring of
// atom and accepts a split when the remaining suffix is a registered
// metric unit. Per spec.md §4.2, ties are broken by longest-prefix match;
// if the longest match is itself ambiguous (two distinct prefixes of the
// same maximal length both split successfully), the split is rejected as
// not unique.
func SplitPrefixAtom(atom string) (Prefix, UnitRecord, bool) {
	var candidates []prefixSplit
	for _, p := range prefixes {
		if len(p.Symbol) >= len(atom) {
			continue
		}
		if atom[:len(p.Symbol)] != p.Symbol {
			continue
		}
		suffix := atom[len(p.Symbol):]
		u, ok := unitByCode[suffix]
		if !ok || !u.IsMetric {
			continue
		}
		candidates = append(candidates, prefixSplit{prefix: p, unit: u})
	}

	if len(candidates) == 0 {
		return Prefix{}, UnitRecord{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i].prefix.Symbol) > len(candidates[j].prefix.Symbol)
	})

	if len(candidates) > 1 && len(candidates[0].prefix.Symbol) == len(candidates[1].prefix.Symbol) {
		return Prefix{}, UnitRecord{}, false
	}

	best := candidates[0]
	return best.prefix, best.unit, true
}
