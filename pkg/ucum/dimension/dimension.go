// Package dimension implements the seven-slot base-dimension exponent
// vector used by the canonical-form engine. Split out from the main ucum
// package so that both pkg/ucum/registry and pkg/ucum can depend on it
// without a cycle.
package dimension

import (
	"fmt"
	"sort"
	"strings"
)

// DimSlot names one of the seven base-unit dimension slots. The set and
// letters are fixed by spec.md §3.2/§4.3: m→L, s→T, g→M, rad→A, K→Θ, C→Q,
// cd→F. Modeled on the small, closed Dimension enum in the ctessum/unit
// style example (other_examples) rather than a general string-keyed map,
// since the slot set never grows at runtime.
type DimSlot int

const (
	DimL     DimSlot = iota // length (m)
	DimM                    // mass (g)
	DimT                    // time (s)
	DimA                    // plane angle (rad)
	DimTheta                // temperature (K)
	DimQ                    // electric charge (C)
	DimF                    // luminous intensity (cd)
	numDimSlots
)

func (s DimSlot) String() string {
	switch s {
	case DimL:
		return "L"
	case DimM:
		return "M"
	case DimT:
		return "T"
	case DimA:
		return "A"
	case DimTheta:
		return "Θ"
	case DimQ:
		return "Q"
	case DimF:
		return "F"
	default:
		return "?"
	}
}

// BaseUnitSlot maps a base-unit code to its dimension slot. Exported so
// both pkg/ucum/registry (to tag base UnitRecords) and pkg/ucum (to
// recompute Dimension from normalized BaseTerms) share one source of truth.
var BaseUnitSlot = map[string]DimSlot{
	"m":   DimL,
	"g":   DimM,
	"s":   DimT,
	"rad": DimA,
	"K":   DimTheta,
	"C":   DimQ,
	"cd":  DimF,
}

// Dimension is a dense seven-slot exponent vector. A slot holding 0 is
// equivalent to that slot being absent, per spec.md §3.2's invariant; since
// the representation is a fixed array rather than a sparse map, that
// invariant is automatically satisfied by Equals doing element-wise
// comparison instead of key-set comparison.
type Dimension struct {
	exp [numDimSlots]int
}

// Get returns the exponent at slot, 0 if unset.
func (d Dimension) Get(slot DimSlot) int {
	return d.exp[slot]
}

// NewDimension builds a Dimension from slot->exponent pairs, ignoring
// zero-valued entries.
func NewDimension(slots map[DimSlot]int) Dimension {
	var d Dimension
	for slot, exp := range slots {
		d.exp[slot] = exp
	}
	return d
}

// IsDimensionless reports whether every slot is zero.
func (d Dimension) IsDimensionless() bool {
	for _, e := range d.exp {
		if e != 0 {
			return false
		}
	}
	return true
}

// Equals compares two dimensions slot-by-slot.
func (d Dimension) Equals(other Dimension) bool {
	return d.exp == other.exp
}

// Mul adds two dimensions' exponents (used when combining unit terms under
// multiplication).
func (d Dimension) Mul(other Dimension) Dimension {
	var out Dimension
	for i := range d.exp {
		out.exp[i] = d.exp[i] + other.exp[i]
	}
	return out
}

// Div subtracts other's exponents from d's (used when combining unit terms
// under division).
func (d Dimension) Div(other Dimension) Dimension {
	var out Dimension
	for i := range d.exp {
		out.exp[i] = d.exp[i] - other.exp[i]
	}
	return out
}

// Pow multiplies every exponent by n.
func (d Dimension) Pow(n int) Dimension {
	var out Dimension
	for i := range d.exp {
		out.exp[i] = d.exp[i] * n
	}
	return out
}

// String renders the dimension as space-separated "SLOT^EXP" atoms sorted
// by slot name, e.g. "L M T^-2", following the unitPrinters sort-then-join
// idiom from the ctessum/unit style example.
func (d Dimension) String() string {
	type atom struct {
		slot DimSlot
		exp  int
	}
	var atoms []atom
	for i, e := range d.exp {
		if e != 0 {
			atoms = append(atoms, atom{DimSlot(i), e})
		}
	}
	if len(atoms) == 0 {
		return "1"
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].slot.String() < atoms[j].slot.String() })

	var b strings.Builder
	for i, a := range atoms {
		if i > 0 {
			b.WriteByte(' ')
		}
		if a.exp == 1 {
			fmt.Fprintf(&b, "%s", a.slot)
		} else {
			fmt.Fprintf(&b, "%s^%d", a.slot, a.exp)
		}
	}
	return b.String()
}
