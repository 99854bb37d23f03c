package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimension_IsDimensionless(t *testing.T) {
	assert.True(t, Dimension{}.IsDimensionless())
	assert.False(t, NewDimension(map[DimSlot]int{DimL: 1}).IsDimensionless())
}

func TestDimension_Equals(t *testing.T) {
	a := NewDimension(map[DimSlot]int{DimL: 1, DimT: -2})
	b := NewDimension(map[DimSlot]int{DimT: -2, DimL: 1})
	assert.True(t, a.Equals(b))

	c := NewDimension(map[DimSlot]int{DimL: 1})
	assert.False(t, a.Equals(c))
}

func TestDimension_MulDiv(t *testing.T) {
	length := NewDimension(map[DimSlot]int{DimL: 1})
	time := NewDimension(map[DimSlot]int{DimT: 1})

	velocity := length.Div(time)
	assert.Equal(t, 1, velocity.Get(DimL))
	assert.Equal(t, -1, velocity.Get(DimT))

	area := length.Mul(length)
	assert.Equal(t, 2, area.Get(DimL))
}

func TestDimension_Pow(t *testing.T) {
	length := NewDimension(map[DimSlot]int{DimL: 1})
	volume := length.Pow(3)
	assert.Equal(t, 3, volume.Get(DimL))
}

func TestDimension_String(t *testing.T) {
	assert.Equal(t, "1", Dimension{}.String())

	velocity := NewDimension(map[DimSlot]int{DimL: 1, DimT: -1})
	assert.Equal(t, "L T^-1", velocity.String())
}

func TestBaseUnitSlot(t *testing.T) {
	tests := map[string]DimSlot{
		"m":   DimL,
		"g":   DimM,
		"s":   DimT,
		"rad": DimA,
		"K":   DimTheta,
		"C":   DimQ,
		"cd":  DimF,
	}
	for code, slot := range tests {
		got, ok := BaseUnitSlot[code]
		assert.True(t, ok, code)
		assert.Equal(t, slot, got, code)
	}
}
