package ucum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_LinearUnits(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{"kg to g", 1, "kg", "g", 1000},
		{"km/h to m/s", 36, "km/h", "m/s", 10},
		{"min to s", 1, "min", "s", 60},
		{"h to s", 1, "h", "s", 3600},
		{"mL to L", 1000, "mL", "L", 1},
		{"mg/dL to g/L", 100, "mg/dL", "g/L", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConvert_SpecialUnits(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		want  float64
	}{
		{"0 Cel to K", 0, "Cel", "K", 273.15},
		{"100 Cel to degF", 100, "Cel", "[degF]", 212},
		{"-40 Cel to degF", -40, "Cel", "[degF]", -40},
		{"7 pH to mol/L", 7, "[pH]", "mol/L", 1e-7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9*absOrOne(tt.want))
		})
	}
}

func absOrOne(x float64) float64 {
	if x == 0 {
		return 1
	}
	if x < 0 {
		return -x
	}
	return x
}

func TestConvert_SpecialRoundTrip(t *testing.T) {
	molPerL, err := Convert(7, "[pH]", "mol/L")
	require.NoError(t, err)

	back, err := Convert(molPerL, "mol/L", "[pH]")
	require.NoError(t, err)
	assert.InDelta(t, 7, back, 1e-6)
}

func TestConvert_DomainViolations(t *testing.T) {
	t.Run("negative Kelvin to Celsius", func(t *testing.T) {
		_, err := Convert(-1, "K", "Cel")
		assert.True(t, errors.Is(err, ErrDomainViolation))
	})

	t.Run("zero concentration to pH", func(t *testing.T) {
		_, err := Convert(0, "mol/L", "[pH]")
		assert.True(t, errors.Is(err, ErrDomainViolation))
	})
}

func TestConvert_IncompatibleDimensions(t *testing.T) {
	_, err := Convert(1, "kg", "m")
	assert.True(t, errors.Is(err, ErrIncompatibleDimensions))
}

func TestConvert_UnknownUnit(t *testing.T) {
	_, err := Convert(1, "xyzzy", "g")
	assert.True(t, errors.Is(err, ErrRegistryMiss))
}

func TestConvert_Reflexivity(t *testing.T) {
	for _, code := range []string{"kg", "km/h", "Cel", "[pH]", "mol/L"} {
		got, err := Convert(5, code, code)
		require.NoError(t, err)
		assert.Equal(t, 5.0, got)
	}
}

func TestIsConvertible(t *testing.T) {
	ok, err := IsConvertible("kg", "g")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsConvertible("kg", "m")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConversionFactor(t *testing.T) {
	factor, err := ConversionFactor("kg", "g")
	require.NoError(t, err)
	assert.InDelta(t, 1000, factor, 1e-9)

	_, err = ConversionFactor("Cel", "K")
	assert.True(t, errors.Is(err, ErrSpecialUnitArithmetic))
}

func TestIsKnownUnit(t *testing.T) {
	assert.True(t, IsKnownUnit("kg"))
	assert.True(t, IsKnownUnit("mmol/L"))
	assert.False(t, IsKnownUnit("not-a-unit"))
}

func TestUnitError(t *testing.T) {
	err := wrapUnit("kg..m", ErrInvalidUnit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kg..m")
	assert.True(t, errors.Is(err, ErrInvalidUnit))

	var unitErr *UnitError
	assert.True(t, errors.As(err, &unitErr))
	assert.Equal(t, "kg..m", unitErr.Unit)
}

func TestToCanonical_InvalidExpression(t *testing.T) {
	_, diags, err := ToCanonical("kg..m")
	require.Error(t, err)
	assert.NotEmpty(t, diags.Errors)
}
