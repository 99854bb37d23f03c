package special

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownFunctions(t *testing.T) {
	names := []string{
		"Cel", "degF", "degRe", "ln", "lg", "lgTimes2", "ld", "pH",
		"tanTimes100", "100tan", "hpX", "hpC", "hpM", "hpQ", "sqrt",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			fn, ok := Lookup(name)
			require.True(t, ok)
			assert.NotNil(t, fn.Forward)
			assert.NotNil(t, fn.Inverse)
			assert.NotNil(t, fn.InputDomain)
			assert.NotNil(t, fn.OutputDomain)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("notAFunction")
	assert.False(t, ok)
}

func TestCel_RoundTrip(t *testing.T) {
	fn, _ := Lookup("Cel")
	assert.InDelta(t, 0, fn.Forward(273.15), 1e-9)
	assert.InDelta(t, 273.15, fn.Inverse(0), 1e-9)
	assert.InDelta(t, 100, fn.Forward(fn.Inverse(100)), 1e-9)
}

func TestDegF_KnownPoints(t *testing.T) {
	fn, _ := Lookup("degF")
	assert.InDelta(t, 32, fn.Forward(273.15), 1e-9)
	assert.InDelta(t, 212, fn.Forward(373.15), 1e-9)
}

func TestPH_RoundTrip(t *testing.T) {
	fn, _ := Lookup("pH")
	got := fn.Forward(1e-7)
	assert.InDelta(t, 7, got, 1e-9)
	assert.InDelta(t, 1e-7, fn.Inverse(got), 1e-15)
}

func TestInputDomains(t *testing.T) {
	cel, _ := Lookup("Cel")
	assert.False(t, cel.InputDomain(-1))
	assert.True(t, cel.InputDomain(0))

	ln, _ := Lookup("ln")
	assert.False(t, ln.InputDomain(0))
	assert.False(t, ln.InputDomain(-1))
	assert.True(t, ln.InputDomain(1))

	sqrt, _ := Lookup("sqrt")
	assert.True(t, sqrt.InputDomain(0))
	assert.False(t, sqrt.InputDomain(-1))
}

func TestSqrt(t *testing.T) {
	fn, _ := Lookup("sqrt")
	assert.Equal(t, 3.0, fn.Forward(9))
	assert.Equal(t, 9.0, fn.Inverse(3))
}

func TestIsNaNOrInf(t *testing.T) {
	assert.True(t, IsNaNOrInf(math.NaN()))
	assert.True(t, IsNaNOrInf(math.Inf(1)))
	assert.True(t, IsNaNOrInf(math.Inf(-1)))
	assert.False(t, IsNaNOrInf(1.0))
}
