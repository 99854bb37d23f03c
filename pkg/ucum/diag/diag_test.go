package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostics_AddAndHas(t *testing.T) {
	d := New()
	assert.False(t, d.HasErrors())
	assert.False(t, d.HasWarnings())

	d.AddError(ParseError{Kind: ErrorKindSyntax, Message: "bad input"})
	assert.True(t, d.HasErrors())

	d.AddWarning(ParseWarning{Kind: WarningKindAmbiguous, Message: "long annotation"})
	assert.True(t, d.HasWarnings())
}

func TestParseError_Error(t *testing.T) {
	err := ParseError{Message: "unexpected token"}
	assert.Equal(t, "unexpected token", err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	d := New()
	d.AddError(ParseError{Message: "first"})

	other := New()
	other.AddError(ParseError{Message: "second"})
	other.AddWarning(ParseWarning{Message: "a warning"})

	d.Merge(other)
	assert.Len(t, d.Errors, 2)
	assert.Len(t, d.Warnings, 1)

	d.Merge(nil)
	assert.Len(t, d.Errors, 2)
}
