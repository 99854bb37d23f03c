package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize_SimpleUnit(t *testing.T) {
	tokens := Tokenize("kg")
	require.Len(t, tokens, 2)
	assert.Equal(t, ATOM, tokens[0].Kind)
	assert.Equal(t, "kg", tokens[0].Text)
	assert.Equal(t, EOF, tokens[1].Kind)
}

func TestTokenize_CompoundExpression(t *testing.T) {
	tokens := Tokenize("kg.m/s2")
	assert.Equal(t, []TokenKind{ATOM, DOT, ATOM, SLASH, ATOM, DIGITS, EOF}, kinds(tokens))
}

func TestTokenize_BracketedAtom(t *testing.T) {
	tokens := Tokenize("[in_i]")
	require.Len(t, tokens, 2)
	assert.Equal(t, ATOM, tokens[0].Kind)
	assert.Equal(t, "[in_i]", tokens[0].Text)
}

func TestTokenize_UnterminatedBracket(t *testing.T) {
	tokens := Tokenize("[in_i")
	require.Len(t, tokens, 2)
	assert.Equal(t, ILLEGAL, tokens[0].Kind)
}

func TestTokenize_Annotation(t *testing.T) {
	tokens := Tokenize("mg{total}")
	require.Len(t, tokens, 3)
	assert.Equal(t, ATOM, tokens[0].Kind)
	assert.Equal(t, ANNOTATION, tokens[1].Kind)
	assert.Equal(t, "total", tokens[1].Text)
}

func TestTokenize_UnterminatedAnnotation(t *testing.T) {
	tokens := Tokenize("mg{total")
	require.Len(t, tokens, 3)
	assert.Equal(t, ILLEGAL, tokens[1].Kind)
}

func TestTokenize_ExponentForms(t *testing.T) {
	tokens := Tokenize("m-2")
	assert.Equal(t, []TokenKind{ATOM, MINUS, DIGITS, EOF}, kinds(tokens))

	tokens = Tokenize("m^2")
	assert.Equal(t, []TokenKind{ATOM, CARET, DIGITS, EOF}, kinds(tokens))
}

func TestTokenize_PowerAtom(t *testing.T) {
	tokens := Tokenize("10*3")
	require.Len(t, tokens, 3)
	assert.Equal(t, ATOM, tokens[0].Kind)
	assert.Equal(t, "10*", tokens[0].Text)
	assert.Equal(t, DIGITS, tokens[1].Kind)
	assert.Equal(t, "3", tokens[1].Text)
}

func TestTokenize_PlainDigitsNotFollowedBySigil(t *testing.T) {
	tokens := Tokenize("10")
	require.Len(t, tokens, 2)
	assert.Equal(t, DIGITS, tokens[0].Kind)
	assert.Equal(t, "10", tokens[0].Text)
}

func TestTokenize_Whitespace(t *testing.T) {
	tokens := Tokenize("kg m")
	assert.Equal(t, []TokenKind{ATOM, ILLEGAL, ATOM, EOF}, kinds(tokens))
}

func TestTokenize_Positions(t *testing.T) {
	tokens := Tokenize("kg/m")
	assert.Equal(t, 0, tokens[0].Position)
	assert.Equal(t, 2, tokens[1].Position)
	assert.Equal(t, 3, tokens[2].Position)
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, "ATOM", ATOM.String())
	assert.Equal(t, "EOF", EOF.String())
	assert.Equal(t, "UNKNOWN", TokenKind(999).String())
}
