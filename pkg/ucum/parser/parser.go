// Package parser implements a recursive-descent parser over the UCUM
// grammar. It never aborts: malformed input yields whatever AST could be
// recovered plus a Diagnostics record, following the teacher's
// accumulate-and-continue parsing discipline (internal/codegen/parser).
package parser

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/atomic-ehr/ucum/pkg/ucum/ast"
	"github.com/atomic-ehr/ucum/pkg/ucum/diag"
	"github.com/atomic-ehr/ucum/pkg/ucum/lexer"
	"github.com/atomic-ehr/ucum/pkg/ucum/registry"
)

// ParseResult is the total result of parsing a UCUM expression: an AST
// (present whenever enough of the input was understood) plus whatever
// errors and warnings were accumulated along the way.
type ParseResult struct {
	AST      ast.Expression
	Errors   []diag.ParseError
	Warnings []diag.ParseWarning
	Source   string
}

// Parse tokenizes and parses source, always returning a ParseResult.
func Parse(source string) *ParseResult {
	p := &parser{
		tokens: lexer.Tokenize(source),
		diag:   diag.New(),
		source: source,
	}
	tree := p.parseMainTerm()

	if !p.atEOF() {
		tok := p.peek()
		p.diag.AddError(diag.ParseError{
			Kind:     diag.ErrorKindUnexpectedToken,
			Message:  fmt.Sprintf("unexpected trailing input %q", tok.Text),
			Position: tok.Position,
			Length:   max(tok.Length, 1),
			Token:    tok.Text,
		})
	}

	return &ParseResult{
		AST:      tree,
		Errors:   p.diag.Errors,
		Warnings: p.diag.Warnings,
		Source:   source,
	}
}

type parser struct {
	tokens []lexer.Token
	pos    int
	diag   *diag.Diagnostics
	source string
}

func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) atEOF() bool {
	return p.peek().Kind == lexer.EOF
}

// parseMainTerm handles the grammar's top-level "'/' term | term" rule: a
// leading slash negates the whole term that follows.
func (p *parser) parseMainTerm() ast.Expression {
	if p.peek().Kind == lexer.SLASH {
		slash := p.advance()
		operand := p.parseTerm()
		if operand == nil {
			return nil
		}
		return &ast.Unary{
			Op:      ast.OpNegate,
			Operand: operand,
			Sp:      ast.Span{Position: slash.Position, Length: spanEnd(operand) - slash.Position},
		}
	}
	return p.parseTerm()
}

// parseTerm implements the left-associative "term ('.'|'/') component"
// production.
func (p *parser) parseTerm() ast.Expression {
	left := p.parseComponent()
	if left == nil {
		return nil
	}

	for p.peek().Kind == lexer.DOT || p.peek().Kind == lexer.SLASH {
		opTok := p.advance()
		op := ast.OpMul
		if opTok.Kind == lexer.SLASH {
			op = ast.OpDiv
		}
		right := p.parseComponent()
		if right == nil {
			// parseComponent already recorded the error and synchronized
			// to '.', '/', ')' or EOF; resume from there.
			continue
		}
		left = &ast.Binary{
			Op:    op,
			Left:  left,
			Right: right,
			Sp:    ast.Span{Position: left.Span().Position, Length: spanEnd(right) - left.Span().Position},
		}
	}
	return left
}

// parseComponent implements "annotatable annotation? | annotation | factor
// | '(' term ')'".
func (p *parser) parseComponent() ast.Expression {
	tok := p.peek()

	switch tok.Kind {
	case lexer.LPAREN:
		return p.parseGroup()

	case lexer.ATOM:
		p.advance()
		unit := p.buildUnit(tok)
		return p.attachUnitAnnotation(unit)

	case lexer.DIGITS:
		p.advance()
		value, err := parseDigitLiteral(tok.Text)
		if err != nil {
			p.diag.AddError(diag.ParseError{
				Kind:     diag.ErrorKindInvalidNumber,
				Message:  err.Error(),
				Position: tok.Position,
				Length:   tok.Length,
				Token:    tok.Text,
			})
		}
		factor := &ast.Factor{Value: value, Sp: ast.Span{Position: tok.Position, Length: tok.Length}}
		return p.attachFactorAnnotation(factor)

	case lexer.ANNOTATION:
		p.advance()
		return &ast.Factor{
			Value:         1,
			Annotation:    tok.Text,
			HasAnnotation: true,
			Sp:            ast.Span{Position: tok.Position, Length: tok.Length},
		}

	default:
		p.diag.AddError(diag.ParseError{
			Kind:     diag.ErrorKindUnexpectedToken,
			Message:  fmt.Sprintf("unexpected token %q", tok.Text),
			Position: tok.Position,
			Length:   max(tok.Length, 1),
			Token:    tok.Text,
		})
		p.synchronize()
		return nil
	}
}

func (p *parser) parseGroup() ast.Expression {
	open := p.advance() // consume '('
	inner := p.parseTerm()

	if p.peek().Kind == lexer.RPAREN {
		close := p.advance()
		return &ast.Group{Inner: inner, Sp: ast.Span{Position: open.Position, Length: close.Position + close.Length - open.Position}}
	}

	end := p.peek()
	p.diag.AddError(diag.ParseError{
		Kind:     diag.ErrorKindUnexpectedEOF,
		Message:  "missing closing ')'",
		Position: end.Position,
		Length:   1,
		Token:    end.Text,
	})

	endPos := open.Position + open.Length
	if inner != nil {
		endPos = spanEnd(inner)
	}
	return &ast.Group{Inner: inner, Sp: ast.Span{Position: open.Position, Length: endPos - open.Position}}
}

// buildUnit resolves tok's text against the registry (whole-atom, then
// prefix+metric split, then deferred-unknown) and consumes a trailing
// exponent if present.
func (p *parser) buildUnit(tok lexer.Token) *ast.Unit {
	prefix, hasPrefix, atom := resolveAtom(tok.Text)
	u := &ast.Unit{
		Prefix:    prefix,
		HasPrefix: hasPrefix,
		Atom:      atom,
		Exponent:  1,
		Sp:        ast.Span{Position: tok.Position, Length: tok.Length},
	}

	if value, format, ok := p.tryParseExponent(tok); ok {
		u.Exponent = value
		u.HasExponent = true
		u.ExponentFormat = format
	}
	u.Sp.Length = p.lastConsumedEnd() - u.Sp.Position
	return u
}

// tryParseExponent implements "('+'|'-')? DIGITS | '^' ('+'|'-')? DIGITS".
func (p *parser) tryParseExponent(unitTok lexer.Token) (int, ast.ExponentFormat, bool) {
	switch p.peek().Kind {
	case lexer.CARET:
		caret := p.advance()
		sign := 1
		if p.peek().Kind == lexer.PLUS || p.peek().Kind == lexer.MINUS {
			s := p.advance()
			if s.Kind == lexer.MINUS {
				sign = -1
			}
		}
		if p.peek().Kind != lexer.DIGITS {
			tok := p.peek()
			p.diag.AddError(diag.ParseError{
				Kind:     diag.ErrorKindUnexpectedToken,
				Message:  "expected digits after '^'",
				Position: tok.Position,
				Length:   max(tok.Length, 1),
				Token:    tok.Text,
			})
			return 0, ast.ExponentFormatNone, false
		}
		digits := p.advance()
		value, err := parseDigitLiteral(digits.Text)
		if err != nil {
			p.diag.AddError(diag.ParseError{Kind: diag.ErrorKindInvalidNumber, Message: err.Error(), Position: digits.Position, Length: digits.Length, Token: digits.Text})
		}
		p.diag.AddWarning(diag.ParseWarning{
			Kind:       diag.WarningKindDeprecatedSyntax,
			Message:    "caret exponent form is deprecated; prefer the implicit or signed form",
			Position:   caret.Position,
			Length:     digits.Position + digits.Length - caret.Position,
			Suggestion: "drop the leading '^'",
		})
		return sign * int(value), ast.ExponentFormatCaret, true

	case lexer.PLUS, lexer.MINUS:
		signTok := p.advance()
		sign := 1
		if signTok.Kind == lexer.MINUS {
			sign = -1
		}
		if p.peek().Kind != lexer.DIGITS {
			tok := p.peek()
			p.diag.AddError(diag.ParseError{
				Kind:     diag.ErrorKindUnexpectedToken,
				Message:  "expected digits after exponent sign",
				Position: tok.Position,
				Length:   max(tok.Length, 1),
				Token:    tok.Text,
			})
			return 0, ast.ExponentFormatNone, false
		}
		digits := p.advance()
		value, err := parseDigitLiteral(digits.Text)
		if err != nil {
			p.diag.AddError(diag.ParseError{Kind: diag.ErrorKindInvalidNumber, Message: err.Error(), Position: digits.Position, Length: digits.Length, Token: digits.Text})
		}
		return sign * int(value), ast.ExponentFormatSigned, true

	case lexer.DIGITS:
		digits := p.advance()
		value, err := parseDigitLiteral(digits.Text)
		if err != nil {
			p.diag.AddError(diag.ParseError{Kind: diag.ErrorKindInvalidNumber, Message: err.Error(), Position: digits.Position, Length: digits.Length, Token: digits.Text})
		}
		return int(value), ast.ExponentFormatImplicit, true

	default:
		return 0, ast.ExponentFormatNone, false
	}
}

func (p *parser) attachUnitAnnotation(u *ast.Unit) ast.Expression {
	if p.peek().Kind != lexer.ANNOTATION {
		return u
	}
	tok := p.advance()
	u.Annotation = tok.Text
	u.HasAnnotation = true
	u.Sp.Length = tok.Position + tok.Length - u.Sp.Position
	p.warnIfLongAnnotation(tok)
	return u
}

func (p *parser) attachFactorAnnotation(f *ast.Factor) ast.Expression {
	if p.peek().Kind != lexer.ANNOTATION {
		return f
	}
	tok := p.advance()
	f.Annotation = tok.Text
	f.HasAnnotation = true
	f.Sp.Length = tok.Position + tok.Length - f.Sp.Position
	p.warnIfLongAnnotation(tok)
	return f
}

func (p *parser) warnIfLongAnnotation(tok lexer.Token) {
	if len(tok.Text) > 50 {
		p.diag.AddWarning(diag.ParseWarning{
			Kind:     diag.WarningKindAmbiguous,
			Message:  "annotation longer than 50 characters",
			Position: tok.Position,
			Length:   tok.Length,
		})
	}
}

// synchronize advances past an unexpected token until a safe resume point:
// '.', '/', ')', or EOF.
func (p *parser) synchronize() {
	for !p.atEOF() {
		switch p.peek().Kind {
		case lexer.DOT, lexer.SLASH, lexer.RPAREN:
			return
		}
		p.advance()
	}
}

// lastConsumedEnd returns the byte offset just past the most recently
// consumed token, used to extend a Unit's span across its exponent.
func (p *parser) lastConsumedEnd() int {
	if p.pos == 0 {
		return 0
	}
	prev := p.tokens[p.pos-1]
	return prev.Position + prev.Length
}

func spanEnd(e ast.Expression) int {
	return e.Span().Position + e.Span().Length
}

// resolveAtom disambiguates an ATOM token's text against the registry per
// the grammar's three-way rule: whole-atom match, then unique prefix+metric
// split, then deferred-unknown (left for the canonical engine to reject).
func resolveAtom(text string) (prefix string, hasPrefix bool, atom string) {
	if _, ok := registry.LookupUnit(text); ok {
		return "", false, text
	}
	if p, u, ok := registry.SplitPrefixAtom(text); ok {
		return p.Symbol, true, u.Code
	}
	return "", false, text
}

// parseDigitLiteral parses a pure-digit token through shopspring/decimal so
// a pathologically long run is reported as invalid_number instead of
// silently overflowing uint64, mirroring the teacher's
// decimal.NewFromString boundary-parsing idiom.
func parseDigitLiteral(text string) (uint64, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", text, err)
	}
	bi := d.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("number %q out of range", text)
	}
	return bi.Uint64(), nil
}
