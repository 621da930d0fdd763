// Package parser implements a recursive-descent, predictive parser for Co.
// It turns a token stream into an *ast.Program, preserving source
// positions at every leaf and operator node (spec invariant I3).
//
// The grammar (spec.md §4.2) fixes operator precedence structurally as a
// tower of tiers — logical_expr > comparison > arith > term > factor —
// rather than through a Pratt precedence table, so each tier gets its own
// parsing method (parseLogicalExpr, parseComparison, parseArith,
// parseTerm, parseFactor) that calls down into the next-tighter tier.
// This mirrors the teacher's two-token lookahead (CurrToken/NextToken) and
// its habit of collecting a descriptive error instead of panicking, while
// trading the teacher's Pratt dispatch tables for spec.md's fixed grammar.
package parser

import (
	"github.com/co-lang/co/internal/ast"
	"github.com/co-lang/co/internal/coerr"
	"github.com/co-lang/co/internal/lexer"
	"github.com/co-lang/co/internal/token"
)

// Parser holds the parsing state: the lexer, a two-token lookahead window,
// and the first error encountered (parsing is fatal-on-first-error, per
// spec.md §7; once err is set every parse method becomes a no-op so the
// top-level Parse call can unwind cleanly).
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token
	err  error
}

// New creates a Parser over src and primes the two-token lookahead.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.advance()
	p.advance()
	return p
}

// Parse parses the whole program and returns the first error encountered
// in either the lexer or the parser, if any.
func (p *Parser) Parse() (*ast.Program, error) {
	body := p.parseStatementList(token.EOF)
	if p.err != nil {
		return nil, p.err
	}
	return &ast.Program{Body: body}, nil
}

func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	p.cur = p.peek
	next, err := p.lex.NextToken()
	if err != nil {
		p.err = err
		return
	}
	p.peek = next
}

// failf records a ParserError at the current token's position. Only the
// first failure sticks; later calls are ignored so cascading errors from
// an already-broken parse don't clobber the original diagnostic.
func (p *Parser) failf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = coerr.New(coerr.Parser, p.cur.Line, p.cur.Column, format, args...)
}

// expect asserts the current token has type tt, consumes it, and returns
// it; otherwise it records a ParserError and returns the zero Token.
func (p *Parser) expect(tt token.Type) token.Token {
	if p.err != nil {
		return token.Token{}
	}
	if p.cur.Type != tt {
		p.failf("Expected '%s' but found %q", tt, p.cur.Lexeme)
		return token.Token{}
	}
	t := p.cur
	p.advance()
	return t
}

func (p *Parser) at(tt token.Type) bool {
	return p.err == nil && p.cur.Type == tt
}

func (p *Parser) atAny(tts ...token.Type) bool {
	if p.err != nil {
		return false
	}
	for _, tt := range tts {
		if p.cur.Type == tt {
			return true
		}
	}
	return false
}
