package parser

import (
	"strconv"

	"github.com/co-lang/co/internal/ast"
	"github.com/co-lang/co/internal/token"
)

// parseLogicalExpr implements: comparison ( ('and'|'or') comparison )*
// Both operators are left-associative and share one precedence tier, so
// "a and b or c" parses as "(a and b) or c" (spec.md P5).
func (p *Parser) parseLogicalExpr() ast.Expr {
	left := p.parseComparison()
	for p.atAny(token.AND, token.OR) {
		opTok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseComparison()
		left = &ast.BinaryOp{Token: opTok, Op: op, Left: left, Right: right}
	}
	return left
}

// parseComparison implements: 'not' comparison | arith ( relop arith )*
func (p *Parser) parseComparison() ast.Expr {
	if p.at(token.NOT) {
		tok := p.cur
		p.advance()
		child := p.parseComparison()
		return &ast.UnaryOp{Token: tok, Op: token.NOT, Child: child}
	}
	left := p.parseArith()
	for p.atAny(token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE) {
		opTok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseArith()
		left = &ast.BinaryOp{Token: opTok, Op: op, Left: left, Right: right}
	}
	return left
}

// parseArith implements: term ( ('+'|'-') term )*
func (p *Parser) parseArith() ast.Expr {
	left := p.parseTerm()
	for p.atAny(token.PLUS, token.MINUS) {
		opTok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseTerm()
		left = &ast.BinaryOp{Token: opTok, Op: op, Left: left, Right: right}
	}
	return left
}

// parseTerm implements: factor ( ('*'|'/'|'//'|'%') factor )*
func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for p.atAny(token.STAR, token.SLASH, token.IDIV, token.PERCENT) {
		opTok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseFactor()
		left = &ast.BinaryOp{Token: opTok, Op: op, Left: left, Right: right}
	}
	return left
}

// parseFactor implements:
//
//	number | bool | string | '(' logical_expr ')'
//	| ('+'|'-') factor | access | func_call | var
func (p *Parser) parseFactor() ast.Expr {
	if p.err != nil {
		return nil
	}
	switch {
	case p.atAny(token.PLUS, token.MINUS):
		tok := p.cur
		op := p.cur.Type
		p.advance()
		child := p.parseFactor()
		return &ast.UnaryOp{Token: tok, Op: op, Child: child}

	case p.at(token.LPAREN):
		p.advance()
		e := p.parseLogicalExpr()
		p.expect(token.RPAREN)
		return e

	case p.at(token.INT):
		return p.parseIntLit()

	case p.at(token.FLOAT):
		return p.parseFloatLit()

	case p.at(token.BOOL):
		tok := p.cur
		p.advance()
		return &ast.BoolLit{Token: tok, Value: tok.Lexeme == "true"}

	case p.at(token.STRING):
		tok := p.cur
		p.advance()
		str := &ast.StrLit{Token: tok, Value: tok.Lexeme}
		if p.at(token.LBRACKET) {
			return p.parseAccessFrom(str)
		}
		return str

	case p.at(token.IDENT):
		if p.peek.Type == token.LPAREN {
			return p.parseFuncCallExpr()
		}
		tok := p.cur
		p.advance()
		v := &ast.Var{Token: tok, Name: tok.Lexeme}
		if p.at(token.LBRACKET) {
			return p.parseAccessFrom(v)
		}
		return v

	default:
		p.failf("Unexpected token %q", p.cur.Lexeme)
		return nil
	}
}

// parseIntLit trusts the lexer to have already matched a digit-only
// lexeme, so the only ParseInt failure left is magnitude overflow, which
// still must not panic the parser.
func (p *Parser) parseIntLit() ast.Expr {
	tok := p.cur
	p.advance()
	v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.failf("Integer literal %q out of range", tok.Lexeme)
		return &ast.IntLit{Token: tok, Value: 0}
	}
	return &ast.IntLit{Token: tok, Value: v}
}

func (p *Parser) parseFloatLit() ast.Expr {
	tok := p.cur
	p.advance()
	v, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		p.failf("Float literal %q out of range", tok.Lexeme)
		return &ast.FloatLit{Token: tok, Value: 0}
	}
	return &ast.FloatLit{Token: tok, Value: v}
}

// parseAccessFrom parses the '[' start (':' end)? ']' suffix that follows
// a string literal or variable reference, per the 'access' production.
func (p *Parser) parseAccessFrom(accessor ast.Expr) ast.Expr {
	lb := p.expect(token.LBRACKET)
	start := p.parseLogicalExpr()
	var end ast.Expr
	if p.at(token.COLON) {
		p.advance()
		end = p.parseLogicalExpr()
	}
	p.expect(token.RBRACKET)
	return &ast.Access{Token: lb, Accessor: accessor, Start: start, End: end}
}

// parseFuncCallExpr parses identifier '(' args ')' as an expression; the
// statement-level caller marks IsStatement afterward when used bare.
func (p *Parser) parseFuncCallExpr() ast.Expr {
	nameTok := p.expect(token.IDENT)
	p.expect(token.LPAREN)
	var args []ast.Expr
	if !p.at(token.RPAREN) {
		for {
			args = append(args, p.parseLogicalExpr())
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN)
	return &ast.FuncCall{Token: nameTok, Name: nameTok.Lexeme, Args: args}
}

// parseRangeExpr parses: 'range' '(' logical_expr ',' logical_expr (',' logical_expr)? ')'
// Only legal as the iterable of a 'for' statement (enforced by the caller,
// which is the only place this is invoked from).
func (p *Parser) parseRangeExpr() ast.Expr {
	rangeTok := p.expect(token.RANGE)
	p.expect(token.LPAREN)
	start := p.parseLogicalExpr()
	p.expect(token.COMMA)
	end := p.parseLogicalExpr()
	var step ast.Expr
	if p.at(token.COMMA) {
		p.advance()
		step = p.parseLogicalExpr()
	}
	p.expect(token.RPAREN)
	return &ast.RangeExpr{Token: rangeTok, Start: start, End: end, Step: step}
}

