package parser

import (
	"github.com/co-lang/co/internal/ast"
	"github.com/co-lang/co/internal/token"
)

// parseStatementList parses zero or more statements, stopping as soon as
// the current token matches one of terminators (EOF at the top level,
// RBRACE for any block).
func (p *Parser) parseStatementList(terminators ...token.Type) *ast.StatementList {
	list := &ast.StatementList{Token: p.cur}
	for p.err == nil && !p.atAny(terminators...) {
		stmt := p.parseStatement()
		if p.err != nil {
			break
		}
		if stmt != nil {
			list.Statements = append(list.Statements, stmt)
		}
	}
	return list
}

// parseStatement implements:
//
//	statement := func_decl | var_decl ';' | for | while | conditional
//	           | func_call ';' | assignment ';' | empty
func (p *Parser) parseStatement() ast.Stmt {
	if p.err != nil {
		return nil
	}
	switch {
	case p.at(token.FUNC):
		return p.parseFuncDecl()
	case p.at(token.VAR):
		vd := p.parseVarDecl()
		p.expect(token.SEMICOLON)
		return vd
	case p.at(token.FOR):
		return p.parseFor()
	case p.at(token.WHILE):
		return p.parseWhile()
	case p.at(token.IF):
		return p.parseConditional()
	case p.at(token.BREAK):
		return p.parseBreak()
	case p.at(token.CONTINUE):
		return p.parseContinue()
	case p.at(token.RETURN):
		return p.parseReturn()
	case p.at(token.SEMICOLON):
		return p.parseEmpty()
	case p.at(token.IDENT), p.at(token.STRING):
		return p.parseAssignmentOrCall()
	default:
		p.failf("Unexpected token %q", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseEmpty() ast.Stmt {
	tok := p.expect(token.SEMICOLON)
	return &ast.Empty{Token: tok}
}

func (p *Parser) parseBreak() ast.Stmt {
	tok := p.expect(token.BREAK)
	p.expect(token.SEMICOLON)
	return &ast.Break{Token: tok}
}

func (p *Parser) parseContinue() ast.Stmt {
	tok := p.expect(token.CONTINUE)
	p.expect(token.SEMICOLON)
	return &ast.Continue{Token: tok}
}

func (p *Parser) parseReturn() ast.Stmt {
	tok := p.expect(token.RETURN)
	var val ast.Expr
	if !p.at(token.SEMICOLON) {
		val = p.parseLogicalExpr()
	}
	p.expect(token.SEMICOLON)
	return &ast.Return{Token: tok, Value: val}
}

// parseTypeKeyword consumes and returns one of the four scalar type
// keywords that label a declaration.
func (p *Parser) parseTypeKeyword() token.Token {
	if p.err != nil {
		return token.Token{}
	}
	if !p.atAny(token.INT_KW, token.FLOAT_KW, token.BOOL_KW, token.STR_KW) {
		p.failf("Expected a type but found %q", p.cur.Lexeme)
		return token.Token{}
	}
	t := p.cur
	p.advance()
	return t
}

// parseVarDecl implements:
//
//	var_decl  := 'var' '(' type ')' decl_item (',' decl_item)*
//	decl_item := identifier ('=' logical_expr)?
func (p *Parser) parseVarDecl() *ast.VarDecl {
	varTok := p.expect(token.VAR)
	p.expect(token.LPAREN)
	typeTok := p.parseTypeKeyword()
	p.expect(token.RPAREN)

	decl := &ast.VarDecl{Token: varTok, Type: typeTok.Type}
	for {
		nameTok := p.expect(token.IDENT)
		item := ast.DeclItem{Name: &ast.Var{Token: nameTok, Name: nameTok.Lexeme}, Token: nameTok}
		if p.at(token.ASSIGN) {
			p.advance()
			item.Init = p.parseLogicalExpr()
		}
		decl.Items = append(decl.Items, item)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return decl
}

// parseParam implements: 'var' '(' type ')' identifier ('=' logical_expr)?
func (p *Parser) parseParam() ast.FuncParam {
	p.expect(token.VAR)
	p.expect(token.LPAREN)
	typeTok := p.parseTypeKeyword()
	p.expect(token.RPAREN)
	nameTok := p.expect(token.IDENT)
	param := ast.FuncParam{Type: typeTok.Type, Name: &ast.Var{Token: nameTok, Name: nameTok.Lexeme}}
	if p.at(token.ASSIGN) {
		p.advance()
		param.Default = p.parseLogicalExpr()
	}
	return param
}

// parseFuncDecl implements:
//
//	func_decl := 'func' '(' (type|'void') ')' identifier
//	             '(' param (',' param)* ')' '{' statement_list '}'
func (p *Parser) parseFuncDecl() ast.Stmt {
	funcTok := p.expect(token.FUNC)
	p.expect(token.LPAREN)

	var retType token.Type
	if p.at(token.VOID) {
		retType = token.VOID
		p.advance()
	} else {
		retType = p.parseTypeKeyword().Type
	}
	p.expect(token.RPAREN)

	nameTok := p.expect(token.IDENT)
	p.expect(token.LPAREN)
	var params []ast.FuncParam
	if !p.at(token.RPAREN) {
		for {
			params = append(params, p.parseParam())
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN)

	p.expect(token.LBRACE)
	body := p.parseStatementList(token.RBRACE)
	p.expect(token.RBRACE)

	return &ast.FuncDecl{
		Token:      funcTok,
		ReturnType: retType,
		Name:       nameTok.Lexeme,
		Params:     params,
		Body:       body,
	}
}

// parseFor implements:
//
//	for := 'for' '(' 'var' '(' type ')' identifier 'from'
//	       (range_expr | logical_expr) ')' '{' statement_list '}'
func (p *Parser) parseFor() ast.Stmt {
	forTok := p.expect(token.FOR)
	p.expect(token.LPAREN)
	p.expect(token.VAR)
	p.expect(token.LPAREN)
	typeTok := p.parseTypeKeyword()
	p.expect(token.RPAREN)
	nameTok := p.expect(token.IDENT)
	p.expect(token.FROM)

	var iterable ast.Expr
	if p.at(token.RANGE) {
		iterable = p.parseRangeExpr()
	} else {
		iterable = p.parseLogicalExpr()
	}
	p.expect(token.RPAREN)

	p.expect(token.LBRACE)
	body := p.parseStatementList(token.RBRACE)
	p.expect(token.RBRACE)

	loopVar := &ast.VarDecl{
		Token: nameTok,
		Type:  typeTok.Type,
		Items: []ast.DeclItem{{Name: &ast.Var{Token: nameTok, Name: nameTok.Lexeme}, Token: nameTok}},
	}
	return &ast.For{Token: forTok, VarDecl: loopVar, Iterable: iterable, Body: body}
}

// parseWhile implements: while := 'while' '(' logical_expr ')' '{' statement_list '}'
func (p *Parser) parseWhile() ast.Stmt {
	whileTok := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseLogicalExpr()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	body := p.parseStatementList(token.RBRACE)
	p.expect(token.RBRACE)
	return &ast.While{Token: whileTok, Cond: cond, Body: body}
}

// parseConditional implements:
//
//	conditional := 'if' '(' logical_expr ')' block
//	               ('elseif' '(' logical_expr ')' block)*
//	               ('else' block)?
func (p *Parser) parseConditional() ast.Stmt {
	ifTok := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseLogicalExpr()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	body := p.parseStatementList(token.RBRACE)
	p.expect(token.RBRACE)

	cond1 := &ast.Conditional{Token: ifTok, Cases: []ast.IfCase{{Cond: cond, Body: body}}}

	for p.at(token.ELSEIF) {
		p.advance()
		p.expect(token.LPAREN)
		c := p.parseLogicalExpr()
		p.expect(token.RPAREN)
		p.expect(token.LBRACE)
		b := p.parseStatementList(token.RBRACE)
		p.expect(token.RBRACE)
		cond1.Cases = append(cond1.Cases, ast.IfCase{Cond: c, Body: b})
	}

	if p.at(token.ELSE) {
		p.advance()
		p.expect(token.LBRACE)
		cond1.ElseBody = p.parseStatementList(token.RBRACE)
		p.expect(token.RBRACE)
	}

	return cond1
}

// parseAssignmentOrCall handles the two statement forms that start with an
// identifier or a string literal: a bare function call, or an assignment
// (optionally compound) to a variable or an access expression.
func (p *Parser) parseAssignmentOrCall() ast.Stmt {
	if p.at(token.IDENT) && p.peek.Type == token.LPAREN {
		call := p.parseFuncCallExpr().(*ast.FuncCall)
		call.IsStatement = true
		p.expect(token.SEMICOLON)
		return call
	}

	lhs := p.parseAssignTarget()
	if !p.atAny(token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN,
		token.STAR_ASSIGN, token.SLASH_ASSIGN, token.IDIV_ASSIGN, token.PERCENT_ASSIGN) {
		p.failf("Expected an assignment operator but found %q", p.cur.Lexeme)
		return nil
	}
	return p.parseAssignmentRHS(lhs)
}

// parseAssignTarget parses the (var | access) production that may appear
// on the left of an assignment.
func (p *Parser) parseAssignTarget() ast.Expr {
	if p.at(token.STRING) {
		tok := p.cur
		p.advance()
		str := &ast.StrLit{Token: tok, Value: tok.Lexeme}
		if p.at(token.LBRACKET) {
			return p.parseAccessFrom(str)
		}
		return str
	}
	tok := p.expect(token.IDENT)
	v := &ast.Var{Token: tok, Name: tok.Lexeme}
	if p.at(token.LBRACKET) {
		return p.parseAccessFrom(v)
	}
	return v
}

func (p *Parser) parseAssignmentRHS(lhs ast.Expr) ast.Stmt {
	opTok := p.cur
	op := p.cur.Type
	p.advance()
	rhs := p.parseLogicalExpr()

	if op != token.ASSIGN {
		binOp, ok := compoundBinaryOp(op)
		if !ok {
			p.failf("Unknown assignment operator %q", opTok.Lexeme)
			return nil
		}
		rhs = &ast.BinaryOp{Token: opTok, Op: binOp, Left: lhs, Right: rhs}
	}

	assign := &ast.Assignment{Token: opTok, Lhs: lhs, Rhs: rhs}
	p.expect(token.SEMICOLON)
	return assign
}

func compoundBinaryOp(op token.Type) (token.Type, bool) {
	switch op {
	case token.PLUS_ASSIGN:
		return token.PLUS, true
	case token.MINUS_ASSIGN:
		return token.MINUS, true
	case token.STAR_ASSIGN:
		return token.STAR, true
	case token.SLASH_ASSIGN:
		return token.SLASH, true
	case token.IDIV_ASSIGN:
		return token.IDIV, true
	case token.PERCENT_ASSIGN:
		return token.PERCENT, true
	default:
		return "", false
	}
}
