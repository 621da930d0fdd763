// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the semantic analyzer and interpreter. Every node carries a
// representative Token so later passes can report precise source
// positions (spec invariant I3).
package ast

import "github.com/co-lang/co/internal/token"

// Node is the base of every AST node.
type Node interface {
	// Tok returns the node's representative token, used for error
	// positions by both the semantic analyzer and the interpreter.
	Tok() token.Token
}

// Expr is an expression node: it produces a value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node: it is executed for effect.
type Stmt interface {
	Node
	stmtNode()
}

// ---- Expressions ----

// Var references a declared name.
type Var struct {
	Token token.Token
	Name  string
}

func (v *Var) Tok() token.Token { return v.Token }
func (*Var) exprNode()          {}

// IntLit is an integer literal.
type IntLit struct {
	Token token.Token
	Value int64
}

func (n *IntLit) Tok() token.Token { return n.Token }
func (*IntLit) exprNode()         {}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Token token.Token
	Value float64
}

func (n *FloatLit) Tok() token.Token { return n.Token }
func (*FloatLit) exprNode()         {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Token token.Token
	Value bool
}

func (n *BoolLit) Tok() token.Token { return n.Token }
func (*BoolLit) exprNode()         {}

// StrLit is a string literal.
type StrLit struct {
	Token token.Token
	Value string
}

func (n *StrLit) Tok() token.Token { return n.Token }
func (*StrLit) exprNode()         {}

// UnaryOp is a prefix operator expression: -x, +x, not x.
type UnaryOp struct {
	Token token.Token // the operator token
	Op    token.Type
	Child Expr
}

func (n *UnaryOp) Tok() token.Token { return n.Token }
func (*UnaryOp) exprNode()         {}

// BinaryOp is an infix operator expression.
type BinaryOp struct {
	Token token.Token // the operator token
	Op    token.Type
	Left  Expr
	Right Expr
}

func (n *BinaryOp) Tok() token.Token { return n.Token }
func (*BinaryOp) exprNode()         {}

// Access is a string index/slice expression: accessor[start] or
// accessor[start:end]. End is nil for plain indexing.
type Access struct {
	Token    token.Token // the '[' token
	Accessor Expr
	Start    Expr
	End      Expr // nil if this is a single-index access
}

func (n *Access) Tok() token.Token { return n.Token }
func (*Access) exprNode()         {}

// FuncCall is a function call, usable as an expression or (via
// IsStatement) as a bare statement.
type FuncCall struct {
	Token       token.Token // the function name token
	Name        string
	Args        []Expr
	IsStatement bool
}

func (n *FuncCall) Tok() token.Token { return n.Token }
func (*FuncCall) exprNode()         {}
func (*FuncCall) stmtNode()         {}

// RangeExpr is only legal as the iterable of a For statement.
type RangeExpr struct {
	Token token.Token // the 'range' token
	Start Expr
	End   Expr
	Step  Expr // nil => step defaults to 1
}

func (n *RangeExpr) Tok() token.Token { return n.Token }
func (*RangeExpr) exprNode()         {}

// ---- Statements ----

// Empty is a bare ';' with no effect.
type Empty struct {
	Token token.Token
}

func (n *Empty) Tok() token.Token { return n.Token }
func (*Empty) stmtNode()         {}

// Assignment assigns the evaluated Rhs to Lhs (a Var or an Access).
// Compound assignment operators are desugared to a BinaryOp Rhs at parse
// time, so Assignment carries no operator of its own.
type Assignment struct {
	Token token.Token // the assignment operator token ('=' or a compound form such as '+=')
	Lhs   Expr        // *Var or *Access
	Rhs   Expr
}

func (n *Assignment) Tok() token.Token { return n.Token }
func (*Assignment) stmtNode()         {}

// DeclItem is one name in a VarDecl with an optional initializer
// expression; a nil Init leaves the variable as none.
type DeclItem struct {
	Name    *Var
	Init    Expr // nil if not initialized
	Token   token.Token
}

// VarDecl declares one or more variables of Type in the current scope.
type VarDecl struct {
	Token token.Token // the 'var' token
	Type  token.Type  // token.INT_KW / FLOAT_KW / BOOL_KW / STR_KW
	Items []DeclItem
}

func (n *VarDecl) Tok() token.Token { return n.Token }
func (*VarDecl) stmtNode()         {}
func (*VarDecl) exprNode()         {} // also satisfies Expr; a for loop's VarDecl is built directly by parseFor

// IfCase is one if/elseif arm.
type IfCase struct {
	Cond Expr
	Body *StatementList
}

// Conditional is if/elseif*/else.
type Conditional struct {
	Token   token.Token // the 'if' token
	Cases   []IfCase
	ElseBody *StatementList // nil if there is no else
}

func (n *Conditional) Tok() token.Token { return n.Token }
func (*Conditional) stmtNode()         {}

// While is a while loop.
type While struct {
	Token token.Token
	Cond  Expr
	Body  *StatementList
}

func (n *While) Tok() token.Token { return n.Token }
func (*While) stmtNode()         {}

// For is a for-over-range or for-over-string loop.
type For struct {
	Token    token.Token
	VarDecl  *VarDecl // declares the loop variable; Items has exactly one entry with no Init
	Iterable Expr     // *RangeExpr or a string-typed expression
	Body     *StatementList
}

func (n *For) Tok() token.Token { return n.Token }
func (*For) stmtNode()         {}

// Break exits the innermost enclosing loop.
type Break struct {
	Token token.Token
}

func (n *Break) Tok() token.Token { return n.Token }
func (*Break) stmtNode()         {}

// Continue skips to the next iteration of the innermost enclosing loop.
type Continue struct {
	Token token.Token
}

func (n *Continue) Tok() token.Token { return n.Token }
func (*Continue) stmtNode()         {}

// Return exits the innermost enclosing function, optionally with a value.
type Return struct {
	Token token.Token
	Value Expr // nil for bare 'return;'
}

func (n *Return) Tok() token.Token { return n.Token }
func (*Return) stmtNode()         {}

// FuncParam is one declared parameter; Default is nil for a required
// parameter.
type FuncParam struct {
	Type    token.Type
	Name    *Var
	Default Expr
}

// FuncDecl declares a named function.
type FuncDecl struct {
	Token      token.Token // the 'func' token
	ReturnType token.Type  // token.VOID or one of the four scalar type keywords
	Name       string
	Params     []FuncParam
	Body       *StatementList
}

func (n *FuncDecl) Tok() token.Token { return n.Token }
func (*FuncDecl) stmtNode()         {}

// StatementList is a sequence of statements forming a block body.
type StatementList struct {
	Token      token.Token // the first token of the block, for empty-block diagnostics
	Statements []Stmt
}

func (n *StatementList) Tok() token.Token { return n.Token }
func (*StatementList) stmtNode()         {}

// Program is the root of the AST.
type Program struct {
	Body *StatementList
}

func (n *Program) Tok() token.Token { return n.Body.Tok() }
