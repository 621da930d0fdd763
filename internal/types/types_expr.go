package types

import (
	"fmt"

	"github.com/co-lang/co/internal/ast"
	"github.com/co-lang/co/internal/token"
)

// checkExpr returns the static type of e, or the first SemanticError
// found while checking it and its subexpressions.
func (ck *Checker) checkExpr(e ast.Expr) (token.Type, error) {
	switch n := e.(type) {
	case *ast.Var:
		sym := ck.scope.GetSymbol(n.Name, true)
		if sym == nil {
			return "", ck.errf(n.Tok(), `Identifier %q not found`, n.Name)
		}
		return sym.Type, nil

	case *ast.IntLit:
		return token.INT_KW, nil
	case *ast.FloatLit:
		return token.FLOAT_KW, nil
	case *ast.BoolLit:
		return token.BOOL_KW, nil
	case *ast.StrLit:
		return token.STR_KW, nil

	case *ast.UnaryOp:
		return ck.checkUnaryOp(n)
	case *ast.BinaryOp:
		return ck.checkBinaryOp(n)
	case *ast.Access:
		return ck.checkAccess(n)
	case *ast.RangeExpr:
		return ck.checkRangeExpr(n)
	case *ast.FuncCall:
		return ck.checkFuncCall(n)

	default:
		return "", ck.errf(e.Tok(), "internal error: unhandled expression node")
	}
}

func (ck *Checker) checkUnaryOp(n *ast.UnaryOp) (token.Type, error) {
	childType, err := ck.checkExpr(n.Child)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case token.NOT:
		if childType != token.BOOL_KW {
			return "", ck.errf(n.Tok(), `The operator "not" cannot be used with the type %q`, childType)
		}
		return token.BOOL_KW, nil

	case token.PLUS, token.MINUS:
		switch childType {
		case token.STR_KW, token.BOOL_KW:
			return "", ck.errf(n.Tok(), "The operator %q cannot be used with the type %q", n.Op, childType)
		case token.FLOAT_KW:
			return token.FLOAT_KW, nil
		default:
			return token.INT_KW, nil
		}

	default:
		return "", ck.errf(n.Tok(), "internal error: unhandled unary operator %q", n.Op)
	}
}

func (ck *Checker) checkBinaryOp(n *ast.BinaryOp) (token.Type, error) {
	leftType, err := ck.checkExpr(n.Left)
	if err != nil {
		return "", err
	}
	rightType, err := ck.checkExpr(n.Right)
	if err != nil {
		return "", err
	}

	switch n.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.IDIV, token.PERCENT:
		return ck.checkArithmeticOp(n, leftType, rightType)

	case token.EQ, token.NEQ:
		if leftType != rightType {
			return "", ck.errf(n.Tok(), `The types of %q and %q cannot be compared`, leftType, rightType)
		}
		return token.BOOL_KW, nil

	case token.LT, token.LE, token.GT, token.GE:
		return ck.checkComparisonOp(n, leftType, rightType)

	case token.AND, token.OR:
		if leftType != token.BOOL_KW && rightType != token.BOOL_KW {
			return "", ck.errf(n.Tok(), `%q operator cannot be used with %q and %q`, n.Op, leftType, rightType)
		}
		return token.BOOL_KW, nil

	default:
		return "", ck.errf(n.Tok(), "internal error: unhandled binary operator %q", n.Op)
	}
}

// checkArithmeticOp implements the +/-/*///%///% type lattice from
// spec.md §4.3, grounded on
// original_source/project_code/type_checking.py's
// TypeChecker.__check_arithmetic_op.
func (ck *Checker) checkArithmeticOp(n *ast.BinaryOp, left, right token.Type) (token.Type, error) {
	switch {
	case left == token.STR_KW || right == token.STR_KW:
		if n.Op == token.PLUS {
			return token.STR_KW, nil
		}
		if n.Op == token.STAR && (left == token.INT_KW || right == token.INT_KW) {
			return token.STR_KW, nil
		}
		return "", ck.errf(n.Tok(), `%q operator cannot be used with %q and %q`, n.Op, left, right)

	case left == token.BOOL_KW || right == token.BOOL_KW:
		return "", ck.errf(n.Tok(), `%q operator cannot be used with %q and %q`, n.Op, left, right)

	case left == token.FLOAT_KW || right == token.FLOAT_KW:
		if n.Op == token.IDIV {
			return token.INT_KW, nil
		}
		return token.FLOAT_KW, nil

	default:
		return token.INT_KW, nil
	}
}

func (ck *Checker) checkComparisonOp(n *ast.BinaryOp, left, right token.Type) (token.Type, error) {
	switch {
	case left == token.STR_KW && right == token.STR_KW:
		return token.BOOL_KW, nil
	case left == token.STR_KW || right == token.STR_KW || left == token.BOOL_KW || right == token.BOOL_KW:
		return "", ck.errf(n.Tok(), `%q operator cannot be used with %q and %q`, n.Op, left, right)
	default:
		return token.BOOL_KW, nil
	}
}

func (ck *Checker) checkAccess(n *ast.Access) (token.Type, error) {
	accType, err := ck.checkExpr(n.Accessor)
	if err != nil {
		return "", err
	}
	if accType != token.STR_KW {
		return "", ck.errf(n.Accessor.Tok(), `%q type cannot be an accessor`, accType)
	}

	startType, err := ck.checkExpr(n.Start)
	if err != nil {
		return "", err
	}
	if startType != token.INT_KW {
		return "", ck.errf(n.Start.Tok(), `Index of type %q is not allowed`, startType)
	}

	if n.End != nil {
		endType, err := ck.checkExpr(n.End)
		if err != nil {
			return "", err
		}
		if endType != token.INT_KW {
			return "", ck.errf(n.End.Tok(), `Index of type %q is not allowed`, endType)
		}
	}

	return token.STR_KW, nil
}

func (ck *Checker) checkRangeExpr(n *ast.RangeExpr) (token.Type, error) {
	startType, err := ck.checkExpr(n.Start)
	if err != nil {
		return "", err
	}
	endType, err := ck.checkExpr(n.End)
	if err != nil {
		return "", err
	}
	if startType != token.INT_KW || endType != token.INT_KW {
		return "", ck.errf(n.Tok(), `The start and the end of the range must be "int"`)
	}
	if n.Step != nil {
		stepType, err := ck.checkExpr(n.Step)
		if err != nil {
			return "", err
		}
		if stepType != token.INT_KW {
			return "", ck.errf(n.Tok(), `"step" of the range must be "int"`)
		}
	}
	return token.RANGE, nil
}

func (ck *Checker) checkFuncCall(n *ast.FuncCall) (token.Type, error) {
	if sig, ok := builtinSignatures[n.Name]; ok {
		if err := sig.check(ck, n); err != nil {
			return "", err
		}
		return sig.returnType, nil
	}

	sym := ck.scope.GetFunc(n.Name, true)
	if sym == nil {
		return "", ck.errf(n.Tok(), `Function %q not found`, n.Name)
	}

	numParams := len(sym.ParamTypes)
	numNonDefault := numParams - sym.DefaultCount
	numArgs := len(n.Args)
	if numArgs < numNonDefault || numArgs > numParams {
		return "", ck.errf(n.Tok(), "%s", arityMessage(n.Name, numNonDefault, numParams, numArgs))
	}

	for i, a := range n.Args {
		argType, err := ck.checkExpr(a)
		if err != nil {
			return "", err
		}
		if argType != sym.ParamTypes[i] {
			return "", ck.errf(a.Tok(), "Cannot assign %q to %q", argType, sym.ParamTypes[i])
		}
	}

	if sym.Type == token.VOID && !n.IsStatement {
		return "", ck.errf(n.Tok(), `"void" function %q not allowed here`, n.Name)
	}

	return sym.Type, nil
}

func arityMessage(name string, nonDefault, total, given int) string {
	if total == 0 || total == nonDefault {
		return fmt.Sprintf(`Function %q takes %d positional arguments but %d were given`, name, nonDefault, given)
	}
	return fmt.Sprintf(`Function %q takes %d to %d positional arguments but %d were given`, name, nonDefault, total, given)
}
