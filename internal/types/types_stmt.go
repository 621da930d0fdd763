package types

import (
	"github.com/co-lang/co/internal/ast"
	"github.com/co-lang/co/internal/symbol"
	"github.com/co-lang/co/internal/token"
)

func (ck *Checker) checkStatementList(list *ast.StatementList) error {
	for _, s := range list.Statements {
		if err := ck.checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (ck *Checker) checkStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Empty:
		return nil
	case *ast.VarDecl:
		return ck.checkVarDecl(n)
	case *ast.Assignment:
		return ck.checkAssignment(n)
	case *ast.Conditional:
		return ck.checkConditional(n)
	case *ast.While:
		return ck.checkWhile(n)
	case *ast.For:
		return ck.checkFor(n)
	case *ast.Break:
		return ck.checkBreak(n)
	case *ast.Continue:
		return ck.checkContinue(n)
	case *ast.Return:
		return ck.checkReturn(n)
	case *ast.FuncDecl:
		return ck.checkFuncDecl(n)
	case *ast.FuncCall:
		_, err := ck.checkFuncCall(n)
		return err
	default:
		return ck.errf(s.Tok(), "internal error: unhandled statement node")
	}
}

func (ck *Checker) checkVarDecl(d *ast.VarDecl) error {
	for _, item := range d.Items {
		if err := ck.declareVar(d.Type, item); err != nil {
			return err
		}
	}
	return nil
}

func (ck *Checker) checkAssignment(a *ast.Assignment) error {
	switch lhs := a.Lhs.(type) {
	case *ast.Access:
		// Validates the full access expression (accessor must be str,
		// indices must be int) before unconditionally rejecting the
		// assignment: strings are immutable at the type level, so an
		// access can never legally appear on the left of '=' (spec.md §9).
		if _, err := ck.checkExpr(lhs); err != nil {
			return err
		}
		return ck.errf(lhs.Tok(), "Strings are immutable")

	case *ast.Var:
		varType, err := ck.checkExpr(lhs)
		if err != nil {
			return err
		}
		rhsType, err := ck.checkExpr(a.Rhs)
		if err != nil {
			return err
		}
		if varType != rhsType {
			return ck.errf(a.Rhs.Tok(), "Cannot assign %q to %q", rhsType, varType)
		}
		return nil

	default:
		return ck.errf(a.Tok(), "internal error: invalid assignment target")
	}
}

func (ck *Checker) checkConditional(cond *ast.Conditional) error {
	for i, ic := range cond.Cases {
		condType, err := ck.checkExpr(ic.Cond)
		if err != nil {
			return err
		}
		if condType != token.BOOL_KW {
			return ck.errf(ic.Cond.Tok(), `The condition must evaluate to "bool", not %q`, condType)
		}
		name := "elseif"
		if i == 0 {
			name = "if"
		}
		if err := ck.runBlock(ck.nextBlockName(name), symbol.BlockScope, ic.Body); err != nil {
			return err
		}
	}
	if cond.ElseBody != nil {
		if err := ck.runBlock(ck.nextBlockName("else"), symbol.BlockScope, cond.ElseBody); err != nil {
			return err
		}
	}
	return nil
}

func (ck *Checker) checkWhile(w *ast.While) error {
	condType, err := ck.checkExpr(w.Cond)
	if err != nil {
		return err
	}
	if condType != token.BOOL_KW {
		return ck.errf(w.Cond.Tok(), `The condition must evaluate to "bool", not %q`, condType)
	}
	ck.loopDepth++
	err = ck.runBlock(ck.nextBlockName("while"), symbol.BlockScope, w.Body)
	ck.loopDepth--
	return err
}

func (ck *Checker) checkFor(f *ast.For) error {
	iterType, err := ck.checkExpr(f.Iterable)
	if err != nil {
		return err
	}
	if iterType != token.RANGE && iterType != token.STR_KW {
		return ck.errf(f.Iterable.Tok(), "Cannot iterate over %q", iterType)
	}

	ck.scope = symbol.NewChild(ck.scope, ck.nextBlockName("for"), symbol.BlockScope)
	ck.loopDepth++
	defer func() {
		ck.loopDepth--
		ck.scope = ck.scope.Outer
	}()

	item := f.VarDecl.Items[0]
	if err := ck.declareVar(f.VarDecl.Type, item); err != nil {
		return err
	}

	elemType := token.STR_KW
	if iterType == token.RANGE {
		elemType = token.INT_KW
	}
	if f.VarDecl.Type != elemType {
		return ck.errf(f.Iterable.Tok(), "Cannot assign %q to %q", elemType, f.VarDecl.Type)
	}

	return ck.checkStatementList(f.Body)
}

func (ck *Checker) checkBreak(b *ast.Break) error {
	if ck.loopDepth == 0 {
		return ck.errf(b.Tok(), "Break statement outside of loop")
	}
	return nil
}

func (ck *Checker) checkContinue(c *ast.Continue) error {
	if ck.loopDepth == 0 {
		return ck.errf(c.Tok(), "Continue statement outside of loop")
	}
	return nil
}

func (ck *Checker) checkReturn(r *ast.Return) error {
	if len(ck.funcs) == 0 {
		return ck.errf(r.Tok(), "Return statement outside function")
	}
	fs := ck.funcs[len(ck.funcs)-1]

	retType := token.VOID
	if r.Value != nil {
		t, err := ck.checkExpr(r.Value)
		if err != nil {
			return err
		}
		retType = t
	}

	if fs.sym.Type != retType {
		gotDisp, wantDisp := "nothing", "nothing"
		if retType != token.VOID {
			gotDisp = string(retType)
		}
		if fs.sym.Type != token.VOID {
			wantDisp = string(fs.sym.Type)
		}
		return ck.errf(r.Tok(), `Function %q returns %q but should return %q`, fs.sym.Name, gotDisp, wantDisp)
	}

	fs.returnSeen = true
	return nil
}

func (ck *Checker) checkFuncDecl(fd *ast.FuncDecl) error {
	if existing := ck.scope.GetFunc(fd.Name, false); existing != nil {
		return ck.errf(fd.Tok(), "Function %q is declared again", fd.Name)
	}

	paramTypes := make([]token.Type, len(fd.Params))
	defaultCount := 0
	for i, p := range fd.Params {
		paramTypes[i] = p.Type
		if p.Default != nil {
			defaultCount++
		}
	}
	funcSym := &symbol.Symbol{
		Name: fd.Name, Kind: symbol.Func, Type: fd.ReturnType,
		ParamTypes: paramTypes, DefaultCount: defaultCount,
	}
	ck.scope.DeclareFunc(funcSym)

	ck.scope = symbol.NewChild(ck.scope, "func_"+fd.Name, symbol.FuncScope)
	fs := &funcState{sym: funcSym}
	ck.funcs = append(ck.funcs, fs)
	defer func() {
		ck.funcs = ck.funcs[:len(ck.funcs)-1]
		ck.scope = ck.scope.Outer
	}()

	sawDefault := false
	for _, p := range fd.Params {
		if p.Default != nil {
			defType, err := ck.checkExpr(p.Default)
			if err != nil {
				return err
			}
			if defType != p.Type {
				return ck.errf(p.Default.Tok(), "Cannot assign %q to %q", defType, p.Type)
			}
			sawDefault = true
		} else if sawDefault {
			return ck.errf(p.Name.Tok(), "Non-default parameter follows default parameter")
		}
		ck.scope.Declare(&symbol.Symbol{Name: p.Name.Name, Kind: symbol.Var, Type: p.Type})
	}

	if err := ck.checkStatementList(fd.Body); err != nil {
		return err
	}

	if fd.ReturnType != token.VOID && !fs.returnSeen {
		return ck.errf(fd.Tok(), `Missing return statement for the function %q`, fd.Name)
	}
	return nil
}
