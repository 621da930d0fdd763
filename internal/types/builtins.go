package types

import (
	"github.com/co-lang/co/internal/ast"
	"github.com/co-lang/co/internal/token"
)

// builtinSig describes one runtime builtin's return type and its
// arity/argument-type validation, grounded on
// original_source/project_code/semantic_analysis.py's
// __handle_built_in_funcs and type_checking.py's check_built_in_func_call.
// Each check evaluates argument count before argument types, matching the
// original: a wrong-arity call never forces its (possibly ill-typed)
// argument expressions to be visited.
type builtinSig struct {
	returnType token.Type
	check      func(ck *Checker, call *ast.FuncCall) error
}

// builtinSignatures is filled in init because the check functions reach
// checkExpr, which refers back to this table.
var builtinSignatures map[string]builtinSig

func init() {
	builtinSignatures = map[string]builtinSig{
		"print":   {returnType: token.VOID, check: checkVariadicAny},
		"println": {returnType: token.VOID, check: checkVariadicAny},
		"input":   {returnType: token.STR_KW, check: checkInputArgs},
		"reverse": {returnType: token.STR_KW, check: checkSingleStrArg},
		"len":     {returnType: token.INT_KW, check: checkSingleStrArg},
		"pow":     {returnType: token.FLOAT_KW, check: checkPowArgs},
		"typeof":  {returnType: token.STR_KW, check: checkSingleAnyArg},
		"toint":   {returnType: token.INT_KW, check: checkSingleAnyArg},
		"tofloat": {returnType: token.FLOAT_KW, check: checkSingleAnyArg},
		"tobool":  {returnType: token.BOOL_KW, check: checkSingleAnyArg},
		"tostr":   {returnType: token.STR_KW, check: checkSingleAnyArg},
	}
}

func checkVariadicAny(ck *Checker, call *ast.FuncCall) error {
	for _, a := range call.Args {
		if _, err := ck.checkExpr(a); err != nil {
			return err
		}
	}
	return nil
}

func checkInputArgs(ck *Checker, call *ast.FuncCall) error {
	if len(call.Args) != 0 && len(call.Args) != 1 {
		return ck.errf(call.Tok(), `Function %q must take 0 or 1 argument`, call.Name)
	}
	if len(call.Args) == 1 {
		argType, err := ck.checkExpr(call.Args[0])
		if err != nil {
			return err
		}
		if argType != token.STR_KW {
			return ck.errf(call.Args[0].Tok(), `The function named %q can only accept a string argument`, call.Name)
		}
	}
	return nil
}

func checkSingleStrArg(ck *Checker, call *ast.FuncCall) error {
	if len(call.Args) != 1 {
		return ck.errf(call.Tok(), `Function %q must take 1 argument`, call.Name)
	}
	argType, err := ck.checkExpr(call.Args[0])
	if err != nil {
		return err
	}
	if argType != token.STR_KW {
		return ck.errf(call.Args[0].Tok(), `The function named %q can only accept a string argument`, call.Name)
	}
	return nil
}

func checkSingleAnyArg(ck *Checker, call *ast.FuncCall) error {
	if len(call.Args) != 1 {
		return ck.errf(call.Tok(), `Function %q must take 1 argument`, call.Name)
	}
	_, err := ck.checkExpr(call.Args[0])
	return err
}

func checkPowArgs(ck *Checker, call *ast.FuncCall) error {
	if len(call.Args) != 2 {
		return ck.errf(call.Tok(), `Function %q must take 2 arguments`, call.Name)
	}
	for _, a := range call.Args {
		argType, err := ck.checkExpr(a)
		if err != nil {
			return err
		}
		if argType != token.INT_KW && argType != token.FLOAT_KW {
			return ck.errf(a.Tok(), `The function named %q can only accept integer or float values as arguments`, call.Name)
		}
	}
	return nil
}
