package interp

import (
	"fmt"
	"math"
	"strings"

	"github.com/co-lang/co/internal/ast"
)

// builtinImpls maps each runtime builtin to its implementation. Argument
// count and type have already been validated by internal/types'
// builtinSignatures table (internal/types/builtins.go) using the exact
// same 11 names, so these implementations trust call.Args's shape and
// only evaluate them. It is filled in init because the builtins evaluate
// their arguments through evalExpr, which refers back to this table.
var builtinImpls map[string]func(ip *Interpreter, call *ast.FuncCall) (Value, error)

func init() {
	builtinImpls = map[string]func(ip *Interpreter, call *ast.FuncCall) (Value, error){
		"print":   biPrint,
		"println": biPrintln,
		"input":   biInput,
		"reverse": biReverse,
		"len":     biLen,
		"pow":     biPow,
		"typeof":  biTypeof,
		"toint":   biToint,
		"tofloat": biTofloat,
		"tobool":  biTobool,
		"tostr":   biTostr,
	}
}

func evalArgs(ip *Interpreter, call *ast.FuncCall) ([]Value, error) {
	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		v, err := ip.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// biPrint writes its arguments concatenated with no separator and no
// trailing newline, per spec.md §6's builtin table ("write args to
// stdout without trailing newline") — unlike println, print does not
// space-separate its arguments.
func biPrint(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, a := range args {
		b.WriteString(coerceToStr(a))
	}
	fmt.Fprint(ip.Stdout, b.String())
	return nil, nil
}

// biPrintln writes its arguments space-separated, followed by a newline,
// per spec.md §6 ("like print, with newline and space-separated args").
func biPrintln(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = coerceToStr(a)
	}
	fmt.Fprintln(ip.Stdout, strings.Join(parts, " "))
	return nil, nil
}

// biInput prints an optional prompt without a trailing newline, then
// reads and returns one line from stdin with its terminating newline
// stripped.
func biInput(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	if len(call.Args) == 1 {
		prompt, err := ip.evalExpr(call.Args[0])
		if err != nil {
			return nil, err
		}
		fmt.Fprint(ip.Stdout, coerceToStr(prompt))
	}
	line, err := ip.Stdin.ReadString('\n')
	if err != nil && line == "" {
		return StrValue(""), nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return StrValue(line), nil
}

func biReverse(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	s := []byte(string(args[0].(StrValue)))
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return StrValue(s), nil
}

func biLen(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	return IntValue(len(string(args[0].(StrValue)))), nil
}

func biPow(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	return FloatValue(math.Pow(asFloat(args[0]), asFloat(args[1]))), nil
}

func biTypeof(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	return StrValue(string(args[0].Kind())), nil
}

func biToint(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	return toInt(args[0], call.Tok())
}

func biTofloat(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	return toFloat(args[0], call.Tok())
}

func biTobool(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	return toBool(args[0], call.Tok())
}

func biTostr(ip *Interpreter, call *ast.FuncCall) (Value, error) {
	args, err := evalArgs(ip, call)
	if err != nil {
		return nil, err
	}
	return toStr(args[0]), nil
}
