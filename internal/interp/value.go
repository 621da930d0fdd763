// Package interp implements Co's tree-walking interpreter: a second
// depth-first walk over an already type-checked AST that evaluates
// expressions to runtime Values and executes statements against a
// ProgramStack of Frames, per spec.md §4.4.
package interp

import (
	"fmt"
	"strconv"

	"github.com/co-lang/co/internal/token"
)

// Kind names a runtime value's dynamic type, matching the four scalar
// type keywords Co's static checker accepts.
type Kind string

const (
	IntKind   Kind = "int"
	FloatKind Kind = "float"
	BoolKind  Kind = "bool"
	StrKind   Kind = "str"
)

// Value is any runtime value Co's evaluator produces. It mirrors the
// teacher's GoMixObject interface (objects/objects.go): a small closed set
// of concrete types, each able to name its own Kind and render itself for
// print/println/tostr.
type Value interface {
	Kind() Kind
	String() string
}

type IntValue int64

func (v IntValue) Kind() Kind     { return IntKind }
func (v IntValue) String() string { return strconv.FormatInt(int64(v), 10) }

type FloatValue float64

func (v FloatValue) Kind() Kind     { return FloatKind }
func (v FloatValue) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 64) }

type BoolValue bool

func (v BoolValue) Kind() Kind { return BoolKind }
func (v BoolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}

type StrValue string

func (v StrValue) Kind() Kind     { return StrKind }
func (v StrValue) String() string { return string(v) }

// typeToken maps a runtime Kind back to the static type keyword naming it.
func typeToken(k Kind) token.Type {
	switch k {
	case IntKind:
		return token.INT_KW
	case FloatKind:
		return token.FLOAT_KW
	case BoolKind:
		return token.BOOL_KW
	default:
		return token.STR_KW
	}
}

// coerceToStr renders v's value the way Co's "+" string-coercion rule and
// the tostr builtin do: host default form, with true/false spelled out.
func coerceToStr(v Value) string {
	return v.String()
}

// toInt implements the toint builtin's conversion rule: int/float truncate
// or pass through, bool is 0/1, str is parsed as a base-10 integer.
func toInt(v Value, tok token.Token) (Value, error) {
	switch x := v.(type) {
	case IntValue:
		return x, nil
	case FloatValue:
		return IntValue(int64(x)), nil
	case BoolValue:
		if x {
			return IntValue(1), nil
		}
		return IntValue(0), nil
	case StrValue:
		n, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return nil, runtimeErrf(tok, "Cannot convert %q to \"int\"", string(x))
		}
		return IntValue(n), nil
	default:
		return nil, runtimeErrf(tok, "internal error: unhandled value in toint")
	}
}

// toFloat implements the tofloat builtin's conversion rule.
func toFloat(v Value, tok token.Token) (Value, error) {
	switch x := v.(type) {
	case IntValue:
		return FloatValue(float64(x)), nil
	case FloatValue:
		return x, nil
	case BoolValue:
		if x {
			return FloatValue(1), nil
		}
		return FloatValue(0), nil
	case StrValue:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return nil, runtimeErrf(tok, "Cannot convert %q to \"float\"", string(x))
		}
		return FloatValue(f), nil
	default:
		return nil, runtimeErrf(tok, "internal error: unhandled value in tofloat")
	}
}

// toBool implements the tobool builtin's conversion rule: zero/empty-string
// values are false, everything else is true, matching host truthiness.
func toBool(v Value, tok token.Token) (Value, error) {
	switch x := v.(type) {
	case IntValue:
		return BoolValue(x != 0), nil
	case FloatValue:
		return BoolValue(x != 0), nil
	case BoolValue:
		return x, nil
	case StrValue:
		return BoolValue(x != ""), nil
	default:
		return nil, runtimeErrf(tok, "internal error: unhandled value in tobool")
	}
}

// toStr implements the tostr builtin's conversion rule.
func toStr(v Value) Value {
	return StrValue(v.String())
}

func runtimeErrf(tok token.Token, format string, args ...interface{}) error {
	return newInterpError(tok, fmt.Sprintf(format, args...))
}
