// Package symbol implements the scoped symbol table used by the semantic
// analyzer: a tree of Scopes, each holding named Symbols, with the
// transparent-block name-resolution rule from spec.md §4.3.
package symbol

import "github.com/co-lang/co/internal/token"

// Kind distinguishes the varieties of Symbol the analyzer tracks.
type Kind int

const (
	BuiltInType Kind = iota
	BuiltInFunc
	Var
	Func
)

func (k Kind) String() string {
	switch k {
	case BuiltInType:
		return "BuiltInType"
	case BuiltInFunc:
		return "BuiltInFunc"
	case Var:
		return "Var"
	case Func:
		return "Func"
	default:
		return "Unknown"
	}
}

// Symbol is one entry in a Scope's table.
//
// For a Var symbol, Type is the variable's declared scalar type. For a
// Func symbol, Type is the declared return type (token.VOID or a scalar
// keyword), ParamTypes holds each parameter's type in declaration order,
// and DefaultCount is how many trailing parameters carry a default. A
// BuiltInType symbol just reserves the type keyword's name; a BuiltInFunc
// symbol just reserves the builtin's name — its signature rules live in
// internal/types, not here, since each builtin's arity/argument checking
// is bespoke (see spec.md §6).
type Symbol struct {
	Name         string
	Kind         Kind
	Type         token.Type
	ParamTypes   []token.Type
	DefaultCount int
}

// ScopeKind distinguishes opaque scopes (global, function), which stop
// the implicit outward name-resolution climb during a declaration check,
// from transparent block scopes (if/elseif/else/while/for), which let it
// continue up to the enclosing function or global scope.
type ScopeKind int

const (
	GlobalScope ScopeKind = iota
	FuncScope
	BlockScope
)

// Scope is one node in the scope tree built during semantic analysis.
type Scope struct {
	Name    string
	Kind    ScopeKind
	Outer   *Scope
	symbols map[string]*Symbol
}

// NewGlobal creates the root scope, pre-populated with the built-in type
// and built-in function symbols (spec.md §4.3).
func NewGlobal() *Scope {
	s := &Scope{Name: "global", Kind: GlobalScope, symbols: make(map[string]*Symbol)}
	for _, t := range []token.Type{token.INT_KW, token.FLOAT_KW, token.BOOL_KW, token.STR_KW, token.RANGE} {
		s.symbols[string(t)] = &Symbol{Name: string(t), Kind: BuiltInType, Type: t}
	}
	for _, name := range []string{
		"print", "println", "input", "reverse", "len", "pow",
		"typeof", "toint", "tofloat", "tobool", "tostr",
	} {
		s.symbols[FuncKey(name)] = &Symbol{Name: name, Kind: BuiltInFunc}
	}
	return s
}

// FuncKey mangles a function name into its symbol-table key. Functions
// live in a namespace separate from variables (mirroring
// original_source/project_code/symbol_table.py's "func_"+name convention)
// so a program may declare a variable and a function sharing one name.
func FuncKey(name string) string { return "func_" + name }

// NewChild creates a scope nested inside outer, named name, of the given
// kind.
func NewChild(outer *Scope, name string, kind ScopeKind) *Scope {
	return &Scope{Name: name, Kind: kind, Outer: outer, symbols: make(map[string]*Symbol)}
}

// GetSymbol implements spec.md §4.3's resolution rule: look in this
// scope; if absent, climb to Outer only when checkOuter is true or this
// scope is transparent (BlockScope). A FuncScope or the GlobalScope stops
// an implicit climb requested with checkOuter=false — this is what makes
// a variable declaration check ("is this name already visible from here
// without forcing an outer search?") correctly treat a function body as a
// shadowing boundary while still treating nested if/while/for bodies as
// transparent to the enclosing function.
func (s *Scope) GetSymbol(name string, checkOuter bool) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	if !checkOuter && s.Kind != BlockScope {
		return nil
	}
	if s.Outer == nil {
		return nil
	}
	return s.Outer.GetSymbol(name, checkOuter)
}

// Declare binds sym in s's own table. It returns false without modifying
// the scope if the name is already bound directly in s; callers must use
// GetSymbol(name, false) beforehand to also catch the transparent-block
// redeclaration case spec.md §4.3 describes.
func (s *Scope) Declare(sym *Symbol) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	s.symbols[sym.Name] = sym
	return true
}

// DeclareFunc binds sym (a Func symbol, sym.Name holding the bare
// function name) under its mangled key, so a function and a variable may
// share a display name without colliding.
func (s *Scope) DeclareFunc(sym *Symbol) bool {
	key := FuncKey(sym.Name)
	if _, exists := s.symbols[key]; exists {
		return false
	}
	s.symbols[key] = sym
	return true
}

// GetFunc looks up a function symbol by its bare name.
func (s *Scope) GetFunc(name string, checkOuter bool) *Symbol {
	return s.GetSymbol(FuncKey(name), checkOuter)
}
