package symbol

import (
	"testing"

	"github.com/co-lang/co/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGlobal_PreloadsBuiltins(t *testing.T) {
	g := NewGlobal()

	for _, name := range []string{"int", "float", "bool", "str", "range"} {
		sym := g.GetSymbol(name, false)
		require.NotNil(t, sym, "expected builtin type %q", name)
		assert.Equal(t, BuiltInType, sym.Kind)
	}

	for _, name := range []string{"print", "println", "input", "reverse", "len", "pow",
		"typeof", "toint", "tofloat", "tobool", "tostr"} {
		sym := g.GetSymbol(FuncKey(name), false)
		require.NotNil(t, sym, "expected builtin func %q", name)
		assert.Equal(t, BuiltInFunc, sym.Kind)
	}
}

func TestDeclare_RejectsDuplicateInSameScope(t *testing.T) {
	g := NewGlobal()
	ok := g.Declare(&Symbol{Name: "x", Kind: Var, Type: token.INT_KW})
	assert.True(t, ok)

	ok = g.Declare(&Symbol{Name: "x", Kind: Var, Type: token.INT_KW})
	assert.False(t, ok)
}

func TestGetSymbol_FuncScopeStopsImplicitClimb(t *testing.T) {
	g := NewGlobal()
	g.Declare(&Symbol{Name: "x", Kind: Var, Type: token.INT_KW})

	fn := NewChild(g, "func_f", FuncScope)

	// Declaration check (checkOuter=false): a function body is a
	// shadowing boundary, so it must NOT see the global x.
	assert.Nil(t, fn.GetSymbol("x", false))

	// Ordinary lookup (checkOuter=true): the function body CAN read x.
	assert.NotNil(t, fn.GetSymbol("x", true))
}

func TestGetSymbol_BlockScopeIsTransparentToDeclarationCheck(t *testing.T) {
	g := NewGlobal()
	g.Declare(&Symbol{Name: "x", Kind: Var, Type: token.INT_KW})

	fn := NewChild(g, "func_f", FuncScope)
	fn.Declare(&Symbol{Name: "y", Kind: Var, Type: token.INT_KW})
	ifBlock := NewChild(fn, "if_0", BlockScope)

	// Even with checkOuter=false, a transparent block climbs past its
	// immediate parent looking for a collision — declaring "y" inside
	// this if-block is an error because the enclosing function declares
	// y. The climb stops at the function scope, so the global x does not
	// collide.
	assert.NotNil(t, ifBlock.GetSymbol("y", false))
	assert.Nil(t, ifBlock.GetSymbol("x", false))
}

func TestGetSymbol_NestedBlocksClimbToGlobal(t *testing.T) {
	g := NewGlobal()
	g.Declare(&Symbol{Name: "x", Kind: Var, Type: token.INT_KW})

	whileBlock := NewChild(g, "while_0", BlockScope)
	forBlock := NewChild(whileBlock, "for_0", BlockScope)

	assert.NotNil(t, forBlock.GetSymbol("x", false))
}

func TestGetSymbol_UnknownNameReturnsNil(t *testing.T) {
	g := NewGlobal()
	assert.Nil(t, g.GetSymbol("nope", true))
}

func TestDeclare_ShadowingInNestedFuncScopeIsAllowed(t *testing.T) {
	g := NewGlobal()
	g.Declare(&Symbol{Name: "x", Kind: Var, Type: token.INT_KW})

	fn := NewChild(g, "func_f", FuncScope)
	// A function scope is opaque to the declaration check, so shadowing
	// "x" here is legal even though an outer "x" exists.
	ok := fn.Declare(&Symbol{Name: "x", Kind: Var, Type: token.STR_KW})
	assert.True(t, ok)
	assert.Equal(t, token.STR_KW, fn.GetSymbol("x", false).Type)
}
