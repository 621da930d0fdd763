package interp

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/co-lang/co/internal/coerr"
	"github.com/co-lang/co/internal/parser"
	"github.com/co-lang/co/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses, type-checks, and interprets src against a fresh
// Interpreter writing to an in-memory buffer, returning the buffer's
// contents, the final global frame (for assertions about bindings), and
// any runtime error. A parse or semantic error fails the test instead.
func run(t *testing.T, src string) (string, *Frame, error) {
	t.Helper()
	prog, err := parser.New(src).Parse()
	require.NoError(t, err)
	require.NoError(t, types.Check(prog))

	var out bytes.Buffer
	ip := New()
	ip.Stdout = &out
	ip.Stdin = bufio.NewReader(strings.NewReader(""))

	ip.stack.Push(NewFrame("global", nil))
	sig, runErr := ip.execStatementList(prog.Body)
	_ = sig
	global := ip.stack.Peek()
	return out.String(), global, runErr
}

func requireInterpError(t *testing.T, err error) *coerr.Error {
	t.Helper()
	require.Error(t, err)
	cErr, ok := err.(*coerr.Error)
	require.True(t, ok, "expected *coerr.Error, got %T", err)
	assert.Equal(t, coerr.Interpreter, cErr.Kind)
	return cErr
}

func TestScenario1_AssignmentChain(t *testing.T) {
	_, global, err := run(t, `var(int) x, y; y = 7; x = ((y + 3) * 3) + 3;`)
	require.NoError(t, err)
	x, _ := global.Get("x")
	y, _ := global.Get("y")
	assert.Equal(t, IntValue(33), x)
	assert.Equal(t, IntValue(7), y)
}

func TestScenario2_ParenthesizedArithmetic(t *testing.T) {
	_, global, err := run(t, `var(int) x = (4 + 5) * 2;`)
	require.NoError(t, err)
	x, _ := global.Get("x")
	assert.Equal(t, IntValue(18), x)
}

func TestScenario3_WhileLoop(t *testing.T) {
	_, global, err := run(t, `var(int) x = 0; while (x < 3) { x += 1; }`)
	require.NoError(t, err)
	x, _ := global.Get("x")
	assert.Equal(t, IntValue(3), x)
}

func TestScenario4_RecursiveFibonacci(t *testing.T) {
	src := `
		func(int) fib(var(int) n){
			if(n==0){return 0;}
			elseif(n==1){return 1;}
			else{return fib(n-1)+fib(n-2);}
		}
		var(int) r = fib(7);
	`
	_, global, err := run(t, src)
	require.NoError(t, err)
	r, _ := global.Get("r")
	assert.Equal(t, IntValue(13), r)
}

func TestScenario5_ReverseString(t *testing.T) {
	_, global, err := run(t, `var(str) s = "hello"; var(str) t = reverse(s);`)
	require.NoError(t, err)
	s, _ := global.Get("t")
	assert.Equal(t, StrValue("olleh"), s)
}

func TestScenario6_BlockScopeDoesNotLeak(t *testing.T) {
	src := `
		var(int) a = 3;
		if(a==1){}
		elseif(a==2){ var(int) a = 1; }
		elseif(a==3){ var(int) b = 2; }
		else {}
	`
	_, global, err := run(t, src)
	require.NoError(t, err)
	_, ok := global.Get("b")
	assert.False(t, ok, "b declared inside the elseif block must not be visible at global scope")
}

func TestScenario7_DivisionByZeroPosition(t *testing.T) {
	_, _, err := run(t, `var(int) x = 10 / 0;`)
	cErr := requireInterpError(t, err)
	assert.Contains(t, cErr.Message, "Division by zero detected")
	assert.Equal(t, 1, cErr.Line)
}

func TestIntDivisionByZero(t *testing.T) {
	_, _, err := run(t, `var(int) x = 10 // 0;`)
	cErr := requireInterpError(t, err)
	assert.Contains(t, cErr.Message, "Division by zero detected")
}

func TestModuloByZero(t *testing.T) {
	_, _, err := run(t, `var(int) x = 10 % 0;`)
	cErr := requireInterpError(t, err)
	assert.Contains(t, cErr.Message, "Modulo by zero detected")
}

func TestSlashBetweenIntsStaysInt(t *testing.T) {
	// spec.md §3's type table types int/int "/" as "int", not "float" —
	// the runtime value must stay an IntValue to keep P3 (soundness)
	// holding for a statically-int-typed expression.
	_, global, err := run(t, `var(int) x = 7 / 2;`)
	require.NoError(t, err)
	x, _ := global.Get("x")
	assert.Equal(t, IntValue(3), x)
}

func TestSlashWithFloatOperandIsRealDivision(t *testing.T) {
	_, global, err := run(t, `var(float) x = 7.0 / 2;`)
	require.NoError(t, err)
	x, _ := global.Get("x")
	assert.Equal(t, FloatValue(3.5), x)
}

func TestFloorDivisionNegativeOperands(t *testing.T) {
	_, global, err := run(t, `var(int) x = -7 // 2;`)
	require.NoError(t, err)
	x, _ := global.Get("x")
	assert.Equal(t, IntValue(-4), x)
}

func TestStringConcatCoercion(t *testing.T) {
	_, global, err := run(t, `var(str) s = "n=" + 5;`)
	require.NoError(t, err)
	s, _ := global.Get("s")
	assert.Equal(t, StrValue("n=5"), s)
}

func TestStringRepetition(t *testing.T) {
	_, global, err := run(t, `var(str) s = "ab" * 3;`)
	require.NoError(t, err)
	s, _ := global.Get("s")
	assert.Equal(t, StrValue("ababab"), s)
}

func TestRangeIterationInclusive(t *testing.T) {
	_, global, err := run(t, `
		var(int) total = 0;
		for (var(int) i from range(1, 3)) {
			total += i;
		}
	`)
	require.NoError(t, err)
	total, _ := global.Get("total")
	assert.Equal(t, IntValue(6), total, "range(1,3) must include 3: 1+2+3")
}

func TestForOverStringIteratesByByte(t *testing.T) {
	_, global, err := run(t, `
		var(str) out = "";
		for (var(str) c from "abc") {
			out = out + c;
		}
	`)
	require.NoError(t, err)
	out, _ := global.Get("out")
	assert.Equal(t, StrValue("abc"), out)
}

func TestAccessSingleIndex(t *testing.T) {
	_, global, err := run(t, `var(str) s = "hello"; var(str) c = s[1];`)
	require.NoError(t, err)
	c, _ := global.Get("c")
	assert.Equal(t, StrValue("e"), c)
}

func TestAccessSlice(t *testing.T) {
	_, global, err := run(t, `var(str) s = "hello"; var(str) c = s[1:4];`)
	require.NoError(t, err)
	c, _ := global.Get("c")
	assert.Equal(t, StrValue("ell"), c)
}

func TestAccessNegativeIndex(t *testing.T) {
	_, global, err := run(t, `var(str) s = "hello"; var(str) c = s[-1];`)
	require.NoError(t, err)
	c, _ := global.Get("c")
	assert.Equal(t, StrValue("o"), c)
}

func TestAccessOutOfRange(t *testing.T) {
	_, _, err := run(t, `var(str) s = "hi"; var(str) c = s[5];`)
	cErr := requireInterpError(t, err)
	assert.Contains(t, cErr.Message, "Index out of range")
}

func TestUninitializedVariableUseIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `var(int) x; var(int) y = x + 1;`)
	cErr := requireInterpError(t, err)
	assert.Contains(t, cErr.Message, `"x" is not defined`)
}

func TestP6_DefaultParamsEvaluatedOnceAtDeclaration(t *testing.T) {
	src := `
		var(int) base = 10;
		func(int) addBase(var(int) n = base) {
			return n;
		}
		base = 99;
		var(int) r = addBase();
	`
	_, global, err := run(t, src)
	require.NoError(t, err)
	r, _ := global.Get("r")
	assert.Equal(t, IntValue(10), r, "reassigning base after declaration must not change the default already captured")
}

func TestFunctionBodyResolvesOuterScopeVariable(t *testing.T) {
	src := `
		var(int) g = 5;
		func(int) f(var(int) n) {
			return n + g;
		}
		var(int) r = f(2);
	`
	_, global, err := run(t, src)
	require.NoError(t, err)
	r, _ := global.Get("r")
	assert.Equal(t, IntValue(7), r)
}

func TestFunctionSeesOuterScopeAsOfCallTimeNotDeclarationTime(t *testing.T) {
	src := `
		var(int) g = 1;
		func(int) f() {
			return g;
		}
		g = 42;
		var(int) r = f();
	`
	_, global, err := run(t, src)
	require.NoError(t, err)
	r, _ := global.Get("r")
	assert.Equal(t, IntValue(42), r)
}

func TestFunctionAssignmentToOuterNameDoesNotLeakBack(t *testing.T) {
	src := `
		var(int) g = 1;
		func(int) f() {
			g = 99;
			return g;
		}
		var(int) r = f();
	`
	_, global, err := run(t, src)
	require.NoError(t, err)
	r, _ := global.Get("r")
	assert.Equal(t, IntValue(99), r)
	gAfter, _ := global.Get("g")
	assert.Equal(t, IntValue(1), gAfter, "a function's assignment to an outer-scope name must not mutate the real outer frame")
}

func TestP7_BreakAffectsOnlyInnermostLoop(t *testing.T) {
	src := `
		var(int) outerCount = 0;
		var(int) i = 0;
		while (i < 3) {
			var(int) j = 0;
			while (j < 3) {
				if (j == 1) { break; }
				outerCount += 1;
				j += 1;
			}
			outerCount += 100;
			i += 1;
		}
	`
	_, global, err := run(t, src)
	require.NoError(t, err)
	oc, _ := global.Get("outerCount")
	assert.Equal(t, IntValue(303), oc, "inner break must not stop the outer loop: 3 outer iterations * (1 inner + 100)")
}

func TestAndOrShortCircuitAndCoerceToBool(t *testing.T) {
	_, global, err := run(t, `
		var(bool) a = 0 and true;
		var(bool) b = 1 or false;
	`)
	require.NoError(t, err)
	a, _ := global.Get("a")
	b, _ := global.Get("b")
	assert.Equal(t, BoolValue(false), a)
	assert.Equal(t, BoolValue(true), b)
}

func TestBuiltinPrintNoSeparatorNoNewline(t *testing.T) {
	out, _, err := run(t, `print(1, "a", true);`)
	require.NoError(t, err)
	assert.Equal(t, `1atrue`, out)
}

func TestBuiltinPrintlnSpaceSeparatedWithNewline(t *testing.T) {
	out, _, err := run(t, `println(1, "a", true);`)
	require.NoError(t, err)
	assert.Equal(t, "1 a true\n", out)
}

func TestBuiltinLen(t *testing.T) {
	_, global, err := run(t, `var(int) n = len("hello");`)
	require.NoError(t, err)
	n, _ := global.Get("n")
	assert.Equal(t, IntValue(5), n)
}

func TestBuiltinPow(t *testing.T) {
	_, global, err := run(t, `var(float) p = pow(2, 10);`)
	require.NoError(t, err)
	p, _ := global.Get("p")
	assert.Equal(t, FloatValue(1024), p)
}

func TestBuiltinTypeConversions(t *testing.T) {
	_, global, err := run(t, `
		var(int) a = toint("42");
		var(float) b = tofloat("3.5");
		var(bool) c = tobool(0);
		var(str) d = tostr(true);
		var(str) e = typeof(1.5);
	`)
	require.NoError(t, err)
	a, _ := global.Get("a")
	b, _ := global.Get("b")
	c, _ := global.Get("c")
	d, _ := global.Get("d")
	e, _ := global.Get("e")
	assert.Equal(t, IntValue(42), a)
	assert.Equal(t, FloatValue(3.5), b)
	assert.Equal(t, BoolValue(false), c)
	assert.Equal(t, StrValue("true"), d)
	assert.Equal(t, StrValue("float"), e)
}

func TestBuiltinToIntInvalidLiteralRaisesRuntimeError(t *testing.T) {
	_, _, err := run(t, `var(int) x = toint("nope");`)
	cErr := requireInterpError(t, err)
	assert.Contains(t, cErr.Message, `Cannot convert`)
}

func TestDefaultParamArityOmittingTrailingArg(t *testing.T) {
	src := `
		func(int) add(var(int) a, var(int) b = 5) {
			return a + b;
		}
		var(int) x = add(2);
		var(int) y = add(2, 10);
	`
	_, global, err := run(t, src)
	require.NoError(t, err)
	x, _ := global.Get("x")
	y, _ := global.Get("y")
	assert.Equal(t, IntValue(7), x)
	assert.Equal(t, IntValue(12), y)
}
