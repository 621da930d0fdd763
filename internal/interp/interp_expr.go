package interp

import (
	"math"

	"github.com/co-lang/co/internal/ast"
	"github.com/co-lang/co/internal/token"
)

// evalExpr evaluates e against the current top frame, grounded on
// original_source/project_code/interpreter.py's visit* methods for
// expression nodes. Every case here assumes e already passed semantic
// analysis: type mismatches, undeclared names, and arity errors are
// programmer errors at this point, not user-facing diagnostics.
func (ip *Interpreter) evalExpr(e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case *ast.Var:
		v, ok := ip.stack.Peek().Get(n.Name)
		if !ok {
			return nil, ip.errf(n.Tok(), "internal error: variable %q not bound", n.Name)
		}
		if v == nil {
			return nil, ip.errf(n.Tok(), `Variable %q is not defined`, n.Name)
		}
		return v, nil

	case *ast.IntLit:
		if n.Value == 0 {
			ip.noteZero(n.Token)
		}
		return IntValue(n.Value), nil
	case *ast.FloatLit:
		return FloatValue(n.Value), nil
	case *ast.BoolLit:
		return BoolValue(n.Value), nil
	case *ast.StrLit:
		return StrValue(n.Value), nil

	case *ast.UnaryOp:
		return ip.evalUnaryOp(n)
	case *ast.BinaryOp:
		return ip.evalBinaryOp(n)
	case *ast.Access:
		return ip.evalAccess(n)
	case *ast.FuncCall:
		return ip.evalFuncCall(n)

	default:
		return nil, ip.errf(e.Tok(), "internal error: unhandled expression node")
	}
}

func (ip *Interpreter) evalUnaryOp(n *ast.UnaryOp) (Value, error) {
	child, err := ip.evalExpr(n.Child)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.NOT:
		return BoolValue(!bool(child.(BoolValue))), nil
	case token.PLUS:
		switch c := child.(type) {
		case FloatValue:
			return c, nil
		default:
			return IntValue(mustInt(c)), nil
		}
	case token.MINUS:
		switch c := child.(type) {
		case FloatValue:
			return -c, nil
		default:
			return IntValue(-mustInt(c)), nil
		}
	default:
		return nil, ip.errf(n.Tok(), "internal error: unhandled unary operator %q", n.Op)
	}
}

func mustInt(v Value) int64 {
	if iv, ok := v.(IntValue); ok {
		return int64(iv)
	}
	return 0
}

func (ip *Interpreter) evalBinaryOp(n *ast.BinaryOp) (Value, error) {
	switch n.Op {
	case token.AND:
		left, err := ip.evalExpr(n.Left)
		if err != nil {
			return nil, err
		}
		if !truthy(left) {
			return BoolValue(false), nil
		}
		right, err := ip.evalExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return BoolValue(truthy(right)), nil

	case token.OR:
		left, err := ip.evalExpr(n.Left)
		if err != nil {
			return nil, err
		}
		if truthy(left) {
			return BoolValue(true), nil
		}
		right, err := ip.evalExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return BoolValue(truthy(right)), nil
	}

	left, err := ip.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := ip.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.PLUS:
		if left.Kind() == StrKind || right.Kind() == StrKind {
			return StrValue(coerceToStr(left) + coerceToStr(right)), nil
		}
		return ip.arith(n, left, right, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })

	case token.MINUS:
		return ip.arith(n, left, right, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })

	case token.STAR:
		if s, ok := strRepeat(left, right); ok {
			return s, nil
		}
		return ip.arith(n, left, right, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })

	case token.SLASH:
		return ip.evalDivision(n, left, right)

	case token.IDIV:
		return ip.evalIntDivision(n, left, right)

	case token.PERCENT:
		return ip.evalModulo(n, left, right)

	case token.EQ:
		return BoolValue(valuesEqual(left, right)), nil
	case token.NEQ:
		return BoolValue(!valuesEqual(left, right)), nil

	case token.LT, token.LE, token.GT, token.GE:
		return ip.compare(n, left, right)

	default:
		return nil, ip.errf(n.Tok(), "internal error: unhandled binary operator %q", n.Op)
	}
}

// strRepeat implements "str" * int / int * "str" repetition. ok is false
// when neither operand is a string, signalling the caller should fall
// through to numeric multiplication.
func strRepeat(left, right Value) (Value, bool) {
	if s, ok := left.(StrValue); ok {
		if n, ok := right.(IntValue); ok {
			return StrValue(repeat(string(s), int64(n))), true
		}
	}
	if s, ok := right.(StrValue); ok {
		if n, ok := left.(IntValue); ok {
			return StrValue(repeat(string(s), int64(n))), true
		}
	}
	return nil, false
}

func repeat(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// arith applies intOp or floatOp per checkArithmeticOp's lattice
// (types/types_expr.go): a float operand promotes the whole operation to
// float, otherwise both operands are int. The caller is never reached
// with a string or bool operand — the checker already rejected those.
func (ip *Interpreter) arith(n *ast.BinaryOp, left, right Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (Value, error) {
	if left.Kind() == FloatKind || right.Kind() == FloatKind {
		return FloatValue(floatOp(asFloat(left), asFloat(right))), nil
	}
	return IntValue(intOp(int64(left.(IntValue)), int64(right.(IntValue)))), nil
}

func asFloat(v Value) float64 {
	switch x := v.(type) {
	case FloatValue:
		return float64(x)
	case IntValue:
		return float64(x)
	default:
		return 0
	}
}

// evalDivision implements "/". types/types_expr.go's checkArithmeticOp
// statically types int/int division as "int" (spec.md §3's Type rules:
// "Otherwise int" applies to "/" the same as every other arithmetic
// operator; only "//" is carved out as the exception). To keep the
// runtime value's Kind consistent with that static type (P3, semantic
// soundness), int/int "/" floor-divides toward negative infinity instead
// of performing host true division — the same rule spec.md's Interpreter
// section gives for "//". A float operand still performs real float
// division, matching the float-involved row of the same table.
func (ip *Interpreter) evalDivision(n *ast.BinaryOp, left, right Value) (Value, error) {
	if left.Kind() == FloatKind || right.Kind() == FloatKind {
		rf := asFloat(right)
		if rf == 0 {
			return nil, ip.errf(ip.divideByZeroToken(n.Tok()), "Division by zero detected")
		}
		return FloatValue(asFloat(left) / rf), nil
	}
	r := int64(right.(IntValue))
	if r == 0 {
		return nil, ip.errf(ip.divideByZeroToken(n.Tok()), "Division by zero detected")
	}
	return IntValue(floorDiv(int64(left.(IntValue)), r)), nil
}

// evalIntDivision implements "//", always yielding int per the type
// table, floor-dividing toward negative infinity on mixed signs.
func (ip *Interpreter) evalIntDivision(n *ast.BinaryOp, left, right Value) (Value, error) {
	if left.Kind() == FloatKind || right.Kind() == FloatKind {
		rf := asFloat(right)
		if rf == 0 {
			return nil, ip.errf(ip.divideByZeroToken(n.Tok()), "Division by zero detected")
		}
		return IntValue(int64(math.Floor(asFloat(left) / rf))), nil
	}
	r := int64(right.(IntValue))
	if r == 0 {
		return nil, ip.errf(ip.divideByZeroToken(n.Tok()), "Division by zero detected")
	}
	return IntValue(floorDiv(int64(left.(IntValue)), r)), nil
}

func (ip *Interpreter) evalModulo(n *ast.BinaryOp, left, right Value) (Value, error) {
	if left.Kind() == FloatKind || right.Kind() == FloatKind {
		rf := asFloat(right)
		if rf == 0 {
			return nil, ip.errf(ip.divideByZeroToken(n.Tok()), "Modulo by zero detected")
		}
		return FloatValue(floatFloorMod(asFloat(left), rf)), nil
	}
	r := int64(right.(IntValue))
	if r == 0 {
		return nil, ip.errf(ip.divideByZeroToken(n.Tok()), "Modulo by zero detected")
	}
	return IntValue(floorMod(int64(left.(IntValue)), r)), nil
}

// floorDiv and floorMod implement Python-style floor division/modulo
// (result follows the sign of the divisor), per spec.md's "Host
// semantics for // floor-divides integers toward negative infinity on
// mixed signs".
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func floatFloorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func valuesEqual(left, right Value) bool {
	switch l := left.(type) {
	case IntValue:
		r := right.(IntValue)
		return l == r
	case FloatValue:
		r := right.(FloatValue)
		return l == r
	case BoolValue:
		r := right.(BoolValue)
		return l == r
	case StrValue:
		r := right.(StrValue)
		return l == r
	default:
		return false
	}
}

func (ip *Interpreter) compare(n *ast.BinaryOp, left, right Value) (Value, error) {
	if ls, ok := left.(StrValue); ok {
		rs := right.(StrValue)
		switch n.Op {
		case token.LT:
			return BoolValue(ls < rs), nil
		case token.LE:
			return BoolValue(ls <= rs), nil
		case token.GT:
			return BoolValue(ls > rs), nil
		default:
			return BoolValue(ls >= rs), nil
		}
	}
	lf, rf := asFloat(left), asFloat(right)
	switch n.Op {
	case token.LT:
		return BoolValue(lf < rf), nil
	case token.LE:
		return BoolValue(lf <= rf), nil
	case token.GT:
		return BoolValue(lf > rf), nil
	default:
		return BoolValue(lf >= rf), nil
	}
}

// truthy gives AND/OR a host-style truthiness test for a non-bool
// operand (spec.md §4.3: "and"/"or" require only one operand to be
// bool), grounded on the Python original's reliance on Python's own
// truthiness when evaluating "and"/"or" expressions.
func truthy(v Value) bool {
	switch x := v.(type) {
	case BoolValue:
		return bool(x)
	case IntValue:
		return x != 0
	case FloatValue:
		return x != 0
	case StrValue:
		return x != ""
	default:
		return false
	}
}

// evalAccess implements indexing (End == nil) and slicing (End != nil)
// of a string. Bounds rule and error message are grounded on
// original_source/project_code/interpreter.py's visitAccessNode; single
// indexing returning exactly one character (rather than the original's
// literal accessor[start:None] Python slice, which would return a
// suffix) follows spec.md §4.4's explicit text: "a[i:j] returns a[i..j]
// (exclusive j)" describing only the two-index form, implying a[i] alone
// is plain single-element indexing.
func (ip *Interpreter) evalAccess(n *ast.Access) (Value, error) {
	accessorVal, err := ip.evalExpr(n.Accessor)
	if err != nil {
		return nil, err
	}
	s := string(accessorVal.(StrValue))
	length := int64(len(s))

	startVal, err := ip.evalExpr(n.Start)
	if err != nil {
		return nil, err
	}
	start := int64(startVal.(IntValue))

	if n.End == nil {
		if abs64(start) >= length {
			return nil, ip.errf(n.Tok(), `Index out of range: "[%d]"`, start)
		}
		idx := normalizeIndex(start, length)
		return StrValue(s[idx : idx+1]), nil
	}

	endVal, err := ip.evalExpr(n.End)
	if err != nil {
		return nil, err
	}
	end := int64(endVal.(IntValue))

	if abs64(start) >= length {
		return nil, ip.errf(n.Tok(), `Index out of range: "[%d:%d]"`, start, end)
	}

	lo := normalizeIndex(start, length)
	hi := clampIndex(end, length)
	if hi < lo {
		hi = lo
	}
	return StrValue(s[lo:hi]), nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// normalizeIndex maps a validated in-range index (possibly negative) to
// its 0-based byte offset, Python-style (negative counts from the end).
func normalizeIndex(i, length int64) int64 {
	if i < 0 {
		return length + i
	}
	return i
}

// clampIndex maps an end-of-slice index the same way but clamps the
// result into [0, length] instead of requiring it to be in range, since
// an out-of-range slice end is silently truncated under host slicing
// conventions (only the start index is bounds-checked, per spec.md §4.4).
func clampIndex(i, length int64) int64 {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func (ip *Interpreter) evalFuncCall(n *ast.FuncCall) (Value, error) {
	if impl, ok := builtinImpls[n.Name]; ok {
		return impl(ip, n)
	}
	return ip.callUserFunc(n)
}

// callUserFunc's frame is linked to a snapshot of the function's declaring
// scope (see funcProto.declFrame), not the caller's frame, matching
// spec.md §4.4's lexical-scoping rule rather than dynamic scoping.
func (ip *Interpreter) callUserFunc(n *ast.FuncCall) (Value, error) {
	proto, ok := ip.funcs[n.Name]
	if !ok {
		return nil, ip.errf(n.Tok(), "internal error: function %q not defined", n.Name)
	}

	bindings := deepCopyBindings(proto.prototype)
	for i, argExpr := range n.Args {
		v, err := ip.evalExpr(argExpr)
		if err != nil {
			return nil, err
		}
		bindings[proto.paramNames[i]] = v
	}

	frame := NewFrame(n.Name, snapshotFrameChain(proto.declFrame))
	frame.Variables = bindings
	ip.stack.Push(frame)
	sig, err := ip.execStatementList(proto.body)
	ip.stack.Pop()
	if err != nil {
		return nil, err
	}
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return nil, nil
}
