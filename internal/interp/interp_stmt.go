package interp

import (
	"github.com/co-lang/co/internal/ast"
)

// execStatementList runs list's statements in order against the current
// top frame, stopping early the moment any statement surfaces a non-none
// signal or an error — grounded on
// original_source/project_code/interpreter.py's visitStatementListNode,
// which breaks out of its loop as soon as any of return_flag/break_flag/
// continue_flag is set.
func (ip *Interpreter) execStatementList(list *ast.StatementList) (signal, error) {
	for _, s := range list.Statements {
		sig, err := ip.execStmt(s)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (ip *Interpreter) execStmt(s ast.Stmt) (signal, error) {
	switch n := s.(type) {
	case *ast.Empty:
		return noSignal, nil
	case *ast.VarDecl:
		return noSignal, ip.execVarDecl(n)
	case *ast.Assignment:
		return noSignal, ip.execAssignment(n)
	case *ast.Conditional:
		return ip.execConditional(n)
	case *ast.While:
		return ip.execWhile(n)
	case *ast.For:
		return ip.execFor(n)
	case *ast.Break:
		return signal{kind: signalBreak}, nil
	case *ast.Continue:
		return signal{kind: signalContinue}, nil
	case *ast.Return:
		return ip.execReturn(n)
	case *ast.FuncDecl:
		return noSignal, ip.execFuncDecl(n)
	case *ast.FuncCall:
		_, err := ip.evalFuncCall(n)
		return noSignal, err
	default:
		return noSignal, ip.errf(s.Tok(), "internal error: unhandled statement node")
	}
}

// execVarDecl binds each declared name directly in the current frame,
// uninitialized names getting a nil Value ("none"), matching
// visitVarDeclStatementNode.
func (ip *Interpreter) execVarDecl(d *ast.VarDecl) error {
	frame := ip.stack.Peek()
	for _, item := range d.Items {
		if item.Init == nil {
			frame.Declare(item.Name.Name, nil)
			continue
		}
		v, err := ip.evalExpr(item.Init)
		if err != nil {
			return err
		}
		frame.Declare(item.Name.Name, v)
	}
	return nil
}

// execAssignment only ever sees a *ast.Var on the left: semantic
// analysis unconditionally rejects *ast.Access as an assignment target
// ("Strings are immutable"), so that branch below can never run on a
// program that reached the interpreter — it exists purely as a defensive
// internal-error guard, per spec.md §7's "internal invariant violations
// are programmer errors".
func (ip *Interpreter) execAssignment(a *ast.Assignment) error {
	v, err := ip.evalExpr(a.Rhs)
	if err != nil {
		return err
	}
	switch lhs := a.Lhs.(type) {
	case *ast.Var:
		if !ip.stack.Peek().Set(lhs.Name, v) {
			return ip.errf(lhs.Tok(), "internal error: assignment to undeclared variable %q", lhs.Name)
		}
		return nil
	default:
		return ip.errf(a.Tok(), "internal error: assignment target should have been rejected by semantic analysis")
	}
}

// execConditional runs the first truthy if/elseif case, else the else
// body if present, each in its own child frame — grounded on
// visitConditionalStatementNode's per-branch stack frame push/pop.
func (ip *Interpreter) execConditional(n *ast.Conditional) (signal, error) {
	for i, c := range n.Cases {
		cond, err := ip.evalExpr(c.Cond)
		if err != nil {
			return noSignal, err
		}
		if !bool(cond.(BoolValue)) {
			continue
		}
		name := "if"
		if i > 0 {
			name = "elseif"
		}
		return ip.runBlock(name, c.Body)
	}
	if n.ElseBody != nil {
		return ip.runBlock("else", n.ElseBody)
	}
	return noSignal, nil
}

// execWhile loops while cond is true, honoring break/continue/return and
// running each iteration's body in the loop's single pushed frame
// (variables declared in the body are re-declared fresh each iteration
// since execVarDecl always rebinds directly).
func (ip *Interpreter) execWhile(n *ast.While) (signal, error) {
	outer := ip.stack.Peek()
	frame := NewFrame("while", outer)
	ip.stack.Push(frame)
	defer ip.stack.Pop()

	for {
		cond, err := ip.evalExpr(n.Cond)
		if err != nil {
			return noSignal, err
		}
		if !bool(cond.(BoolValue)) {
			return noSignal, nil
		}

		sig, err := ip.execStatementList(n.Body)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalReturn:
			return sig, nil
		}
	}
}

// execFor iterates a RangeExpr (inclusive end, per spec.md §4.4) or a
// string's bytes, binding the loop variable once per iteration in the
// for statement's single pushed frame.
func (ip *Interpreter) execFor(n *ast.For) (signal, error) {
	outer := ip.stack.Peek()

	var values []Value
	if rng, ok := n.Iterable.(*ast.RangeExpr); ok {
		ints, err := ip.evalRangeInts(rng)
		if err != nil {
			return noSignal, err
		}
		values = make([]Value, len(ints))
		for i, n := range ints {
			values[i] = IntValue(n)
		}
	} else {
		iterable, err := ip.evalExpr(n.Iterable)
		if err != nil {
			return noSignal, err
		}
		s := string(iterable.(StrValue))
		values = make([]Value, len(s))
		for i := 0; i < len(s); i++ {
			values[i] = StrValue(s[i : i+1])
		}
	}

	frame := NewFrame("for", outer)
	ip.stack.Push(frame)
	defer ip.stack.Pop()

	loopVarName := n.VarDecl.Items[0].Name.Name
	frame.Declare(loopVarName, nil)

	for _, v := range values {
		frame.Variables[loopVarName] = v

		sig, err := ip.execStatementList(n.Body)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalReturn:
			return sig, nil
		}
	}
	return noSignal, nil
}

// evalRangeInts evaluates a RangeExpr's bounds to the inclusive integer
// sequence it denotes. RangeExpr is only ever reached here, from execFor
// — it is not a case in evalExpr's dispatcher because Co's grammar never
// lets a range value escape into a variable or another expression
// (spec.md §4.2: "RangeExpr is special: it is only a legal iterable in
// for, never a value elsewhere").
func (ip *Interpreter) evalRangeInts(n *ast.RangeExpr) ([]int64, error) {
	startVal, err := ip.evalExpr(n.Start)
	if err != nil {
		return nil, err
	}
	endVal, err := ip.evalExpr(n.End)
	if err != nil {
		return nil, err
	}
	step := int64(1)
	if n.Step != nil {
		stepVal, err := ip.evalExpr(n.Step)
		if err != nil {
			return nil, err
		}
		step = int64(stepVal.(IntValue))
	}

	start := int64(startVal.(IntValue))
	end := int64(endVal.(IntValue))
	if step == 0 {
		return nil, ip.errf(n.Tok(), "internal error: range step must not be zero")
	}

	var out []int64
	if step > 0 {
		for v := start; v <= end; v += step {
			out = append(out, v)
		}
	} else {
		for v := start; v >= end; v += step {
			out = append(out, v)
		}
	}
	return out, nil
}

func (ip *Interpreter) execReturn(n *ast.Return) (signal, error) {
	if n.Value == nil {
		return signal{kind: signalReturn}, nil
	}
	v, err := ip.evalExpr(n.Value)
	if err != nil {
		return noSignal, err
	}
	return signal{kind: signalReturn, value: v}, nil
}

// execFuncDecl builds and registers a funcProto: each default
// expression is evaluated exactly once, now, against the declaring
// frame, per P6 (spec.md §9) — a call that omits a trailing argument
// reuses this pre-computed value rather than re-evaluating the default
// expression, so a later reassignment of a global the default refers to
// does not retroactively change it.
func (ip *Interpreter) execFuncDecl(n *ast.FuncDecl) error {
	proto := &funcProto{
		retType:   n.ReturnType,
		body:      n.Body,
		declFrame: ip.stack.Peek(),
	}
	prototype := make(map[string]Value, len(n.Params))
	for _, p := range n.Params {
		proto.paramNames = append(proto.paramNames, p.Name.Name)
		if p.Default == nil {
			prototype[p.Name.Name] = nil
			continue
		}
		v, err := ip.evalExpr(p.Default)
		if err != nil {
			return err
		}
		prototype[p.Name.Name] = v
	}
	proto.prototype = prototype
	ip.funcs[n.Name] = proto
	return nil
}

// runBlock pushes a child frame named name, runs body, and pops it
// regardless of the outcome.
func (ip *Interpreter) runBlock(name string, body *ast.StatementList) (signal, error) {
	outer := ip.stack.Peek()
	ip.stack.Push(NewFrame(name, outer))
	defer ip.stack.Pop()
	return ip.execStatementList(body)
}
