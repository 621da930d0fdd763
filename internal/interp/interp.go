package interp

import (
	"bufio"
	"io"
	"os"

	"github.com/co-lang/co/internal/ast"
	"github.com/co-lang/co/internal/coerr"
	"github.com/co-lang/co/internal/token"
)

// funcProto is a declared function's call template: its parameter names in
// declaration order, its body, a prototype Frame pre-seeded with each
// default parameter's value (evaluated once, at declaration time, per
// spec.md §4.4 / P6), and declFrame, the frame active when the function was
// declared. A call deep-copies the prototype bindings and the whole
// declFrame chain (see snapshotFrameChain) rather than sharing either live,
// so two calls to the same function never see each other's arguments or
// leak mutations back into an outer scope, but each call still resolves
// outer names per spec.md §4.4's "walks outer until the name is found".
type funcProto struct {
	paramNames []string
	retType    token.Type
	body       *ast.StatementList
	prototype  map[string]Value
	declFrame  *Frame
}

// signalKind distinguishes the non-local control effects a statement can
// surface, replacing the three boolean flags
// (return_flag/break_flag/continue_flag) of
// original_source/project_code/interpreter.py with spec.md §9's suggested
// alternative: "a single ControlEffect enum surfaced by the evaluator" —
// chosen because it composes with exhaustive switch statements instead of
// needing three flags checked and cleared at every call site.
type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
)

// signal is the non-nil-interface-sized wrapper statement execution
// returns to propagate a non-local control effect up to the construct
// that handles it (a loop for break/continue, a function call for
// return). signalNone (the zero value) means "fell through normally".
type signal struct {
	kind  signalKind
	value Value // only meaningful when kind == signalReturn
}

var noSignal = signal{}

// Interpreter walks a type-checked Program, evaluating it against a
// ProgramStack of Frames. Zero value is not ready to use; call New.
type Interpreter struct {
	stack     ProgramStack
	funcs     map[string]*funcProto
	zeroToken token.Token
	hasZero   bool

	Stdout io.Writer
	Stdin  *bufio.Reader
}

// New creates an Interpreter writing to stdout and reading from stdin.
func New() *Interpreter {
	return &Interpreter{
		funcs:  make(map[string]*funcProto),
		Stdout: os.Stdout,
		Stdin:  bufio.NewReader(os.Stdin),
	}
}

// Run executes prog's top-level statement list in a fresh global frame,
// for one-shot execution (the cmd/co file driver).
func (ip *Interpreter) Run(prog *ast.Program) error {
	ip.stack.Push(NewFrame("global", nil))
	defer ip.stack.Pop()
	_, err := ip.execStatementList(prog.Body)
	return err
}

// RunLine executes prog against this Interpreter's persistent global
// frame, creating that frame on first use instead of per call. This is
// what internal/repl uses so a declaration on one line stays visible to
// later lines, matching go-mix's "one Evaluator per REPL session" model.
func (ip *Interpreter) RunLine(prog *ast.Program) error {
	if ip.stack.Size() == 0 {
		ip.stack.Push(NewFrame("global", nil))
	}
	_, err := ip.execStatementList(prog.Body)
	return err
}

// GlobalVarNames lists the names bound directly in the persistent global
// frame, in no particular order, for the REPL's "/scope" command.
func (ip *Interpreter) GlobalVarNames() []string {
	if ip.stack.Size() == 0 {
		return nil
	}
	global := ip.stack.frames[0]
	names := make([]string, 0, len(global.Variables))
	for name := range global.Variables {
		names = append(names, name)
	}
	return names
}

func (ip *Interpreter) errf(tok token.Token, format string, args ...interface{}) error {
	return coerr.New(coerr.Interpreter, tok.Line, tok.Column, format, args...)
}

func newInterpError(tok token.Token, msg string) error {
	return coerr.New(coerr.Interpreter, tok.Line, tok.Column, "%s", msg)
}

// noteZero records an integer-literal-zero token so a subsequent
// division/modulo by it can report the divisor's exact source position,
// per spec.md §4.4's zero_token rule.
func (ip *Interpreter) noteZero(tok token.Token) {
	ip.zeroToken = tok
	ip.hasZero = true
}

func (ip *Interpreter) divideByZeroToken(fallback token.Token) token.Token {
	if ip.hasZero {
		return ip.zeroToken
	}
	return fallback
}

func deepCopyBindings(src map[string]Value) map[string]Value {
	dst := make(map[string]Value, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// snapshotFrameChain deep-copies f and its whole Outer chain, matching
// original_source/project_code/interpreter.py's visitFuncDeclStatementNode,
// which seeds a function's prototype frame with outer_scope=<declaring
// frame> and then copy.deepcopy's the whole chain on every call. The
// snapshot is taken fresh per call against the live chain, so a function
// sees the outer scope's values as of call time, but mutations inside the
// function body never leak back out since the copy is fully detached.
func snapshotFrameChain(f *Frame) *Frame {
	if f == nil {
		return nil
	}
	return &Frame{
		Name:      f.Name,
		Variables: deepCopyBindings(f.Variables),
		Outer:     snapshotFrameChain(f.Outer),
	}
}
