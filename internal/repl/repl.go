// Package repl implements an interactive Read-Eval-Print Loop for Co.
// Each session owns one Interpreter, so runtime state (variables,
// functions) persists across lines the way go-mix's REPL persists its
// Evaluator. Each line is semantically checked on its own, so a line that
// names a variable or function declared on an earlier line is rejected
// before it runs.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/co-lang/co/internal/coerr"
	"github.com/co-lang/co/internal/interp"
	"github.com/co-lang/co/internal/parser"
	"github.com/co-lang/co/internal/types"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a configured interactive session, grounded on repl/repl.go's
// Repl struct (banner/version/author/line/license/prompt), narrowed to
// Co's language surface: no struct/package/import commands, since Co has
// neither.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New creates a Repl with the given display configuration.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Co!")
	cyanColor.Fprintf(writer, "%s\n", "Type a statement and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit, '/scope' to inspect the current global frame.")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the main loop, reading lines from reader (via readline) and
// writing output and diagnostics to writer. Each line is parsed and
// checked as a program of its own and then run against one persistent
// Interpreter, whose global frame keeps earlier lines' bindings.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	ip := interp.New()
	ip.Stdout = writer
	session := newSession(ip)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			return
		}
		if line == "/scope" {
			session.printScope(writer)
			continue
		}

		rl.SaveHistory(line)
		session.runLine(writer, line)
	}
}

// session wraps a long-lived Interpreter so each REPL line runs against
// the accumulated global frame, rather than a fresh one, matching
// go-mix's "one Evaluator per REPL instance" persistence. The type check
// of each line starts from a fresh global scope.
type session struct {
	ip *interp.Interpreter
}

func newSession(ip *interp.Interpreter) *session {
	return &session{ip: ip}
}

func (s *session) runLine(writer io.Writer, line string) {
	prog, err := parser.New(line).Parse()
	if err != nil {
		printPassError(writer, err)
		return
	}
	if err := types.Check(prog); err != nil {
		printPassError(writer, err)
		return
	}
	if err := s.ip.RunLine(prog); err != nil {
		printPassError(writer, err)
	}
}

func (s *session) printScope(writer io.Writer) {
	names := s.ip.GlobalVarNames()
	if len(names) == 0 {
		yellowColor.Fprintln(writer, "(no variables declared)")
		return
	}
	for _, name := range names {
		yellowColor.Fprintf(writer, "%s\n", name)
	}
}

func printPassError(writer io.Writer, err error) {
	if cErr, ok := err.(*coerr.Error); ok {
		redColor.Fprintf(writer, "%s\n", cErr.Error())
		return
	}
	redColor.Fprintf(writer, "%v\n", err)
}
