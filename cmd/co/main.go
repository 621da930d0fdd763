// Command co is the Co language driver: run a .co source file, or with
// no arguments start an interactive REPL. Grounded on main/main.go's
// runFile/executeFileWithRecovery/startServer/showHelp/showVersion, kept
// thin per spec.md §6 ("the command-line driver... must only respect the
// interfaces in §6").
package main

import (
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/co-lang/co/internal/ast"
	"github.com/co-lang/co/internal/coerr"
	"github.com/co-lang/co/internal/interp"
	"github.com/co-lang/co/internal/parser"
	"github.com/co-lang/co/internal/repl"
	"github.com/co-lang/co/internal/types"
)

const (
	version = "v1.0.0"
	author  = "the Co project"
	license = "MIT"
	prompt  = "co >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
   ██████╗ ██████╗
  ██╔════╝██╔═══██╗
  ██║     ██║   ██║
  ██║     ██║   ██║
  ╚██████╗╚██████╔╝
   ╚═════╝ ╚═════╝
`
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) <= 1 {
		r := repl.New(banner, version, author, line, license, prompt)
		r.Start(os.Stdin, os.Stdout)
		return
	}

	switch os.Args[1] {
	case "--help", "-h":
		showHelp()
		return
	case "--version", "-v":
		showVersion()
		return
	case "serve":
		if len(os.Args) < 3 {
			redColor.Fprintln(os.Stderr, "Usage: co serve <port>")
			os.Exit(1)
		}
		startServer(os.Args[2])
		return
	}

	runFile(os.Args[1])
}

func showHelp() {
	cyanColor.Println("Co - An Interpreted Programming Language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  co                    Start interactive REPL mode")
	yellowColor.Println("  co <path-to-file>.co  Execute a Co source file")
	yellowColor.Println("  co serve <port>       Start a REPL server on the given TCP port")
	yellowColor.Println("  co --help             Display this help message")
	yellowColor.Println("  co --version          Display version information")
}

func showVersion() {
	cyanColor.Printf("Co %s (%s license, %s)\n", version, license, author)
}

// runFile implements spec.md §6's CLI contract exactly: exit 1 with
// "Usage: ..." if no filename (unreachable here since main already
// handles the no-args case as a REPL, so this only covers the
// wrong-extension and read-failure cases), exit 1 on a non-.co
// extension, exit 1 with "Error: File '<name>' not found or could not be
// opened." on I/O failure, exit 1 with the pass error's formatted
// message on any LexerError/ParserError/SemanticError/InterpreterError,
// exit 0 on success.
func runFile(fileName string) {
	if filepath.Ext(fileName) != ".co" {
		redColor.Fprintln(os.Stderr, "Error: File must be a .co file.")
		os.Exit(1)
	}

	content, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Error: File '%s' not found or could not be opened.\n", fileName)
		os.Exit(1)
	}

	if err := interpretToBuffer(string(content), os.Stdout); err != nil {
		redColor.Fprintln(os.Stderr, formatPassError(err))
		os.Exit(1)
	}
}

// parseAndCheck runs src through the lexer, parser and semantic analyzer,
// returning the checked program or the first pass's error.
func parseAndCheck(src string) (*ast.Program, error) {
	prog, err := parser.New(src).Parse()
	if err != nil {
		return nil, err
	}
	if err := types.Check(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// interpretToBuffer runs src through the full lexer→parser→types→interp
// pipeline, writing program output to out. out is an io.Writer rather than
// *os.File so the same path serves runFile's real stdout and tests writing
// to a bytes.Buffer.
func interpretToBuffer(src string, out io.Writer) error {
	prog, err := parseAndCheck(src)
	if err != nil {
		return err
	}
	ip := interp.New()
	ip.Stdout = out
	return ip.Run(prog)
}

func formatPassError(err error) string {
	if cErr, ok := err.(*coerr.Error); ok {
		return cErr.Error()
	}
	return err.Error()
}

// startServer listens on port and hands each connection its own REPL
// session, grounded on main/main.go's startServer/handleClient — carried
// as ambient CLI tooling (spec.md's Non-goals exclude concurrency in the
// language, not in the surrounding driver) and never reached from
// language execution itself.
func startServer(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Error: failed to start server on port %s: %v\n", port, err)
		os.Exit(1)
	}
	cyanColor.Printf("Co REPL server listening on :%s\n", port)
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "Error: failed to accept connection: %v\n", err)
			continue
		}
		go handleClient(conn)
	}
}

func handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("New client connected from %s\n", conn.RemoteAddr())
	r := repl.New(banner, version, author, line, license, prompt)
	r.Start(conn, conn)
	cyanColor.Printf("Client disconnected from %s\n", conn.RemoteAddr())
}
