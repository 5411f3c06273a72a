// Command lox is the CLI driver for the interpreter: `lox <script>` runs
// a file, `lox` with no argument starts an interactive prompt.
package main

import (
	"fmt"
	"os"

	"github.com/akashmaji946/lox/interpreter"
	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/parser"
	"github.com/akashmaji946/lox/repl"
	"github.com/akashmaji946/lox/resolver"
	"github.com/fatih/color"
)

const (
	exitOK          = 0
	exitUsageError  = 64
	exitStaticError = 65
	exitRuntimeErr  = 70
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

const (
	version = "v1.0.0"
	author  = "akashmaji(@iisc.ac.in)"
	prompt  = "lox > "
	line    = "----------------------------------------------------------------"
	banner  = `
  _
 | |    _____  __
 | |   / _ \ \/ /
 | |__| (_) >  <
 |_____\___/_/\_\
`
)

func main() {
	if len(os.Args) > 2 {
		redColor.Fprintln(os.Stderr, "Usage: lox [script]")
		os.Exit(exitUsageError)
	}

	if len(os.Args) == 2 {
		switch os.Args[1] {
		case "--help", "-h":
			showHelp()
			os.Exit(exitOK)
		case "--version", "-v":
			showVersion()
			os.Exit(exitOK)
		default:
			runFile(os.Args[1])
			return
		}
	}

	repl.New(banner, version, author, line, prompt).Start(os.Stdout)
}

func showHelp() {
	cyanColor.Println("lox - a tree-walking interpreter for a small scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  lox                 Start the interactive prompt")
	yellowColor.Println("  lox <path-to-file>   Run a script")
	yellowColor.Println("  lox --help           Show this help message")
	yellowColor.Println("  lox --version        Show version information")
}

func showVersion() {
	cyanColor.Printf("lox %s by %s\n", version, author)
}

// runFile reads, runs, and maps script to a process exit code: 0 on
// success, 65 if scanning/parsing/resolving reported a static error,
// 70 on a runtime error. A panic escaping the interpreter (a bug, not a
// user error) is caught and reported the same way a runtime error is.
func runFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file '%s': %v\n", path, err)
		os.Exit(exitUsageError)
	}

	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(os.Stderr, "RuntimeError: %v\n", rec)
			os.Exit(exitRuntimeErr)
		}
	}()

	tokens, lexErrors := lexer.New(string(src)).Scan()

	p := parser.New(tokens)
	stmts := p.Parse()

	hasStaticError := len(lexErrors) > 0 || p.HasErrors()
	for _, e := range lexErrors {
		redColor.Fprintln(os.Stderr, e.Error())
	}
	for _, e := range p.GetErrors() {
		redColor.Fprintln(os.Stderr, e)
	}

	if hasStaticError {
		os.Exit(exitStaticError)
	}

	res := resolver.New()
	res.Resolve(stmts)
	if res.HasErrors() {
		for _, e := range res.GetErrors() {
			redColor.Fprintln(os.Stderr, e)
		}
		os.Exit(exitStaticError)
	}

	interp := interpreter.New()
	interp.SetLocals(res.Locals())

	if err := interp.Interpret(stmts); err != nil {
		if reporter, ok := err.(interface{ Report() string }); ok {
			redColor.Fprintln(os.Stderr, reporter.Report())
		} else {
			redColor.Fprintln(os.Stderr, fmt.Sprintf("RuntimeError: %v", err))
		}
		os.Exit(exitRuntimeErr)
	}

	os.Exit(exitOK)
}
