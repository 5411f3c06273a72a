// Package repl implements the interactive Read-Eval-Print Loop: source
// typed one line at a time, run against a persistent interpreter so that
// variable, function, and class declarations accumulate across lines.
package repl

import (
	"io"
	"strings"

	"github.com/akashmaji946/lox/interpreter"
	"github.com/akashmaji946/lox/lexer"
	"github.com/akashmaji946/lox/parser"
	"github.com/akashmaji946/lox/resolver"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// Color definitions for REPL output.
var (
	blueColor  = color.New(color.FgBlue)
	redColor   = color.New(color.FgRed)
	greenColor = color.New(color.FgGreen)
	cyanColor  = color.New(color.FgCyan)
)

// Repl is a configured interactive session: its banner, prompt, and the
// version/author strings shown at startup.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	Prompt  string
}

// New creates a Repl with the given display configuration.
func New(banner, version, author, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, Prompt: prompt}
}

// printBanner writes the welcome banner and usage hints to writer.
func (r *Repl) printBanner(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "Version: %s | Author: %s\n", r.Version, r.Author)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintln(writer, "Type Lox code and press enter. Type '.exit' to quit.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop against writer, reading lines via readline
// until the user types ".exit" or sends EOF (Ctrl+D). A single
// interpreter instance is reused across lines, so declarations persist.
func (r *Repl) Start(writer io.Writer) {
	r.printBanner(writer)

	rl, err := readline.NewEx(&readline.Config{Prompt: r.Prompt, Stdout: writer})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	interp := interpreter.New()
	interp.Stdout = writer

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Bye.\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Bye.\n"))
			return
		}

		r.runLine(writer, interp, line)
	}
}

// runLine runs one line of source against the persistent interpreter,
// recovering from any internal panic so a single bad line cannot kill
// the session.
func (r *Repl) runLine(writer io.Writer, interp *interpreter.Interpreter, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "[line ?] RuntimeError: %v\n", rec)
		}
	}()

	tokens, lexErrors := lexer.New(line).Scan()
	for _, e := range lexErrors {
		redColor.Fprintf(writer, "%s\n", e.Error())
	}

	p := parser.New(tokens)
	stmts := p.Parse()
	if p.HasErrors() {
		for _, e := range p.GetErrors() {
			redColor.Fprintf(writer, "%s\n", e)
		}
		return
	}
	if len(lexErrors) > 0 {
		return
	}

	res := resolver.New()
	res.Resolve(stmts)
	if res.HasErrors() {
		for _, e := range res.GetErrors() {
			redColor.Fprintf(writer, "%s\n", e)
		}
		return
	}
	interp.SetLocals(res.Locals())

	if err := interp.Interpret(stmts); err != nil {
		redColor.Fprintf(writer, "%s\n", reportRuntimeError(err))
	}
}

// reportRuntimeError renders err as a diagnostic line, falling back to
// its plain message when it is not the concrete RuntimeError type
// (which should not happen in practice, but defends against a future
// error path that forgets to wrap).
func reportRuntimeError(err error) string {
	type reporter interface{ Report() string }
	if r, ok := err.(reporter); ok {
		return r.Report()
	}
	return err.Error()
}
