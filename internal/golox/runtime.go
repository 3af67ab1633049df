// Package golox wires the scanner, parser, resolver and interpreter into
// the driver: a REPL and a batch script runner, sharing one
// error-reporting/exit-code contract.
package golox

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/freddie-nelson/golox/internal/config"
	"github.com/freddie-nelson/golox/internal/interp"
	"github.com/freddie-nelson/golox/internal/loxerr"
	"github.com/freddie-nelson/golox/internal/parser"
	"github.com/freddie-nelson/golox/internal/resolver"
	"github.com/freddie-nelson/golox/internal/scanner"
	"github.com/freddie-nelson/golox/internal/token"
	"github.com/freddie-nelson/golox/internal/tracer"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitUsage   = 64
	ExitStatic  = 65
	ExitRuntime = 70
)

// Runtime is the long-lived driver: it owns the "had error"/"had runtime
// error" flags and the interpreter instance reused across REPL lines.
type Runtime struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader

	cfg    config.Config
	trc    *tracer.Tracer
	it     *interp.Interpreter

	dumpResolution bool

	hadError        bool
	hadRuntimeError bool
}

// New builds a Runtime. out/errOut/in default to os.Stdout/os.Stderr/os.Stdin
// when nil.
func New(cfg config.Config, out, errOut io.Writer, in io.Reader) *Runtime {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	if in == nil {
		in = os.Stdin
	}

	trc := tracer.New(errOut, cfg.TraceCalls)
	it := interp.New(out, cfg.MaxCallDepth)
	it.SetTracer(trc)

	return &Runtime{
		out:    out,
		errOut: errOut,
		in:     in,
		cfg:    cfg,
		trc:    trc,
		it:     it,
	}
}

// SetDumpResolution enables the --dump-resolution debug dump; the
// resolution map for the most recently run source is written to out as
// JSON after resolution, before interpretation.
func (r *Runtime) SetDumpResolution(enabled bool) {
	r.dumpResolution = enabled
}

// Run implements the CLI contract: no args starts the REPL, one arg runs
// a script, more than one is a usage error.
func (r *Runtime) Run(args []string) int {
	switch {
	case len(args) > 1:
		fmt.Fprintln(r.errOut, "Usage: golox [script]")
		return ExitUsage
	case len(args) == 1:
		return r.RunFile(args[0])
	default:
		return r.RunPrompt()
	}
}

// RunFile reads and runs a single script, returning the exit code.
func (r *Runtime) RunFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.errOut, "error reading file: %s\n", err.Error())
		return ExitUsage
	}

	r.run(string(data))

	if r.hadError {
		return ExitStatic
	}
	if r.hadRuntimeError {
		return ExitRuntime
	}
	return ExitOK
}

// RunPrompt runs the REPL: one line at a time, errors reported but never
// fatal, until EOF. "had error" clears between lines; "had runtime error"
// does not, so a prior crash still fails the process on exit.
func (r *Runtime) RunPrompt() int {
	prompt := isatty.IsTerminal(os.Stdin.Fd())
	sc := bufio.NewScanner(r.in)

	for {
		if prompt {
			fmt.Fprint(r.out, ">>> ")
		}
		if !sc.Scan() {
			break
		}

		r.run(sc.Text())
		r.hadError = false
	}

	if r.hadRuntimeError {
		return ExitRuntime
	}
	return ExitOK
}

func (r *Runtime) run(source string) {
	sc := scanner.New(source, r)
	tokens := sc.ScanTokens()
	if r.hadError {
		return
	}

	p := parser.New(tokens, r)
	statements := p.Parse()
	if r.hadError {
		return
	}

	res := resolver.New(r)
	locals := res.Resolve(statements)
	if r.hadError {
		return
	}

	if r.dumpResolution {
		r.writeResolutionDump(statements, locals)
	}

	r.it.SetLocals(locals)
	if err := r.it.Interpret(statements); err != nil {
		r.reportRuntimeError(err)
	}
}

func (r *Runtime) reportRuntimeError(err error) {
	if rt, ok := err.(*loxerr.Runtime); ok {
		fmt.Fprintf(r.errOut, "[line %d] RuntimeError: %s\n", rt.Token.Line, rt.Message)
		r.hadRuntimeError = true
		return
	}
	fmt.Fprintf(r.errOut, "RuntimeError: %s\n", err.Error())
	r.hadRuntimeError = true
}

// Error implements loxerr.Reporter for errors with no offending token
// (scanner errors).
func (r *Runtime) Error(line int, message string) {
	r.report(line, "", message)
}

// TokenError implements loxerr.Reporter for parser/resolver errors.
func (r *Runtime) TokenError(tok token.Token, message string) {
	if tok.Kind == token.Eof {
		r.report(tok.Line, " at end", message)
	} else {
		r.report(tok.Line, " at '"+tok.Lexeme+"'", message)
	}
}

// HadError implements loxerr.Reporter.
func (r *Runtime) HadError() bool {
	return r.hadError
}

// HadRuntimeError reports whether a runtime error has occurred since the
// Runtime was created; the flag is never cleared.
func (r *Runtime) HadRuntimeError() bool {
	return r.hadRuntimeError
}

func (r *Runtime) report(line int, where, message string) {
	fmt.Fprintf(r.errOut, "[line %d] Error%s: %s\n", line, where, message)
	r.hadError = true
}

var _ interface {
	Error(int, string)
	TokenError(token.Token, string)
	HadError() bool
} = (*Runtime)(nil)
