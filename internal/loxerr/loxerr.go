// Package loxerr holds the error types that cross subsystem boundaries:
// static errors (scanner/parser/resolver) and runtime errors (interpreter).
// Non-local control flow (return/break/continue) is deliberately not an
// error type — see internal/interp/control.go.
package loxerr

import "github.com/freddie-nelson/golox/internal/token"

// Static is a scanner/parser/resolver error value carrying only a message.
// The scanner, parser and resolver report static errors through
// Reporter.TokenError/Error and do not return a *Static.
type Static struct {
	Message string
}

func (e *Static) Error() string { return e.Message }

// NewStatic wraps message as a *Static error.
func NewStatic(message string) error { return &Static{Message: message} }

// Runtime is a runtime error: it carries the offending token so the driver
// can report a source line.
type Runtime struct {
	Token   token.Token
	Message string
}

func (e *Runtime) Error() string { return e.Message }

// NewRuntime builds a *Runtime error for tok.
func NewRuntime(tok token.Token, message string) error {
	return &Runtime{Token: tok, Message: message}
}

// Reporter is the minimal surface the scanner/parser/resolver need to
// surface static errors while continuing to scan for more of them.
type Reporter interface {
	Error(line int, message string)
	TokenError(tok token.Token, message string)
	HadError() bool
}
