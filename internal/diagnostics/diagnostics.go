// Package diagnostics is the expression compiler's error sink (spec §6,
// §7). No layer of the compiler panics or returns a Go error up the
// call stack for a source-level mistake; instead it appends a
// *Diagnostic here and trips the caller's error flag. Grounded on the
// teacher's coded-error diagnostics package, with the phase/code
// families renamed to this compiler's own error classification.
package diagnostics

import (
	"fmt"

	"github.com/veloxcache/vclc/internal/token"
)

type Phase string

const (
	PhaseLex  Phase = "lex"
	PhaseExpr Phase = "expr"
)

type Code string

const (
	// Lexical mismatch
	ErrExpectToken Code = "L001" // expected punctuation absent

	// Unknown symbol
	ErrUnknownSymbol Code = "S001"
	ErrSymbolKind    Code = "S002" // symbol kind unusable in expression
	ErrVoidFunc      Code = "S003" // function returns VOID used as value

	// Type errors
	ErrOperatorType   Code = "T001" // operand type inadmissible for operator
	ErrBinaryMismatch Code = "T002" // a OP b not possible
	ErrCompareType    Code = "T003" // comparison of mismatched types
	ErrExprType       Code = "T004" // expression has type X, expected Y
	ErrCannotConvert  Code = "T005" // cannot convert to STRING
	ErrBlobInString   Code = "T006" // blob used in string context

	// Argument errors
	ErrUnknownArg    Code = "A001"
	ErrDupArg        Code = "A002"
	ErrMissingArg    Code = "A003"
	ErrEnumValue     Code = "A004"
	ErrPositionAfter Code = "A005" // positional argument after named one
	ErrBadSignature  Code = "A006" // malformed argument-signature blob

	// Semantic constraints
	ErrAddrSlash   Code = "C001" // slash-prefixed literal used as address
	ErrAddrResolve Code = "C002" // address literal failed to resolve
)

var templates = map[Code]string{
	ErrExpectToken:    "expected %q, found %q",
	ErrUnknownSymbol:  "symbol not found: %q",
	ErrSymbolKind:     "symbol kind (%s) cannot be used in an expression",
	ErrVoidFunc:       "function %q returns VOID and cannot be used as a value",
	ErrOperatorType:   "operator %q not possible on type %s",
	ErrBinaryMismatch: "%s %q %s not possible",
	ErrCompareType:    "comparison of different types: %s %q %s",
	ErrExprType:       "expression has type %s, expected %s",
	ErrCannotConvert:  "cannot convert %s to STRING",
	ErrBlobInString:   "BLOB values can only be passed as module function arguments",
	ErrUnknownArg:     "unknown argument %q",
	ErrDupArg:         "argument %q already bound",
	ErrMissingArg:     "argument %q is missing",
	ErrEnumValue:      "%q is not one of the accepted values: %s",
	ErrPositionAfter:  "positional argument after named argument %q",
	ErrBadSignature:   "malformed argument signature: %s",
	ErrAddrSlash:      "cannot convert %q to an address: leading '/' is not allowed",
	ErrAddrResolve:    "cannot resolve %q to an address: %s",
}

// Diagnostic is one compiler-emitted message, anchored to a token span.
type Diagnostic struct {
	Code  Code
	Phase Phase
	Args  []any
	T1    token.Token
	T2    token.Token
}

func (d *Diagnostic) Error() string {
	tpl, ok := templates[d.Code]
	if !ok {
		tpl = string(d.Code)
	}
	msg := fmt.Sprintf(tpl, d.Args...)
	if d.T1.Line > 0 {
		return fmt.Sprintf("%d:%d: [%s] %s", d.T1.Line, d.T1.Column, d.Code, msg)
	}
	return fmt.Sprintf("[%s] %s", d.Code, msg)
}

// Sink collects diagnostics and latches the error flag (spec §5, §7):
// once tripped it stays tripped for the compile, and every layer of
// the expression compiler checks it after each sub-call.
type Sink struct {
	items   []*Diagnostic
	tripped bool
}

// Errorf records a diagnostic spanning t1..t2 and trips the error flag.
func (s *Sink) Errorf(phase Phase, code Code, t1, t2 token.Token, args ...any) {
	s.items = append(s.items, &Diagnostic{Code: code, Phase: phase, Args: args, T1: t1, T2: t2})
	s.tripped = true
}

// Error is a convenience wrapper that spans a single token.
func (s *Sink) Error(phase Phase, code Code, t token.Token, args ...any) {
	s.Errorf(phase, code, t, t, args...)
}

func (s *Sink) Failed() bool              { return s.tripped }
func (s *Sink) Diagnostics() []*Diagnostic { return s.items }

func (s *Sink) String() string {
	var out string
	for _, d := range s.items {
		out += d.Error() + "\n"
	}
	return out
}
