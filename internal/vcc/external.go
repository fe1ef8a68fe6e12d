// Package vcc is the expression compiler itself: the recursive-descent,
// precedence-climbing parser over policy-language expressions (spec.md
// §2, §4). It depends only on the interfaces declared in this file —
// TokenStream, SymbolTable, NumericLexer, AddressResolver,
// RegexService, Diagnostics — never on their concrete reference
// implementations, so the core stays the same package whoever supplies
// those collaborators. State is the single value threaded through
// every parsing function (spec §5): no package-level variables carry
// compile state.
package vcc

import (
	"context"

	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/editor"
	"github.com/veloxcache/vclc/internal/symbols"
	"github.com/veloxcache/vclc/internal/token"
)

// TokenStream is the tokenizer external collaborator (spec §6).
type TokenStream interface {
	Cur() token.Token
	Advance() token.Token
	Peek(n int) token.Token
}

// SymbolTable is the name-resolution external collaborator (spec §6).
type SymbolTable interface {
	Lookup(name string) (*symbols.Symbol, bool)
	GetOrCreateACL(name string, at token.Token) *symbols.Symbol
	Declare(sym *symbols.Symbol) error
}

// NumericLexer converts unit suffixes on numeric literals (spec §6):
// the literal's own numeric value and fractional-ness are already
// carried on token.Token by the tokenizer, so only the unit-suffix
// lookups remain external collaborator surface.
type NumericLexer interface {
	// TimeUnitFactor returns the seconds-multiplier for a duration
	// literal's trailing unit identifier ("s", "m", "h", ...).
	TimeUnitFactor(unit string) (float64, bool)
	// BytesUnitFactor returns the byte-count multiplier for a bytes
	// literal's trailing unit identifier ("KB", "MB", ...).
	BytesUnitFactor(unit string) (float64, bool)
}

// AddressResolver resolves an address-type string literal (spec §6).
type AddressResolver interface {
	Resolve(ctx context.Context, literal string) (string, error)
}

// RegexService compiles a regex literal to a stable output reference
// (spec §6).
type RegexService interface {
	Compile(pattern string) (string, error)
}

// Diagnostics is the error sink external collaborator (spec §6). The
// concrete *diagnostics.Sink satisfies it; State consults only Failed
// between sub-calls, per the error-flag short-circuit design (spec §7).
type Diagnostics interface {
	Errorf(phase diagnostics.Phase, code diagnostics.Code, t1, t2 token.Token, args ...any)
	Failed() bool
}

// State is the parser state spec §5 requires: the token cursor, the
// three output sinks, the diagnostics sink, the indentation level, the
// unique-name counter (owned jointly with the fragment editor), and
// (implicitly) the error flag via Diag.Failed.
type State struct {
	Tokens  TokenStream
	Symbols SymbolTable
	Numeric NumericLexer
	Addr    AddressResolver
	Regex   RegexService
	Diag    Diagnostics

	Code    fragmentWriter
	Header  fragmentWriter
	Editor  *editor.Context // owns the prologue sink and unique counter

	Indent int

	// Ctx threads a deadline/cancellation-free context through the one
	// external call that genuinely does I/O: DNS resolution for
	// address literals (internal/addr). No other vcc operation blocks.
	Ctx context.Context

	// Method restricts which context variables the current entry
	// point may read (spec §4.2's "records a usage against the
	// current method context"); empty means unrestricted.
	Method string
}

// fragmentWriter is the minimal surface State needs from an output
// sink (internal/emit.Sink satisfies it, as does *bytes.Buffer in
// tests).
type fragmentWriter interface {
	Write(p []byte) (int, error)
	WriteString(s string) (int, error)
}

// Failed reports whether the diagnostics sink has tripped.
func (s *State) Failed() bool { return s.Diag.Failed() }

// Errorf is shorthand for s.Diag.Errorf with the expr phase.
func (s *State) Errorf(code diagnostics.Code, t1, t2 token.Token, args ...any) {
	s.Diag.Errorf(diagnostics.PhaseExpr, code, t1, t2, args...)
}

// expect reports an ErrExpectToken diagnostic if the current token
// isn't kind, otherwise consumes it. Returns whether it matched.
func (s *State) expect(kind token.Kind) bool {
	cur := s.Tokens.Cur()
	if cur.Kind != kind {
		s.Errorf(diagnostics.ErrExpectToken, cur, cur, string(kind), string(cur.Kind))
		return false
	}
	s.Tokens.Advance()
	return true
}

// Init registers the expression compiler's built-in symbols (spec
// §6's "initialisation hook"): regsub, regsuball, true, false.
func Init(t *symbols.Table) {
	symbols.RegisterBuiltins(t)
}
