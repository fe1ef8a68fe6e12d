// Package fragment defines the expression compiler's central entity
// (spec §3): an in-progress emitted-code value carrying a static type,
// a templated byte buffer, constancy bits, and provenance tokens.
// Fragments are built bottom-up by internal/vcc and consumed
// exclusively by internal/editor; none is ever aliased.
package fragment

import (
	"fmt"

	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

// Constancy is the three-bit set from spec §3: VAR marks an arbitrary
// runtime value, CONST a compile-time constant, and STR_CONST (which
// implies CONST) a STRINGS fragment whose last element is literal
// text. A freshly spliced fragment always starts out VAR; callers that
// know better (a literal concatenation, a handle quoted as its own
// name) override Constancy explicitly afterward, mirroring the
// original's vcc_new_expr default plus selective override.
type Constancy uint8

const (
	Var      Constancy = 1 << iota // arbitrary runtime value
	Const                          // pure compile-time constant
	StrConst                       // literal string constant (fmt == STRINGS only)
)

// Has reports whether c carries every bit of want.
func (c Constancy) Has(want Constancy) bool { return c&want == want }

// Fragment is one partially built emitted-code value.
type Fragment struct {
	Fmt       *vtype.Type
	Buf       []byte
	Constancy Constancy
	NStr      int // valid when Fmt == STRINGS: elements not yet joined
	T1, T2    token.Token
}

// New creates a fresh fragment holding literal bytes, with constancy
// Var and, when fmt is STRINGS, NStr 1 (spec §3: "conventionally 1
// when set").
func New(fmt *vtype.Type, buf []byte) *Fragment {
	f := &Fragment{Fmt: fmt, Buf: buf, Constancy: Var}
	if fmt == vtype.STRINGS {
		f.NStr = 1
	}
	return f
}

// CheckInvariants validates the structural invariants of spec §8 item 1:
// at least one constancy bit is set, STR_CONST implies CONST, and
// STR_CONST implies fmt == STRINGS. Used by tests, not the hot path.
func (f *Fragment) CheckInvariants() error {
	if f.Constancy == 0 {
		return fmt.Errorf("fragment has no constancy bit set")
	}
	if f.Constancy.Has(StrConst) && !f.Constancy.Has(Const) {
		return fmt.Errorf("STR_CONST without CONST")
	}
	if f.Constancy.Has(StrConst) && f.Fmt != vtype.STRINGS {
		return fmt.Errorf("STR_CONST on non-STRINGS fragment (fmt=%s)", f.Fmt)
	}
	return nil
}
