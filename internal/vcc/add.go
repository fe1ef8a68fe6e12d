// Additive layer (spec §4.5), grounded on vcc_expr_add in
// original_source/lib/libvcc/vcc_expr.c. Operand typing and result
// typing are table-driven via internal/config.AddRules; the
// STRINGS-concatenation fallback is handled here directly since it
// isn't expressible as a fixed-arity table row.
package vcc

import (
	"fmt"

	"github.com/veloxcache/vclc/internal/config"
	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

func (s *State) parseAdd(demand *vtype.Type) (*fragment.Fragment, bool) {
	e, ok := s.parseMul(demand)
	if !ok || s.Failed() {
		return nil, false
	}
	for {
		cur := s.Tokens.Cur()
		if cur.Kind != token.PLUS && cur.Kind != token.MINUS {
			return e, true
		}
		op := cur.Text[0]
		s.Tokens.Advance()

		_, foundA := config.FindAddByA(op, e.Fmt)
		rhsDemand := e.Fmt
		if !foundA && demand == vtype.STRINGS {
			rhsDemand = vtype.STRINGS
		}
		r, ok := s.parseMul(rhsDemand)
		if !ok || s.Failed() {
			return nil, false
		}

		if row, found := config.FindAdd(op, e.Fmt, r.Fmt); found {
			tmpl := fmt.Sprintf("(\v1 %c \v2)", op)
			e, ok = s.edit2(row.Result, tmpl, e, r)
			if !ok {
				return nil, false
			}
			continue
		}

		if op != '+' {
			s.Errorf(diagnostics.ErrBinaryMismatch, e.T1, r.T2, e.Fmt.String(), "-", r.Fmt.String())
			return nil, false
		}
		if e.Fmt != vtype.STRINGS && e.Fmt.ToString == "" && r.Fmt != vtype.STRINGS && r.Fmt.ToString == "" {
			s.Errorf(diagnostics.ErrBinaryMismatch, e.T1, r.T2, e.Fmt.String(), "+", r.Fmt.String())
			return nil, false
		}

		lhs, ok := s.ToString(e)
		if !ok {
			return nil, false
		}
		rhs, ok := s.ToString(r)
		if !ok {
			return nil, false
		}

		if lhs.Constancy.Has(fragment.StrConst) && rhs.Constancy.Has(fragment.Const) {
			// lhs is literal string text: adjacent literals in the
			// target language concatenate across a bare newline, so
			// this stays a compile-time constant; STR_CONST only
			// carries through when rhs is itself literal text too.
			joined, ok := s.edit2(vtype.STRINGS, "\v1\n\v2", lhs, rhs)
			if !ok {
				return nil, false
			}
			joined.Constancy = fragment.Const
			if rhs.Constancy.Has(fragment.StrConst) {
				joined.Constancy |= fragment.StrConst
			}
			joined.NStr = lhs.NStr + rhs.NStr
			e = joined
			continue
		}
		joined, ok := s.edit2(vtype.STRINGS, "\v1,\n\v2", lhs, rhs)
		if !ok {
			return nil, false
		}
		joined.Constancy = fragment.Var
		joined.NStr = lhs.NStr + rhs.NStr
		e = joined
	}
}
