// Multiplicative layer (spec §4.4), grounded on vcc_expr_mul in
// original_source/lib/libvcc/vcc_expr.c.
package vcc

import (
	"fmt"

	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

func (s *State) parseMul(demand *vtype.Type) (*fragment.Fragment, bool) {
	e, ok := s.parseAtom(demand)
	if !ok || s.Failed() {
		return nil, false
	}
	for {
		cur := s.Tokens.Cur()
		if cur.Kind != token.STAR && cur.Kind != token.SLASH {
			return e, true
		}
		if e.Fmt.MulType == nil {
			s.Errorf(diagnostics.ErrOperatorType, cur, cur, cur.Text, e.Fmt.String())
			return nil, false
		}
		s.Tokens.Advance()
		r, ok := s.parseAtom(e.Fmt.MulType)
		if !ok || s.Failed() {
			return nil, false
		}
		if r.Fmt != vtype.INT && r.Fmt != e.Fmt.MulType {
			s.Errorf(diagnostics.ErrOperatorType, r.T1, r.T2, cur.Text, r.Fmt.String())
			return nil, false
		}
		tmpl := fmt.Sprintf("(\v1 %s \v2)", cur.Text)
		e, ok = s.edit2(e.Fmt, tmpl, e, r)
		if !ok {
			return nil, false
		}
	}
}
