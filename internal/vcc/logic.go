// Logical layers (spec §4.7): not, and, or. Grounded on vcc_expr_not,
// vcc_expr_cand, vcc_expr_cor in original_source/lib/libvcc/vcc_expr.c
// — each only engages its own operator when the caller's demand is
// BOOL, otherwise falling straight through to the next layer down.
package vcc

import (
	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

func (s *State) parseNot(demand *vtype.Type) (*fragment.Fragment, bool) {
	if demand == vtype.BOOL && s.Tokens.Cur().Kind == token.BANG {
		s.Tokens.Advance()
		inner, ok := s.parseCmp(vtype.BOOL)
		if !ok || s.Failed() {
			return nil, false
		}
		if inner.Fmt != vtype.BOOL {
			s.Errorf(diagnostics.ErrExprType, inner.T1, inner.T2, inner.Fmt.String(), vtype.BOOL.String())
			return nil, false
		}
		return s.edit1(vtype.BOOL, "!(\v1)", inner)
	}
	return s.parseCmp(demand)
}

func (s *State) parseAnd(demand *vtype.Type) (*fragment.Fragment, bool) {
	e, ok := s.parseNot(demand)
	if !ok || s.Failed() || demand != vtype.BOOL {
		return e, ok
	}
	for s.Tokens.Cur().Kind == token.AND {
		if e.Fmt != vtype.BOOL {
			s.Errorf(diagnostics.ErrExprType, e.T1, e.T2, e.Fmt.String(), vtype.BOOL.String())
			return nil, false
		}
		s.Tokens.Advance()
		r, ok := s.parseNot(vtype.BOOL)
		if !ok || s.Failed() {
			return nil, false
		}
		if r.Fmt != vtype.BOOL {
			s.Errorf(diagnostics.ErrExprType, r.T1, r.T2, r.Fmt.String(), vtype.BOOL.String())
			return nil, false
		}
		e, ok = s.edit2(vtype.BOOL, "(\v1 &&\v+\n\v2\v-)", e, r)
		if !ok {
			return nil, false
		}
	}
	return e, true
}

func (s *State) parseOr(demand *vtype.Type) (*fragment.Fragment, bool) {
	e, ok := s.parseAnd(demand)
	if !ok || s.Failed() || demand != vtype.BOOL {
		return e, ok
	}
	for s.Tokens.Cur().Kind == token.OR {
		if e.Fmt != vtype.BOOL {
			s.Errorf(diagnostics.ErrExprType, e.T1, e.T2, e.Fmt.String(), vtype.BOOL.String())
			return nil, false
		}
		s.Tokens.Advance()
		r, ok := s.parseAnd(vtype.BOOL)
		if !ok || s.Failed() {
			return nil, false
		}
		if r.Fmt != vtype.BOOL {
			s.Errorf(diagnostics.ErrExprType, r.T1, r.T2, r.Fmt.String(), vtype.BOOL.String())
			return nil, false
		}
		e, ok = s.edit2(vtype.BOOL, "(\v1 ||\v+\n\v2\v-)", e, r)
		if !ok {
			return nil, false
		}
	}
	return e, true
}
