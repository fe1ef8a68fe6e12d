// Comparison layer (spec §4.6), grounded on vcc_expr_cmp/cmp_simple/
// cmp_regexp/cmp_acl/cmp_string in original_source/lib/libvcc/vcc_expr.c.
package vcc

import (
	"fmt"

	"github.com/veloxcache/vclc/internal/config"
	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

func relationOf(k token.Kind) (config.Relation, bool) {
	switch k {
	case token.EQ:
		return config.RelEQ, true
	case token.NEQ:
		return config.RelNEQ, true
	case token.LT:
		return config.RelLT, true
	case token.GT:
		return config.RelGT, true
	case token.LEQ:
		return config.RelLEQ, true
	case token.GEQ:
		return config.RelGEQ, true
	case token.MATCH:
		return config.RelMatch, true
	case token.NOMATCH:
		return config.RelNoMatch, true
	default:
		return 0, false
	}
}

func (s *State) parseCmp(demand *vtype.Type) (*fragment.Fragment, bool) {
	e, ok := s.parseAdd(demand)
	if !ok || s.Failed() {
		return nil, false
	}
	if e.Fmt == vtype.BOOL {
		return e, true
	}

	cur := s.Tokens.Cur()
	if !cur.IsRelational() {
		if demand == vtype.BOOL {
			return s.ToBool(e)
		}
		return e, true
	}

	rel, _ := relationOf(cur.Kind)
	row, found := config.FindCmp(e.Fmt, rel)
	if !found {
		s.Errorf(diagnostics.ErrOperatorType, cur, cur, cur.Text, e.Fmt.String())
		return nil, false
	}
	s.Tokens.Advance()

	switch row.Kind {
	case config.CmpSimple:
		r, ok := s.parseAdd(e.Fmt)
		if !ok || s.Failed() {
			return nil, false
		}
		if r.Fmt != e.Fmt {
			s.Errorf(diagnostics.ErrCompareType, e.T1, r.T2, e.Fmt.String(), r.Fmt.String())
			return nil, false
		}
		return s.edit2(vtype.BOOL, row.Emit, e, r)

	case config.CmpRegexp:
		lhs, ok := s.ToString(e)
		if !ok {
			return nil, false
		}
		pat := s.Tokens.Cur()
		if !s.expect(token.STRING) {
			return nil, false
		}
		ref, err := s.Regex.Compile(pat.Dec)
		if err != nil {
			s.Errorf(diagnostics.ErrCannotConvert, pat, pat, err.Error())
			return nil, false
		}
		tmpl := fmt.Sprintf("%sruntime_re_match(ctx, \vS, %s)", row.Emit, ref)
		return s.edit1(vtype.BOOL, tmpl, lhs)

	case config.CmpACL:
		name := s.Tokens.Cur()
		if !s.expect(token.IDENT) {
			return nil, false
		}
		s.Symbols.GetOrCreateACL(name.Text, name)
		tmpl := fmt.Sprintf("%sruntime_acl_match(ctx, \v1, vcl_acl_%s)", row.Emit, name.Text)
		return s.edit1(vtype.BOOL, tmpl, e)

	case config.CmpString:
		r, ok := s.parseAdd(vtype.STRINGS)
		if !ok || s.Failed() {
			return nil, false
		}
		if e.NStr == 1 && r.NStr == 1 {
			tmpl := fmt.Sprintf("(%s runtime_strcmp(\vS, \vs))", row.Emit)
			return s.edit2(vtype.BOOL, tmpl, e, r)
		}
		tmpl := fmt.Sprintf("(%s runtime_compare_strands(\vT, \vt))", row.Emit)
		return s.edit2(vtype.BOOL, tmpl, e, r)

	default:
		s.Errorf(diagnostics.ErrOperatorType, cur, cur, cur.Text, e.Fmt.String())
		return nil, false
	}
}
