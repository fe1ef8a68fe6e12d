// Entry point (spec §4.8), grounded on vcc_expr0/vcc_Expr in
// original_source/lib/libvcc/vcc_expr.c. ParseExpr is the public
// "parse-and-emit-one-expression" entry the host calls; parseDemand is
// the shared "parse one expression, coerce to demand" helper also used
// by the call parser for each bound argument, so a module-function
// argument gets the identical STRING-family lowering a top-level
// expression does.
package vcc

import (
	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/editor"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/symbols"
	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

func isStringFamily(t *vtype.Type) bool {
	return t == vtype.STRING || t == vtype.STRINGS || t == vtype.STRING_LIST || t == vtype.STRANDS
}

// parseDemand parses one logical-or expression and coerces its result
// to demand, reporting ErrExprType on a final mismatch. demand may be
// any concrete type or a string-family pseudo-type.
func (s *State) parseDemand(demand *vtype.Type) (*fragment.Fragment, bool) {
	internal := demand
	if isStringFamily(demand) {
		internal = vtype.STRINGS
	}
	t1 := s.Tokens.Cur()
	e, ok := s.parseOr(internal)
	if !ok || s.Failed() {
		return nil, false
	}
	e, ok = s.lowerToDemand(e, demand)
	if !ok {
		return nil, false
	}
	if e.Fmt != demand {
		s.Errorf(diagnostics.ErrExprType, t1, e.T2, e.Fmt.String(), demand.String())
		return nil, false
	}
	return e, true
}

// lowerToDemand implements spec §4.8's post-parse lowering: the
// STRINGS boundary case (→ STRING, → STRING_LIST, → STRANDS), a
// to-string attempt for any other mismatch against a string-family
// demand, and the STRING_LIST wire-format wrap.
func (s *State) lowerToDemand(e *fragment.Fragment, demand *vtype.Type) (*fragment.Fragment, bool) {
	if e.Fmt == demand {
		return e, true
	}
	if e.Fmt != vtype.STRINGS {
		if !isStringFamily(demand) {
			return e, true // leave the mismatch for parseDemand's final check
		}
		str, ok := s.ToString(e)
		if !ok {
			return nil, false
		}
		e = str
	}
	switch demand {
	case vtype.STRING_LIST:
		return s.edit1(vtype.STRING_LIST, "runtime_strands_begin,\v+\n\v1,\nruntime_strands_end\v-", e)
	case vtype.STRING:
		return s.edit1(vtype.STRING, "\vS", e)
	case vtype.STRANDS:
		return s.edit1(vtype.STRANDS, "\vT", e)
	default:
		return e, true
	}
}

// ParseExpr parses one expression demanding fmt_ (never VOID, never
// STRINGS) and appends its rendered form to the code sink.
func (s *State) ParseExpr(demand *vtype.Type) bool {
	e, ok := s.parseDemand(demand)
	if !ok || s.Failed() {
		return false
	}
	s.Code.WriteString(editor.Render(s.Indent, e))
	return true
}

// EvalCallStatement parses a bare `ident(args...)` call statement: the
// call's VOID-ness (or not) is irrelevant here, unlike a call used as
// a value (spec §7's ErrVoidFunc).
func (s *State) EvalCallStatement() bool {
	cur := s.Tokens.Cur()
	if cur.Kind != token.IDENT {
		s.Errorf(diagnostics.ErrExpectToken, cur, cur, string(token.IDENT), string(cur.Kind))
		return false
	}
	s.Tokens.Advance()
	sym, ok := s.Symbols.Lookup(cur.Text)
	if !ok {
		s.Errorf(diagnostics.ErrUnknownSymbol, cur, cur, cur.Text)
		return false
	}
	if sym.Kind != symbols.KindFunc {
		s.Errorf(diagnostics.ErrSymbolKind, cur, cur, sym.Kind.String())
		return false
	}
	f, ok := s.parseCall(sym, cur)
	if !ok || s.Failed() {
		return false
	}
	s.Code.WriteString(editor.Render(s.Indent, f))
	s.Code.WriteString(";\n")
	return true
}
