// Atom parser (spec §4.2): parenthesised sub-expressions, identifiers
// dispatched through the symbol table, string and numeric literals,
// and the `default` keyword's type-specific built-ins. Grounded on
// vcc_expr4 in original_source/lib/libvcc/vcc_expr.c.
package vcc

import (
	"errors"
	"strconv"

	"github.com/veloxcache/vclc/internal/addr"
	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

// parseAtom parses one atom demanding fmt_ and applies the atom
// layer's universal header-to-string coercion before returning.
func (s *State) parseAtom(demand *vtype.Type) (*fragment.Fragment, bool) {
	f, ok := s.parseAtomInner(demand)
	if !ok || s.Failed() {
		return nil, false
	}
	if f.Fmt == vtype.HEADER && demand != vtype.HEADER {
		return s.ToString(f)
	}
	return f, true
}

func (s *State) parseAtomInner(demand *vtype.Type) (*fragment.Fragment, bool) {
	cur := s.Tokens.Cur()
	switch cur.Kind {
	case token.LPAREN:
		s.Tokens.Advance()
		inner, ok := s.parseOr(demand)
		if !ok || s.Failed() {
			return nil, false
		}
		if !s.expect(token.RPAREN) {
			return nil, false
		}
		if inner.Fmt == vtype.STRINGS {
			return inner, true
		}
		return s.edit1(inner.Fmt, "(\v1)", inner)

	case token.STRING:
		s.Tokens.Advance()
		if demand == vtype.IP {
			return s.resolveAddress(cur)
		}
		f := fragment.New(vtype.STRINGS, []byte(strconv.Quote(cur.Dec)))
		f.Constancy = fragment.Const | fragment.StrConst
		f.NStr = 1
		f.T1, f.T2 = cur, cur
		return f, true

	case token.MINUS:
		if s.Tokens.Peek(0).Kind == token.NUMBER {
			s.Tokens.Advance()
			return s.parseNumber(demand, cur, true)
		}
		s.Errorf(diagnostics.ErrExpectToken, cur, cur, string(token.NUMBER), string(s.Tokens.Peek(0).Kind))
		return nil, false

	case token.NUMBER:
		return s.parseNumber(demand, cur, false)

	case token.IDENT:
		if cur.Text == "default" {
			if f, ok, handled := s.parseDefaultKeyword(demand, cur); handled {
				return f, ok
			}
		}
		s.Tokens.Advance()
		sym, ok := s.Symbols.Lookup(cur.Text)
		if !ok {
			s.Errorf(diagnostics.ErrUnknownSymbol, cur, cur, cur.Text)
			return nil, false
		}
		return s.evalSymbol(sym, cur, demand)

	default:
		s.Errorf(diagnostics.ErrExpectToken, cur, cur, "expression", string(cur.Kind))
		return nil, false
	}
}

// resolveAddress implements the address-type string-literal path
// (spec §4.2). A leading '/' is reported as ErrAddrSlash, matching the
// original's distinct diagnostic; any other resolution failure (DNS
// lookup, malformed host:port) is reported as the more generic
// ErrAddrResolve. AddressResolver implementations classify the first
// case by returning addr.ErrLeadingSlash (or a wrapper of it).
func (s *State) resolveAddress(lit token.Token) (*fragment.Fragment, bool) {
	ref, err := s.Addr.Resolve(s.Ctx, lit.Dec)
	if err != nil {
		if errors.Is(err, addr.ErrLeadingSlash) {
			s.Errorf(diagnostics.ErrAddrSlash, lit, lit, lit.Dec)
		} else {
			s.Errorf(diagnostics.ErrAddrResolve, lit, lit, lit.Dec, err.Error())
		}
		return nil, false
	}
	f := fragment.New(vtype.IP, []byte(ref))
	f.Constancy = fragment.Const
	f.T1, f.T2 = lit, lit
	return f, true
}

func (s *State) parseDefaultKeyword(demand *vtype.Type, cur token.Token) (*fragment.Fragment, bool, bool) {
	var text string
	switch demand {
	case vtype.PROBE:
		text = "default_probe"
	case vtype.BACKEND:
		text = "default_director"
	default:
		return nil, false, false
	}
	s.Tokens.Advance()
	f := fragment.New(demand, []byte(text))
	f.Constancy = fragment.Const
	f.T1, f.T2 = cur, cur
	return f, true, true
}

func (s *State) parseNumber(demand *vtype.Type, numTok token.Token, negate bool) (*fragment.Fragment, bool) {
	s.Tokens.Advance()
	val := numTok.Num
	if negate {
		val = -val
	}
	last := numTok

	if next := s.Tokens.Cur(); next.Kind == token.IDENT {
		if factor, ok := s.Numeric.TimeUnitFactor(next.Text); ok {
			val *= factor
			last = next
			s.Tokens.Advance()
			f := fragment.New(vtype.DURATION, []byte(strconv.FormatFloat(val, 'g', -1, 64)))
			f.Constancy = fragment.Const
			f.T1, f.T2 = numTok, last
			return f, true
		}
	}

	if demand == vtype.BYTES {
		if next := s.Tokens.Cur(); next.Kind == token.IDENT {
			if factor, ok := s.Numeric.BytesUnitFactor(next.Text); ok {
				val *= factor
				last = next
				s.Tokens.Advance()
			}
		}
		f := fragment.New(vtype.BYTES, []byte(strconv.FormatFloat(val, 'g', -1, 64)))
		f.Constancy = fragment.Const
		f.T1, f.T2 = numTok, last
		return f, true
	}

	if numTok.Frac || demand == vtype.REAL {
		f := fragment.New(vtype.REAL, []byte(strconv.FormatFloat(val, 'g', -1, 64)))
		f.Constancy = fragment.Const
		f.T1, f.T2 = numTok, last
		return f, true
	}

	f := fragment.New(vtype.INT, []byte(strconv.FormatInt(int64(val), 10)))
	f.Constancy = fragment.Const
	f.T1, f.T2 = numTok, last
	return f, true
}
