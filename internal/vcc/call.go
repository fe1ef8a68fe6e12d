// Call parser (spec §4.3), grounded on vcc_func/vcc_do_arg/
// vcc_do_enum/vcc_priv_arg in original_source/lib/libvcc/vcc_expr.c.
// Decodes the callee's packed argument signature via internal/modules,
// binds positional then named arguments against it, synthesises
// private-argument shims without consuming input, and splices
// everything into one call fragment.
package vcc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/funbit/pkg/funbit"
	"github.com/google/uuid"
	"github.com/veloxcache/vclc/internal/config"
	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/modules"
	"github.com/veloxcache/vclc/internal/symbols"
	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

// parseCall parses `'(' args ')'` against sym's decoded signature and
// returns the composed call fragment.
func (s *State) parseCall(sym *symbols.Symbol, at token.Token) (*fragment.Fragment, bool) {
	decoded, err := modules.DecodeSignature(vtype.Global(), funbit.NewBitStringFromBytes(sym.ArgSig))
	if err != nil {
		s.Errorf(diagnostics.ErrBadSignature, at, at, err.Error())
		return nil, false
	}
	if !s.expect(token.LPAREN) {
		return nil, false
	}

	argBufs := make([][]byte, len(decoded.Args))
	bound := make([]bool, len(decoded.Args))
	var nonPrivate []int
	for i, a := range decoded.Args {
		if a.IsPrivate {
			argBufs[i] = s.synthesizePriv(sym, a.Private)
			bound[i] = true
			continue
		}
		nonPrivate = append(nonPrivate, i)
	}

	pos := 0
	for s.Tokens.Cur().Kind != token.RPAREN {
		if s.Failed() {
			return nil, false
		}
		cur := s.Tokens.Cur()
		if cur.Kind == token.IDENT && s.Tokens.Peek(0).Kind == token.ASSIGN {
			break
		}
		if pos >= len(nonPrivate) {
			s.Errorf(diagnostics.ErrUnknownArg, cur, cur, "<extra positional argument>")
			return nil, false
		}
		idx := nonPrivate[pos]
		buf, ok := s.parseFormalValue(decoded.Args[idx])
		if !ok || s.Failed() {
			return nil, false
		}
		argBufs[idx], bound[idx] = buf, true
		pos++
		if s.Tokens.Cur().Kind != token.COMMA {
			break
		}
		s.Tokens.Advance()
	}

	lastNamed := ""
	for s.Tokens.Cur().Kind != token.RPAREN {
		if s.Failed() {
			return nil, false
		}
		cur := s.Tokens.Cur()
		if !(cur.Kind == token.IDENT && s.Tokens.Peek(0).Kind == token.ASSIGN) {
			s.Errorf(diagnostics.ErrPositionAfter, cur, cur, lastNamed)
			return nil, false
		}
		s.Tokens.Advance() // name
		s.Tokens.Advance() // '='
		idx := findArgByName(decoded.Args, cur.Text)
		if idx < 0 {
			s.Errorf(diagnostics.ErrUnknownArg, cur, cur, cur.Text)
			return nil, false
		}
		if bound[idx] {
			s.Errorf(diagnostics.ErrDupArg, cur, cur, cur.Text)
			return nil, false
		}
		buf, ok := s.parseFormalValue(decoded.Args[idx])
		if !ok || s.Failed() {
			return nil, false
		}
		argBufs[idx], bound[idx] = buf, true
		lastNamed = cur.Text
		if s.Tokens.Cur().Kind != token.COMMA {
			break
		}
		s.Tokens.Advance()
	}

	closeTok := s.Tokens.Cur()
	if !s.expect(token.RPAREN) {
		return nil, false
	}

	for i, a := range decoded.Args {
		if bound[i] {
			continue
		}
		if a.Default != "" {
			argBufs[i] = formatDefault(a)
			continue
		}
		s.Errorf(diagnostics.ErrMissingArg, at, closeTok, argLabel(a, i))
		return nil, false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s(ctx", decoded.CFunc)
	if sym.Extra != "" {
		fmt.Fprintf(&b, ", %s", sym.Extra)
	}
	for _, buf := range argBufs {
		b.WriteString(",\n  ")
		b.Write(buf)
	}
	b.WriteString(")")

	f := fragment.New(sym.Type, []byte(b.String()))
	f.Constancy = fragment.Var
	f.T1, f.T2 = at, closeTok
	return f, true
}

// parseFormalValue parses the one bound value for formal a: an
// enumeration identifier validated against its value list, or a full
// sub-expression demanding a's declared type.
func (s *State) parseFormalValue(a modules.ArgDescriptor) ([]byte, bool) {
	if a.Type == vtype.ENUM {
		cur := s.Tokens.Cur()
		if cur.Kind != token.IDENT || !containsStr(a.EnumValues, cur.Text) {
			s.Errorf(diagnostics.ErrEnumValue, cur, cur, cur.Text, strings.Join(a.EnumValues, ", "))
			return nil, false
		}
		s.Tokens.Advance()
		return quoteEnumValue(cur.Text), true
	}
	e, ok := s.parseDemand(a.Type)
	if !ok {
		return nil, false
	}
	return e.Buf, true
}

// formatDefault renders a's declared default the same way an explicit
// value for a would be rendered: an ENUM default is an unquoted bare
// word in the manifest (internal/modules.parseArg), so it needs the
// same quoting an explicit enum argument gets in parseFormalValue;
// every other type's default is already a valid literal as stored.
func formatDefault(a modules.ArgDescriptor) []byte {
	if a.Type == vtype.ENUM {
		return quoteEnumValue(a.Default)
	}
	return []byte(a.Default)
}

// quoteEnumValue renders an enum identifier as the string literal the
// generated call expects in its argument's place.
func quoteEnumValue(value string) []byte {
	return []byte(strconv.Quote(value))
}

func findArgByName(args []modules.ArgDescriptor, name string) int {
	for i, a := range args {
		if !a.IsPrivate && a.Name == name {
			return i
		}
	}
	return -1
}

func argLabel(a modules.ArgDescriptor, i int) string {
	if a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("#%d", i+1)
}

// synthesizePriv emits a private-argument shim without consuming any
// input tokens (spec §4.3). A call-private argument gets a fresh
// static slot named from a random identifier (so two calls to the
// same function never collide) and registers its finaliser in the
// header sink.
func (s *State) synthesizePriv(sym *symbols.Symbol, kind config.PrivKind) []byte {
	switch kind {
	case config.PrivVCL:
		return []byte(fmt.Sprintf("&VGC_vmod_%s", sym.Module))
	case config.PrivCall:
		slot := "vgc_priv_call_" + strings.ReplaceAll(uuid.New().String(), "-", "")
		fmt.Fprintf(s.Header, "static struct vmod_priv %s;\n", slot)
		fmt.Fprintf(s.Header, "runtime_priv_call_register(&%s, %s_fini);\n", slot, slot)
		return []byte("&" + slot)
	case config.PrivTask:
		return []byte(fmt.Sprintf("runtime_priv_task(ctx, &VGC_vmod_%s)", sym.Module))
	case config.PrivTop:
		return []byte(fmt.Sprintf("runtime_priv_top(ctx, &VGC_vmod_%s)", sym.Module))
	default:
		return []byte(fmt.Sprintf("&VGC_vmod_%s", sym.Module))
	}
}

// parseRegsub parses the regsub/regsuball intrinsic call (spec §4.3's
// final paragraph): `'(' STRINGS ',' regex ',' STRINGS ')'`.
func (s *State) parseRegsub(sym *symbols.Symbol, at token.Token) (*fragment.Fragment, bool) {
	if !s.expect(token.LPAREN) {
		return nil, false
	}
	e1, ok := s.parseOr(vtype.STRINGS)
	if !ok || s.Failed() {
		return nil, false
	}
	if !s.expect(token.COMMA) {
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
	if !s.expect(token.COMMA) {
		return nil, false
	}
	e2, ok := s.parseOr(vtype.STRINGS)
	if !ok || s.Failed() {
		return nil, false
	}
	closeTok := s.Tokens.Cur()
	if !s.expect(token.RPAREN) {
		return nil, false
	}
	all := 0
	if sym.RegsubAll {
		all = 1
	}
	tmpl := fmt.Sprintf("runtime_regsub(ctx, %d, \vS, %s, \vs)", all, ref)
	out, ok := s.edit2(vtype.STRINGS, tmpl, e1, e2)
	if !ok {
		return nil, false
	}
	// a runtime call's result is never literal text, even if both
	// operands were: STR_CONST stays tied to literal splices only.
	out.Constancy &^= fragment.StrConst
	out.NStr = 1
	out.T1, out.T2 = at, closeTok
	return out, true
}
