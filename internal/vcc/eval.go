// Symbol dispatcher (spec §4.2, §6): routes an identifier atom to the
// evaluation strategy its symbol.Kind selects. Grounded on
// vcc_Eval_Var, vcc_Eval_Handle, vcc_Eval_BoolConst, vcc_Eval_Regsub,
// vcc_Eval_SymFunc in original_source/lib/libvcc/vcc_expr.c; the
// original's function-pointer-per-symbol dispatch is replaced with an
// ordinary switch over symbols.Kind (see DESIGN.md), since a Go
// function-pointer field would either need a generic callback
// interface reaching back into this package (an import cycle) or an
// awkward empty-interface payload.
package vcc

import (
	"strconv"

	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/symbols"
	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

func (s *State) evalSymbol(sym *symbols.Symbol, at token.Token, demand *vtype.Type) (*fragment.Fragment, bool) {
	switch sym.Kind {
	case symbols.KindVar:
		return s.evalVar(sym, at)
	case symbols.KindHandle:
		return s.evalHandle(sym, at, demand)
	case symbols.KindBool:
		f := fragment.New(vtype.BOOL, []byte(strconv.FormatBool(sym.BoolValue)))
		f.Constancy = fragment.Const
		f.T1, f.T2 = at, at
		return f, true
	case symbols.KindRegsub:
		return s.parseRegsub(sym, at)
	case symbols.KindFunc:
		f, ok := s.parseCall(sym, at)
		if !ok || s.Failed() {
			return nil, false
		}
		if f.Fmt == vtype.VOID {
			s.Errorf(diagnostics.ErrVoidFunc, at, at, sym.Name)
			return nil, false
		}
		return f, true
	case symbols.KindACL:
		s.Errorf(diagnostics.ErrSymbolKind, at, at, sym.Kind.String())
		return nil, false
	default:
		s.Errorf(diagnostics.ErrSymbolKind, at, at, sym.Kind.String())
		return nil, false
	}
}

// evalVar reads a context variable (vcc_Eval_Var): emits its rendered
// name, gates the read against the current method context if the
// symbol restricts it, and folds a declared STRING type to STRINGS
// (the only pseudo-type that appears mid-expression).
func (s *State) evalVar(sym *symbols.Symbol, at token.Token) (*fragment.Fragment, bool) {
	if len(sym.ReadMethods) > 0 && s.Method != "" && !containsStr(sym.ReadMethods, s.Method) {
		s.Errorf(diagnostics.ErrSymbolKind, at, at, sym.Name+" (not readable from "+s.Method+")")
		return nil, false
	}
	fmt_ := sym.Type
	if fmt_ == vtype.STRING {
		fmt_ = vtype.STRINGS
	}
	f := fragment.New(fmt_, []byte(sym.Rname))
	f.Constancy = fragment.Var
	f.T1, f.T2 = at, at
	return f, true
}

// evalHandle emits an opaque handle reference (backend, probe, ...):
// its rendered name when the demand matches the handle's own type, or
// its printable name as a quoted string otherwise (vcc_Eval_Handle).
func (s *State) evalHandle(sym *symbols.Symbol, at token.Token, demand *vtype.Type) (*fragment.Fragment, bool) {
	if demand == sym.Type {
		f := fragment.New(sym.Type, []byte(sym.Rname))
		f.Constancy = fragment.Const
		f.T1, f.T2 = at, at
		return f, true
	}
	f := fragment.New(vtype.STRINGS, []byte(strconv.Quote(sym.Name)))
	f.Constancy = fragment.Const | fragment.StrConst
	f.NStr = 1
	f.T1, f.T2 = at, at
	return f, true
}

func containsStr(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
