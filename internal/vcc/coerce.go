package vcc

import (
	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/vtype"
)

// ToString coerces f to STRINGS via its type's explicit to-string
// template (spec §4.5's "to-string coercion"). Reports a diagnostic
// and returns ok=false if f's type carries no such template — a
// domain-specific message for BLOB, a generic one otherwise.
func (s *State) ToString(f *fragment.Fragment) (out *fragment.Fragment, ok bool) {
	if f.Fmt == vtype.STRINGS {
		return f, true
	}
	if f.Fmt == nil || f.Fmt.ToString == "" {
		if f.Fmt == vtype.BLOB {
			s.Errorf(diagnostics.ErrBlobInString, f.T1, f.T2)
		} else {
			s.Errorf(diagnostics.ErrCannotConvert, f.T1, f.T2, f.Fmt.String())
		}
		return nil, false
	}
	converted, err := s.Editor.Edit(vtype.STRINGS, f.Fmt.ToString, f, nil)
	if err != nil {
		s.Errorf(diagnostics.ErrCannotConvert, f.T1, f.T2, f.Fmt.String())
		return nil, false
	}
	// a to-string conversion is always a runtime call in the emitted
	// code, even when the source value was a compile-time constant.
	converted.Constancy = fragment.Var
	converted.NStr = 1
	return converted, true
}

// ToBool coerces f (already known non-boolean) to BOOL per the
// comparison layer's implicit-boolean rules (spec §4.6): backend and
// integer via "!= 0", duration via "> 0", strings via a single-string
// "!= 0". Any other type reaching here is a compiler bug, mirroring
// the original's WRONG() assertion.
func (s *State) ToBool(f *fragment.Fragment) (*fragment.Fragment, bool) {
	switch f.Fmt {
	case vtype.BACKEND, vtype.INT:
		return s.edit1(vtype.BOOL, "(\v1 != 0)", f)
	case vtype.DURATION:
		return s.edit1(vtype.BOOL, "(\v1 > 0)", f)
	case vtype.STRINGS:
		str, ok := s.ToString(f)
		if !ok {
			return nil, false
		}
		return s.edit1(vtype.BOOL, "(\vS != 0)", str)
	default:
		s.Errorf(diagnostics.ErrExprType, f.T1, f.T2, f.Fmt.String(), vtype.BOOL.String())
		return nil, false
	}
}

// edit1 is a one-operand editor.Edit wrapper that turns a splice
// failure into a diagnostic instead of a Go error return, the shape
// every operator layer in this package wants.
func (s *State) edit1(fmt_ *vtype.Type, tmpl string, e1 *fragment.Fragment) (*fragment.Fragment, bool) {
	out, err := s.Editor.Edit(fmt_, tmpl, e1, nil)
	if err != nil {
		s.Errorf(diagnostics.ErrExprType, e1.T1, e1.T2, e1.Fmt.String(), fmt_.String())
		return nil, false
	}
	return out, true
}

// edit2 is the two-operand counterpart of edit1.
func (s *State) edit2(fmt_ *vtype.Type, tmpl string, e1, e2 *fragment.Fragment) (*fragment.Fragment, bool) {
	out, err := s.Editor.Edit(fmt_, tmpl, e1, e2)
	if err != nil {
		s.Errorf(diagnostics.ErrBinaryMismatch, e1.T1, e2.T2, e1.Fmt.String(), "?", e2.Fmt.String())
		return nil, false
	}
	return out, true
}
