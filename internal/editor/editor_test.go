package editor_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/veloxcache/vclc/internal/editor"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/vtype"
)

func mkFragment(fmt_ *vtype.Type, buf string, c fragment.Constancy) *fragment.Fragment {
	f := fragment.New(fmt_, []byte(buf))
	f.Constancy = c
	return f
}

func TestEditSplicesOneOperand(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	e1 := mkFragment(vtype.INT, "5", fragment.Const)
	out, err := ctx.Edit(vtype.BOOL, "(\v1 != 0)", e1, nil)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if string(out.Buf) != "(5 != 0)" {
		t.Errorf("got %q", out.Buf)
	}
}

func TestEditResultAlwaysStartsVar(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	e1 := mkFragment(vtype.INT, "5", fragment.Const)
	e2 := mkFragment(vtype.INT, "6", fragment.Const)
	out, err := ctx.Edit(vtype.INT, "(\v1 + \v2)", e1, e2)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if out.Constancy != fragment.Var {
		t.Errorf("got constancy %v, want Var (a spliced result is never automatically constant)", out.Constancy)
	}
	if err := out.CheckInvariants(); err != nil {
		t.Errorf("unexpected invariant violation: %v", err)
	}
}

func TestEditJoiningVarAndConstNeverZeroesConstancy(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	v := mkFragment(vtype.INT, "sp->x", fragment.Var)
	c := mkFragment(vtype.INT, "5", fragment.Const)
	out, err := ctx.Edit(vtype.INT, "(\v1 * \v2)", v, c)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := out.CheckInvariants(); err != nil {
		t.Errorf("a Var/Const operand pair must still produce a valid fragment: %v", err)
	}
}

func TestEditRequiresNonNilE1(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	if _, err := ctx.Edit(vtype.INT, "\v1", nil, nil); err == nil {
		t.Error("expected an error for a nil e1")
	}
}

func TestEditVSRequiresStringsOperand(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	e1 := mkFragment(vtype.INT, "5", fragment.Const)
	if _, err := ctx.Edit(vtype.STRING, "\vS", e1, nil); err == nil {
		t.Error("expected an error when \\vS is used on a non-STRINGS operand")
	}
}

func TestEditVLowerSRequiresStringsOnE2(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	e1 := mkFragment(vtype.STRINGS, `"a"`, fragment.Const)
	e1.NStr = 1
	e2 := mkFragment(vtype.INT, "5", fragment.Const)
	if _, err := ctx.Edit(vtype.STRING, "\vs", e1, e2); err == nil {
		t.Error("expected an error when \\vs targets a non-STRINGS e2, even with a STRINGS e1")
	}
}

func TestEditVLowerSSplicesE2(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	e1 := mkFragment(vtype.INT, "5", fragment.Const)
	e2 := mkFragment(vtype.STRINGS, `"a"`, fragment.Const)
	e2.NStr = 1
	out, err := ctx.Edit(vtype.STRING, "\vs", e1, e2)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if string(out.Buf) != `"a"` {
		t.Errorf("got %q, want e2's buffer spliced", out.Buf)
	}
}

func TestEditVSCollectsMultiElementStrands(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	e1 := mkFragment(vtype.STRINGS, `"a", "b"`, fragment.Var)
	e1.NStr = 2
	out, err := ctx.Edit(vtype.STRING, "\vS", e1, nil)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(string(out.Buf), "runtime_collect_string") {
		t.Errorf("expected a collect-string wrap for NStr>1, got %q", out.Buf)
	}
}

func TestEditVTDeclaresStrandsLocalsInPrologue(t *testing.T) {
	var prologue bytes.Buffer
	ctx := &editor.Context{Prologue: &prologue}
	e1 := mkFragment(vtype.STRINGS, `"a"`, fragment.Var)
	e1.NStr = 1
	_, err := ctx.Edit(vtype.STRING_LIST, "\vT", e1, nil)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(prologue.String(), "struct strands strs_0_a") {
		t.Errorf("expected a strands local declared in the prologue, got %q", prologue.String())
	}
}

func TestEditUnknownEscapeIsAnError(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	e1 := mkFragment(vtype.INT, "5", fragment.Const)
	if _, err := ctx.Edit(vtype.INT, "\vZ", e1, nil); err == nil {
		t.Error("expected an error for an unknown escape")
	}
}

func TestRenderTracksIndentEscapes(t *testing.T) {
	f := &fragment.Fragment{Buf: []byte("a(\v+\nb\v-\n)")}
	got := editor.Render(0, f)
	want := "a(\n  b\n)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEditSuppressesBlankTemplateLines(t *testing.T) {
	ctx := &editor.Context{Prologue: &bytes.Buffer{}}
	e1 := mkFragment(vtype.INT, "5", fragment.Const)
	out, err := ctx.Edit(vtype.INT, "a\n\n\nb\v1", e1, nil)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	want := "a\nb5"
	if string(out.Buf) != want {
		t.Errorf("got %q, want %q", out.Buf, want)
	}
}
