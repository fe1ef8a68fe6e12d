package vcc

import (
	"bytes"
	"context"
	"testing"

	"github.com/veloxcache/vclc/internal/diagnostics"
	"github.com/veloxcache/vclc/internal/editor"
	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/lexer"
	"github.com/veloxcache/vclc/internal/symbols"
	"github.com/veloxcache/vclc/internal/vtype"
)

func newAddState(t *testing.T, src string) (*State, *diagnostics.Sink) {
	t.Helper()
	table := symbols.NewTable()
	symbols.RegisterBuiltins(table)
	if err := table.Declare(&symbols.Symbol{
		Name: "req.method", Kind: symbols.KindVar, Type: vtype.STRING, Rname: "runtime_method(ctx)",
	}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	var code, header bytes.Buffer
	diag := &diagnostics.Sink{}
	return &State{
		Tokens:  lexer.NewStream(src),
		Symbols: table,
		Diag:    diag,
		Code:    &code,
		Header:  &header,
		Editor:  &editor.Context{Prologue: &header},
		Ctx:     context.Background(),
	}, diag
}

func TestLiteralConcatIsFullyConstant(t *testing.T) {
	s, diag := newAddState(t, `"foo" + "bar"`)
	f, ok := s.parseAdd(vtype.STRING)
	if !ok || s.Failed() {
		t.Fatalf("parse failed: %s", diag.String())
	}
	if !f.Constancy.Has(fragment.Const) || !f.Constancy.Has(fragment.StrConst) {
		t.Errorf("got constancy %v, want Const|StrConst for two literal operands", f.Constancy)
	}
}

func TestRuntimeOperandConcatIsVar(t *testing.T) {
	s, diag := newAddState(t, `req.method + "-suffix"`)
	f, ok := s.parseAdd(vtype.STRING)
	if !ok || s.Failed() {
		t.Fatalf("parse failed: %s", diag.String())
	}
	if f.Constancy.Has(fragment.Const) {
		t.Errorf("got constancy %v, want Var (no Const) when one operand is a runtime variable", f.Constancy)
	}
}
