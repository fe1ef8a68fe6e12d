package config

import (
	"testing"

	"github.com/veloxcache/vclc/internal/vtype"
)

func TestGetTypeInfoFindsKnownType(t *testing.T) {
	info := GetTypeInfo("INT")
	if info == nil {
		t.Fatal("expected INT to be a known builtin type")
	}
	if !info.Convertible {
		t.Error("INT should be convertible to STRING")
	}
}

func TestGetTypeInfoRejectsUnknownName(t *testing.T) {
	if GetTypeInfo("NOT_A_TYPE") != nil {
		t.Error("expected an unknown type name to return nil")
	}
}

func TestGetPrivKindInfoFindsEachKind(t *testing.T) {
	for _, k := range []PrivKind{PrivVCL, PrivCall, PrivTask, PrivTop} {
		if GetPrivKindInfo(k) == nil {
			t.Errorf("expected kind %d to resolve", k)
		}
	}
}

func TestFindAddByAMatchesLeftOperandOnly(t *testing.T) {
	rule, ok := FindAddByA('+', vtype.INT)
	if !ok {
		t.Fatal("expected a '+' rule for INT")
	}
	if rule.A != vtype.INT {
		t.Errorf("got A=%v", rule.A)
	}
}

func TestFindAddRejectsUnknownCombination(t *testing.T) {
	if _, ok := FindAdd('+', vtype.BOOL, vtype.BOOL); ok {
		t.Error("expected no additive rule for BOOL + BOOL")
	}
}

func TestFindAddDurationArithmetic(t *testing.T) {
	rule, ok := FindAdd('+', vtype.TIME, vtype.DURATION)
	if !ok || rule.Result != vtype.TIME {
		t.Errorf("got %+v, %v; want TIME result", rule, ok)
	}
}

func TestFindCmpNumericOperatorsCoverAllRelations(t *testing.T) {
	for _, rel := range []Relation{RelEQ, RelNEQ, RelLT, RelGT, RelLEQ, RelGEQ} {
		if _, ok := FindCmp(vtype.INT, rel); !ok {
			t.Errorf("expected INT to support relation %d", rel)
		}
	}
}

func TestFindCmpIdentOnlyTypeRejectsOrdering(t *testing.T) {
	if _, ok := FindCmp(vtype.BACKEND, RelLT); ok {
		t.Error("expected BACKEND to have no ordering comparison")
	}
}

func TestFindCmpStringsCoversMatchAndOrdering(t *testing.T) {
	for _, rel := range []Relation{RelEQ, RelNEQ, RelMatch, RelNoMatch, RelLT, RelGT} {
		if _, ok := FindCmp(vtype.STRINGS, rel); !ok {
			t.Errorf("expected STRINGS to support relation %d", rel)
		}
	}
}

func TestFindCmpIPUsesACLKindForMatch(t *testing.T) {
	rule, ok := FindCmp(vtype.IP, RelMatch)
	if !ok || rule.Kind != CmpACL {
		t.Errorf("got %+v, %v; want CmpACL", rule, ok)
	}
}
