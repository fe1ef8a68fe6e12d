package vtype_test

import (
	"testing"

	"github.com/veloxcache/vclc/internal/vtype"
)

func TestLookupResultResolvesVoidToNilSentinel(t *testing.T) {
	r := vtype.Global()
	got, ok := r.LookupResult("VOID")
	if !ok {
		t.Fatal("expected VOID to resolve")
	}
	if got != vtype.VOID {
		t.Errorf("got %v, want the VOID sentinel", got)
	}
}

func TestLookupResultDelegatesToLookupForConcreteTypes(t *testing.T) {
	r := vtype.Global()
	got, ok := r.LookupResult("STRING")
	if !ok || got != vtype.STRING {
		t.Errorf("got %v, %v; want vtype.STRING, true", got, ok)
	}
}

func TestLookupResultRejectsUnknownName(t *testing.T) {
	r := vtype.Global()
	if _, ok := r.LookupResult("NOT_A_TYPE"); ok {
		t.Error("expected an unknown type name to fail")
	}
}

func TestTypeStringOnNilReceiverIsVoid(t *testing.T) {
	var nilType *vtype.Type
	if nilType.String() != "VOID" {
		t.Errorf("got %q, want VOID", nilType.String())
	}
}

func TestUtypeFoldsStringFamilyToString(t *testing.T) {
	if vtype.Utype(vtype.STRINGS) != vtype.STRING {
		t.Error("expected STRINGS to fold to STRING")
	}
	if vtype.Utype(vtype.STRING_LIST) != vtype.STRING {
		t.Error("expected STRING_LIST to fold to STRING")
	}
	if vtype.Utype(vtype.INT) != vtype.INT {
		t.Error("expected a concrete type to pass through unchanged")
	}
}

func TestRegisterAssignsDistinctIncrementingIDs(t *testing.T) {
	r := vtype.NewRegistry()
	a := r.Register("A")
	b := r.Register("B")
	if a.ID() == b.ID() {
		t.Errorf("expected distinct IDs, got %d and %d", a.ID(), b.ID())
	}
}
