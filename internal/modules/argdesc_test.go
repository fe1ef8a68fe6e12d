package modules

import (
	"testing"

	"github.com/veloxcache/vclc/internal/config"
	"github.com/veloxcache/vclc/internal/vtype"
)

func TestEncodeDecodeSignatureRoundTripsSimpleArgs(t *testing.T) {
	args := []ArgDescriptor{
		{Type: vtype.STRING, Name: "host"},
		{Type: vtype.INT, Default: "80"},
	}
	blob, err := EncodeSignature(vtype.STRING, "vmod_example_connect", args)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSignature(vtype.Global(), blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Result != vtype.STRING || got.CFunc != "vmod_example_connect" {
		t.Fatalf("got %+v", got)
	}
	if len(got.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(got.Args))
	}
	if got.Args[0].Name != "host" || got.Args[0].Type != vtype.STRING {
		t.Errorf("arg 0: got %+v", got.Args[0])
	}
	if got.Args[1].Default != "80" || got.Args[1].Type != vtype.INT {
		t.Errorf("arg 1: got %+v", got.Args[1])
	}
}

func TestEncodeDecodeSignatureRoundTripsVoidResult(t *testing.T) {
	blob, err := EncodeSignature(vtype.VOID, "vmod_example_log", nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSignature(vtype.Global(), blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Result != vtype.VOID {
		t.Errorf("got %v, want VOID", got.Result)
	}
	if len(got.Args) != 0 {
		t.Errorf("got %d args, want 0", len(got.Args))
	}
}

func TestEncodeDecodeSignatureRoundTripsEnumValues(t *testing.T) {
	args := []ArgDescriptor{
		{Type: vtype.ENUM, EnumValues: []string{"GET", "POST", "DELETE"}, Name: "method"},
	}
	blob, err := EncodeSignature(vtype.BOOL, "vmod_example_allow", args)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSignature(vtype.Global(), blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Args) != 1 {
		t.Fatalf("got %d args, want 1", len(got.Args))
	}
	if len(got.Args[0].EnumValues) != 3 || got.Args[0].EnumValues[1] != "POST" {
		t.Errorf("got enum values %v", got.Args[0].EnumValues)
	}
	if got.Args[0].Name != "method" {
		t.Errorf("got name %q, want method", got.Args[0].Name)
	}
}

func TestEncodeDecodeSignatureRoundTripsPrivateArgument(t *testing.T) {
	args := []ArgDescriptor{
		{IsPrivate: true, Private: config.PrivTask},
	}
	blob, err := EncodeSignature(vtype.VOID, "vmod_example_state", args)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSignature(vtype.Global(), blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Args) != 1 || !got.Args[0].IsPrivate || got.Args[0].Private != config.PrivTask {
		t.Errorf("got %+v", got.Args)
	}
}

func TestToStoredAndArgFromStoredRoundTrip(t *testing.T) {
	a := ArgDescriptor{Type: vtype.STRING, Name: "host", Default: "localhost"}
	stored := a.ToStored()
	back, err := ArgFromStored(stored, vtype.Global())
	if err != nil {
		t.Fatalf("argFromStored: %v", err)
	}
	if back.Type != vtype.STRING || back.Name != "host" || back.Default != "localhost" {
		t.Errorf("got %+v", back)
	}
}

func TestArgFromStoredPrivateSkipsTypeLookup(t *testing.T) {
	stored := ArgDescriptor{IsPrivate: true, Private: config.PrivVCL}.ToStored()
	back, err := ArgFromStored(stored, vtype.Global())
	if err != nil {
		t.Fatalf("argFromStored: %v", err)
	}
	if !back.IsPrivate || back.Private != config.PrivVCL {
		t.Errorf("got %+v", back)
	}
}

func TestArgFromStoredRejectsUnknownType(t *testing.T) {
	stored := StoredArg{TypeName: "NOT_A_TYPE"}
	if _, err := ArgFromStored(stored, vtype.Global()); err == nil {
		t.Error("expected an error for an unknown cached type name")
	}
}
