package modules

import (
	"strings"
	"testing"

	"github.com/veloxcache/vclc/internal/vtype"
)

func TestParseManifestSkipsBlankAndCommentLines(t *testing.T) {
	src := "\n# a comment\nSTRING greet(STRING:name)\n\n"
	decls, err := parseManifest(strings.NewReader(src), vtype.Global())
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	if len(decls) != 1 || decls[0].Name != "greet" {
		t.Fatalf("got %+v", decls)
	}
}

func TestParseFuncDeclParsesResultAndArgs(t *testing.T) {
	d, err := parseFuncDecl(`STRING connect(STRING:host, INT:port=80)`, vtype.Global())
	if err != nil {
		t.Fatalf("parseFuncDecl: %v", err)
	}
	if d.Result != vtype.STRING || d.Name != "connect" || len(d.Args) != 2 {
		t.Fatalf("got %+v", d)
	}
	if d.Args[0].Name != "host" || d.Args[1].Default != "80" {
		t.Errorf("got args %+v", d.Args)
	}
}

func TestParseFuncDeclRejectsMalformedSignature(t *testing.T) {
	if _, err := parseFuncDecl(`STRING connect host)`, vtype.Global()); err == nil {
		t.Error("expected an error for a missing '('")
	}
}

func TestParseFuncDeclRejectsUnknownResultType(t *testing.T) {
	if _, err := parseFuncDecl(`NOT_A_TYPE f()`, vtype.Global()); err == nil {
		t.Error("expected an error for an unknown result type")
	}
}

func TestParseArgHandlesEnumWithDefault(t *testing.T) {
	a, err := parseArg(`ENUM(GET|POST):method=GET`, vtype.Global())
	if err != nil {
		t.Fatalf("parseArg: %v", err)
	}
	if a.Type != vtype.ENUM || a.Name != "method" || a.Default != "GET" {
		t.Fatalf("got %+v", a)
	}
	if len(a.EnumValues) != 2 || a.EnumValues[0] != "GET" {
		t.Errorf("got enum values %v", a.EnumValues)
	}
}

func TestParseArgHandlesPrivateKind(t *testing.T) {
	a, err := parseArg(`PRIV_TASK`, vtype.Global())
	if err != nil {
		t.Fatalf("parseArg: %v", err)
	}
	if !a.IsPrivate {
		t.Error("expected IsPrivate to be set for PRIV_TASK")
	}
}

func TestParseArgRejectsUnknownType(t *testing.T) {
	if _, err := parseArg(`NOT_A_TYPE:x`, vtype.Global()); err == nil {
		t.Error("expected an error for an unknown argument type")
	}
}
