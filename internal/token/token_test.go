package token

import "testing"

func TestIsRelationalAcceptsEveryComparisonKind(t *testing.T) {
	for _, k := range []Kind{EQ, NEQ, LT, GT, LEQ, GEQ, MATCH, NOMATCH} {
		if !(Token{Kind: k}).IsRelational() {
			t.Errorf("expected %s to be relational", k)
		}
	}
}

func TestIsRelationalRejectsNonComparisonKinds(t *testing.T) {
	for _, k := range []Kind{PLUS, IDENT, LPAREN, EOF} {
		if (Token{Kind: k}).IsRelational() {
			t.Errorf("expected %s to not be relational", k)
		}
	}
}

func TestStringIncludesPositionKindAndText(t *testing.T) {
	tok := Token{Kind: IDENT, Text: "req", Line: 3, Column: 5}
	got := tok.String()
	if got != `3:5 IDENT "req"` {
		t.Errorf("got %q", got)
	}
}
