// Package config is the SINGLE SOURCE OF TRUTH for the expression
// compiler's operator tables: which type combinations the additive and
// comparison operators accept, and what code template each combination
// emits. internal/vcc consults these tables instead of hard-coding
// switch statements, mirroring the teacher's builtins.go pattern and
// directly transcribing original_source's vcc_adds[]/vcc_cmps[] data
// tables (renamed to Go idiom, runtime helpers renamed from VRT_*).
package config

import "github.com/veloxcache/vclc/internal/vtype"

// AddRule is one row of the additive-operator table (spec §4.4),
// grounded on vcc_adds[] in original_source/lib/libvcc/vcc_expr.c.
type AddRule struct {
	Op     byte // '+' or '-'
	A, B   *vtype.Type
	Result *vtype.Type
}

var AddRules = []AddRule{
	{'+', vtype.BYTES, vtype.BYTES, vtype.BYTES},
	{'-', vtype.BYTES, vtype.BYTES, vtype.BYTES},
	{'+', vtype.DURATION, vtype.DURATION, vtype.DURATION},
	{'-', vtype.DURATION, vtype.DURATION, vtype.DURATION},
	{'+', vtype.INT, vtype.INT, vtype.INT},
	{'-', vtype.INT, vtype.INT, vtype.INT},
	{'+', vtype.INT, vtype.REAL, vtype.REAL},
	{'-', vtype.INT, vtype.REAL, vtype.REAL},
	{'+', vtype.REAL, vtype.INT, vtype.REAL},
	{'-', vtype.REAL, vtype.INT, vtype.REAL},
	{'+', vtype.REAL, vtype.REAL, vtype.REAL},
	{'-', vtype.REAL, vtype.REAL, vtype.REAL},
	{'-', vtype.TIME, vtype.TIME, vtype.DURATION},
	{'+', vtype.TIME, vtype.DURATION, vtype.TIME},
	{'-', vtype.TIME, vtype.DURATION, vtype.TIME},
}

// FindAddByA returns the first rule matching op and left operand a,
// used to pick the right-hand parse type before the right operand has
// been parsed (mirrors the original's two-pass lookup: by a alone
// first, then by (a, b) once e2 exists).
func FindAddByA(op byte, a *vtype.Type) (AddRule, bool) {
	for _, r := range AddRules {
		if r.Op == op && r.A == a {
			return r, true
		}
	}
	return AddRule{}, false
}

// FindAdd returns the rule matching op and both operand types.
func FindAdd(op byte, a, b *vtype.Type) (AddRule, bool) {
	for _, r := range AddRules {
		if r.Op == op && r.A == a && r.B == b {
			return r, true
		}
	}
	return AddRule{}, false
}

// CmpKind selects which comparison handler a CmpRule uses; internal/vcc
// switches on this instead of holding a function pointer, since each
// handler needs compiler-state access the table itself shouldn't know
// about.
type CmpKind int

const (
	CmpSimple CmpKind = iota // "(\v1 OP \v2)" against an equal-typed operand
	CmpRegexp                // match against a regular expression literal
	CmpACL                   // match against an ACL symbol
	CmpString                // STRINGS vs STRINGS, single- or multi-strand
)

// Relation is the comparison token family, independent of lexer token
// kinds so this table doesn't import internal/token.
type Relation int

const (
	RelEQ Relation = iota
	RelNEQ
	RelLT
	RelGT
	RelLEQ
	RelGEQ
	RelMatch
	RelNoMatch
)

// CmpRule is one row of the comparison-operator table (spec §4.5),
// grounded on vcc_cmps[]. Emit is the code-template fragment specific
// to this row (an operator spelling for CmpSimple, a match-negation
// prefix for CmpRegexp/CmpACL, a zero-comparison prefix for CmpString).
type CmpRule struct {
	Fmt  *vtype.Type
	Rel  Relation
	Kind CmpKind
	Emit string
}

func identRel(t *vtype.Type) []CmpRule {
	return []CmpRule{
		{t, RelEQ, CmpSimple, "(\v1 == \v2)"},
		{t, RelNEQ, CmpSimple, "(\v1 != \v2)"},
	}
}

func numRel(t *vtype.Type) []CmpRule {
	rules := identRel(t)
	return append(rules,
		CmpRule{t, RelLEQ, CmpSimple, "(\v1 <= \v2)"},
		CmpRule{t, RelGEQ, CmpSimple, "(\v1 >= \v2)"},
		CmpRule{t, RelLT, CmpSimple, "(\v1 < \v2)"},
		CmpRule{t, RelGT, CmpSimple, "(\v1 > \v2)"},
	)
}

var CmpRules = buildCmpRules()

func buildCmpRules() []CmpRule {
	var rules []CmpRule
	for _, t := range []*vtype.Type{vtype.INT, vtype.DURATION, vtype.BYTES, vtype.REAL, vtype.TIME} {
		rules = append(rules, numRel(t)...)
	}
	for _, t := range []*vtype.Type{vtype.BACKEND, vtype.ACL, vtype.PROBE} {
		rules = append(rules, identRel(t)...)
	}
	rules = append(rules,
		CmpRule{vtype.IP, RelEQ, CmpSimple, "!runtime_ipcmp(\v1, \v2)"},
		CmpRule{vtype.IP, RelNEQ, CmpSimple, "runtime_ipcmp(\v1, \v2)"},
		CmpRule{vtype.IP, RelMatch, CmpACL, ""},
		CmpRule{vtype.IP, RelNoMatch, CmpACL, "!"},

		CmpRule{vtype.STRINGS, RelEQ, CmpString, "0 =="},
		CmpRule{vtype.STRINGS, RelNEQ, CmpString, "0 !="},
		CmpRule{vtype.STRINGS, RelLT, CmpString, "0 > "},
		CmpRule{vtype.STRINGS, RelGT, CmpString, "0 < "},
		CmpRule{vtype.STRINGS, RelLEQ, CmpString, "0 >="},
		CmpRule{vtype.STRINGS, RelGEQ, CmpString, "0 <="},

		CmpRule{vtype.STRINGS, RelMatch, CmpRegexp, ""},
		CmpRule{vtype.STRINGS, RelNoMatch, CmpRegexp, "!"},
	)
	return rules
}

// FindCmp returns the rule matching a left-operand type and relation.
func FindCmp(fmt_ *vtype.Type, rel Relation) (CmpRule, bool) {
	for _, r := range CmpRules {
		if r.Fmt == fmt_ && r.Rel == rel {
			return r, true
		}
	}
	return CmpRule{}, false
}
