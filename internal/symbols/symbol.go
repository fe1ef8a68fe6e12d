// Package symbols is the expression compiler's name table (spec §5,
// §6): the set of identifiers an expression may reference — context
// variables, ACLs, backends, probes, and vmod functions — and the
// per-symbol metadata the evaluator needs to emit code for a reference
// to it. Grounded on struct symbol and VCC_SymbolGet/VCC_MkSym in
// original_source/lib/libvcc/vcc_expr.c, with the trait/generic-type
// machinery of the teacher's symbol table dropped: this domain has no
// user-defined types, only a flat catalogue of built-in reference kinds.
package symbols

import (
	"fmt"

	"github.com/veloxcache/vclc/internal/token"
	"github.com/veloxcache/vclc/internal/vtype"
)

// Kind selects which of the five evaluation strategies internal/vcc
// uses for a symbol reference (vcc_Eval_Var, vcc_Eval_Handle,
// vcc_Eval_BoolConst, vcc_Eval_Regsub, vcc_Eval_SymFunc).
type Kind int

const (
	KindVar    Kind = iota // a readable context variable
	KindHandle             // an opaque named handle (backend, probe, ...)
	KindBool               // the true/false intrinsics
	KindRegsub             // the regsub/regsuball intrinsics
	KindFunc               // a vmod module function
	KindACL                // an access control list, forward-declarable
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "variable"
	case KindHandle:
		return "handle"
	case KindBool:
		return "boolean constant"
	case KindRegsub:
		return "intrinsic function"
	case KindFunc:
		return "module function"
	case KindACL:
		return "ACL"
	default:
		return "unknown"
	}
}

// Symbol is one entry of the name table.
type Symbol struct {
	Name  string
	Kind  Kind
	Type  *vtype.Type // result type; VOID for a function symbol with no return value
	Rname string      // runtime reference spelling used in emitted code

	Module string // owning vmod name; empty for built-in symbols
	Extra  string // extra call-site arguments a module function's call site must splice in

	// ArgSig is the packed argument-signature blob (spec §4.7) for a
	// KindFunc symbol, decoded lazily by internal/modules.
	ArgSig []byte

	// RegsubAll distinguishes regsub (false) from regsuball (true);
	// the two share one evaluation strategy (vcc_Eval_Regsub) and are
	// told apart only by this flag, mirroring eval_priv's dual use as
	// a plain boolean in the original.
	RegsubAll bool

	// BoolValue is the constant value of a KindBool symbol (true/false).
	BoolValue bool

	// ReadMethods restricts which compiler contexts may read a KindVar
	// symbol (spec's per-context variable gating); empty means
	// unrestricted.
	ReadMethods []string

	// Pending marks an ACL symbol created by forward reference (e.g.
	// used in a comparison before its own declaration) — the loader
	// still owes it a real definition.
	Pending bool

	DefToken token.Token
}

// Table is the flat, single-scope symbol table (spec §5: "the whole
// compile uses exactly one" — unlike the teacher's nested lexical
// scopes, context-variable and vmod-function names live in one global
// namespace for the duration of a compile).
type Table struct {
	byName map[string]*Symbol
}

func NewTable() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// Declare registers a new symbol. It returns an error if the name is
// already bound to a non-pending symbol (redeclaration), mirroring the
// original's VCC_MkSym failure mode.
func (t *Table) Declare(sym *Symbol) error {
	if existing, ok := t.byName[sym.Name]; ok && !existing.Pending {
		return fmt.Errorf("symbol %q already declared", sym.Name)
	}
	t.byName[sym.Name] = sym
	return nil
}

// Lookup finds a symbol by name.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// GetOrCreateACL returns the named ACL symbol, forward-declaring a
// Pending one if it hasn't been seen yet (spec §4.5 / cmp_acl in the
// original: an ACL may be referenced in an expression before its own
// declaration appears later in the source).
func (t *Table) GetOrCreateACL(name string, at token.Token) *Symbol {
	if s, ok := t.byName[name]; ok {
		return s
	}
	s := &Symbol{
		Name:     name,
		Kind:     KindACL,
		Type:     vtype.ACL,
		Rname:    "vcl_acl_" + name,
		Pending:  true,
		DefToken: at,
	}
	t.byName[name] = s
	return s
}

// RegisterBuiltins installs the four always-available intrinsics
// (spec §6), grounded on vcc_Expr_Init.
func RegisterBuiltins(t *Table) {
	_ = t.Declare(&Symbol{Name: "regsub", Kind: KindRegsub, Type: vtype.STRING, RegsubAll: false})
	_ = t.Declare(&Symbol{Name: "regsuball", Kind: KindRegsub, Type: vtype.STRING, RegsubAll: true})
	_ = t.Declare(&Symbol{Name: "true", Kind: KindBool, Type: vtype.BOOL, BoolValue: true})
	_ = t.Declare(&Symbol{Name: "false", Kind: KindBool, Type: vtype.BOOL, BoolValue: false})
}
