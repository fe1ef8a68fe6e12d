// Package modules is the compiler's vmod-function catalogue (spec §6):
// loading directories of function descriptor files, packing each
// function's argument signature into the funbit-backed blob format
// (argdesc.go), and exposing the result as KindFunc symbols internal/vcc
// can dispatch calls to. Grounded on the teacher's module.go/loader.go
// shape (a Module type plus a directory-scanning Loader), with the
// package/import/trait resolution machinery dropped: this domain has a
// flat, single-level module namespace with no nested packages.
package modules

import (
	"github.com/veloxcache/vclc/internal/symbols"
)

// StoredDecl is the JSON-serializable mirror of a parsed .vclmod
// function declaration, used by SignatureCache implementations (e.g.
// internal/sigcache) to persist decoded declarations across runs.
type StoredDecl struct {
	Result string      `json:"result"`
	Name   string      `json:"name"`
	Args   []StoredArg `json:"args"`
}

// Module is one loaded vmod: a name and the set of function symbols it
// exports.
type Module struct {
	Name  string
	Dir   string
	Funcs map[string]*symbols.Symbol
}

func newModule(name, dir string) *Module {
	return &Module{Name: name, Dir: dir, Funcs: make(map[string]*symbols.Symbol)}
}

// Install registers every function the module exports into the
// compiler's name table as "<module>.<function>" so two
// vmods can both export a function called, say, "escape".
func (m *Module) Install(table *symbols.Table) error {
	for name, sym := range m.Funcs {
		qualified := *sym
		qualified.Name = m.Name + "." + name
		if err := table.Declare(&qualified); err != nil {
			return err
		}
	}
	return nil
}
