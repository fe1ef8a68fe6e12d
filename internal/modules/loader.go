package modules

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veloxcache/vclc/internal/symbols"
	"github.com/veloxcache/vclc/internal/vtype"
)

// SignatureCache is the subset of internal/sigcache's Cache this
// loader needs, kept as a narrow interface so modules doesn't import
// sigcache's database/sql dependency when caching is unwanted.
type SignatureCache interface {
	Lookup(content []byte) (decls []StoredDecl, ok bool, err error)
	Store(content []byte, decls []StoredDecl) error
}

// Loader turns directories of .vclmod descriptor files into Modules.
type Loader struct {
	Registry *vtype.Registry
	Cache    SignatureCache // nil disables caching
}

func NewLoader(registry *vtype.Registry, cache SignatureCache) *Loader {
	return &Loader{Registry: registry, Cache: cache}
}

// Load reads every *.vclmod file directly inside dir (no recursion: a
// vmod is one flat directory of descriptor files, spec §6) and returns
// the Module they jointly describe, named after dir's base name.
func (l *Loader) Load(dir string) (*Module, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("modules: reading %s: %w", dir, err)
	}
	name := filepath.Base(dir)
	mod := newModule(name, dir)

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".vclmod" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("modules: reading %s: %w", path, err)
		}
		decls, err := l.declsFor(content)
		if err != nil {
			return nil, fmt.Errorf("modules: %s: %w", path, err)
		}
		for _, d := range decls {
			if _, dup := mod.Funcs[d.Name]; dup {
				return nil, fmt.Errorf("modules: %s: function %q declared twice", path, d.Name)
			}
			sym, err := l.buildSymbol(name, d)
			if err != nil {
				return nil, fmt.Errorf("modules: %s: function %q: %w", path, d.Name, err)
			}
			mod.Funcs[d.Name] = sym
		}
	}
	return mod, nil
}

// LoadAll loads every immediate subdirectory of root as its own
// module, for the CLI's directory watch-mode (spec §6, SPEC_FULL.md
// §6: each subdirectory is one vmod).
func (l *Loader) LoadAll(root string) ([]*Module, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("modules: reading %s: %w", root, err)
	}
	var mods []*Module
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if !hasVCLMod(dir) {
			continue
		}
		mod, err := l.Load(dir)
		if err != nil {
			return nil, err
		}
		mods = append(mods, mod)
	}
	return mods, nil
}

func hasVCLMod(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".vclmod" {
			return true
		}
	}
	return false
}

func (l *Loader) declsFor(content []byte) ([]funcDecl, error) {
	if l.Cache != nil {
		if stored, ok, err := l.Cache.Lookup(content); err == nil && ok {
			return declsFromStored(stored, l.Registry)
		}
	}
	decls, err := parseManifest(bytes.NewReader(content), l.Registry)
	if err != nil {
		return nil, err
	}
	if l.Cache != nil {
		_ = l.Cache.Store(content, storeDecls(decls))
	}
	return decls, nil
}

func (l *Loader) buildSymbol(modName string, d funcDecl) (*symbols.Symbol, error) {
	cname := fmt.Sprintf("vmod_%s_%s", modName, d.Name)
	blob, err := EncodeSignature(d.Result, cname, d.Args)
	if err != nil {
		return nil, err
	}
	return &symbols.Symbol{
		Name:   d.Name,
		Kind:   symbols.KindFunc,
		Type:   d.Result,
		Rname:  cname,
		Module: modName,
		ArgSig: blob.ToBytes(),
	}, nil
}

func storeDecls(decls []funcDecl) []StoredDecl {
	out := make([]StoredDecl, len(decls))
	for i, d := range decls {
		args := make([]StoredArg, len(d.Args))
		for j, a := range d.Args {
			args[j] = a.ToStored()
		}
		out[i] = StoredDecl{Result: d.Result.String(), Name: d.Name, Args: args}
	}
	return out
}

func declsFromStored(stored []StoredDecl, registry *vtype.Registry) ([]funcDecl, error) {
	out := make([]funcDecl, len(stored))
	for i, s := range stored {
		result, ok := registry.LookupResult(s.Result)
		if !ok {
			return nil, fmt.Errorf("unknown cached result type %q", s.Result)
		}
		args := make([]ArgDescriptor, len(s.Args))
		for j, sa := range s.Args {
			a, err := ArgFromStored(sa, registry)
			if err != nil {
				return nil, err
			}
			args[j] = a
		}
		out[i] = funcDecl{Result: result, Name: s.Name, Args: args}
	}
	return out, nil
}
