package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/veloxcache/vclc/internal/symbols"
	"github.com/veloxcache/vclc/internal/vtype"
)

// memCache is a trivial in-process SignatureCache for tests, standing
// in for internal/sigcache without pulling in its sqlite dependency.
type memCache struct {
	entries map[string][]StoredDecl
}

func newMemCache() *memCache { return &memCache{entries: map[string][]StoredDecl{}} }

func (c *memCache) Lookup(content []byte) ([]StoredDecl, bool, error) {
	d, ok := c.entries[string(content)]
	return d, ok, nil
}

func (c *memCache) Store(content []byte, decls []StoredDecl) error {
	c.entries[string(content)] = decls
	return nil
}

func writeVCLMod(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestLoadReadsEveryVCLModFileInDirectory(t *testing.T) {
	dir := t.TempDir()
	writeVCLMod(t, dir, "a.vclmod", "STRING greet(STRING:name)\n")
	writeVCLMod(t, dir, "b.vclmod", "BOOL allow(ENUM(GET|POST):method)\n")
	writeVCLMod(t, dir, "notes.txt", "ignored\n")

	loader := NewLoader(vtype.Global(), nil)
	mod, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(mod.Funcs) != 2 {
		t.Fatalf("got %d funcs, want 2", len(mod.Funcs))
	}
	if _, ok := mod.Funcs["greet"]; !ok {
		t.Error("expected greet to be loaded")
	}
	if _, ok := mod.Funcs["allow"]; !ok {
		t.Error("expected allow to be loaded")
	}
}

func TestLoadRejectsDuplicateFunctionName(t *testing.T) {
	dir := t.TempDir()
	writeVCLMod(t, dir, "a.vclmod", "STRING greet(STRING:name)\n")
	writeVCLMod(t, dir, "b.vclmod", "STRING greet(INT:n)\n")

	loader := NewLoader(vtype.Global(), nil)
	if _, err := loader.Load(dir); err == nil {
		t.Error("expected an error for a function declared twice across files")
	}
}

func TestLoadAllSkipsSubdirectoriesWithoutVCLMod(t *testing.T) {
	root := t.TempDir()
	vmodDir := filepath.Join(root, "example")
	if err := os.Mkdir(vmodDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeVCLMod(t, vmodDir, "a.vclmod", "STRING greet(STRING:name)\n")

	emptyDir := filepath.Join(root, "empty")
	if err := os.Mkdir(emptyDir, 0o755); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(vtype.Global(), nil)
	mods, err := loader.LoadAll(root)
	if err != nil {
		t.Fatalf("loadAll: %v", err)
	}
	if len(mods) != 1 || mods[0].Name != "example" {
		t.Fatalf("got %+v", mods)
	}
}

func TestLoadUsesCacheOnSecondCall(t *testing.T) {
	dir := t.TempDir()
	writeVCLMod(t, dir, "a.vclmod", "STRING greet(STRING:name)\n")

	cache := newMemCache()
	loader := NewLoader(vtype.Global(), cache)
	if _, err := loader.Load(dir); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if len(cache.entries) != 1 {
		t.Fatalf("expected the first load to populate the cache, got %d entries", len(cache.entries))
	}
	mod, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if _, ok := mod.Funcs["greet"]; !ok {
		t.Error("expected the cached decode to still produce the greet function")
	}
}

func TestModuleInstallQualifiesFunctionNames(t *testing.T) {
	dir := t.TempDir()
	writeVCLMod(t, dir, "a.vclmod", "STRING greet(STRING:name)\n")

	loader := NewLoader(vtype.Global(), nil)
	mod, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	table := symbols.NewTable()
	if err := mod.Install(table); err != nil {
		t.Fatalf("install: %v", err)
	}
	qualifiedName := filepath.Base(dir) + ".greet"
	if _, ok := table.Lookup(qualifiedName); !ok {
		t.Errorf("expected %q to be installed", qualifiedName)
	}
}
