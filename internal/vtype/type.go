// Package vtype is the type registry of spec.md §3/§4: a catalogue of
// value types with per-type metadata (display name, multiplication
// partner, explicit-to-string template) plus the string-family
// pseudo-types the expression compiler lowers at its emission
// boundary. Types are compared by identity (interned handles), mirroring
// the teacher's interned-by-pointer vcc_type_t from original_source,
// modelled here as a small integer ID plus a by-name registry
// (design note §9: "interned type handle plus lookup table").
package vtype

type ID int

// Type is one entry of the registry: a printable name, an optional
// explicit-to-string conversion template (a fragment-editor string,
// see internal/editor), and an optional multiplication partner used by
// the '*' and '/' rules (spec §4.4).
type Type struct {
	id       ID
	Name     string
	ToString string // fragment-editor template, empty if not convertible
	MulType  *Type
}

func (t *Type) ID() ID { return t.id }

func (t *Type) String() string {
	if t == nil {
		return "VOID"
	}
	return t.Name
}

// Registry is the by-name catalogue. Populated once at package
// init via Register; lookups are by name (source identifiers), and
// internal comparisons use the interned *Type handles.
type Registry struct {
	byName map[string]*Type
	next   ID
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Type)}
}

func (r *Registry) Register(name string) *Type {
	t := &Type{id: r.next, Name: name}
	r.next++
	r.byName[name] = t
	return t
}

func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// LookupResult resolves a module function's declared result type name,
// special-casing "VOID" to the nil sentinel rather than a registry
// miss: VOID never gets a registry entry (it is the absence of one),
// but a signature blob still has to name it somehow.
func (r *Registry) LookupResult(name string) (*Type, bool) {
	if name == "VOID" {
		return VOID, true
	}
	return r.Lookup(name)
}

// global is the registry shared by the whole compiler: one process,
// one static type lattice, exactly as the C original has one process
// image's worth of vcc_type_t constants.
var global = NewRegistry()

// Global returns the shared registry.
func Global() *Registry { return global }

func reg(name string) *Type { return global.Register(name) }

// VOID is the distinguished "no value" sentinel (spec §3). It is
// represented as a nil *Type rather than a registry entry, so that a
// stray zero-value Type can never be confused with it.
var VOID *Type = nil

// Concrete value types exercised by the additive/comparison tables
// (grounded on original_source/lib/libvcc/vcc_expr.c's vcc_adds[] and
// vcc_cmps[] rows).
var (
	INT      = reg("INT")
	REAL     = reg("REAL")
	BOOL     = reg("BOOL")
	TIME     = reg("TIME")
	DURATION = reg("DURATION")
	BYTES    = reg("BYTES")
	BACKEND  = reg("BACKEND")
	PROBE    = reg("PROBE")
	ACL      = reg("ACL")
	IP       = reg("IP")
	HEADER   = reg("HEADER")
	BLOB     = reg("BLOB")
	ENUM     = reg("ENUM")

	// String family (spec §3): STRINGS is the only type that appears
	// mid-expression; STRING/STRING_LIST/STRANDS are lowering targets
	// used only at the emission boundary (internal/vcc's entry point).
	STRING      = reg("STRING")
	STRINGS     = reg("STRINGS")
	STRING_LIST = reg("STRING_LIST")
	STRANDS     = reg("STRANDS")
)

func init() {
	INT.MulType = INT
	REAL.MulType = REAL
	DURATION.MulType = REAL
	BYTES.MulType = REAL

	INT.ToString = "runtime_int_to_string(ctx, \v1)"
	REAL.ToString = "runtime_real_to_string(ctx, \v1)"
	BOOL.ToString = "runtime_bool_to_string(ctx, \v1)"
	TIME.ToString = "runtime_time_to_string(ctx, \v1)"
	DURATION.ToString = "runtime_duration_to_string(ctx, \v1)"
	BYTES.ToString = "runtime_bytes_to_string(ctx, \v1)"
	IP.ToString = "runtime_ip_to_string(ctx, \v1)"
	BACKEND.ToString = "runtime_backend_name(\v1)"
	HEADER.ToString = "runtime_header_string(ctx, \v1)"
	// BLOB, PROBE, ACL, ENUM intentionally carry no ToString template:
	// they are not convertible to a string (spec §4.5).
}

// Utype folds STRINGS and STRING_LIST to a single display name
// (STRING), mirroring vcc_utype in original_source; STRANDS and every
// other type are returned unchanged.
func Utype(t *Type) *Type {
	if t == STRINGS || t == STRING_LIST {
		return STRING
	}
	return t
}
