package config

// Builtins Configuration
//
// This is the SINGLE SOURCE OF TRUTH for the compiler's static type
// catalogue and the kinds of private module-function arguments it
// supports. Documentation is generated from this file.

// ============================================================================
// Built-in Types
// ============================================================================

type TypeInfo struct {
	Name        string
	Convertible bool // has an explicit ToString template or is a string lowering target (spec §4.5)
	Description string
}

var BuiltinTypes = []TypeInfo{
	{Name: "INT", Convertible: true, Description: "signed integer"},
	{Name: "REAL", Convertible: true, Description: "floating point number"},
	{Name: "BOOL", Convertible: true, Description: "boolean"},
	{Name: "TIME", Convertible: true, Description: "absolute point in time"},
	{Name: "DURATION", Convertible: true, Description: "span of time"},
	{Name: "BYTES", Convertible: true, Description: "byte count"},
	{Name: "BACKEND", Convertible: true, Description: "named upstream backend"},
	{Name: "PROBE", Convertible: false, Description: "named health probe"},
	{Name: "ACL", Convertible: false, Description: "named access control list"},
	{Name: "IP", Convertible: true, Description: "IP address/port pair"},
	{Name: "HEADER", Convertible: true, Description: "opaque header handle"},
	{Name: "BLOB", Convertible: false, Description: "opaque binary handle, module-argument only"},
	{Name: "ENUM", Convertible: false, Description: "one of a closed set of identifiers"},
	{Name: "STRING", Convertible: true, Description: "lowering target: a single C string expression"},
	{Name: "STRINGS", Convertible: false, Description: "mid-expression pseudo-type: one or more string fragments"},
	{Name: "STRING_LIST", Convertible: true, Description: "lowering target: NUL-terminated varargs list"},
	{Name: "STRANDS", Convertible: true, Description: "lowering target: struct strands bundle"},
}

func GetTypeInfo(name string) *TypeInfo {
	for i := range BuiltinTypes {
		if BuiltinTypes[i].Name == name {
			return &BuiltinTypes[i]
		}
	}
	return nil
}

// ============================================================================
// Private argument kinds (spec §4.8)
// ============================================================================

// PrivKind distinguishes the four places a module function's private
// argument can be materialized, grounded on vcc_priv_arg in
// original_source/lib/libvcc/vcc_expr.c.
type PrivKind int

const (
	PrivVCL  PrivKind = iota // one static slot shared by every call site in the VCL program
	PrivCall                 // one static slot fresh per call site, with a registered finalizer
	PrivTask                 // threaded through the per-request task context
	PrivTop                  // threaded through the top-request context
)

type PrivKindInfo struct {
	Kind        PrivKind
	Name        string
	Description string
}

var PrivKinds = []PrivKindInfo{
	{PrivVCL, "PRIV_VCL", "module-static storage, shared across all call sites"},
	{PrivCall, "PRIV_CALL", "call-site-static storage, fresh per textual call"},
	{PrivTask, "PRIV_TASK", "request-scoped storage threaded via the task context"},
	{PrivTop, "PRIV_TOP", "top-request-scoped storage threaded via the top context"},
}

func GetPrivKindInfo(k PrivKind) *PrivKindInfo {
	for i := range PrivKinds {
		if PrivKinds[i].Kind == k {
			return &PrivKinds[i]
		}
	}
	return nil
}
