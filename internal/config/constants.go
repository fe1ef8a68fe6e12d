package config

// SourceFileExt is the canonical source extension for compiled policy
// files; SourceFileExtensions additionally accepts the module-descriptor
// extension consumed by internal/modules' directory loader.
const SourceFileExt = ".vcl"

var SourceFileExtensions = []string{".vcl", ".vclmod"}

// Built-in symbol names registered once at compiler start-up (spec §6).
const (
	RegsubFuncName    = "regsub"
	RegsuballFuncName = "regsuball"
	TrueConstName     = "true"
	FalseConstName    = "false"
)
