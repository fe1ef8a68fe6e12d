// Packed argument-signature blob codec (spec §4.7), grounded on
// struct func_arg / vcc_func's field-walking loop in
// original_source/lib/libvcc/vcc_expr.c. The original walks a single
// C string by strlen-jumping between NUL-terminated fields; here the
// same sentinel-delimited field structure is built and parsed as a
// byte-oriented bitstring through funbit's Builder/Matcher, so the
// blob is a real funbit BitString rather than a bare []byte the whole
// way through the loader.
package modules

import (
	"fmt"

	"github.com/funvibe/funbit/pkg/funbit"
	"github.com/veloxcache/vclc/internal/config"
	"github.com/veloxcache/vclc/internal/vtype"
)

// Sentinel bytes separating an argument record's optional fields,
// carried over unchanged from the original's \1/\2/\3 markers.
const (
	sentinelEnumEnd  = 0x01
	sentinelParamTag = 0x02
	sentinelDefault  = 0x03
)

// ArgDescriptor is one decoded formal argument of a module function
// (spec §3).
type ArgDescriptor struct {
	Type       *vtype.Type
	Private    config.PrivKind
	IsPrivate  bool
	EnumValues []string
	Name       string // positional-by-name binding name; empty if unnamed
	Default    string // literal default text; empty if required
}

// StoredArg is the JSON-serializable mirror of ArgDescriptor used by
// internal/sigcache: it names its type instead of holding a *vtype.Type
// pointer, since vtype.Type's MulType cross-links (e.g. INT points to
// itself) would send encoding/json into unbounded recursion.
type StoredArg struct {
	TypeName   string          `json:"type,omitempty"`
	IsPrivate  bool            `json:"is_private,omitempty"`
	Private    config.PrivKind `json:"private,omitempty"`
	EnumValues []string        `json:"enum,omitempty"`
	Name       string          `json:"name,omitempty"`
	Default    string          `json:"default,omitempty"`
}

// ToStored converts a to its serializable form.
func (a ArgDescriptor) ToStored() StoredArg {
	s := StoredArg{
		IsPrivate:  a.IsPrivate,
		Private:    a.Private,
		EnumValues: a.EnumValues,
		Name:       a.Name,
		Default:    a.Default,
	}
	if a.Type != nil {
		s.TypeName = a.Type.String()
	}
	return s
}

// ArgFromStored resolves a StoredArg back into an ArgDescriptor against
// registry.
func ArgFromStored(s StoredArg, registry *vtype.Registry) (ArgDescriptor, error) {
	if s.IsPrivate {
		return ArgDescriptor{IsPrivate: true, Private: s.Private}, nil
	}
	t, ok := registry.Lookup(s.TypeName)
	if !ok {
		return ArgDescriptor{}, fmt.Errorf("argdesc: unknown cached argument type %q", s.TypeName)
	}
	return ArgDescriptor{Type: t, EnumValues: s.EnumValues, Name: s.Name, Default: s.Default}, nil
}

// EncodeSignature packs rfmt/cfunc plus a list of argument descriptors
// into a funbit BitString using a sequence of NUL-terminated binary
// segments, mirroring the C spec string's layout field for field.
func EncodeSignature(rfmt *vtype.Type, cfunc string, args []ArgDescriptor) (*funbit.BitString, error) {
	b := funbit.NewBuilder()
	writeCString(b, rfmt.String())
	writeCString(b, cfunc)
	for _, a := range args {
		if a.IsPrivate {
			writeCString(b, privTypeName(a.Private))
			continue
		}
		writeCString(b, a.Type.String())
		if a.Type == vtype.ENUM {
			for _, v := range a.EnumValues {
				writeCString(b, v)
			}
			funbit.AddInteger(b, sentinelEnumEnd, funbit.WithSize(8))
		}
		if a.Name != "" {
			funbit.AddInteger(b, sentinelParamTag, funbit.WithSize(8))
			writeCString(b, a.Name)
		}
		if a.Default != "" {
			funbit.AddInteger(b, sentinelDefault, funbit.WithSize(8))
			writeCString(b, a.Default)
		}
	}
	// terminate the argument list with a zero-length field (bare NUL).
	funbit.AddInteger(b, 0, funbit.WithSize(8))
	return funbit.Build(b)
}

func writeCString(b *funbit.Builder, s string) {
	funbit.AddBinary(b, []byte(s), funbit.WithSize(uint(len(s))))
	funbit.AddInteger(b, 0, funbit.WithSize(8))
}

func privTypeName(k config.PrivKind) string {
	switch k {
	case config.PrivVCL:
		return "PRIV_VCL"
	case config.PrivCall:
		return "PRIV_CALL"
	case config.PrivTask:
		return "PRIV_TASK"
	case config.PrivTop:
		return "PRIV_TOP"
	default:
		return "PRIV_VCL"
	}
}

// DecodedSignature is the parsed form of one module function's blob.
type DecodedSignature struct {
	Result *vtype.Type
	CFunc  string
	Args   []ArgDescriptor
}

// DecodeSignature unpacks a blob built by EncodeSignature, using
// funbit's Matcher to pull each NUL-terminated field off the front of
// the remaining bitstring.
func DecodeSignature(registry *vtype.Registry, blob *funbit.BitString) (*DecodedSignature, error) {
	rest := blob
	rfmtName, rest, err := readCString(rest)
	if err != nil {
		return nil, fmt.Errorf("argdesc: reading result type: %w", err)
	}
	rfmt, ok := registry.LookupResult(rfmtName)
	if !ok {
		return nil, fmt.Errorf("argdesc: unknown result type %q", rfmtName)
	}
	cfunc, rest, err := readCString(rest)
	if err != nil {
		return nil, fmt.Errorf("argdesc: reading cfunc name: %w", err)
	}

	var args []ArgDescriptor
	for {
		var typeName string
		typeName, rest, err = readCString(rest)
		if err != nil {
			return nil, fmt.Errorf("argdesc: reading argument %d type: %w", len(args), err)
		}
		if typeName == "" {
			break // zero-length field terminates the argument list
		}
		if priv, ok := privKindByName(typeName); ok {
			args = append(args, ArgDescriptor{IsPrivate: true, Private: priv})
			continue
		}
		t, ok := registry.Lookup(typeName)
		if !ok {
			return nil, fmt.Errorf("argdesc: unknown argument type %q", typeName)
		}
		a := ArgDescriptor{Type: t}

		if t == vtype.ENUM {
			for {
				var tag byte
				tag, rest, err = peekTag(rest)
				if err != nil {
					return nil, err
				}
				if tag == sentinelEnumEnd {
					rest, err = skipByte(rest)
					if err != nil {
						return nil, err
					}
					break
				}
				var v string
				v, rest, err = readCString(rest)
				if err != nil {
					return nil, fmt.Errorf("argdesc: reading enum value: %w", err)
				}
				a.EnumValues = append(a.EnumValues, v)
			}
		}

		tag, rest2, err := peekTag(rest)
		if err != nil {
			return nil, err
		}
		if tag == sentinelParamTag {
			rest, err = skipByte(rest2)
			if err != nil {
				return nil, err
			}
			a.Name, rest, err = readCString(rest)
			if err != nil {
				return nil, fmt.Errorf("argdesc: reading argument name: %w", err)
			}
		}

		tag, rest2, err = peekTag(rest)
		if err != nil {
			return nil, err
		}
		if tag == sentinelDefault {
			rest, err = skipByte(rest2)
			if err != nil {
				return nil, err
			}
			a.Default, rest, err = readCString(rest)
			if err != nil {
				return nil, fmt.Errorf("argdesc: reading argument default: %w", err)
			}
		}

		args = append(args, a)
	}

	return &DecodedSignature{Result: rfmt, CFunc: cfunc, Args: args}, nil
}

func privKindByName(name string) (config.PrivKind, bool) {
	switch name {
	case "PRIV_VCL":
		return config.PrivVCL, true
	case "PRIV_CALL":
		return config.PrivCall, true
	case "PRIV_TASK":
		return config.PrivTask, true
	case "PRIV_TOP":
		return config.PrivTop, true
	default:
		return 0, false
	}
}

// readCString matches a NUL-terminated binary field off the front of
// rest using funbit's Matcher (a dynamically-sized Binary segment
// followed by the NUL byte itself), returning the field text and the
// remaining bitstring.
func readCString(rest *funbit.BitString) (string, *funbit.BitString, error) {
	data := rest.ToBytes()
	nul := -1
	for i, b := range data {
		if b == 0 {
			nul = i
			break
		}
	}
	if nul < 0 {
		return "", nil, fmt.Errorf("argdesc: unterminated field")
	}
	if nul == 0 {
		// funbit reads a size-0 binary segment as "rest of input", so an
		// empty field is split off here instead.
		return "", funbit.NewBitStringFromBytes(data[1:]), nil
	}
	m := funbit.NewMatcher()
	var field []byte
	var term uint8
	var tail []byte
	funbit.Binary(m, &field, funbit.WithSize(uint(nul)))
	funbit.Integer(m, &term, funbit.WithSize(8))
	funbit.RestBinary(m, &tail)
	if _, err := funbit.Match(m, rest); err != nil {
		return "", nil, err
	}
	return string(field), funbit.NewBitStringFromBytes(tail), nil
}

// peekTag returns the single next byte of rest without consuming it
// (by re-deriving the tail from the raw bytes), used to decide whether
// an optional field follows.
func peekTag(rest *funbit.BitString) (byte, *funbit.BitString, error) {
	data := rest.ToBytes()
	if len(data) == 0 {
		return 0, rest, fmt.Errorf("argdesc: unexpected end of signature")
	}
	return data[0], rest, nil
}

func skipByte(rest *funbit.BitString) (*funbit.BitString, error) {
	data := rest.ToBytes()
	if len(data) == 0 {
		return nil, fmt.Errorf("argdesc: unexpected end of signature")
	}
	return funbit.NewBitStringFromBytes(data[1:]), nil
}
