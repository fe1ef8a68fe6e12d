package modules

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/veloxcache/vclc/internal/vtype"
)

// funcDecl is one parsed line of a .vclmod descriptor: the human-
// readable form a vmod author writes, which the loader packs into the
// same signature blob a real vmod's generated export header would
// carry (spec §4.7).
type funcDecl struct {
	Result *vtype.Type
	Name   string
	Args   []ArgDescriptor
}

// parseManifest reads every function declaration out of a .vclmod
// file. One declaration per non-blank, non-comment line:
//
//	RESULT name(ARG, ARG, ...)
//
// where ARG is TYPE, TYPE:param, TYPE:param=default,
// ENUM(a|b|c):param, ENUM(a|b|c):param=default, or one of
// PRIV_VCL/PRIV_CALL/PRIV_TASK/PRIV_TOP.
func parseManifest(r io.Reader, registry *vtype.Registry) ([]funcDecl, error) {
	var decls []funcDecl
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d, err := parseFuncDecl(line, registry)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		decls = append(decls, d)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return decls, nil
}

func parseFuncDecl(line string, registry *vtype.Registry) (funcDecl, error) {
	open := strings.IndexByte(line, '(')
	close_ := strings.LastIndexByte(line, ')')
	if open < 0 || close_ < open {
		return funcDecl{}, fmt.Errorf("malformed declaration %q", line)
	}
	head := strings.Fields(strings.TrimSpace(line[:open]))
	if len(head) != 2 {
		return funcDecl{}, fmt.Errorf("expected \"RESULT name(...)\", got %q", line)
	}
	result, ok := registry.LookupResult(head[0])
	if !ok {
		return funcDecl{}, fmt.Errorf("unknown result type %q", head[0])
	}
	name := head[1]

	argList := strings.TrimSpace(line[open+1 : close_])
	var args []ArgDescriptor
	if argList != "" {
		for _, raw := range strings.Split(argList, ",") {
			a, err := parseArg(strings.TrimSpace(raw), registry)
			if err != nil {
				return funcDecl{}, fmt.Errorf("argument %q: %w", raw, err)
			}
			args = append(args, a)
		}
	}
	return funcDecl{Result: result, Name: name, Args: args}, nil
}

func parseArg(raw string, registry *vtype.Registry) (ArgDescriptor, error) {
	if priv, ok := privKindByName(raw); ok {
		return ArgDescriptor{IsPrivate: true, Private: priv}, nil
	}

	typePart, rest, _ := strings.Cut(raw, ":")
	var name, def string
	if rest != "" {
		name, def, _ = strings.Cut(rest, "=")
	}

	if strings.HasPrefix(typePart, "ENUM(") && strings.HasSuffix(typePart, ")") {
		inner := typePart[len("ENUM(") : len(typePart)-1]
		values := strings.Split(inner, "|")
		return ArgDescriptor{Type: vtype.ENUM, EnumValues: values, Name: name, Default: def}, nil
	}

	t, ok := registry.Lookup(typePart)
	if !ok {
		return ArgDescriptor{}, fmt.Errorf("unknown argument type %q", typePart)
	}
	return ArgDescriptor{Type: t, Name: name, Default: def}, nil
}
