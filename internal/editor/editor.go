// Package editor implements the fragment-editor template language used
// to splice fragments together into new, larger fragments (spec §4.1),
// and the final indentation-aware render pass that turns a finished
// fragment into emitted source text. Grounded directly on
// original_source/lib/libvcc/vcc_expr.c's vcc_expr_edit and
// vcc_expr_fmt: the `\v`-escape vocabulary (`\v1`, `\v2`, `\vS`, `\vs`,
// `\vT`, `\vt`, `\v+`, `\v-`) is carried over unchanged in meaning,
// renamed only where it referenced Varnish runtime symbols.
package editor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/veloxcache/vclc/internal/fragment"
	"github.com/veloxcache/vclc/internal/vtype"
)

// Context threads the two pieces of state the template escapes need
// beyond the fragments at hand: a per-Context counter for naming
// fresh strand-bundle locals, and the prologue sink those locals'
// declarations are appended to (spec §4.1, §4.10). Prologue is an
// io.Writer so callers can pass either a scratch bytes.Buffer (tests)
// or the compile's real internal/emit.Sink.
type Context struct {
	Unique   uint
	Prologue io.Writer
}

// Edit splices e1 (and, for two-operand escapes, e2) through template
// tmpl into a brand-new fragment of type fmt. tmpl is consumed left to
// right; a bare '\n' is suppressed immediately after a previous '\n'
// so blank template lines collapse, matching the original's `nl` flag.
//
// e1 must be non-nil; e2 may be nil when tmpl uses none of \v2, \vs, \vt.
func (c *Context) Edit(fmt_ *vtype.Type, tmpl string, e1, e2 *fragment.Fragment) (*fragment.Fragment, error) {
	if e1 == nil {
		return nil, fmt.Errorf("editor: e1 must not be nil")
	}
	var out bytes.Buffer
	nl := true
	p := 0
	for p < len(tmpl) {
		ch := tmpl[p]
		if ch != '\v' {
			if ch != '\n' || !nl {
				out.WriteByte(ch)
			}
			nl = ch == '\n'
			p++
			continue
		}
		p++
		if p >= len(tmpl) {
			return nil, fmt.Errorf("editor: dangling %%v escape in template %q", tmpl)
		}
		esc := tmpl[p]
		switch esc {
		case '+', '-':
			out.WriteByte('\v')
			out.WriteByte(esc)
		case 'S', 's':
			e3 := e1
			if esc == 's' {
				e3 = e2
			}
			if e3 == nil {
				return nil, fmt.Errorf("editor: %%v%c requires an operand", esc)
			}
			if e3.Fmt != vtype.STRINGS {
				return nil, fmt.Errorf("editor: %%v%c requires e3.Fmt == STRINGS, got %s", esc, e3.Fmt)
			}
			if e3.NStr > 1 {
				out.WriteString("\nruntime_collect_string(ctx,\v+\n")
			}
			out.Write(e3.Buf)
			if e3.NStr > 1 {
				out.WriteString(",\nruntime_strands_end)\v-\n")
			}
		case 'T', 't':
			e3 := e1
			if esc == 't' {
				e3 = e2
			}
			if e3 == nil {
				return nil, fmt.Errorf("editor: %%v%c requires an operand", esc)
			}
			fmt.Fprintf(c.Prologue,
				"  struct strands strs_%d_a;\n"+
					"  const char * strs_%d_s[%d];\n",
				c.Unique, c.Unique, e3.NStr)
			fmt.Fprintf(&out,
				"\v+\nruntime_bundle_strands(%d, &strs_%d_a, strs_%d_s,"+
					"\v+\n", e3.NStr, c.Unique, c.Unique)
			out.Write(e3.Buf)
			out.WriteString(",\nruntime_strands_end)\v-\v-")
			c.Unique++
		case '1':
			out.Write(e1.Buf)
		case '2':
			if e2 == nil {
				return nil, fmt.Errorf("editor: %%v2 requires e2")
			}
			out.Write(e2.Buf)
		default:
			return nil, fmt.Errorf("editor: illegal edit escape %%v%c in template %q", esc, tmpl)
		}
		p++
	}

	out2 := &fragment.Fragment{
		Fmt: fmt_,
		Buf: out.Bytes(),
		// a spliced fragment is a fresh runtime expression by default,
		// constant only when its caller knows better and overrides
		// Constancy afterward (e.g. a literal string concatenation, or
		// a handle spliced in as quoted text) — mirrors vcc_new_expr's
		// unconditional EXPR_VAR default in the original.
		Constancy: fragment.Var,
		T1:        e1.T1,
		T2:        e1.T2,
	}
	if e2 != nil {
		out2.T2 = e2.T2
	}
	return out2, nil
}

// Render expands a finished fragment's buffer into indented source
// text, starting at indent columns. `\v+`/`\v-` escapes widen/narrow
// the indent by two columns; a newline in the buffer re-emits the
// current indent on the following line, mirroring vcc_expr_fmt.
func Render(indent int, f *fragment.Fragment) string {
	var out bytes.Buffer
	pad := func(n int) {
		for i := 0; i < n; i++ {
			out.WriteByte(' ')
		}
	}
	pad(indent)
	buf := f.Buf
	p := 0
	for p < len(buf) {
		switch buf[p] {
		case '\n':
			out.WriteByte('\n')
			p++
			if p >= len(buf) {
				return out.String()
			}
			pad(indent)
		case '\v':
			p++
			if p >= len(buf) {
				return out.String()
			}
			switch buf[p] {
			case '+':
				indent += 2
			case '-':
				indent -= 2
			}
			p++
		default:
			out.WriteByte(buf[p])
			p++
		}
	}
	return out.String()
}
