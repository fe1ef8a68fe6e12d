// Package emit holds the three output buffers a compile accumulates
// into (spec §4.10): the main code stream, the per-compile prologue
// (the struct strands locals the fragment editor declares), and the
// header stream (the static slot and finaliser registration a call's
// private argument needs, spec §4.8). Each is a funbit-backed bitstring builder rather than a
// bare bytes.Buffer, so appending emitted text and finishing the
// stream both go through the same builder the module-signature codec
// (internal/modules/argdesc.go) uses.
package emit

import (
	"fmt"

	"github.com/funvibe/funbit/pkg/funbit"
)

// Sink is an append-only byte stream. It satisfies io.Writer so
// internal/editor's fragment renderer and fmt.Fprintf can both target
// it directly.
type Sink struct {
	b *funbit.Builder
}

func NewSink() *Sink {
	return &Sink{b: funbit.NewBuilder()}
}

func (s *Sink) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	funbit.AddBinary(s.b, p, funbit.WithSize(uint(len(p))))
	return len(p), nil
}

func (s *Sink) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Bytes finalizes the builder into a bitstring and returns its bytes.
// Safe to call repeatedly; each call rebuilds from the same segment
// list funbit has accumulated so far.
func (s *Sink) Bytes() ([]byte, error) {
	bs, err := funbit.Build(s.b)
	if err != nil {
		return nil, fmt.Errorf("emit: finishing sink: %w", err)
	}
	return bs.ToBytes(), nil
}

func (s *Sink) String() string {
	b, err := s.Bytes()
	if err != nil {
		return ""
	}
	return string(b)
}

// Sinks bundles the three streams one compile produces.
type Sinks struct {
	Code     *Sink
	Prologue *Sink
	Header   *Sink
}

func NewSinks() *Sinks {
	return &Sinks{Code: NewSink(), Prologue: NewSink(), Header: NewSink()}
}
