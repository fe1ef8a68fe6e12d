package lexer

import "github.com/veloxcache/vclc/internal/token"

// Stream buffers tokens pulled from a Lexer so it can satisfy
// internal/vcc's TokenStream interface, which needs arbitrary-depth
// lookahead (Peek) in addition to a current token and single-step
// advance — a Lexer by itself only offers NextToken's one-at-a-time
// pull.
type Stream struct {
	lex *Lexer
	buf []token.Token
	pos int
}

// NewStream wraps a fresh Lexer over input as a TokenStream.
func NewStream(input string) *Stream {
	s := &Stream{lex: New(input)}
	s.fill(1)
	return s
}

// fill ensures at least n tokens are buffered from pos onward.
func (s *Stream) fill(n int) {
	for len(s.buf)-s.pos < n {
		s.buf = append(s.buf, s.lex.NextToken())
	}
}

// Cur returns the current token without consuming it.
func (s *Stream) Cur() token.Token {
	s.fill(1)
	return s.buf[s.pos]
}

// Advance consumes the current token and returns the new current one.
func (s *Stream) Advance() token.Token {
	if s.Cur().Kind != token.EOF {
		s.pos++
	}
	return s.Cur()
}

// Peek returns the token n positions past the current one (Peek(0) is
// the token right after Cur).
func (s *Stream) Peek(n int) token.Token {
	s.fill(n + 2)
	idx := s.pos + n + 1
	if idx >= len(s.buf) {
		idx = len(s.buf) - 1
	}
	return s.buf[idx]
}
