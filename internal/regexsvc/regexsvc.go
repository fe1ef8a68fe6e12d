// Package regexsvc is the reference implementation of internal/vcc's
// RegexService external collaborator (spec §6): compile-time
// validation of a regular-expression literal used with '~'/'!~' or
// regsub/regsuball. The compiler never executes the expression, only
// checks it compiles, so the generated code's runtime_re_match call
// fails fast on a syntax error instead of at request time.
//
// Built on the standard library's regexp/syntax: no example repo in
// the retrieval pack imports a third-party regex engine (dlclark's
// regexp2 shows up only as an indirect, unused transitive dependency
// of an unrelated repo's JSON-schema validator), so there is no
// grounded ecosystem alternative to reach for here.
package regexsvc

import (
	"fmt"
	"regexp/syntax"
)

// Service compiles regex literals encountered mid-expression (the '~'
// operator, and regsub/regsuball's pattern argument) to a stable
// identifier the emitted code references, holding one compiled entry
// per distinct pattern for the lifetime of a compile.
type Service struct {
	patterns []string
}

func New() *Service { return &Service{} }

// Validate parses pattern as a POSIX-flavored ERE-compatible regular
// expression (syntax.Perl, the dialect Go's regexp package itself
// uses) and returns a descriptive error on malformed syntax.
func (*Service) Validate(pattern string) error {
	if _, err := syntax.Parse(pattern, syntax.Perl); err != nil {
		return fmt.Errorf("invalid regular expression %q: %w", pattern, err)
	}
	return nil
}

// Compile validates pattern and returns the stable target-language
// identifier emitted code uses to reference its compiled form. Each distinct
// pattern seen by one Service gets one identifier; repeated patterns
// reuse it.
func (s *Service) Compile(pattern string) (string, error) {
	if err := s.Validate(pattern); err != nil {
		return "", err
	}
	for i, p := range s.patterns {
		if p == pattern {
			return regexRef(i), nil
		}
	}
	s.patterns = append(s.patterns, pattern)
	return regexRef(len(s.patterns) - 1), nil
}

func regexRef(i int) string { return fmt.Sprintf("VGC_re_%d", i) }
