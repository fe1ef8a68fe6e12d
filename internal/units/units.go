// Package units is the reference implementation of internal/vcc's
// NumericLexer external collaborator (spec §6): turning a numeric
// literal's trailing unit suffix into a multiplier, for DURATION
// literals ("5s", "2m30s" is not supported, only a single suffix) and
// BYTES literals ("10KB"). Grounded on the role of vcc_TimeUnit and
// vcc_ByteVal in original_source/lib/libvcc/vcc_expr.c's CNUM case of
// vcc_expr4, though not transcribed from missing source: the unit
// tables themselves are a generalization an external collaborator
// supplies (spec §6: this package is a reference implementation, not
// the only legal one).
//
// Built on the standard library (strconv for the numeric part); no
// example repo in the retrieval pack imports a units/quantity parsing
// library, so there is no grounded ecosystem alternative.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// timeUnits maps a duration literal's suffix to its value in seconds.
var timeUnits = map[string]float64{
	"ms": 0.001,
	"s":  1,
	"m":  60,
	"h":  3600,
	"d":  86400,
	"w":  604800,
	"y":  31536000,
}

// byteUnits maps a bytes literal's suffix to its value in bytes.
var byteUnits = map[string]float64{
	"B":  1,
	"KB": 1024,
	"MB": 1024 * 1024,
	"GB": 1024 * 1024 * 1024,
	"TB": 1024 * 1024 * 1024 * 1024,
}

// Lexer adapts this package's unit tables to internal/vcc's
// NumericLexer interface.
type Lexer struct{}

func (Lexer) TimeUnitFactor(unit string) (float64, bool)  { return UnitFactor(unit) }
func (Lexer) BytesUnitFactor(unit string) (float64, bool) { return BytesFactor(unit) }

// UnitFactor returns the seconds-multiplier for a duration literal's
// unit suffix (internal/vcc's NumericLexer.TimeUnitFactor), e.g. "s" →
// 1, "m" → 60.
func UnitFactor(unit string) (float64, bool) {
	f, ok := timeUnits[unit]
	return f, ok
}

// BytesFactor returns the byte-count multiplier for a bytes literal's
// unit suffix (internal/vcc's NumericLexer.BytesUnitFactor), e.g. "KB"
// → 1024. Matching is case-insensitive, per the original's byte-unit
// table.
func BytesFactor(unit string) (float64, bool) {
	f, ok := byteUnits[strings.ToUpper(unit)]
	return f, ok
}

// ParseDuration splits text into a numeric value and a recognized time
// suffix, returning the value in seconds.
func ParseDuration(text string) (float64, error) {
	num, suffix := splitSuffix(text)
	mult, ok := timeUnits[suffix]
	if !ok {
		return 0, fmt.Errorf("units: unrecognized duration suffix %q in %q", suffix, text)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("units: invalid duration literal %q: %w", text, err)
	}
	return v * mult, nil
}

// ParseBytes splits text into a numeric value and a recognized byte
// suffix, returning the value in bytes. A bare number with no suffix
// is accepted as already being in bytes.
func ParseBytes(text string) (float64, error) {
	num, suffix := splitSuffix(text)
	if suffix == "" {
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("units: invalid bytes literal %q: %w", text, err)
		}
		return v, nil
	}
	mult, ok := byteUnits[strings.ToUpper(suffix)]
	if !ok {
		return 0, fmt.Errorf("units: unrecognized bytes suffix %q in %q", suffix, text)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("units: invalid bytes literal %q: %w", text, err)
	}
	return v * mult, nil
}

func splitSuffix(text string) (num, suffix string) {
	i := len(text)
	for i > 0 && !isDigitOrDot(text[i-1]) {
		i--
	}
	return text[:i], text[i:]
}

func isDigitOrDot(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.'
}
