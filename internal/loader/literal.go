package loader

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/jsast"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// IsOriginalStringLiteral reports whether the string literal at pos in Code
// with decoded value was written as a whole call argument in Original.
// esbuild folds constant expressions such as "a" + "\x01" into a single
// string, and those must not be treated as literals. Untranspiled sources
// always report true.
func (s *Source) IsOriginalStringLiteral(pos token.Position, value string) bool {
	if !s.Transpiled() {
		return true
	}
	offset, ok := s.originalOffset(pos)
	if !ok {
		return false
	}
	raw, ok := scanStringLiteral(s.Original, offset)
	if !ok || !endsArgument(s.Original[offset+len(raw):]) {
		return false
	}
	decoded, ok := jsast.StringLiteralValue(raw)
	return ok && decoded == value
}

// scanStringLiteral returns the quoted string token starting at offset.
func scanStringLiteral(src string, offset int) (string, bool) {
	if offset >= len(src) {
		return "", false
	}
	quote := src[offset]
	if quote != '"' && quote != '\'' {
		return "", false
	}
	for i := offset + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			if strings.HasPrefix(src[i+1:], "\r\n") {
				i++
			}
			i++
		case quote:
			return src[offset : i+1], true
		case '\n', '\r':
			return "", false
		}
	}
	return "", false
}

// endsArgument reports whether rest, after whitespace and comments, closes
// a call argument.
func endsArgument(rest string) bool {
	for {
		rest = strings.TrimLeft(rest, " \t\r\n")
		switch {
		case strings.HasPrefix(rest, "//"):
			nl := strings.IndexByte(rest, '\n')
			if nl < 0 {
				return false
			}
			rest = rest[nl+1:]
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				return false
			}
			rest = rest[end+4:]
		default:
			return rest != "" && (rest[0] == ',' || rest[0] == ')')
		}
	}
}
