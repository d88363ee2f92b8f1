package possible

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HasControlChars reports whether s contains a character in the range
// U+0000 to U+001F. DEL (U+007F) is not a control character here.
func HasControlChars(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] <= 0x1f {
			return true
		}
	}
	return false
}

// EffectivePattern decodes the numeric escapes \xHH, \uHHHH and \u{H...}
// in regular-expression source into the characters they denote.
// Every other escape is kept as written, so \\x1f stays an escaped
// backslash followed by "x1f", and symbolic escapes such as \t, \n or \cJ
// never decode to control characters.
func EffectivePattern(src string) string {
	if !strings.Contains(src, `\`) {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))

	for i := 0; i < len(src); {
		if src[i] != '\\' || i+1 >= len(src) {
			b.WriteByte(src[i])
			i++
			continue
		}

		if r, n, ok := decodeEscape(src[i+1:]); ok {
			b.WriteRune(r)
			i += 1 + n
			continue
		}

		b.WriteString(src[i : i+2])
		i += 2
	}
	return b.String()
}

// decodeEscape decodes a numeric escape from s, which starts just after the
// backslash. It returns the rune and the number of bytes consumed.
func decodeEscape(s string) (rune, int, bool) {
	switch {
	case strings.HasPrefix(s, "x"):
		if r, ok := parseHex(s[1:], 2); ok {
			return r, 3, true
		}
	case strings.HasPrefix(s, "u{"):
		end := strings.IndexByte(s, '}')
		if end <= 2 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(s[2:end], 16, 32)
		if err != nil || v > unicode.MaxRune {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	case strings.HasPrefix(s, "u"):
		if r, ok := parseHex(s[1:], 4); ok {
			return r, 5, true
		}
	}
	return 0, 0, false
}

func parseHex(s string, width int) (rune, bool) {
	if len(s) < width {
		return 0, false
	}
	v, err := strconv.ParseUint(s[:width], 16, 32)
	if err != nil {
		return 0, false
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		// Lone surrogate halves; none of them is a control character.
		return utf8.RuneError, true
	}
	return r, true
}
