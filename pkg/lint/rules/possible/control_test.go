package possible

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasControlChars(t *testing.T) {
	assert.False(t, HasControlChars(""))

	for c := rune(0); c <= 0x1f; c++ {
		s := "ab" + string(c) + "cd"
		assert.True(t, HasControlChars(s), "U+%04X", c)
		assert.Equal(t, HasControlChars(s), HasControlChars(s))
	}

	for c := rune(0x20); c <= 0x7f; c++ {
		assert.False(t, HasControlChars(string(c)), "U+%04X", c)
	}

	assert.False(t, HasControlChars("héllo wörld ✓ \u0080\u009f"))
	assert.True(t, HasControlChars("\x01\x02"))
	assert.True(t, HasControlChars(strings.Repeat("x", 1000)+"\x1f"))
}

func TestEffectivePattern(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no escapes", "abc", "abc"},
		{"hex escape", `^\x1f$`, "^\x1f$"},
		{"hex escape upper", `\x0B`, "\x0b"},
		{"hex space", `\x20`, " "},
		{"unicode escape", `\u001f`, "\x1f"},
		{"code point escape", `\u{1}`, "\x01"},
		{"code point escape wide", `\u{1F600}`, "\U0001F600"},
		{"escaped backslash", `\\x1f`, `\\x1f`},
		{"symbolic escapes kept", `\t\n\r\v\f\0`, `\t\n\r\v\f\0`},
		{"control escape kept", `\cJ`, `\cJ`},
		{"short hex", `\x1`, `\x1`},
		{"bad hex", `\xZZ`, `\xZZ`},
		{"short unicode", `\u12`, `\u12`},
		{"unterminated code point", `\u{12`, `\u{12`},
		{"empty code point", `\u{}`, `\u{}`},
		{"code point out of range", `\u{110000}`, `\u{110000}`},
		{"trailing backslash", `a\`, `a\`},
		{"class escapes kept", `\d+\w`, `\d+\w`},
		{"multibyte after backslash", `\é`, `\é`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectivePattern(tt.in))
		})
	}
}
