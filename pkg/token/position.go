// Package token defines source positions shared by the parser adapter,
// the lint framework and the output layer.
package token

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in characters
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String formats the position as line:column, or "-" when unknown.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p sorts before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// LineIndex converts byte offsets into line/column positions.
type LineIndex struct {
	src   string
	lines []int // byte offset of the first character of each line
}

// NewLineIndex builds an index over src.
func NewLineIndex(src string) *LineIndex {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &LineIndex{src: src, lines: lines}
}

// Position returns the position of a byte offset. Offsets outside the
// source are clamped to its bounds.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.src) {
		offset = len(li.src)
	}
	line := sort.Search(len(li.lines), func(i int) bool { return li.lines[i] > offset }) - 1
	start := li.lines[line]
	return Position{
		Line:   line + 1,
		Column: utf8.RuneCountInString(li.src[start:offset]) + 1,
		Offset: offset,
	}
}

// Span returns the span between two byte offsets.
func (li *LineIndex) Span(start, end int) Span {
	return Span{Start: li.Position(start), End: li.Position(end)}
}

// LineCount returns the number of lines in the indexed source.
func (li *LineIndex) LineCount() int {
	return len(li.lines)
}

// Offset returns the byte offset of a 1-based line and a 0-based character
// column, or -1 when the line does not exist. Columns past the end of the
// line are clamped to it.
func (li *LineIndex) Offset(line, col int) int {
	start, end, ok := li.lineBounds(line)
	if !ok {
		return -1
	}

	off := start
	for i := 0; i < col && off < end; i++ {
		_, size := utf8.DecodeRuneInString(li.src[off:end])
		off += size
	}
	return off
}

// OffsetUTF16 is Offset with the column counted in UTF-16 code units, the
// unit source maps use. A column that falls inside a surrogate pair
// resolves to the start of that character.
func (li *LineIndex) OffsetUTF16(line, units int) int {
	start, end, ok := li.lineBounds(line)
	if !ok {
		return -1
	}

	off := start
	for units > 0 && off < end {
		r, size := utf8.DecodeRuneInString(li.src[off:end])
		units -= utf16Units(r)
		if units < 0 {
			break
		}
		off += size
	}
	return off
}

// UTF16Column returns the 0-based column of a byte offset counted in
// UTF-16 code units.
func (li *LineIndex) UTF16Column(offset int) int {
	pos := li.Position(offset)
	start := li.lines[pos.Line-1]

	col := 0
	for _, r := range li.src[start:pos.Offset] {
		col += utf16Units(r)
	}
	return col
}

func (li *LineIndex) lineBounds(line int) (start, end int, ok bool) {
	if line < 1 || line > len(li.lines) {
		return 0, 0, false
	}
	start = li.lines[line-1]
	end = len(li.src)
	if line < len(li.lines) {
		end = li.lines[line] - 1
	}
	return start, end, true
}

func utf16Units(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
