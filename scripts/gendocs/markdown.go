package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// generatedMarker is written below the frontmatter of every generated page.
const generatedMarker = "<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->"

// MarkdownWriter accumulates a markdown document.
type MarkdownWriter struct {
	buf bytes.Buffer
}

// NewMarkdownWriter returns an empty writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes a YAML frontmatter block.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	w.Line("---")
	w.Line(fmt.Sprintf("title: %q", title))
	w.Line(fmt.Sprintf("description: %q", cleanDescription(description)))
	w.Line("---")
	w.Newline()
}

// GeneratedMarker marks the page as generated.
func (w *MarkdownWriter) GeneratedMarker() {
	w.Line(generatedMarker)
	w.Newline()
}

// Header writes an ATX header.
func (w *MarkdownWriter) Header(level int, text string) {
	w.Line(strings.Repeat("#", level) + " " + text)
	w.Newline()
}

// Paragraph writes text followed by a blank line.
func (w *MarkdownWriter) Paragraph(text string) {
	w.Line(strings.TrimSpace(text))
	w.Newline()
}

// CodeBlock writes a fenced code block.
func (w *MarkdownWriter) CodeBlock(lang, code string) {
	w.Line("```" + lang)
	w.Line(strings.TrimRight(code, "\n"))
	w.Line("```")
	w.Newline()
}

// BulletList writes one bullet per item.
func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		w.Line("- " + item)
	}
	w.Newline()
}

// Table writes a GitHub-flavoured table. Nothing is written without rows.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	t := table.NewWriter()
	t.AppendHeader(toRow(headers))
	for _, r := range rows {
		t.AppendRow(toRow(r))
	}
	w.Line(t.RenderMarkdown())
	w.Newline()
}

// Line writes s and a newline.
func (w *MarkdownWriter) Line(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

// Newline writes an empty line.
func (w *MarkdownWriter) Newline() {
	w.buf.WriteByte('\n')
}

// Bytes returns the document.
func (w *MarkdownWriter) Bytes() []byte {
	return w.buf.Bytes()
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// InlineCode wraps s in backticks.
func InlineCode(s string) string {
	return "`" + s + "`"
}

// Bold wraps s in double asterisks.
func Bold(s string) string {
	return "**" + s + "**"
}

// cleanDescription collapses s to a single line.
func cleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
