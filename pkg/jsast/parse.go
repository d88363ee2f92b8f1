package jsast

import (
	"errors"
	"fmt"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// SyntaxError is returned by Parse when the source is not valid JavaScript.
type SyntaxError struct {
	Filename string
	Pos      token.Position
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.Filename, e.Pos, e.Message)
}

// File is a parsed JavaScript source file.
type File struct {
	Name    string
	Source  string
	program *ast.Program
	lines   *token.LineIndex
	base    int

	literalFilter LiteralFilter
}

// LiteralFilter decides whether a string literal reaches Walk callbacks as a
// StringLiteral. Rejected literals are passed as opaque Expressions.
type LiteralFilter func(*StringLiteral) bool

// Parse parses src as a JavaScript program.
// Regular-expression literals are not validated against goja's engine.
func Parse(filename, src string) (*File, error) {
	program, err := parser.ParseFile(nil, filename, src, parser.IgnoreRegExpErrors, parser.WithDisableSourceMaps)
	if err != nil {
		return nil, toSyntaxError(filename, err)
	}

	base := 1
	if program.File != nil {
		base = program.File.Base()
	}

	return &File{
		Name:    filename,
		Source:  src,
		program: program,
		lines:   token.NewLineIndex(src),
		base:    base,
	}, nil
}

// SetLiteralFilter installs keep for subsequent walks. A nil filter keeps
// every literal.
func (f *File) SetLiteralFilter(keep LiteralFilter) {
	f.literalFilter = keep
}

// StringLiteralValue decodes raw, the source text of a single quoted string
// literal such as "\x01". It reports false when raw is anything else.
func StringLiteralValue(raw string) (string, bool) {
	program, err := parser.ParseFile(nil, "", raw, 0)
	if err != nil || len(program.Body) != 1 {
		return "", false
	}
	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return "", false
	}
	lit, ok := stmt.Expression.(*ast.StringLiteral)
	if !ok {
		return "", false
	}
	return lit.Value.String(), true
}

// Lines returns the offset index of the file's source.
func (f *File) Lines() *token.LineIndex {
	return f.lines
}

func toSyntaxError(filename string, err error) error {
	var list parser.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return fromParserError(filename, list[0])
	}
	var single *parser.Error
	if errors.As(err, &single) {
		return fromParserError(filename, single)
	}
	return &SyntaxError{Filename: filename, Message: err.Error()}
}

func fromParserError(filename string, e *parser.Error) *SyntaxError {
	return &SyntaxError{
		Filename: filename,
		Pos: token.Position{
			Line:   e.Position.Line,
			Column: e.Position.Column,
		},
		Message: e.Message,
	}
}
