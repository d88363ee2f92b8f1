package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/go-sourcemap/sourcemap"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Language identifies the source language of a file.
type Language string

// Supported languages.
const (
	LanguageJS  Language = "js"
	LanguageJSX Language = "jsx"
	LanguageTS  Language = "ts"
	LanguageTSX Language = "tsx"
)

var languages = map[string]Language{
	".js":  LanguageJS,
	".mjs": LanguageJS,
	".cjs": LanguageJS,
	".jsx": LanguageJSX,
	".ts":  LanguageTS,
	".mts": LanguageTS,
	".cts": LanguageTS,
	".tsx": LanguageTSX,
}

var loaders = map[Language]api.Loader{
	LanguageJS:  api.LoaderJS,
	LanguageJSX: api.LoaderJSX,
	LanguageTS:  api.LoaderTS,
	LanguageTSX: api.LoaderTSX,
}

// LanguageOf returns the language for a path based on its extension.
// Unknown extensions are treated as JavaScript.
func LanguageOf(path string) Language {
	if lang, ok := languages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return LanguageJS
}

// Source is a loaded file ready for parsing.
type Source struct {
	Path     string
	Language Language
	Original string // file content as read
	Code     string // JavaScript handed to the parser
	Hash     string // xxhash of Original

	Directives *Directives

	mapper    *sourcemap.Consumer
	lines     *token.LineIndex
	codeLines *token.LineIndex
}

// TranspileError reports a file esbuild could not transform.
type TranspileError struct {
	Path    string
	Pos     token.Position
	Message string
}

func (e *TranspileError) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.Path, e.Pos, e.Message)
}

// Load reads path and prepares it for parsing.
func Load(path string) (*Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return FromContent(path, content)
}

// FromContent prepares in-memory content as if it had been read from path.
// JSX and TypeScript are transpiled immediately.
func FromContent(path string, content []byte) (*Source, error) {
	src := &Source{
		Path:     path,
		Language: LanguageOf(path),
		Original: string(content),
		Code:     string(content),
		Hash:     ContentHash(content),
	}
	src.lines = token.NewLineIndex(src.Original)

	directives, _, err := ExtractDirectives(src.Original)
	if err != nil {
		return nil, withFile(err, path)
	}
	src.Directives = directives

	if src.Language != LanguageJS {
		if err := src.transpile(); err != nil {
			return nil, err
		}
	}
	return src, nil
}

// Transpiled reports whether Code was produced by esbuild.
func (s *Source) Transpiled() bool {
	return s.mapper != nil
}

// Lower rewrites plain JavaScript through esbuild so syntax the parser does
// not support, such as ES module imports, is converted. It is a no-op for
// already transpiled sources.
func (s *Source) Lower() error {
	if s.Transpiled() {
		return nil
	}
	return s.transpile()
}

func (s *Source) transpile() error {
	result := api.Transform(s.Original, api.TransformOptions{
		Loader:     loaders[s.Language],
		Target:     api.ES2017,
		Format:     api.FormatCommonJS,
		Sourcemap:  api.SourceMapExternal,
		Sourcefile: s.Path,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		terr := &TranspileError{Path: s.Path, Message: msg.Text}
		if loc := msg.Location; loc != nil {
			terr.Pos = token.Position{Line: loc.Line, Column: loc.Column + 1, Offset: -1}
			if start := s.lines.Offset(loc.Line, 0); start >= 0 {
				terr.Pos = s.lines.Position(start + loc.Column)
			}
		}
		return terr
	}

	mapper, err := sourcemap.Parse(s.Path+".map", result.Map)
	if err != nil {
		return fmt.Errorf("parse source map for %s: %w", s.Path, err)
	}

	s.Code = string(result.Code)
	s.codeLines = token.NewLineIndex(s.Code)
	s.mapper = mapper
	return nil
}

// MapPosition translates a position in Code back to Original. Positions in
// untranspiled sources are returned unchanged, as are positions the source
// map has no segment for.
func (s *Source) MapPosition(pos token.Position) token.Position {
	offset, ok := s.originalOffset(pos)
	if !ok {
		return pos
	}
	return s.lines.Position(offset)
}

// MapSpan translates both ends of a span.
func (s *Source) MapSpan(span token.Span) token.Span {
	return token.Span{Start: s.MapPosition(span.Start), End: s.MapPosition(span.End)}
}

// originalOffset resolves a position in Code to a byte offset in Original.
// Source map columns count UTF-16 code units on both sides.
func (s *Source) originalOffset(pos token.Position) (int, bool) {
	if s.mapper == nil || !pos.IsValid() {
		return 0, false
	}
	genOffset := s.codeLines.Offset(pos.Line, pos.Column-1)
	if genOffset < 0 {
		return 0, false
	}
	_, _, line, col, ok := s.mapper.Source(pos.Line, s.codeLines.UTF16Column(genOffset))
	if !ok || line < 1 {
		return 0, false
	}
	offset := s.lines.OffsetUTF16(line, col)
	return offset, offset >= 0
}

func withFile(err error, path string) error {
	switch e := err.(type) {
	case *DirectiveParseError:
		e.File = path
	case *UnknownFieldError:
		e.File = path
	}
	return err
}

// ContentHash returns the hex xxhash of content.
func ContentHash(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}
