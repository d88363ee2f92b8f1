package lsp

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/file.js)
	Content string // Full document content
	Version int    // Version number, incremented on each change
	Lines   []int  // Byte offsets of line starts for fast position lookups
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or replaces a document in the store.
func (s *DocumentStore) Open(uri string, content string, version int) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := newDocument(uri, content, version)
	s.documents[uri] = doc
	return doc
}

// Update replaces the content of an open document. Stale versions are
// ignored. It returns the current document, or nil when uri is not open.
func (s *DocumentStore) Update(uri string, content string, version int) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[uri]
	if !ok {
		return nil
	}
	if version < doc.Version {
		return doc
	}
	doc = newDocument(uri, content, version)
	s.documents[uri] = doc
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// List returns all open document URIs.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	return uris
}

// Documents are replaced rather than mutated so readers holding one keep a
// consistent snapshot.
func newDocument(uri, content string, version int) *Document {
	return &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// GetLine returns the content of a 0-based line without its terminator.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}

	start := d.Lines[line]
	end := len(d.Content)
	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1
	}
	text := d.Content[start:end]
	return strings.TrimSuffix(text, "\r")
}

// PositionFromToken converts a 1-based, character-counted position into an
// LSP position measured in UTF-16 code units. Columns past the end of the
// line are clamped.
func (d *Document) PositionFromToken(p token.Position) Position {
	if d == nil || p.Line <= 0 {
		return Position{}
	}
	line := p.Line - 1
	if line >= len(d.Lines) {
		line = len(d.Lines) - 1
		return Position{Line: uint32(line), Character: utf16Len(d.GetLine(line))} //nolint:gosec // G115: bounded by line count
	}

	text := d.GetLine(line)
	var units uint32
	for i := 1; i < p.Column && text != ""; i++ {
		r, size := utf8.DecodeRuneInString(text)
		units += runeUnits(r)
		text = text[size:]
	}
	return Position{Line: uint32(line), Character: units} //nolint:gosec // G115: line is non-negative
}

func utf16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

func runeUnits(r rune) uint32 {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return strings.TrimPrefix(uri, "file://")
	}
	path := u.Path
	// file:///C:/dir -> C:/dir
	if runtime.GOOS == "windows" && len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return (&url.URL{Scheme: "file", Path: path}).String()
}
