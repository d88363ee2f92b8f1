package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// ErrExitWithoutShutdown is returned by Run when the client sends exit
// before shutdown. Editors expect exit code 1 in that case.
var ErrExitWithoutShutdown = errors.New("exit received before shutdown")

// Linter lints the content of one document.
type Linter interface {
	LintContent(path string, content []byte) ([]lint.Diagnostic, error)
}

// LinterFactory builds the linter for a workspace root. It is called once,
// while handling initialize.
type LinterFactory func(root string) (Linter, error)

// Options configure a Server.
type Options struct {
	NewLinter LinterFactory
	Version   string
	Logger    *slog.Logger
}

// Server implements the Language Server Protocol for leaplint.
type Server struct {
	documents *DocumentStore

	newLinter LinterFactory
	linter    Linter
	version   string

	projectRoot string
	initialized bool

	// I/O
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	shutdown bool
}

// NewServer creates a new LSP server instance.
func NewServer(reader io.Reader, writer io.Writer, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		documents: NewDocumentStore(),
		newLinter: opts.NewLinter,
		version:   opts.Version,
		reader:    bufio.NewReader(reader),
		writer:    writer,
		logger:    logger,
	}
}

// Run processes JSON-RPC messages until the client sends exit, the input
// ends or ctx is cancelled. Messages are handled in order.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("leaplint language server starting")
	defer s.closeLinter()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Error("error reading message", "error", err)
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				s.sendResponse(nil, nil, &JSONRPCError{Code: codeParseError, Message: err.Error()})
				continue
			}
			return err
		}

		if msg.Method == "exit" {
			s.logger.Info("server exit")
			if !s.shutdown {
				return ErrExitWithoutShutdown
			}
			return nil
		}

		if err := s.handleMessage(msg); err != nil {
			s.logger.Error("error handling message", "method", msg.Method, "error", err)
		}
	}
}

// JSONRPCMessage represents a JSON-RPC 2.0 message.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// readMessage reads one Content-Length framed message.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			continue
		}
		contentLength, err = strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid Content-Length: %w", err)
		}
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// sendResponse sends a JSON-RPC response.
func (s *Server) sendResponse(id *json.RawMessage, result any, rpcErr *JSONRPCError) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}
	if id == nil {
		null := json.RawMessage("null")
		msg.ID = &null
	}

	if rpcErr != nil {
		msg.Error = rpcErr
	} else {
		resultBytes, err := json.Marshal(result)
		if err != nil {
			s.logger.Error("error marshaling result", "error", err)
			return
		}
		msg.Result = resultBytes
	}

	s.writeMessage(&msg)
}

// sendNotification sends a JSON-RPC notification (no ID).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
	}

	if params != nil {
		paramsBytes, err := json.Marshal(params)
		if err != nil {
			s.logger.Error("error marshaling params", "method", method, "error", err)
			return
		}
		msg.Params = paramsBytes
	}

	s.writeMessage(&msg)
}

// writeMessage writes a JSON-RPC message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("error marshaling message", "error", err)
		return
	}

	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(body), body); err != nil {
		s.logger.Error("error writing message", "error", err)
	}
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(msg *JSONRPCMessage) error {
	s.logger.Debug("received", "method", msg.Method)

	if !s.initialized && msg.Method != "initialize" {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeServerNotInitialized, Message: "server not initialized"})
		}
		return nil
	}
	if s.shutdown && msg.Method != "shutdown" {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidRequest, Message: "server is shutting down"})
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	if s.initialized {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidRequest, Message: "server already initialized"})
		return nil
	}

	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	s.projectRoot = workspaceRoot(&params)
	s.logger.Info("project root", "path", s.projectRoot)

	if s.newLinter != nil {
		linter, err := s.newLinter(s.projectRoot)
		if err != nil {
			s.logger.Error("failed to create linter", "error", err)
			s.sendNotification("window/showMessage", &ShowMessageParams{
				Type:    MessageTypeError,
				Message: "leaplint: " + err.Error(),
			})
		} else {
			s.linter = linter
		}
	}

	s.initialized = true
	s.sendResponse(msg.ID, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save:      &SaveOptions{IncludeText: true},
			},
		},
		ServerInfo: &ServerInfo{Name: "leaplint", Version: s.version},
	}, nil)
	return nil
}

func workspaceRoot(params *InitializeParams) string {
	if params.RootURI != "" {
		return URIToPath(params.RootURI)
	}
	if len(params.WorkspaceFolders) > 0 {
		return URIToPath(params.WorkspaceFolders[0].URI)
	}
	return ""
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.shutdown = true
	s.closeLinter()
	s.sendResponse(msg.ID, nil, nil)
	s.logger.Info("server shutdown")
	return nil
}

func (s *Server) closeLinter() {
	if c, ok := s.linter.(io.Closer); ok {
		if err := c.Close(); err != nil {
			s.logger.Warn("failed to close linter", "error", err)
		}
	}
	s.linter = nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	doc := s.documents.Open(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("opened", "uri", doc.URI)
	s.publishDiagnostics(doc)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.logger.Debug("closed", "uri", params.TextDocument.URI)
	s.clearDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidChange(msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change holds the whole document
	last := params.ContentChanges[len(params.ContentChanges)-1]
	doc := s.documents.Update(params.TextDocument.URI, last.Text, params.TextDocument.Version)
	if doc == nil {
		return fmt.Errorf("change for unopened document %s", params.TextDocument.URI)
	}
	s.publishDiagnostics(doc)
	return nil
}

func (s *Server) handleDidSave(msg *JSONRPCMessage) error {
	var params DidSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}
	if params.Text != nil && *params.Text != doc.Content {
		doc = s.documents.Update(doc.URI, *params.Text, doc.Version)
	}
	s.publishDiagnostics(doc)
	return nil
}
