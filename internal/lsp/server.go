// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lsp implements a language server that formats structured text
// documents.
package lsp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"go.lsp.dev/protocol"

	"github.com/ianlewis/go-stfmt"
)

// Name is the server name reported to clients.
const Name = "stfmt"

// Options configures a Server.
type Options struct {
	// Format holds the formatting options. The indentation requested by the
	// client replaces Format.Indent.
	Format *stfmt.Options

	// Version is the server version reported to clients.
	Version string

	// Logger receives server logs. If nil, logs are discarded.
	Logger *slog.Logger
}

// Server is a language server. Open documents are held in memory and are the
// only documents that can be formatted.
type Server struct {
	format  stfmt.Options
	version string
	logger  *slog.Logger

	// exit is called when the client sends the exit notification.
	exit func()

	mu       sync.Mutex
	docs     map[protocol.DocumentURI]string
	shutdown bool
}

// NewServer returns a new Server. If opts is nil, default options are used.
func NewServer(opts *Options) *Server {
	if opts == nil {
		opts = &Options{}
	}
	s := &Server{
		format:  *stfmt.DefaultOptions,
		version: opts.Version,
		logger:  opts.Logger,
		exit:    func() {},
		docs:    make(map[protocol.DocumentURI]string),
	}
	if opts.Format != nil {
		s.format = *opts.Format
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Handlers returns the method handlers of the server.
func (s *Server) Handlers() handler.Map {
	return handler.Map{
		"initialize":              s.handleInitialize,
		"initialized":             s.handleInitialized,
		"textDocument/didOpen":    s.handleDidOpen,
		"textDocument/didChange":  s.handleDidChange,
		"textDocument/didClose":   s.handleDidClose,
		"textDocument/formatting": s.handleFormatting,
		"shutdown":                s.handleShutdown,
		"exit":                    s.handleExit,
	}
}

// Serve runs the server over r and w using LSP framing until the client
// exits, the connection closes or ctx is done.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.WriteCloser) error {
	srv := jrpc2.NewServer(s.Handlers(), &jrpc2.ServerOptions{
		Logger: func(text string) { s.logger.Debug(text) },
	})

	// The exit handler returns before the server stops.
	s.exit = func() { go srv.Stop() }
	stop := context.AfterFunc(ctx, srv.Stop)
	defer stop()

	s.logger.Info("starting language server", "version", s.version)
	srv.Start(channel.LSP(r, w))

	err := srv.Wait()
	s.logger.Info("language server stopped", "err", err)
	if err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// Document returns the text of an open document.
func (s *Server) Document(uri protocol.DocumentURI) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[uri]
	return text, ok
}

func (s *Server) handleInitialize(_ context.Context, req *jrpc2.Request) (any, error) {
	var params protocol.InitializeParams
	if req.HasParams() {
		if err := req.UnmarshalParams(&params); err != nil {
			return nil, jrpc2.Errorf(jrpc2.InvalidParams, "invalid parameters: %v", err)
		}
	}
	if params.ClientInfo != nil {
		s.logger.Info("client connected", "name", params.ClientInfo.Name, "version", params.ClientInfo.Version)
	}

	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync:           protocol.TextDocumentSyncKindFull,
			DocumentFormattingProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    Name,
			Version: s.version,
		},
	}, nil
}

func (s *Server) handleInitialized(_ context.Context, _ *jrpc2.Request) (any, error) {
	return nil, nil
}

func (s *Server) handleDidOpen(_ context.Context, req *jrpc2.Request) (any, error) {
	var params protocol.DidOpenTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[params.TextDocument.URI] = params.TextDocument.Text
	s.logger.Debug("opened document", "uri", params.TextDocument.URI)
	return nil, nil
}

func (s *Server) handleDidChange(_ context.Context, req *jrpc2.Request) (any, error) {
	var params protocol.DidChangeTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	if len(params.ContentChanges) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[params.TextDocument.URI]; !ok {
		s.logger.Warn("change for unknown document", "uri", params.TextDocument.URI)
		return nil, nil
	}
	// Documents are synced in full so the last change holds the whole text.
	s.docs[params.TextDocument.URI] = params.ContentChanges[len(params.ContentChanges)-1].Text
	return nil, nil
}

func (s *Server) handleDidClose(_ context.Context, req *jrpc2.Request) (any, error) {
	var params protocol.DidCloseTextDocumentParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, params.TextDocument.URI)
	s.logger.Debug("closed document", "uri", params.TextDocument.URI)
	return nil, nil
}

func (s *Server) handleFormatting(_ context.Context, req *jrpc2.Request) (any, error) {
	var params protocol.DocumentFormattingParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return nil, jrpc2.Errorf(jrpc2.InvalidRequest, "server is shut down")
	}
	text, visible := s.docs[params.TextDocument.URI]
	s.mu.Unlock()

	opts := s.format
	opts.Indent = indentFor(params.Options, opts.Indent)

	edits := stfmt.New(&opts).Edits(text, visible)
	s.logger.Debug("formatted document", "uri", params.TextDocument.URI, "visible", visible)
	return edits, nil
}

func (s *Server) handleShutdown(_ context.Context, _ *jrpc2.Request) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	clear(s.docs)
	return nil, nil
}

func (s *Server) handleExit(_ context.Context, _ *jrpc2.Request) (any, error) {
	s.exit()
	return nil, nil
}

// indentFor returns the indentation unit described by the client's formatting
// options. def is returned when the options do not describe one.
func indentFor(opts protocol.FormattingOptions, def string) string {
	switch {
	case opts.InsertSpaces && opts.TabSize > 0:
		return strings.Repeat(" ", int(opts.TabSize))
	case !opts.InsertSpaces && opts.TabSize > 0:
		return "\t"
	default:
		return def
	}
}

func unmarshalParams(req *jrpc2.Request, v any) error {
	if !req.HasParams() {
		return jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}
	if err := req.UnmarshalParams(v); err != nil {
		return jrpc2.Errorf(jrpc2.InvalidParams, "invalid parameters: %v", err)
	}
	return nil
}
