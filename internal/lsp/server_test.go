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

package lsp

import (
	"context"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/server"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/ianlewis/go-stfmt"
	"github.com/ianlewis/go-stfmt/vocab"
)

const docURI = protocol.DocumentURI("file:///project/main.st")

func newClient(t *testing.T, s *Server) *jrpc2.Client {
	t.Helper()

	loc := server.NewLocal(s.Handlers(), &server.LocalOptions{
		// Requests are handled one at a time and in order.
		Server: &jrpc2.ServerOptions{Concurrency: 1},
	})
	t.Cleanup(func() {
		_ = loc.Close()
	})
	return loc.Client
}

func open(t *testing.T, c *jrpc2.Client, uri protocol.DocumentURI, text string) {
	t.Helper()

	err := c.Notify(context.Background(), "textDocument/didOpen", protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "iecst",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func format(t *testing.T, c *jrpc2.Client, uri protocol.DocumentURI, opts protocol.FormattingOptions) []protocol.TextEdit {
	t.Helper()

	var edits []protocol.TextEdit
	err := c.CallResult(context.Background(), "textDocument/formatting", protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Options:      opts,
	}, &edits)
	require.NoError(t, err)
	return edits
}

func TestServer_Initialize(t *testing.T) {
	t.Parallel()

	c := newClient(t, NewServer(&Options{Version: "v1.2.3"}))

	var result protocol.InitializeResult
	err := c.CallResult(context.Background(), "initialize", protocol.InitializeParams{
		ClientInfo: &protocol.ClientInfo{Name: "test"},
	}, &result)
	require.NoError(t, err)

	require.NotNil(t, result.ServerInfo)
	require.Equal(t, Name, result.ServerInfo.Name)
	require.Equal(t, "v1.2.3", result.ServerInfo.Version)
	require.Equal(t, true, result.Capabilities.DocumentFormattingProvider)
	require.InDelta(t, float64(protocol.TextDocumentSyncKindFull), result.Capabilities.TextDocumentSync, 0)

	require.NoError(t, c.Notify(context.Background(), "initialized", struct{}{}))
}

func TestServer_Formatting(t *testing.T) {
	t.Parallel()

	c := newClient(t, NewServer(nil))
	open(t, c, docURI, "if x then\ny:=1;\nend_if;\n")

	edits := format(t, c, docURI, protocol.FormattingOptions{
		InsertSpaces: true,
		TabSize:      2,
	})

	want := []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 3, Character: 0},
			},
			NewText: "IF x THEN\n  y := 1;\nEND_IF;\n",
		},
	}
	if diff := cmp.Diff(want, edits); diff != "" {
		t.Fatalf("formatting (-want, +got):\n%s", diff)
	}
}

func TestServer_FormattingVocabulary(t *testing.T) {
	t.Parallel()

	c := newClient(t, NewServer(&Options{
		Format: &stfmt.Options{
			Indent: "\t",
			Vocabulary: vocab.Extra{
				Functions: []string{"my_fb"},
			},
		},
	}))
	open(t, c, docURI, "x:=my_fb(y);")

	edits := format(t, c, docURI, protocol.FormattingOptions{})
	require.Len(t, edits, 1)
	require.Equal(t, "x := MY_FB(y);", edits[0].NewText)
}

func TestServer_DidChange(t *testing.T) {
	t.Parallel()

	s := NewServer(nil)
	c := newClient(t, s)
	open(t, c, docURI, "a:=1;\n")

	err := c.Notify(context.Background(), "textDocument/didChange", protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: docURI},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: "a:=1;\n"},
			{Text: "b:=2;\n"},
		},
	})
	require.NoError(t, err)

	edits := format(t, c, docURI, protocol.FormattingOptions{})
	require.Len(t, edits, 1)
	require.Equal(t, "b := 2;\n", edits[0].NewText)

	text, ok := s.Document(docURI)
	require.True(t, ok)
	require.Equal(t, "b:=2;\n", text)
}

func TestServer_NotVisible(t *testing.T) {
	t.Parallel()

	c := newClient(t, NewServer(nil))

	// Never opened.
	require.Empty(t, format(t, c, docURI, protocol.FormattingOptions{}))

	// Opened then closed.
	open(t, c, docURI, "a:=1;\n")
	err := c.Notify(context.Background(), "textDocument/didClose", protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
	})
	require.NoError(t, err)
	require.Empty(t, format(t, c, docURI, protocol.FormattingOptions{}))
}

func TestServer_MissingParams(t *testing.T) {
	t.Parallel()

	c := newClient(t, NewServer(nil))

	_, err := c.Call(context.Background(), "textDocument/formatting", nil)
	var rpcErr *jrpc2.Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, jrpc2.InvalidParams, rpcErr.Code)
}

func TestServer_Shutdown(t *testing.T) {
	t.Parallel()

	s := NewServer(nil)
	exited := make(chan struct{})
	s.exit = func() { close(exited) }
	c := newClient(t, s)
	open(t, c, docURI, "a:=1;\n")

	_, err := c.Call(context.Background(), "shutdown", nil)
	require.NoError(t, err)

	_, ok := s.Document(docURI)
	require.False(t, ok)

	_, err = c.Call(context.Background(), "textDocument/formatting", protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
	})
	var rpcErr *jrpc2.Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, jrpc2.InvalidRequest, rpcErr.Code)

	require.NoError(t, c.Notify(context.Background(), "exit", nil))
	<-exited
}

func Test_indentFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     protocol.FormattingOptions
		expected string
	}{
		{
			name:     "spaces",
			opts:     protocol.FormattingOptions{InsertSpaces: true, TabSize: 4},
			expected: "    ",
		},
		{
			name:     "tabs",
			opts:     protocol.FormattingOptions{TabSize: 4},
			expected: "\t",
		},
		{
			name:     "unset",
			opts:     protocol.FormattingOptions{},
			expected: "--",
		},
		{
			name:     "spaces without size",
			opts:     protocol.FormattingOptions{InsertSpaces: true},
			expected: "--",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, indentFor(test.opts, "--")); diff != "" {
				t.Fatalf("indentFor (-want, +got):\n%s", diff)
			}
		})
	}
}
