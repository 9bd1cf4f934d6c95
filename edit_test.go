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

package stfmt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
)

func TestEndPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected protocol.Position
	}{
		{
			name:     "empty",
			text:     "",
			expected: protocol.Position{Line: 0, Character: 0},
		},
		{
			name:     "one line",
			text:     "abc",
			expected: protocol.Position{Line: 0, Character: 3},
		},
		{
			name:     "two lines",
			text:     "a\nbc",
			expected: protocol.Position{Line: 1, Character: 2},
		},
		{
			name:     "final line break",
			text:     "a\n",
			expected: protocol.Position{Line: 1, Character: 0},
		},
		{
			name:     "utf-16",
			text:     "x\n😀é",
			expected: protocol.Position{Line: 1, Character: 3},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, EndPosition(test.text)); diff != "" {
				t.Errorf("EndPosition(%q) (-want, +got):\n%s", test.text, diff)
			}
		})
	}
}

func TestFormatter_Edits(t *testing.T) {
	t.Parallel()

	f := New(nil)

	t.Run("not visible", func(t *testing.T) {
		t.Parallel()

		if got := f.Edits("if x then", false); got != nil {
			t.Errorf("Edits: got %v, want nil", got)
		}
	})

	t.Run("visible", func(t *testing.T) {
		t.Parallel()

		want := []protocol.TextEdit{
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 0, Character: 0},
					End:   protocol.Position{Line: 0, Character: 9},
				},
				NewText: "IF x THEN",
			},
		}
		if diff := cmp.Diff(want, f.Edits("if x then", true)); diff != "" {
			t.Errorf("Edits (-want, +got):\n%s", diff)
		}
	})

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		text := "x := 1;\n"
		want := []protocol.TextEdit{
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 0, Character: 0},
					End:   protocol.Position{Line: 1, Character: 0},
				},
				NewText: text,
			},
		}
		if diff := cmp.Diff(want, f.Edits(text, true)); diff != "" {
			t.Errorf("Edits (-want, +got):\n%s", diff)
		}
	})
}
