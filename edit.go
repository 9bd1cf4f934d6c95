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
	"math"
	"strings"
	"unicode/utf16"

	"fortio.org/safecast"
	"go.lsp.dev/protocol"
)

// Edits returns the edits that format a document. If the document is not
// visible no edits are returned. Otherwise a single edit replaces the whole
// document, even when formatting does not change it.
func (f *Formatter) Edits(text string, visible bool) []protocol.TextEdit {
	if !visible {
		return nil
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   EndPosition(text),
			},
			NewText: f.Format(text),
		},
	}
}

// EndPosition returns the position of the end of text. The character offset
// is counted in UTF-16 code units. Positions that do not fit in a uint32 are
// clamped.
func EndPosition(text string) protocol.Position {
	line := strings.Count(text, "\n")
	last := text[strings.LastIndexByte(text, '\n')+1:]

	character := 0
	for _, r := range last {
		// Invalid UTF-8 decodes as utf8.RuneError, which is one code unit.
		character += utf16.RuneLen(r)
	}

	return protocol.Position{
		Line:      clamp(line),
		Character: clamp(character),
	}
}

func clamp(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return v
}
