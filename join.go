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
	"strings"

	"github.com/ianlewis/go-stfmt/internal/folding"
	"github.com/ianlewis/go-stfmt/literal"
)

var (
	headerFolder = folding.WhitespaceFolder{}
	edgeFolder   = folding.WhitespaceFolder{KeepEdges: true}
)

// joinHeaders folds every header that starts with keyword and ends with THEN
// onto one line. Headers that reach a semicolon or a line comment before THEN
// are left as is.
func joinHeaders(keyword string) func(string) string {
	return func(text string) string {
		cur := cursor{spans: literal.Scan(text)}

		var b strings.Builder
		b.Grow(len(text))
		pos := 0
		for i := 0; i < len(text); {
			if sp, ok := cur.At(i); ok {
				i = sp.End
				continue
			}
			if !wordAt(text, i, keyword) {
				i++
				continue
			}

			end, ok := headerEnd(text, i+len(keyword), cur)
			if !ok {
				i += len(keyword)
				continue
			}
			b.WriteString(text[pos:i])
			b.WriteString(foldHeader(text[i:end]))
			pos = end
			i = end
		}
		b.WriteString(text[pos:])
		return b.String()
	}
}

// headerEnd returns the offset after the THEN that closes a header. cur is a
// copy so the caller's cursor does not move.
func headerEnd(text string, from int, cur cursor) (int, bool) {
	for j := from; j < len(text); {
		if sp, ok := cur.At(j); ok {
			if sp.Kind == literal.LineComment {
				return 0, false
			}
			j = sp.End
			continue
		}
		if text[j] == ';' {
			return 0, false
		}
		if wordAt(text, j, "THEN") {
			return j + len("THEN"), true
		}
		j++
	}
	return 0, false
}

// foldHeader folds whitespace in a header. Protected spans inside the header
// are kept as is.
func foldHeader(h string) string {
	spans := literal.Scan(h)
	if len(spans) == 0 {
		return headerFolder.String(h)
	}
	return mapPlain(h, spans, func(s string, _ bool) string {
		return edgeFolder.String(s)
	})
}
