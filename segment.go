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
	"regexp"
	"strings"

	"github.com/ianlewis/go-stfmt/literal"
)

// terminators are the block closers that end a line.
var terminators = []string{"END_IF;", "END_CASE;", "END_WHILE;", "END_VAR"}

var lineBreakRunPattern = regexp.MustCompile(`\n{3,}`)

// splitTerminators breaks the line after every block terminator that is
// followed by more code on the same line.
func splitTerminators(text string) string {
	spans := literal.Scan(text)
	cur := cursor{spans: spans}
	w := newWriter(len(text))

	for i := 0; i < len(text); {
		if sp, ok := cur.At(i); ok {
			_, _ = w.WriteString(text[sp.Start:sp.End])
			i = sp.End
			continue
		}

		t := terminatorAt(text, i)
		if t == "" {
			_ = w.WriteByte(text[i])
			i++
			continue
		}
		_, _ = w.WriteString(t)
		i += len(t)

		j := i
		for j < len(text) && isBlank(text[j]) {
			j++
		}
		if j < len(text) && text[j] == '\n' {
			continue
		}
		if sp, ok := spans.At(j); ok && sp.Start == j && sp.Kind.IsComment() {
			continue
		}
		_ = w.WriteByte('\n')
		i = j
	}

	return w.String()
}

// terminatorAt returns the terminator at text[i:].
func terminatorAt(text string, i int) string {
	if text[i] != 'E' || i > 0 && isIdent(text[i-1]) {
		return ""
	}
	for _, t := range terminators {
		if !strings.HasPrefix(text[i:], t) {
			continue
		}
		if end := i + len(t); t[len(t)-1] != ';' && end < len(text) && isIdent(text[end]) {
			continue
		}
		return t
	}
	return ""
}

// reduceBlankLines empties whitespace-only lines and then limits runs of line
// breaks to two. Line breaks inside protected spans are not changed.
func reduceBlankLines(text string) string {
	spans := literal.Scan(text)

	var b strings.Builder
	b.Grow(len(text))
	for start := 0; start <= len(text); {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}

		line := text[start:end]
		if strings.Trim(line, " \t\r") != "" || spans.Protected(start) {
			b.WriteString(line)
		}
		if end == len(text) {
			break
		}
		b.WriteByte('\n')
		start = end + 1
	}
	text = b.String()

	return mapPlain(text, literal.Scan(text), func(s string, _ bool) string {
		return lineBreakRunPattern.ReplaceAllString(s, "\n\n")
	})
}
