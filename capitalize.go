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

	"github.com/ianlewis/go-stfmt/literal"
	"github.com/ianlewis/go-stfmt/vocab"
)

// capitalize upper-cases reserved words and called functions outside
// protected spans. Typed literals get an upper-case prefix and a lower-case
// value. The output has the same length as text.
func capitalize(set *vocab.Set) func(string) string {
	return func(text string) string {
		spans := literal.Scan(text)
		cur := cursor{spans: spans}
		b := []byte(text)

		for i := 0; i < len(text); {
			if sp, ok := cur.At(i); ok {
				if sp.Kind == literal.Typed {
					foldTyped(b[sp.Start:sp.End])
				}
				i = sp.End
				continue
			}

			if !isIdent(text[i]) {
				i++
				continue
			}
			end := i
			for end < len(text) && isIdent(text[end]) {
				end++
			}
			word := text[i:end]
			if i > 0 && (text[i-1] == '.' || text[i-1] == '#') || isDigit(word[0]) {
				i = end
				continue
			}

			if set.IsReserved(word) || set.IsFunction(word) && calledAt(text, end) {
				copy(b[i:end], strings.ToUpper(word))
			}
			i = end
		}

		return string(b)
	}
}

// foldTyped upper-cases the type prefix of a typed literal and lower-cases
// its value.
func foldTyped(b []byte) {
	upper := true
	for i, c := range b {
		switch {
		case c == '#':
			upper = false
		case upper && c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case !upper && c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}
}

// calledAt reports whether text[i:] starts with optional blanks followed by
// an opening parenthesis that does not open a comment.
func calledAt(text string, i int) bool {
	for i < len(text) && isBlank(text[i]) {
		i++
	}
	if i >= len(text) || text[i] != '(' {
		return false
	}
	return i+1 == len(text) || text[i+1] != '*'
}
