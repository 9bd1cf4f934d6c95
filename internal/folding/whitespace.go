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

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// IsBlank reports whether r is a space or a tab.
func IsBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// WhitespaceFolder will perform whitespace folding on the input. It replaces
// all whitespace spans with a single ASCII space rune. Leading and trailing
// spans are removed unless KeepEdges is set.
//
// Invalid UTF-8 is copied to the output unchanged and treated as a
// non-whitespace character.
type WhitespaceFolder struct {
	// Space reports whether a rune is whitespace. If nil, [unicode.IsSpace]
	// is used.
	Space func(rune) bool

	// KeepEdges folds leading and trailing whitespace spans to a single space
	// instead of removing them.
	KeepEdges bool

	// notStart is true after encounting the first non-whitespace rune.
	notStart bool

	// wsSpan is true if the transformer is currently handling a whitespace span.
	wsSpan bool
}

// String folds s with a fresh copy of w's settings.
func (w *WhitespaceFolder) String(s string) string {
	f := &WhitespaceFolder{
		Space:     w.Space,
		KeepEdges: w.KeepEdges,
	}
	out, _, err := transform.String(f, s)
	if err != nil {
		// The transformer never returns an error at EOF.
		return s
	}
	return out
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	isSpace := w.Space
	if isSpace == nil {
		isSpace = unicode.IsSpace
	}

	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if c != utf8.RuneError && isSpace(c) {
			nSrc += size
			if !w.notStart && !w.KeepEdges {
				// Ignore leading whitespace.
				continue
			}
			w.wsSpan = true
			continue
		}

		if w.wsSpan {
			// Emit a single space if we are coming out of a whitespace span.
			if nDst+1 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ' '
			nDst++
			w.wsSpan = false
		}
		w.notStart = true

		// Emit the character. Invalid bytes are copied as is.
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}

	if atEOF && w.wsSpan && w.KeepEdges {
		if nDst+1 > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = ' '
		nDst++
		w.wsSpan = false
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	w.notStart = false
	w.wsSpan = false
}
