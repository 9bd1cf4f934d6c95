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
)

// writer accumulates formatted output.
type writer struct {
	buf []byte
}

func newWriter(size int) *writer {
	return &writer{
		buf: make([]byte, 0, size+size/8),
	}
}

func (w *writer) WriteByte(c byte) error {
	w.buf = append(w.buf, c)
	return nil
}

func (w *writer) WriteString(s string) (int, error) {
	w.buf = append(w.buf, s...)
	return len(s), nil
}

// Space writes a single space unless the output is empty or already ends with
// whitespace.
func (w *writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	switch w.buf[len(w.buf)-1] {
	case ' ', '\t', '\n':
		return
	}
	w.buf = append(w.buf, ' ')
}

// TrimSpace removes trailing whitespace, including line breaks, but never
// below offset floor.
func (w *writer) TrimSpace(floor int) {
	for len(w.buf) > floor && isSpace(w.buf[len(w.buf)-1]) {
		w.buf = w.buf[:len(w.buf)-1]
	}
}

// Last returns the last byte written or zero.
func (w *writer) Last() byte {
	if len(w.buf) == 0 {
		return 0
	}
	return w.buf[len(w.buf)-1]
}

func (w *writer) String() string {
	return string(w.buf)
}

// cursor looks up spans for offsets that only move forward.
type cursor struct {
	spans literal.Spans
	next  int
}

// At returns the span containing offset i. Offsets passed to At must not
// decrease.
func (c *cursor) At(i int) (literal.Span, bool) {
	for c.next < len(c.spans) && c.spans[c.next].End <= i {
		c.next++
	}
	if c.next < len(c.spans) && c.spans[c.next].Start <= i {
		return c.spans[c.next], true
	}
	return literal.Span{}, false
}

// mapPlain applies fn to every run of text outside the spans. atEnd is true
// for a run that ends the text.
func mapPlain(text string, spans literal.Spans, fn func(s string, atEnd bool) string) string {
	var b strings.Builder
	b.Grow(len(text))

	pos := 0
	for _, sp := range spans {
		if sp.Start > pos {
			b.WriteString(fn(text[pos:sp.Start], false))
		}
		b.WriteString(text[sp.Start:sp.End])
		pos = sp.End
	}
	if pos < len(text) {
		b.WriteString(fn(text[pos:], true))
	}
	return b.String()
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdent(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// wordAt reports whether text[i:] starts with word as a whole identifier.
func wordAt(text string, i int, word string) bool {
	if !strings.HasPrefix(text[i:], word) {
		return false
	}
	if i > 0 && isIdent(text[i-1]) {
		return false
	}
	end := i + len(word)
	return end == len(text) || !isIdent(text[end])
}
