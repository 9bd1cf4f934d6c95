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

package literal

import (
	"sort"
	"strings"
)

// Kind is the kind of a document segment.
type Kind int

const (
	// Plain is code that may be rewritten.
	Plain Kind = iota

	// String is a quoted string or character literal.
	String

	// ParenComment is a (* ... *) comment.
	ParenComment

	// SlashComment is a /* ... */ comment.
	SlashComment

	// LineComment is a // comment. It does not include the line break or
	// trailing blanks.
	LineComment

	// Pragma is a { ... } pragma.
	Pragma

	// Typed is a typed date/time literal such as T#1h30m or DATE#2024-01-15.
	Typed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case String:
		return "string"
	case ParenComment:
		return "paren comment"
	case SlashComment:
		return "slash comment"
	case LineComment:
		return "line comment"
	case Pragma:
		return "pragma"
	case Typed:
		return "typed"
	default:
		return "unknown"
	}
}

// IsComment reports whether k is one of the comment kinds.
func (k Kind) IsComment() bool {
	return k == ParenComment || k == SlashComment || k == LineComment
}

// Span is a protected byte range [Start, End) of a document.
type Span struct {
	Kind  Kind
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Spans is an ordered list of non-overlapping spans.
type Spans []Span

// Scan returns the protected spans of text. Unterminated literals extend to
// the end of text. If text cannot be scanned, the rest of it is treated as one
// unterminated string.
func Scan(text string) Spans {
	s := newScanner(strings.NewReader(text), len(text)+1)

	var spans Spans
	for s.Scan() {
		seg := s.Segment()
		if seg.Kind == Plain {
			continue
		}
		spans = append(spans, Span{
			Kind:  seg.Kind,
			Start: seg.Offset,
			End:   seg.Offset + len(seg.Text),
		})
	}
	if s.Err() != nil && s.offset < len(text) {
		spans = append(spans, Span{
			Kind:  String,
			Start: s.offset,
			End:   len(text),
		})
	}
	return spans
}

// At returns the span that contains byte offset i.
func (s Spans) At(i int) (Span, bool) {
	j := sort.Search(len(s), func(j int) bool {
		return s[j].End > i
	})
	if j < len(s) && s[j].Start <= i {
		return s[j], true
	}
	return Span{}, false
}

// Protected reports whether byte offset i is inside a span.
func (s Spans) Protected(i int) bool {
	_, ok := s.At(i)
	return ok
}
