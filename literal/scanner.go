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
	"bufio"
	"bytes"
	"io"
	"strings"
)

// MaxSegmentSize is the largest protected segment the Scanner can hold.
const MaxSegmentSize = 1 << 30

// typedPrefixes are the type prefixes of date and time literals.
var typedPrefixes = map[string]bool{
	"T":             true,
	"TIME":          true,
	"LT":            true,
	"LTIME":         true,
	"D":             true,
	"DATE":          true,
	"LD":            true,
	"TOD":           true,
	"TIME_OF_DAY":   true,
	"LTOD":          true,
	"DT":            true,
	"DATE_AND_TIME": true,
	"LDT":           true,
}

// Segment is a run of a document that is either plain code or a single
// protected literal.
type Segment struct {
	Kind Kind

	// Offset is the byte offset of the segment in the document.
	Offset int

	Text string
}

// Scanner splits a document into segments from start to end.
type Scanner struct {
	s *bufio.Scanner

	// kind is the kind of the last token returned by split.
	kind Kind

	// prev is the last byte of the last token returned by split.
	prev byte

	// offset is the document offset after the current segment.
	offset int

	seg Segment
}

// NewScanner returns a new Scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	return newScanner(r, 4096)
}

func newScanner(r io.Reader, size int) *Scanner {
	s := &Scanner{
		s: bufio.NewScanner(r),
	}
	s.s.Buffer(make([]byte, 0, min(size, MaxSegmentSize)), MaxSegmentSize)
	s.s.Split(s.split)
	return s
}

// Scan advances the Scanner to the next segment. It returns false if the scan
// stops either by reaching the end of the document or an error.
func (s *Scanner) Scan() bool {
	if !s.s.Scan() {
		return false
	}
	b := s.s.Bytes()
	s.seg = Segment{
		Kind:   s.kind,
		Offset: s.offset,
		Text:   string(b),
	}
	s.offset += len(b)
	return true
}

// Segment returns the current segment.
func (s *Scanner) Segment() Segment {
	return s.seg
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// split returns either a plain run or one protected literal.
func (s *Scanner) split(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	for i := range data {
		if !canOpen(data[i]) {
			continue
		}
		prev := s.prev
		if i > 0 {
			prev = data[i-1]
		}
		k, n, more := match(data[i:], prev, atEOF)
		switch {
		case (more || n > 0) && i > 0:
			return s.token(Plain, data[:i])
		case more:
			// Request more data.
			return 0, nil, nil
		case n > 0:
			return s.token(k, data[:n])
		}
	}

	return s.token(Plain, data)
}

func (s *Scanner) token(k Kind, tok []byte) (int, []byte, error) {
	s.kind = k
	s.prev = tok[len(tok)-1]
	return len(tok), tok, nil
}

func canOpen(c byte) bool {
	return c == '\'' || c == '"' || c == '(' || c == '/' || c == '{' || isLetter(c)
}

// match returns the kind and length of the protected literal at the start of
// data. n is zero when data does not start with one. more is true when data
// ends before the literal can be decided.
func match(data []byte, prev byte, atEOF bool) (Kind, int, bool) {
	switch data[0] {
	case '\'', '"':
		return matchString(data, atEOF)
	case '(':
		return matchDelimited(data, '*', "*)", ParenComment, atEOF)
	case '{':
		return closeAt(data, 1, "}", Pragma, atEOF)
	case '/':
		if len(data) < 2 {
			return Plain, 0, !atEOF
		}
		if data[1] == '/' {
			return matchLineComment(data, atEOF)
		}
		return matchDelimited(data, '*', "*/", SlashComment, atEOF)
	default:
		if isIdent(prev) {
			return Plain, 0, false
		}
		return matchTyped(data, atEOF)
	}
}

func matchString(data []byte, atEOF bool) (Kind, int, bool) {
	q := data[0]
	for j := 1; j < len(data); j++ {
		switch data[j] {
		case '\\', '$':
			// Escapes never terminate the string.
			j++
		case q:
			return String, j + 1, false
		}
	}
	if !atEOF {
		return Plain, 0, true
	}
	return String, len(data), false
}

// matchDelimited matches a comment that opens with data[0] followed by second
// and closes with closer.
func matchDelimited(data []byte, second byte, closer string, k Kind, atEOF bool) (Kind, int, bool) {
	if len(data) < 2 {
		return Plain, 0, !atEOF
	}
	if data[1] != second {
		return Plain, 0, false
	}
	return closeAt(data, 2, closer, k, atEOF)
}

// closeAt finds closer in data starting at offset from.
func closeAt(data []byte, from int, closer string, k Kind, atEOF bool) (Kind, int, bool) {
	if i := bytes.Index(data[from:], []byte(closer)); i >= 0 {
		return k, from + i + len(closer), false
	}
	if !atEOF {
		return Plain, 0, true
	}
	return k, len(data), false
}

func matchLineComment(data []byte, atEOF bool) (Kind, int, bool) {
	end := bytes.IndexByte(data, '\n')
	if end < 0 {
		if !atEOF {
			return Plain, 0, true
		}
		end = len(data)
	}
	for end > 2 && isBlank(data[end-1]) {
		end--
	}
	return LineComment, end, false
}

func matchTyped(data []byte, atEOF bool) (Kind, int, bool) {
	j := 0
	for j < len(data) && (isLetter(data[j]) || data[j] == '_') {
		j++
	}
	if j == len(data) {
		return Plain, 0, !atEOF
	}
	if data[j] != '#' || !typedPrefixes[strings.ToUpper(string(data[:j]))] {
		return Plain, 0, false
	}

	p := j + 1
	if p < len(data) && (data[p] == '+' || data[p] == '-') {
		p++
	}
	if p == len(data) {
		return Plain, 0, !atEOF
	}
	if !isDigit(data[p]) {
		return Plain, 0, false
	}

	for p < len(data) {
		c := data[p]
		switch {
		case isIdent(c) || c == '.' || c == ':':
			p++
			continue
		case c == '-' && p+1 < len(data) && isDigit(data[p+1]):
			p++
			continue
		case c == '-' && p+1 == len(data) && !atEOF:
			return Plain, 0, true
		}
		return Typed, p, false
	}
	if !atEOF {
		return Plain, 0, true
	}
	return Typed, p, false
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
	return c == ' ' || c == '\t' || c == '\r'
}
