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

// LineKind is the indentation class of a line.
type LineKind int

const (
	// LineOther is a line that does not change the depth.
	LineOther LineKind = iota

	// LineComment is a line that starts with a comment.
	LineComment

	// LineOpener is a line that opens a block.
	LineOpener

	// LineBranch is an ELSIF or ELSE line.
	LineBranch

	// LineCaseLabel is a line that starts with an integer CASE label.
	LineCaseLabel

	// LineCloser is a line that closes a block.
	LineCloser
)

// String returns the name of the line kind.
func (k LineKind) String() string {
	switch k {
	case LineOther:
		return "other"
	case LineComment:
		return "comment"
	case LineOpener:
		return "opener"
	case LineBranch:
		return "branch"
	case LineCaseLabel:
		return "case label"
	case LineCloser:
		return "closer"
	default:
		return "unknown"
	}
}

var (
	openerPattern    = regexp.MustCompile(`\b(?:IF|CASE|WHILE|VAR(?:_[A-Z_]+)?)\b`)
	branchPattern    = regexp.MustCompile(`\b(?:ELSIF|ELSE)\b`)
	closerPattern    = regexp.MustCompile(`\b(?:END_IF|END_CASE|END_WHILE|END_VAR)\b`)
	caseLabelPattern = regexp.MustCompile(`^[+-]?\d+(?:\s*(?:,|\.\.)\s*[+-]?\d+)*\s*:(?:[^=]|$)`)
)

// classify returns the kind of a trimmed line. The result depends only on the
// line's own text; literals and comments inside the line are ignored.
func classify(line string) LineKind {
	if strings.HasPrefix(line, "(*") || strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "//") {
		return LineComment
	}

	code := stripSpans(line)
	closer := closerPattern.MatchString(code)
	switch {
	case openerPattern.MatchString(code):
		if closer {
			// The block opens and closes on the same line.
			return LineOther
		}
		return LineOpener
	case closer:
		return LineCloser
	case branchPattern.MatchString(code):
		return LineBranch
	case caseLabelPattern.MatchString(code):
		return LineCaseLabel
	default:
		return LineOther
	}
}

// stripSpans replaces every protected span of line with a space.
func stripSpans(line string) string {
	spans := literal.Scan(line)
	if len(spans) == 0 {
		return line
	}

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		b.WriteString(line[pos:sp.Start])
		b.WriteByte(' ')
		pos = sp.End
	}
	b.WriteString(line[pos:])
	return b.String()
}

// depthTracker holds the block depth while lines are indented.
type depthTracker struct {
	depth int
}

// next returns the depth to indent a line of kind k at and updates the depth
// for the following lines. The depth never goes below zero.
func (d *depthTracker) next(k LineKind) int {
	switch k {
	case LineOpener:
		n := d.depth
		d.depth++
		return n
	case LineBranch, LineCaseLabel:
		return max(d.depth-1, 0)
	case LineCloser:
		if d.depth > 0 {
			d.depth--
		}
		return d.depth
	default:
		return d.depth
	}
}

// indent re-indents every line by block depth using unit for each level.
// Lines that start inside a protected span are left as is.
func indent(unit string) func(string) string {
	return func(text string) string {
		spans := literal.Scan(text)
		var d depthTracker

		var b strings.Builder
		b.Grow(len(text) + len(text)/4)
		for start := 0; start <= len(text); {
			end := strings.IndexByte(text[start:], '\n')
			if end < 0 {
				end = len(text)
			} else {
				end += start
			}

			if sp, ok := spans.At(start); ok && sp.Start < start {
				b.WriteString(text[start:end])
			} else {
				ls, le := start, end
				for ls < le && isBlank(text[ls]) {
					ls++
				}
				for le > ls && isBlank(text[le-1]) && !spans.Protected(le-1) {
					le--
				}
				if line := text[ls:le]; line != "" {
					b.WriteString(strings.Repeat(unit, d.next(classify(line))))
					b.WriteString(line)
				}
			}

			if end == len(text) {
				break
			}
			b.WriteByte('\n')
			start = end + 1
		}
		return b.String()
	}
}
