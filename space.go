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

	"github.com/ianlewis/go-stfmt/internal/folding"
	"github.com/ianlewis/go-stfmt/literal"
	"github.com/ianlewis/go-stfmt/vocab"
)

var (
	blankFolder = folding.WhitespaceFolder{
		Space:     folding.IsBlank,
		KeepEdges: true,
	}

	callPattern          = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*[ \t]+\(`)
	keywordParenPattern  = regexp.MustCompile(`\b(IF|ELSIF|WHILE|CASE)\(`)
	clauseKeywordPattern = regexp.MustCompile(`\)(THEN|DO|OF)\b`)
	trailingBlankPattern = regexp.MustCompile(`[ \t]+\n`)
)

// operatorKeywords are words after which a sign is unary.
var operatorKeywords = map[string]bool{
	"AND":      true,
	"AND_THEN": true,
	"OR":       true,
	"OR_ELSE":  true,
	"XOR":      true,
	"NOT":      true,
	"MOD":      true,
	"IF":       true,
	"ELSIF":    true,
	"THEN":     true,
	"ELSE":     true,
	"WHILE":    true,
	"DO":       true,
	"CASE":     true,
	"OF":       true,
	"TO":       true,
	"BY":       true,
	"UNTIL":    true,
	"RETURN":   true,
}

// spaceStages returns the whitespace normalization passes in order.
func spaceStages(set *vocab.Set) []stage {
	return []stage{
		{name: "fold blanks", fn: foldBlanks},
		{name: "join calls", fn: joinCalls(set)},
		{name: "space keyword parens", fn: replacePlain(keywordParenPattern, "${1} (")},
		{name: "space clause keywords", fn: replacePlain(clauseKeywordPattern, ") ${1}")},
		{name: "pad comments", fn: padComments},
		{name: "space operators", fn: spaceOperators},
		{name: "trim lines", fn: trimLines},
		{name: "tidy colons", fn: tidyColons},
	}
}

// foldBlanks replaces every run of spaces and tabs with one space.
func foldBlanks(text string) string {
	return mapPlain(text, literal.Scan(text), func(s string, _ bool) string {
		return blankFolder.String(s)
	})
}

// joinCalls removes blanks between a function name and its argument list.
func joinCalls(set *vocab.Set) func(string) string {
	return func(text string) string {
		return mapPlain(text, literal.Scan(text), func(s string, _ bool) string {
			return callPattern.ReplaceAllStringFunc(s, func(m string) string {
				name := strings.TrimRight(m[:len(m)-1], " \t")
				if set.IsReserved(name) || !set.IsFunction(name) {
					return m
				}
				return name + "("
			})
		})
	}
}

func replacePlain(re *regexp.Regexp, repl string) func(string) string {
	return func(text string) string {
		return mapPlain(text, literal.Scan(text), func(s string, _ bool) string {
			return re.ReplaceAllString(s, repl)
		})
	}
}

// padComments separates comment delimiters from the comment body and from
// code preceding the comment on the same line. The body itself is unchanged.
func padComments(text string) string {
	spans := literal.Scan(text)
	w := newWriter(len(text))

	pos := 0
	for _, sp := range spans {
		_, _ = w.WriteString(text[pos:sp.Start])
		pos = sp.End

		c := text[sp.Start:sp.End]
		if !sp.Kind.IsComment() {
			_, _ = w.WriteString(c)
			continue
		}
		w.Space()
		_, _ = w.WriteString(padComment(sp.Kind, c))
	}
	_, _ = w.WriteString(text[pos:])

	return w.String()
}

func padComment(k literal.Kind, c string) string {
	mark := byte('*')
	closer := "*)"
	switch k {
	case literal.SlashComment:
		closer = "*/"
	case literal.LineComment:
		mark = '/'
		closer = ""
	}

	body := c[2:]
	end := ""
	if closer != "" && len(c) >= 4 && strings.HasSuffix(c, closer) {
		body = c[2 : len(c)-2]
		end = closer
	}
	if body == "" {
		return c
	}

	var b strings.Builder
	b.WriteString(c[:2])
	if !isSpace(body[0]) && body[0] != mark {
		b.WriteByte(' ')
	}
	b.WriteString(body)
	if end != "" {
		if last := body[len(body)-1]; !isSpace(last) && last != '*' {
			b.WriteByte(' ')
		}
		b.WriteString(end)
	}
	return b.String()
}

// spaceOperators puts one space around binary operators and one space after
// commas and colons.
func spaceOperators(text string) string {
	spans := literal.Scan(text)
	cur := cursor{spans: spans}
	w := newWriter(len(text))

	for i := 0; i < len(text); {
		if sp, ok := cur.At(i); ok {
			_, _ = w.WriteString(text[sp.Start:sp.End])
			i = sp.End
			continue
		}

		if op := pairAt(text, i); op != "" {
			w.Space()
			_, _ = w.WriteString(op)
			i += len(op)
			spaceAfter(w, text, i)
			continue
		}

		c := text[i]
		switch c {
		case '*':
			if strings.HasPrefix(text[i:], "**") {
				_, _ = w.WriteString("**")
				i += 2
				continue
			}
			if i+1 < len(text) && strings.IndexByte(";],", text[i+1]) >= 0 || w.Last() == '[' {
				_ = w.WriteByte(c)
				i++
				continue
			}
		case '+', '-':
			if isExponent(w.buf) && i+1 < len(text) && isDigit(text[i+1]) {
				_ = w.WriteByte(c)
				i++
				continue
			}
			if unary, afterWord := signKind(text, i, spans); unary {
				if afterWord {
					w.Space()
				}
				_ = w.WriteByte(c)
				i++
				for i < len(text) && isBlank(text[i]) {
					i++
				}
				continue
			}
		case '/', '=', '<', '>':
		case ',', ':':
			_ = w.WriteByte(c)
			i++
			spaceAfter(w, text, i)
			continue
		default:
			_ = w.WriteByte(c)
			i++
			continue
		}

		// Binary operator.
		w.Space()
		_ = w.WriteByte(c)
		i++
		spaceAfter(w, text, i)
	}

	return w.String()
}

// pairAt returns the two character operator at text[i:].
func pairAt(text string, i int) string {
	if i+2 > len(text) {
		return ""
	}
	switch op := text[i : i+2]; op {
	case ":=", "<>", ">=", "<=", "=>":
		return op
	}
	return ""
}

// spaceAfter writes a space unless text[i] is whitespace or the end of text.
func spaceAfter(w *writer, text string, i int) {
	if i < len(text) && !isSpace(text[i]) {
		_ = w.WriteByte(' ')
	}
}

// signKind reports whether the sign at text[i] is unary, and whether it
// directly follows a keyword. The sign is classified by the last significant
// byte before it, looking back across line breaks and comments, so that a
// sign keeps its kind when its line is joined to the previous one.
func signKind(text string, i int, spans literal.Spans) (bool, bool) {
	j := prevSignificant(text, i, spans)
	if j < 0 {
		return true, false
	}

	prev := text[j]
	switch {
	case isIdent(prev):
		if _, ok := spans.At(j); ok {
			// Typed literal.
			return false, false
		}
		start := j
		for start > 0 && isIdent(text[start-1]) {
			start--
		}
		if operatorKeywords[strings.ToUpper(text[start:j+1])] {
			return true, true
		}
		return false, false
	case prev == ')', prev == ']', prev == '\'', prev == '"', prev == '^':
		return false, false
	}
	return true, false
}

// prevSignificant returns the offset of the last byte before i that is not
// whitespace and not part of a comment. It returns -1 if there is none.
func prevSignificant(text string, i int, spans literal.Spans) int {
	for j := i - 1; j >= 0; j-- {
		if isSpace(text[j]) {
			continue
		}
		if sp, ok := spans.At(j); ok && sp.Kind.IsComment() {
			j = sp.Start
			continue
		}
		return j
	}
	return -1
}

// isExponent reports whether b ends with the mantissa and exponent marker of
// a real literal, e.g. 1.5E.
func isExponent(b []byte) bool {
	n := len(b)
	if n < 2 || b[n-1] != 'E' && b[n-1] != 'e' {
		return false
	}
	start := n - 1
	for start > 0 && (isIdent(b[start-1]) || b[start-1] == '.') {
		start--
	}
	if start > 0 && b[start-1] == '#' {
		return false
	}
	return isDigit(b[start]) && (isDigit(b[n-2]) || b[n-2] == '.')
}

// trimLines removes trailing blanks from every line.
func trimLines(text string) string {
	return mapPlain(text, literal.Scan(text), func(s string, atEnd bool) string {
		s = trailingBlankPattern.ReplaceAllString(s, "\n")
		if atEnd {
			s = strings.TrimRight(s, " \t")
		}
		return s
	})
}

// tidyColons removes whitespace before a colon that is not an assignment and
// drops trailing blank lines after a final semicolon. The line break that
// ends a line comment is kept.
func tidyColons(text string) string {
	spans := literal.Scan(text)
	if strings.Contains(text, ":") {
		w := newWriter(len(text))
		// Whitespace is never trimmed below floor.
		floor := 0
		lineComment := false
		tidy := func(s string) {
			for i := range len(s) {
				if s[i] == ':' && (i+1 == len(s) || s[i+1] != '=') {
					w.TrimSpace(floor)
				}
				_ = w.WriteByte(s[i])
				if s[i] == '\n' && lineComment {
					floor = len(w.buf)
					lineComment = false
				}
			}
		}
		pos := 0
		for _, sp := range spans {
			tidy(text[pos:sp.Start])
			_, _ = w.WriteString(text[sp.Start:sp.End])
			lineComment = sp.Kind == literal.LineComment
			pos = sp.End
		}
		tidy(text[pos:])
		text = w.String()
		spans = literal.Scan(text)
	}

	trimmed := strings.TrimRight(text, " \t\r\n")
	if len(trimmed) == len(text) || !strings.HasSuffix(trimmed, ";") || !strings.HasSuffix(text, "\n") {
		return text
	}
	if spans.Protected(len(trimmed) - 1) {
		return text
	}
	return trimmed + "\n"
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
