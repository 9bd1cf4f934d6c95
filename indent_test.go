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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_classify(t *testing.T) {
	t.Parallel()

	tests := map[string]LineKind{
		"(* c *)":              LineComment,
		"// c":                 LineComment,
		"/* c */":              LineComment,
		"IF a THEN":            LineOpener,
		"CASE x OF":            LineOpener,
		"WHILE x DO":           LineOpener,
		"VAR":                  LineOpener,
		"VAR_INPUT":            LineOpener,
		"VAR CONSTANT":         LineOpener,
		"IF a THEN b; END_IF;": LineOther,
		"END_IF;":              LineCloser,
		"END_VAR":              LineCloser,
		"END_CASE;":            LineCloser,
		"ELSE":                 LineBranch,
		"ELSIF a THEN":         LineBranch,
		"ELSE x := 1; END_IF;": LineCloser,
		"ELSE y := 2; END_IF;": LineCloser,
		"1:":                   LineCaseLabel,
		"1, 2:":                LineCaseLabel,
		"1..5: x := 1;":        LineCaseLabel,
		"-1:":                  LineCaseLabel,
		"10: (* c *)":          LineCaseLabel,
		"x := 1;":              LineOther,
		"x := 'IF';":           LineOther,
		"x := 1; (* IF *)":     LineOther,
		"x1: INT;":             LineOther,
		"FOR i := 1 TO 10 DO":  LineOther,
		"END_PROGRAM":          LineOther,
	}

	for line, want := range tests {
		if got := classify(line); got != want {
			t.Errorf("classify(%q) = %v, want %v", line, got, want)
		}
	}
}

func Test_depthTracker(t *testing.T) {
	t.Parallel()

	kinds := []LineKind{
		LineCloser,
		LineBranch,
		LineOpener,
		LineCaseLabel,
		LineOther,
		LineCloser,
		LineCloser,
		LineComment,
	}

	var d depthTracker
	var got []int
	for _, k := range kinds {
		n := d.next(k)
		if n < 0 || d.depth < 0 {
			t.Fatalf("negative depth after %v: %d, %d", k, n, d.depth)
		}
		got = append(got, n)
	}

	want := []int{0, 0, 0, 0, 1, 0, 0, 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("depths (-want, +got):\n%s", diff)
	}
}

func Test_indent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		unit     string
		input    string
		expected string
	}{
		{
			name: "blocks",
			unit: "\t",
			input: strings.Join([]string{
				"PROGRAM main",
				"VAR",
				"x: INT;",
				"END_VAR",
				"IF x > 0 THEN",
				"x := 1;",
				"ELSIF x < 0 THEN",
				"x := 2;",
				"ELSE",
				"x := 3;",
				"END_IF;",
				"CASE x OF",
				"1:",
				"x := 4;",
				"2: x := 5;",
				"END_CASE;",
				"END_PROGRAM",
			}, "\n"),
			expected: strings.Join([]string{
				"PROGRAM main",
				"VAR",
				"\tx: INT;",
				"END_VAR",
				"IF x > 0 THEN",
				"\tx := 1;",
				"ELSIF x < 0 THEN",
				"\tx := 2;",
				"ELSE",
				"\tx := 3;",
				"END_IF;",
				"CASE x OF",
				"1:",
				"\tx := 4;",
				"2: x := 5;",
				"END_CASE;",
				"END_PROGRAM",
			}, "\n"),
		},
		{
			name:     "existing indentation",
			unit:     "\t",
			input:    "IF a THEN\n        x;\n   END_IF;",
			expected: "IF a THEN\n\tx;\nEND_IF;",
		},
		{
			name:     "comment continuation",
			unit:     "\t",
			input:    "(* a\n     b *)\nx;",
			expected: "(* a\n     b *)\nx;",
		},
		{
			name:     "unmatched closer",
			unit:     "\t",
			input:    "END_IF;\nx;",
			expected: "END_IF;\nx;",
		},
		{
			name:     "empty lines",
			unit:     "\t",
			input:    "IF a THEN\n\n  x;\nEND_IF;\n",
			expected: "IF a THEN\n\n\tx;\nEND_IF;\n",
		},
		{
			name:     "spaces",
			unit:     "    ",
			input:    "WHILE a DO\nIF b THEN\nx;\nEND_IF;\nEND_WHILE;",
			expected: "WHILE a DO\n    IF b THEN\n        x;\n    END_IF;\nEND_WHILE;",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, indent(test.unit)(test.input)); diff != "" {
				t.Errorf("indent (-want, +got):\n%s", diff)
			}
		})
	}
}
