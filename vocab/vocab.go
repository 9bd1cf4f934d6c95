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

package vocab

import (
	"regexp"
	"slices"
	"strings"

	"github.com/ianlewis/go-stfmt/internal/index"
)

// Category is a vocabulary category.
type Category int

const (
	// Functions are standard functions and function blocks. They are only
	// recognized when called.
	Functions Category = iota

	// Keywords are reserved words, operators and VAR section names.
	Keywords

	// Types are elementary data type names.
	Types

	// Blocks are structural keywords that pair with an END_ closer, e.g. IF
	// and END_IF.
	Blocks
)

// Categories lists every category in table order.
var Categories = []Category{Functions, Keywords, Types, Blocks}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Functions:
		return "functions"
	case Keywords:
		return "keywords"
	case Types:
		return "types"
	case Blocks:
		return "blocks"
	default:
		return "unknown"
	}
}

// Extra holds literal names added to the built-in tables.
type Extra struct {
	Functions []string
	Keywords  []string
	Types     []string
	Blocks    []string
}

func (e *Extra) get(c Category) []string {
	if e == nil {
		return nil
	}
	switch c {
	case Functions:
		return e.Functions
	case Keywords:
		return e.Keywords
	case Types:
		return e.Types
	case Blocks:
		return e.Blocks
	default:
		return nil
	}
}

// table is the vocabulary for one category.
type table struct {
	names    *index.Index
	patterns []string

	// pattern matches a whole identifier against every pattern. It is nil
	// when the table has no patterns.
	pattern *regexp.Regexp
}

func newTable(names, patterns []string) *table {
	t := &table{
		names:    index.NewIndex(names),
		patterns: patterns,
	}
	if len(patterns) > 0 {
		t.pattern = regexp.MustCompile(`(?i)^(?:` + strings.Join(patterns, "|") + `)$`)
	}
	return t
}

func (t *table) match(word string) bool {
	if t.names.Contains(word) {
		return true
	}
	return t.pattern != nil && t.pattern.MatchString(word)
}

// Set is an immutable vocabulary. A Set is safe for concurrent use.
type Set struct {
	tables map[Category]*table
}

// New builds a Set from the built-in tables plus the extra names.
func New(extra *Extra) *Set {
	builtin := map[Category]func() []string{
		Functions: functionNames,
		Keywords:  keywordNames,
		Types:     typeNames,
		Blocks:    blockNames,
	}

	s := &Set{
		tables: make(map[Category]*table, len(Categories)),
	}
	for _, c := range Categories {
		names := append(builtin[c](), extra.get(c)...)
		var patterns []string
		if c == Functions {
			patterns = functionPatterns()
		}
		s.tables[c] = newTable(names, patterns)
	}
	return s
}

// Match reports whether word is a whole entry of the category. Case is
// ignored.
func (s *Set) Match(c Category, word string) bool {
	t, ok := s.tables[c]
	if !ok {
		return false
	}
	return t.match(word)
}

// IsFunction reports whether word names a function.
func (s *Set) IsFunction(word string) bool {
	return s.Match(Functions, word)
}

// IsReserved reports whether word is a type, a keyword or a block keyword,
// optionally with an END_ prefix.
func (s *Set) IsReserved(word string) bool {
	if s.Match(Types, word) || s.Match(Keywords, word) || s.Match(Blocks, word) {
		return true
	}
	upper := strings.ToUpper(word)
	if name, ok := strings.CutPrefix(upper, "END_"); ok {
		return s.Match(Blocks, name)
	}
	return false
}

// Entries returns the category's literal names in sorted upper case followed
// by its patterns.
func (s *Set) Entries(c Category) []string {
	t, ok := s.tables[c]
	if !ok {
		return nil
	}
	return append(t.names.Names(), slices.Clone(t.patterns)...)
}
