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

	"github.com/ianlewis/go-stfmt/vocab"
)

// Options are options for formatting.
type Options struct {
	// Indent is the text used for one level of indentation. If empty, a tab
	// is used.
	Indent string

	// Vocabulary holds names added to the built-in vocabulary.
	Vocabulary vocab.Extra
}

// DefaultOptions is the default options for a Formatter.
var DefaultOptions = &Options{
	Indent: "\t",
}

// Formatter formats structured text. A Formatter is safe for concurrent use.
type Formatter struct {
	indent string
	extra  vocab.Extra
}

// stage is one named pass of the pipeline.
type stage struct {
	name string
	fn   func(string) string
}

// New returns a new Formatter. If options is nil, DefaultOptions is used.
func New(options *Options) *Formatter {
	if options == nil {
		options = DefaultOptions
	}

	f := &Formatter{
		indent: options.Indent,
		extra:  options.Vocabulary,
	}
	if f.indent == "" {
		f.indent = "\t"
	}
	return f
}

// Format formats text with the default options.
func Format(text string) string {
	return New(nil).Format(text)
}

// Format returns the formatted text. CRLF line endings are kept.
func (f *Formatter) Format(text string) string {
	crlf := strings.Contains(text, "\r\n")
	if crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	for _, s := range f.stages() {
		text = s.fn(text)
	}

	if crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

// stages returns the pipeline in order. The vocabulary is built for every
// call.
func (f *Formatter) stages() []stage {
	set := vocab.New(&f.extra)

	stages := []stage{
		{name: "capitalize", fn: capitalize(set)},
	}
	stages = append(stages, spaceStages(set)...)
	return append(stages,
		stage{name: "split terminators", fn: splitTerminators},
		stage{name: "reduce blank lines", fn: reduceBlankLines},
		stage{name: "indent", fn: indent(f.indent)},
		stage{name: "join IF headers", fn: joinHeaders("IF")},
		stage{name: "join ELSIF headers", fn: joinHeaders("ELSIF")},
	)
}
