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

// Package stfmt implements a source code formatter for IEC 61131-3 structured
// text in pure Go.
//
// Formatting runs a fixed sequence of passes over the whole document:
//  1. Reserved words, typed literal prefixes and called standard functions
//     are upper-cased.
//  2. Whitespace is normalized. Runs of blanks are folded, operators are
//     surrounded by single spaces and trailing blanks are removed.
//  3. The line is broken after END_IF;, END_CASE;, END_WHILE; and END_VAR.
//     Blank lines are emptied and at most one blank line is kept in a row.
//  4. Lines are indented by block depth.
//  5. IF and ELSIF conditions that span several lines are joined onto one
//     line.
//
// String literals, comments, pragmas and typed date/time literals are never
// rewritten. Formatting is total and idempotent: every input produces an
// output, and formatting an output again returns it unchanged.
package stfmt
