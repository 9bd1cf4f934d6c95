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

// Package literal finds the parts of a structured text document that must not
// be rewritten by a formatter: string literals, comments, pragmas and typed
// date/time literals.
//
// Scan returns the protected spans of a document in order.
//
//	spans := literal.Scan(src)
//	if sp, ok := spans.At(i); ok {
//		// src[i] is inside sp.
//	}
//
// Scanner walks a document as a sequence of plain and protected segments.
//
//	s := literal.NewScanner(r)
//	for s.Scan() {
//		seg := s.Segment()
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
package literal
