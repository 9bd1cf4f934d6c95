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

// Package vocab holds the structured text vocabulary used to normalize
// identifier case.
//
// A vocabulary has four categories. Functions are standard function and
// function block names, and are only treated as reserved when they are
// called. Keywords, Types and Blocks are always reserved. Block names are also
// reserved with an END_ prefix.
//
//	set := vocab.New(&vocab.Extra{Functions: []string{"my_fb"}})
//	set.IsFunction("my_fb")   // true
//	set.IsReserved("end_if")  // true
package vocab
