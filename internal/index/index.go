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

package index

import (
	"slices"
	"sort"
	"strings"
)

// Index is a sorted set of names with case-insensitive lookup.
type Index struct {
	// names is sorted by the upper-cased name and holds no duplicates.
	names []string
}

// NewIndex creates an index from the given names. Names are folded to upper
// case; duplicates are dropped.
func NewIndex(names []string) *Index {
	sorted := make([]string, 0, len(names))
	for _, n := range names {
		sorted = append(sorted, strings.ToUpper(n))
	}
	slices.Sort(sorted)

	return &Index{
		names: slices.Compact(sorted),
	}
}

// Contains performs a binary search over the index and reports whether the
// name is present, ignoring case.
func (idx *Index) Contains(name string) bool {
	query := strings.ToUpper(name)
	_, found := sort.Find(len(idx.names), func(i int) int {
		return strings.Compare(query, idx.names[i])
	})
	return found
}

// Names returns the indexed names in sorted order.
func (idx *Index) Names() []string {
	return slices.Clone(idx.names)
}

// Len returns the number of names in the index.
func (idx *Index) Len() int {
	return len(idx.names)
}
