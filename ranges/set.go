// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package ranges

import (
	"fmt"
	"strings"

	"github.com/google/btree"
)

type span[K any] struct {
	begin K
	end   K
}

// Set is a half-open interval set: every marked range unions into the set and
// overlapping or touching spans always merge, so the stored spans are pairwise
// disjoint with gaps between them. Not safe for concurrent use.
type Set[K any] struct {
	cmp  func(a, b K) int
	tree *btree.BTreeG[span[K]]
}

// NewSet returns an empty interval set over a total order on keys.
func NewSet[K any](cmp func(a, b K) int) *Set[K] {
	return &Set[K]{
		cmp:  cmp,
		tree: btree.NewG(32, func(a, b span[K]) bool { return cmp(a.begin, b.begin) < 0 }),
	}
}

// Mark unions [begin, end) into the set.
func (s *Set[K]) Mark(begin, end K) error {
	if s.cmp(begin, end) >= 0 {
		return fmt.Errorf("%w: mark of [%v, %v)", ErrInvalidRange, begin, end)
	}
	lo, hi := begin, end
	pivot := span[K]{begin: begin, end: end}
	var victims []span[K]
	// the nearest span starting strictly before may reach into the new one
	s.tree.DescendLessOrEqual(pivot, func(it span[K]) bool {
		if s.cmp(it.begin, begin) >= 0 {
			return true // the span at begin itself is picked up below
		}
		if s.cmp(it.end, begin) >= 0 {
			lo = it.begin
			if s.cmp(it.end, hi) > 0 {
				hi = it.end
			}
			victims = append(victims, it)
		}
		return false
	})
	// every span starting inside (or touching the end of) the merged range folds in
	s.tree.AscendGreaterOrEqual(pivot, func(it span[K]) bool {
		if s.cmp(it.begin, hi) > 0 {
			return false
		}
		if s.cmp(it.end, hi) > 0 {
			hi = it.end
		}
		victims = append(victims, it)
		return true
	})
	for _, v := range victims {
		s.tree.Delete(v)
	}
	s.tree.ReplaceOrInsert(span[K]{begin: lo, end: hi})
	return nil
}

// Bounds returns the least begin and greatest end across all spans;
// ok is false when the set is empty.
func (s *Set[K]) Bounds() (begin, end K, ok bool) {
	min, ok := s.tree.Min()
	if !ok {
		var zero K
		return zero, zero, false
	}
	// spans are disjoint, so the greatest end belongs to the last span
	max, _ := s.tree.Max()
	return min.begin, max.end, true
}

// Len returns the number of disjoint spans.
func (s *Set[K]) Len() int { return s.tree.Len() }

// Clear removes all spans.
func (s *Set[K]) Clear() { s.tree.Clear(false) }

// Ascend walks the spans in ascending begin order until yield returns false.
func (s *Set[K]) Ascend(yield func(begin, end K) bool) {
	s.tree.Ascend(func(it span[K]) bool { return yield(it.begin, it.end) })
}

// String renders the spans for debugging, one bracketed interval each.
func (s *Set[K]) String() string {
	if s.tree.Len() == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	first := true
	s.tree.Ascend(func(it span[K]) bool {
		if !first {
			b.WriteString(") [")
		}
		fmt.Fprintf(&b, "%v..%v", it.begin, it.end)
		first = false
		return true
	})
	b.WriteByte(')')
	return b.String()
}
