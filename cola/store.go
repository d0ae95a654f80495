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

// Package cola implements an in-memory ordered store shaped as a
// cache-oblivious lookup array: a sequence of sorted runs of doubling size
// (run i holds either zero or 1<<i elements), where the set of occupied runs
// is the binary decomposition of the element count. Insertion is a binary
// counter increment that carry-merges lower runs upward; lookups binary-search
// each occupied run.
//
// Stores are not safe for concurrent use.
package cola

import (
	"sort"

	math2 "github.com/erigontech/rangedict/common/math"
)

// Address locates an element inside the store: the run it lives in and its
// offset there. Addresses are handed out by the Find probes and stay valid
// until the next mutation of the store.
type Address struct {
	run int
	idx int
}

// Store keeps elements of type T ordered by a caller-supplied comparator.
// Elements with equal ordering keys are the caller's concern: probes and
// removals pick an arbitrary one among equals.
type Store[T any] struct {
	cmp     func(a, b T) int
	runs    [][]T
	scratch [2][]T // merge buffers, reused across inserts
	count   int
}

// NewStore returns an empty store. capacity is a hint: enough runs are
// pre-allocated to hold that many elements without growing.
func NewStore[T any](capacity int, cmp func(a, b T) int) *Store[T] {
	s := &Store[T]{cmp: cmp}
	if capacity > 0 {
		s.grow(math2.Log2Floor(uint64(capacity)) + 1)
	}
	return s
}

func (s *Store[T]) grow(runs int) {
	for len(s.runs) < runs {
		s.runs = append(s.runs, make([]T, 0, 1<<len(s.runs)))
	}
}

// Len returns the number of stored elements.
func (s *Store[T]) Len() int { return s.count }

// Capacity returns how many elements the currently allocated runs can hold.
func (s *Store[T]) Capacity() int { return (1 << len(s.runs)) - 1 }

// Clear drops all elements, keeping the allocated runs for reuse.
func (s *Store[T]) Clear() {
	for i := range s.runs {
		s.runs[i] = s.runs[i][:0]
	}
	s.count = 0
}

// Insert places x, keeping every run sorted. The lowest vacant run receives
// the merge of all runs below it plus x, and those runs empty out — the same
// carry propagation as incrementing a binary counter.
func (s *Store[T]) Insert(x T) {
	target := math2.TrailingOnes(uint64(s.count))
	s.grow(target + 1)
	if target == 0 {
		s.runs[0] = append(s.runs[0][:0], x)
		s.count++
		return
	}
	cur := append(s.scratch[0][:0], x)
	next := s.scratch[1]
	for i := 0; i < target; i++ {
		next = mergeRuns(next[:0], cur, s.runs[i], s.cmp)
		s.runs[i] = s.runs[i][:0]
		cur, next = next, cur
	}
	s.runs[target] = append(s.runs[target][:0], cur...)
	s.scratch[0], s.scratch[1] = cur[:0], next[:0]
	s.count++
}

func mergeRuns[T any](dst, a, b []T, cmp func(T, T) int) []T {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if cmp(a[i], b[j]) <= 0 {
			dst = append(dst, a[i])
			i++
		} else {
			dst = append(dst, b[j])
			j++
		}
	}
	dst = append(dst, a[i:]...)
	return append(dst, b[j:]...)
}

// RemoveAt removes and returns the element at an address obtained from a Find
// probe, with no intervening mutation. The hole is refilled from the lowest
// occupied run, whose remainder redistributes across the runs below it, so run
// occupancy keeps matching the binary decomposition of the count.
func (s *Store[T]) RemoveAt(at Address) T {
	run := s.runs[at.run]
	out := run[at.idx]
	first := math2.TrailingZeros(uint64(s.count))
	if at.run == first {
		copy(run[at.idx:], run[at.idx+1:])
		s.spill(run[:len(run)-1])
		s.runs[first] = run[:0]
	} else {
		donor := s.runs[first]
		x := donor[len(donor)-1]
		n := len(run)
		copy(run[at.idx:], run[at.idx+1:])
		p := sort.Search(n-1, func(i int) bool { return s.cmp(run[i], x) > 0 })
		copy(run[p+1:n], run[p:n-1])
		run[p] = x
		s.spill(donor[:len(donor)-1])
		s.runs[first] = donor[:0]
	}
	s.count--
	return out
}

// spill distributes the 2^k-1 leftover elements of the lowest occupied run
// across runs k-1..0. Contiguous chunks of a sorted run are themselves sorted,
// so each receiving run stays valid.
func (s *Store[T]) spill(rest []T) {
	for lvl := math2.Log2Floor(uint64(len(rest)+1)) - 1; lvl >= 0; lvl-- {
		size := 1 << lvl
		s.runs[lvl] = append(s.runs[lvl][:0], rest[len(rest)-size:]...)
		rest = rest[:len(rest)-size]
	}
}

// FindPrevious returns the greatest element ordered strictly before pivot, or
// at-or-before it when orEqual, together with its address.
func (s *Store[T]) FindPrevious(pivot T, orEqual bool) (Address, T, bool) {
	var (
		at    Address
		best  T
		found bool
	)
	for lvl, run := range s.runs {
		if len(run) == 0 {
			continue
		}
		i := sort.Search(len(run), func(j int) bool {
			c := s.cmp(run[j], pivot)
			if orEqual {
				return c > 0
			}
			return c >= 0
		})
		if i == 0 {
			continue
		}
		if cand := run[i-1]; !found || s.cmp(cand, best) > 0 {
			at, best, found = Address{run: lvl, idx: i - 1}, cand, true
		}
	}
	return at, best, found
}

// FindNext returns the least element ordered strictly after pivot, or
// at-or-after it when orEqual, together with its address.
func (s *Store[T]) FindNext(pivot T, orEqual bool) (Address, T, bool) {
	var (
		at    Address
		best  T
		found bool
	)
	for lvl, run := range s.runs {
		if len(run) == 0 {
			continue
		}
		i := sort.Search(len(run), func(j int) bool {
			c := s.cmp(run[j], pivot)
			if orEqual {
				return c >= 0
			}
			return c > 0
		})
		if i == len(run) {
			continue
		}
		if cand := run[i]; !found || s.cmp(cand, best) < 0 {
			at, best, found = Address{run: lvl, idx: i}, cand, true
		}
	}
	return at, best, found
}

// Min returns the least stored element.
func (s *Store[T]) Min() (T, bool) {
	var best T
	found := false
	for _, run := range s.runs {
		if len(run) == 0 {
			continue
		}
		if !found || s.cmp(run[0], best) < 0 {
			best, found = run[0], true
		}
	}
	return best, found
}
