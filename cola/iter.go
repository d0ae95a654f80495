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

package cola

import (
	"container/heap"
)

// Iterator yields the stored elements in ascending order by merging the
// sorted runs through a min-heap of per-run cursors. Mutating the store
// invalidates the iterator.
type Iterator[T any] struct {
	h runHeap[T]
}

type runCursor[T any] struct {
	run []T
	pos int
}

type runHeap[T any] struct {
	cmp     func(a, b T) int
	cursors []runCursor[T]
}

func (h *runHeap[T]) Len() int { return len(h.cursors) }
func (h *runHeap[T]) Less(i, j int) bool {
	a, b := h.cursors[i], h.cursors[j]
	return h.cmp(a.run[a.pos], b.run[b.pos]) < 0
}
func (h *runHeap[T]) Swap(i, j int) { h.cursors[i], h.cursors[j] = h.cursors[j], h.cursors[i] }
func (h *runHeap[T]) Push(x any)    { h.cursors = append(h.cursors, x.(runCursor[T])) }
func (h *runHeap[T]) Pop() any {
	old := h.cursors
	x := old[len(old)-1]
	h.cursors = old[:len(old)-1]
	return x
}

// Iterator returns an ascending iterator over the store.
func (s *Store[T]) Iterator() *Iterator[T] {
	it := &Iterator[T]{h: runHeap[T]{cmp: s.cmp}}
	for _, run := range s.runs {
		if len(run) > 0 {
			it.h.cursors = append(it.h.cursors, runCursor[T]{run: run})
		}
	}
	heap.Init(&it.h)
	return it
}

func (it *Iterator[T]) HasNext() bool { return it.h.Len() > 0 }

func (it *Iterator[T]) Next() T {
	cur := &it.h.cursors[0]
	v := cur.run[cur.pos]
	cur.pos++
	if cur.pos == len(cur.run) {
		heap.Pop(&it.h)
	} else {
		heap.Fix(&it.h, 0)
	}
	return v
}

// Ascend walks the elements in ascending order until yield returns false.
func (s *Store[T]) Ascend(yield func(T) bool) {
	for it := s.Iterator(); it.HasNext(); {
		if !yield(it.Next()) {
			return
		}
	}
}
