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
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func intCmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func collect(s *Store[int]) []int {
	var out []int
	s.Ascend(func(v int) bool { out = append(out, v); return true })
	return out
}

func TestStoreInsertAscend(t *testing.T) {
	require := require.New(t)
	for _, n := range []int{0, 1, 2, 3, 7, 8, 15, 16, 33, 100} {
		s := NewStore(0, intCmp)
		for _, v := range rand.Perm(n) {
			s.Insert(v)
		}
		require.Equal(n, s.Len())
		require.GreaterOrEqual(s.Capacity(), s.Len())
		got := collect(s)
		require.Len(got, n)
		for i, v := range got {
			require.Equal(i, v)
		}
	}
}

func TestStoreCapacityHint(t *testing.T) {
	require := require.New(t)
	s := NewStore(100, intCmp)
	require.GreaterOrEqual(s.Capacity(), 100)
	require.Zero(s.Len())
}

func TestStoreFindNeighbours(t *testing.T) {
	require := require.New(t)
	s := NewStore(8, intCmp)
	var sorted []int
	for _, v := range rand.Perm(50) {
		s.Insert(v * 2) // evens 0..98
		sorted = append(sorted, v*2)
	}
	sort.Ints(sorted)

	oraclePrev := func(pivot int, orEqual bool) (int, bool) {
		for i := len(sorted) - 1; i >= 0; i-- {
			if sorted[i] < pivot || (orEqual && sorted[i] == pivot) {
				return sorted[i], true
			}
		}
		return 0, false
	}
	oracleNext := func(pivot int, orEqual bool) (int, bool) {
		for _, v := range sorted {
			if v > pivot || (orEqual && v == pivot) {
				return v, true
			}
		}
		return 0, false
	}

	for pivot := -2; pivot <= 100; pivot++ {
		for _, orEqual := range []bool{false, true} {
			wantV, wantOk := oraclePrev(pivot, orEqual)
			_, gotV, gotOk := s.FindPrevious(pivot, orEqual)
			require.Equal(wantOk, gotOk, "prev pivot=%d orEqual=%v", pivot, orEqual)
			if wantOk {
				require.Equal(wantV, gotV, "prev pivot=%d orEqual=%v", pivot, orEqual)
			}

			wantV, wantOk = oracleNext(pivot, orEqual)
			_, gotV, gotOk = s.FindNext(pivot, orEqual)
			require.Equal(wantOk, gotOk, "next pivot=%d orEqual=%v", pivot, orEqual)
			if wantOk {
				require.Equal(wantV, gotV, "next pivot=%d orEqual=%v", pivot, orEqual)
			}
		}
	}
}

func TestStoreRemoveAt(t *testing.T) {
	require := require.New(t)
	for _, n := range []int{1, 2, 3, 7, 8, 20, 33, 64} {
		s := NewStore(0, intCmp)
		for _, v := range rand.Perm(n) {
			s.Insert(v)
		}
		remaining := make(map[int]struct{}, n)
		for v := 0; v < n; v++ {
			remaining[v] = struct{}{}
		}
		for i, v := range rand.Perm(n) {
			at, got, ok := s.FindPrevious(v, true)
			require.True(ok)
			require.Equal(v, got)
			require.Equal(v, s.RemoveAt(at))
			delete(remaining, v)
			require.Equal(n-i-1, s.Len())

			want := make([]int, 0, len(remaining))
			for r := range remaining {
				want = append(want, r)
			}
			sort.Ints(want)
			require.Equal(want, append([]int{}, collect(s)...), "n=%d after removing %d", n, v)
		}
	}
}

func TestStoreMin(t *testing.T) {
	require := require.New(t)
	s := NewStore(0, intCmp)
	_, ok := s.Min()
	require.False(ok)
	for _, v := range []int{5, 9, 3, 7, 11} {
		s.Insert(v)
	}
	min, ok := s.Min()
	require.True(ok)
	require.Equal(3, min)
}

func TestStoreClearKeepsCapacity(t *testing.T) {
	require := require.New(t)
	s := NewStore(0, intCmp)
	for i := 0; i < 20; i++ {
		s.Insert(i)
	}
	capBefore := s.Capacity()
	s.Clear()
	require.Zero(s.Len())
	require.Equal(capBefore, s.Capacity())
	s.Insert(42)
	require.Equal([]int{42}, collect(s))
}

func TestStoreAscendEarlyStop(t *testing.T) {
	require := require.New(t)
	s := NewStore(0, intCmp)
	for i := 0; i < 10; i++ {
		s.Insert(i)
	}
	var seen []int
	s.Ascend(func(v int) bool {
		seen = append(seen, v)
		return len(seen) < 3
	})
	require.Equal([]int{0, 1, 2}, seen)
}

func TestIterator(t *testing.T) {
	require := require.New(t)
	s := NewStore(0, intCmp)
	for _, v := range rand.Perm(17) {
		s.Insert(v)
	}
	it := s.Iterator()
	for i := 0; i < 17; i++ {
		require.True(it.HasNext())
		require.Equal(i, it.Next())
	}
	require.False(it.HasNext())
}
