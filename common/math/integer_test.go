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

package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog2Floor(t *testing.T) {
	require.Equal(t, -1, Log2Floor(0))
	require.Equal(t, 0, Log2Floor(1))
	require.Equal(t, 1, Log2Floor(2))
	require.Equal(t, 1, Log2Floor(3))
	require.Equal(t, 2, Log2Floor(4))
	require.Equal(t, 6, Log2Floor(127))
	require.Equal(t, 7, Log2Floor(128))
	require.Equal(t, 63, Log2Floor(1<<63))
}

func TestTrailingOnes(t *testing.T) {
	require.Equal(t, 0, TrailingOnes(0))
	require.Equal(t, 1, TrailingOnes(1))
	require.Equal(t, 0, TrailingOnes(2))
	require.Equal(t, 2, TrailingOnes(3))
	require.Equal(t, 3, TrailingOnes(7))
	require.Equal(t, 1, TrailingOnes(5))
	require.Equal(t, 64, TrailingOnes(^uint64(0)))
}

func TestTrailingZeros(t *testing.T) {
	require.Equal(t, 64, TrailingZeros(0))
	require.Equal(t, 0, TrailingZeros(1))
	require.Equal(t, 1, TrailingZeros(2))
	require.Equal(t, 2, TrailingZeros(4))
	require.Equal(t, 0, TrailingZeros(5))
	require.Equal(t, 3, TrailingZeros(8))
}
