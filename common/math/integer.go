// Copyright 2017 The go-ethereum Authors
// (original work)
// Copyright 2024 The Erigon Authors
// (modifications)
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
	"math/bits"
)

// Log2Floor returns floor(log2(x)), or -1 for x == 0.
func Log2Floor(x uint64) int {
	return bits.Len64(x) - 1
}

// TrailingOnes returns the number of consecutive one bits starting at bit 0.
// For a binary counter this is the index of the lowest vacant digit.
func TrailingOnes(x uint64) int {
	return bits.TrailingZeros64(^x)
}

// TrailingZeros returns the number of consecutive zero bits starting at bit 0.
func TrailingZeros(x uint64) int {
	return bits.TrailingZeros64(x)
}
