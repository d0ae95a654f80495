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
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a mark's begin key does not precede its
// end key.
var ErrInvalidRange = errors.New("invalid range: begin must precede end")

// Entry associates the half-open interval [Begin, End) with a value.
// Begin < End under the dictionary's comparator at all times.
type Entry[K, V any] struct {
	Begin K
	End   K
	Value V
}

func (e *Entry[K, V]) String() string {
	return fmt.Sprintf("%v..(%v)..%v", e.Begin, e.Value, e.End)
}
