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

// Package ranges provides ordered containers over half-open key intervals:
// Dict maps pairwise disjoint intervals to values, overwriting on conflict and
// coalescing equal-valued neighbors; Set keeps a union of intervals with no
// values attached.
//
// Both are generic over the key type through a total-order comparator and hold
// no internal locks; callers needing concurrent access wrap them in their own
// synchronization.
package ranges

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/erigontech/rangedict/cola"
	"github.com/erigontech/rangedict/common/dbg"
)

// Dict is an ordered range dictionary. After every Mark the stored entries
// are well-formed (Begin < End), pairwise non-overlapping, and coalesced: no
// two touching neighbors carry equal values. Later marks win overlaps.
type Dict[K, V any] struct {
	store  *cola.Store[*Entry[K, V]]
	keyCmp func(a, b K) int
	valEq  func(a, b V) bool
	bounds Entry[K, V] // Begin = least begin, End = greatest end; Value unused
	log    *zap.Logger
}

// Option configures a Dict at construction time.
type Option func(*options)

type options struct {
	capacity int
	log      *zap.Logger
}

// WithCapacity pre-sizes the backing store for n entries.
func WithCapacity(n int) Option { return func(o *options) { o.capacity = n } }

// WithLogger enables a debug trace of reconciliation decisions.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.log = l } }

// New constructs an empty dictionary over a total order on keys and an
// equality relation on values.
func New[K, V any](keyCmp func(a, b K) int, valueEq func(a, b V) bool, opts ...Option) *Dict[K, V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	d := &Dict[K, V]{keyCmp: keyCmp, valEq: valueEq, log: o.log}
	d.store = cola.NewStore(o.capacity, func(a, b *Entry[K, V]) int { return keyCmp(a.Begin, b.Begin) })
	return d
}

// NewOrdered constructs a dictionary over a built-in ordered key type and a
// comparable value type.
func NewOrdered[K constraints.Ordered, V comparable](opts ...Option) *Dict[K, V] {
	return New[K, V](CompareOrdered[K], func(a, b V) bool { return a == b }, opts...)
}

// CompareOrdered is a comparator over the built-in ordered types.
func CompareOrdered[K constraints.Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Len returns the number of stored entries.
func (d *Dict[K, V]) Len() int { return d.store.Len() }

// Capacity returns the entry capacity of the currently allocated store.
func (d *Dict[K, V]) Capacity() int { return d.store.Capacity() }

// Bounds returns the least begin and greatest end across all entries;
// ok is false when the dictionary is empty.
func (d *Dict[K, V]) Bounds() (begin, end K, ok bool) {
	if d.store.Len() == 0 {
		var zero K
		return zero, zero, false
	}
	return d.bounds.Begin, d.bounds.End, true
}

// Clear removes all entries and resets the bounds.
func (d *Dict[K, V]) Clear() {
	d.store.Clear()
	d.bounds = Entry[K, V]{}
	if d.log != nil {
		d.log.Debug("clear")
	}
}

// Ascend walks the entries in ascending begin order until yield returns
// false. The dictionary must not be mutated during the walk.
func (d *Dict[K, V]) Ascend(yield func(begin, end K, value V) bool) {
	d.store.Ascend(func(e *Entry[K, V]) bool { return yield(e.Begin, e.End, e.Value) })
}

// Mark associates [begin, end) with value, reconciling against every stored
// entry it meets: overlapped spans are overwritten, partially covered entries
// are truncated or split, and equal-valued neighbors merge. Marking the same
// interval twice is a no-op the second time.
func (d *Dict[K, V]) Mark(begin, end K, value V) error {
	if d.keyCmp(begin, end) >= 0 {
		return fmt.Errorf("%w: mark of [%v, %v)", ErrInvalidRange, begin, end)
	}
	candidate := &Entry[K, V]{Begin: begin, End: end, Value: value}
	switch d.store.Len() {
	case 0:
		d.store.Insert(candidate)
		d.bounds.Begin, d.bounds.End = begin, end
	case 1:
		// reconciliation preserves the covered span, so bounds are the union
		// of the old entry and the candidate whatever resolve decides
		cursor, _ := d.store.Min()
		lo, hi := cursor.Begin, cursor.End
		absorbed, _ := d.resolve(cursor, candidate, false)
		if !absorbed {
			d.store.Insert(candidate)
		}
		d.bounds.Begin = d.minKey(lo, begin)
		d.bounds.End = d.maxKey(hi, end)
	default:
		d.markGeneral(candidate)
	}
	if d.log != nil {
		d.log.Debug("mark", zap.Any("begin", begin), zap.Any("end", end), zap.Int("len", d.store.Len()))
	}
	if dbg.AssertEnabled() {
		d.checkInvariants()
	}
	return nil
}

func (d *Dict[K, V]) markGeneral(candidate *Entry[K, V]) {
	switch {
	case d.keyCmp(candidate.Begin, d.bounds.End) > 0:
		// strictly past the greatest end: plain append
		d.store.Insert(candidate)
		d.bounds.End = candidate.End
		return
	case d.keyCmp(candidate.End, d.bounds.Begin) < 0:
		// strictly before the least begin: plain prepend
		d.store.Insert(candidate)
		d.bounds.Begin = candidate.Begin
		return
	case d.keyCmp(candidate.Begin, d.bounds.Begin) <= 0 && d.keyCmp(candidate.End, d.bounds.End) >= 0:
		// shadows every entry
		d.store.Clear()
		d.store.Insert(candidate)
		d.bounds.Begin, d.bounds.End = candidate.Begin, candidate.End
		return
	}

	// entry is the candidate's live representation: the candidate itself
	// until some stored entry absorbs it, that entry afterwards.
	entry := candidate
	inserted := false
	if _, prev, ok := d.store.FindPrevious(candidate, true); ok {
		if absorbed, _ := d.resolve(prev, candidate, false); absorbed {
			entry = prev
			inserted = true
		}
	}
	// walk right while entries still overlap the candidate's span
	for {
		addr, next, ok := d.store.FindNext(entry, false)
		if !ok {
			break
		}
		var absorbed, stop bool
		if inserted {
			absorbed, stop = d.resolve(entry, next, true)
			if absorbed {
				d.store.RemoveAt(addr)
			}
		} else {
			absorbed, stop = d.resolve(next, entry, true)
			if absorbed {
				entry = next
				inserted = true
			}
		}
		if !absorbed || stop {
			break
		}
	}
	if !inserted {
		d.store.Insert(entry)
	}
	// an overwrite landing at an existing begin key can leave the survivor
	// value-adjacent to its left neighbor; fold them together
	if _, prev, ok := d.store.FindPrevious(entry, false); ok {
		if d.keyCmp(prev.End, entry.Begin) == 0 && d.valEq(prev.Value, entry.Value) {
			addr, _, _ := d.store.FindNext(prev, false)
			d.store.RemoveAt(addr)
			prev.End = entry.End
			entry = prev
		}
	}
	if d.keyCmp(entry.Begin, d.bounds.Begin) < 0 {
		d.bounds.Begin = entry.Begin
	}
	if d.keyCmp(entry.End, d.bounds.End) > 0 {
		d.bounds.End = entry.End
	}
}

// resolve reconciles candidate against cursor, mutating cursor in place (and,
// for a split, inserting the pieces). absorbed reports that the candidate no
// longer needs its own slot — or, when the candidate is the pre-existing entry
// of a reversed-phase call, that the caller must drop it. stop reports that
// entries further right cannot overlap and propagation may end.
//
// In the forward phase (reversed=false) the cursor is a stored entry and the
// candidate is the incoming mark. In the reversed phase the incoming mark has
// reached the propagation loop: when it is already represented in the store it
// plays the cursor role against each following entry, otherwise it stays the
// candidate against the next stored entry.
func (d *Dict[K, V]) resolve(cursor, candidate *Entry[K, V], reversed bool) (absorbed, stop bool) {
	kc := d.keyCmp

	if d.valEq(cursor.Value, candidate.Value) {
		switch c := kc(cursor.Begin, candidate.Begin); {
		case c == 0:
			if kc(cursor.End, candidate.End) < 0 {
				cursor.End = candidate.End
			}
			return true, false
		case c < 0:
			if kc(cursor.End, candidate.Begin) < 0 {
				return false, false // gap
			}
			if kc(cursor.End, candidate.End) < 0 {
				cursor.End = candidate.End
			}
			return true, false
		default:
			if kc(candidate.End, cursor.Begin) < 0 {
				return false, false // gap
			}
			cursor.Begin = candidate.Begin
			if kc(cursor.End, candidate.End) < 0 {
				cursor.End = candidate.End
			}
			return true, false
		}
	}

	switch c := kc(cursor.Begin, candidate.Begin); {
	case c == 0:
		if ce := kc(cursor.End, candidate.End); ce <= 0 {
			cursor.End = candidate.End
			cursor.Value = candidate.Value
			return true, ce == 0
		}
		// candidate is the shorter prefix: it wins its span, cursor keeps the rest
		cursor.Begin = candidate.End
		return false, true
	case c < 0:
		if kc(cursor.End, candidate.Begin) <= 0 {
			return false, true // disjoint or touching
		}
		if kc(cursor.End, candidate.End) > 0 {
			if reversed {
				// cursor is the new mark here and fully shadows the candidate
				return true, false
			}
			// candidate strictly inside cursor: split
			tail := &Entry[K, V]{Begin: candidate.End, End: cursor.End, Value: cursor.Value}
			cursor.End = candidate.Begin
			d.store.Insert(candidate)
			d.store.Insert(tail)
			if d.log != nil {
				d.log.Debug("split", zap.Any("at", candidate.Begin))
			}
			return true, true
		}
		// overlap at the cursor's tail
		if !reversed {
			cursor.End = candidate.Begin
			return false, false
		}
		if kc(cursor.End, candidate.End) == 0 {
			return true, false // candidate fully shadowed by the new mark
		}
		candidate.Begin = cursor.End
		return false, false
	default:
		if kc(candidate.End, cursor.Begin) <= 0 {
			return false, true // disjoint or touching
		}
		if kc(cursor.End, candidate.End) <= 0 {
			// fully shadowed: the candidate takes over the slot
			cursor.Begin = candidate.Begin
			cursor.End = candidate.End
			cursor.Value = candidate.Value
			return true, false
		}
		// candidate wins the overlap, cursor keeps its right remainder
		cursor.Begin = candidate.End
		return false, true
	}
}

// String renders the entries for debugging: begin..(value)..end per entry,
// touching neighbors joined by '|', separated neighbors by ') ['.
func (d *Dict[K, V]) String() string {
	if d.store.Len() == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	var prev *Entry[K, V]
	d.store.Ascend(func(e *Entry[K, V]) bool {
		if prev != nil {
			if d.keyCmp(prev.End, e.Begin) == 0 {
				b.WriteByte('|')
			} else {
				b.WriteString(") [")
			}
		}
		fmt.Fprintf(&b, "%v..(%v)..%v", e.Begin, e.Value, e.End)
		prev = e
		return true
	})
	b.WriteByte(')')
	return b.String()
}

// checkInvariants panics if the canonical form is broken. It is a full sweep,
// gated behind dbg.AssertEnabled in Mark and called directly by tests.
func (d *Dict[K, V]) checkInvariants() {
	var prev *Entry[K, V]
	n := 0
	d.store.Ascend(func(e *Entry[K, V]) bool {
		if d.keyCmp(e.Begin, e.End) >= 0 {
			panic(fmt.Sprintf("rangedict: malformed entry %v", e))
		}
		if prev != nil {
			switch c := d.keyCmp(prev.End, e.Begin); {
			case c > 0:
				panic(fmt.Sprintf("rangedict: overlapping entries %v and %v", prev, e))
			case c == 0:
				if d.valEq(prev.Value, e.Value) {
					panic(fmt.Sprintf("rangedict: uncoalesced entries %v and %v", prev, e))
				}
			}
		}
		if n == 0 && d.keyCmp(e.Begin, d.bounds.Begin) != 0 {
			panic(fmt.Sprintf("rangedict: bounds begin %v, least entry %v", d.bounds.Begin, e))
		}
		prev = e
		n++
		return true
	})
	// entries are disjoint and sorted, so the last end is the greatest
	if n > 0 && d.keyCmp(prev.End, d.bounds.End) != 0 {
		panic(fmt.Sprintf("rangedict: bounds end %v, greatest entry %v", d.bounds.End, prev))
	}
}

func (d *Dict[K, V]) minKey(a, b K) K {
	if d.keyCmp(b, a) < 0 {
		return b
	}
	return a
}

func (d *Dict[K, V]) maxKey(a, b K) K {
	if d.keyCmp(b, a) > 0 {
		return b
	}
	return a
}
