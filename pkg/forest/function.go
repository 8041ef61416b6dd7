package forest

import "iter"

// Function is a dense, monotonically non-decreasing mapping from
// combinatorial class indices to IntOrInf, defaulting to Int(0) for any
// index it has not materialized.
//
// Alongside the materialized values it maintains a preimage-count vector
// (how many materialized, finite positions currently hold each value) and
// a running count of positions promoted to infinity, so that
// PreimageGap scans the range of finite values rather than every
// position, and the number of infinite positions is known without a scan.
type Function struct {
	values        []IntOrInf
	preimageCount []uint32
	infinityCount uint32
}

// NewFunction returns an empty Function; every index reads as Int(0).
func NewFunction() *Function {
	return &Function{}
}

// Len returns the number of materialized positions.
func (f *Function) Len() uint32 {
	return uint32(len(f.values))
}

// Value returns f(i). Unmaterialized indices (i >= Len()) read as Int(0).
func (f *Function) Value(i uint32) IntOrInf {
	if i >= uint32(len(f.values)) {
		return Int(0)
	}
	return f.values[i]
}

// InfinityCount returns the number of positions currently equal to
// Infinity.
func (f *Function) InfinityCount() uint32 {
	return f.infinityCount
}

// PreimageCount returns the preimage-count vector: PreimageCount()[v] is
// the number of materialized, finite positions currently holding value v.
// The returned slice is a fresh copy owned by the caller, so mutating it
// does not affect f; index 0 counts only materialized zero positions,
// never the implicit zeros beyond Len().
func (f *Function) PreimageCount() []uint32 {
	out := make([]uint32, len(f.preimageCount))
	copy(out, f.preimageCount)
	return out
}

func (f *Function) growPreimageCount(upTo uint32) {
	if uint32(len(f.preimageCount)) <= upTo {
		grown := make([]uint32, upTo+1)
		copy(grown, f.preimageCount)
		f.preimageCount = grown
	}
}

// Increase raises f(i) by one. It is a no-op if f(i) is already Infinity.
// Indices beyond the current length are materialized on demand: the gap
// between the old length and i is implicitly Int(0) and is folded into
// preimageCount[0].
func (f *Function) Increase(i uint32) {
	if i < uint32(len(f.values)) {
		cur := f.values[i]
		if cur.IsInfinite() {
			return
		}
		v, _ := cur.Value()
		f.preimageCount[v]--
		f.growPreimageCount(v + 1)
		f.values[i] = Int(v + 1)
		f.preimageCount[v+1]++
		return
	}
	oldLen := uint32(len(f.values))
	f.growPreimageCount(1)
	f.preimageCount[0] += i - oldLen
	f.preimageCount[1]++
	for j := oldLen; j < i; j++ {
		f.values = append(f.values, Int(0))
	}
	f.values = append(f.values, Int(1))
}

// SetInfinite promotes f(i) to Infinity. It is a no-op if f(i) is already
// Infinity.
//
// Promoting an index that has never been materialized (i >= Len()) is a
// contract violation: the table method only ever promotes classes it has
// already increased to a finite value, so this path panics rather than
// silently fabricating a materialized position (see SPEC_FULL.md §9 on
// the set_infinite/unseen-index open question).
func (f *Function) SetInfinite(i uint32) {
	if i >= uint32(len(f.values)) {
		fail("Function.SetInfinite: index %d was never materialized", i)
	}
	cur := f.values[i]
	if cur.IsInfinite() {
		return
	}
	v, _ := cur.Value()
	f.preimageCount[v]--
	f.infinityCount++
	f.values[i] = Infinity
}

// Preimage lazily yields every index i with f(i) == value, in increasing
// order.
//
// Preimage panics when called with Int(0): the preimage of 0 contains
// every unmaterialized index and is therefore infinite, not enumerable.
func (f *Function) Preimage(value IntOrInf) iter.Seq[uint32] {
	if v, ok := value.Value(); ok && v == 0 {
		fail("Function.Preimage: preimage of Int(0) is infinite")
	}
	return func(yield func(uint32) bool) {
		for i, v := range f.values {
			if v.Equal(value) {
				if !yield(uint32(i)) {
					return
				}
			}
		}
	}
}

// PreimageGap returns the smallest k >= 1 such that no materialized,
// finite position holds a value in [k, k+gapSize-1].
//
// PreimageGap panics when gapSize is 0: a gap of size 0 is not
// well-defined.
func (f *Function) PreimageGap(gapSize uint32) uint32 {
	if gapSize == 0 {
		fail("Function.PreimageGap: gap size 0 is not well-defined")
	}
	var lastNonZero uint32
	for i, v := range f.preimageCount {
		idx := uint32(i)
		if v != 0 {
			lastNonZero = idx
		} else if idx-lastNonZero >= gapSize {
			return lastNonZero + 1
		}
	}
	return lastNonZero + 1
}
