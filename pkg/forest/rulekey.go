package forest

import (
	"encoding/binary"
	"hash/fnv"
	"slices"
	"strconv"
	"strings"
)

// RuleKey is an immutable decomposition rule: a parent class, its ordered
// children, a per-child shift, and a priority bucket. An empty Children
// slice denotes a verification rule: the parent is asserted terminally
// enumerable with no further decomposition.
//
// RuleKey deliberately carries no mutable state (see the live shift vector
// in TableMethod) so that rules stay comparable by value and safe to share
// across a foreign boundary.
type RuleKey struct {
	Parent   uint32
	Children []uint32
	Shifts   []int8
	Bucket   Bucket
}

// NewRuleKey constructs a RuleKey. len(children) must equal len(shifts);
// NewRuleKey panics otherwise, since a rule whose shifts don't line up
// with its children is a malformed caller input, not a data condition.
func NewRuleKey(parent uint32, children []uint32, shifts []int8, bucket Bucket) RuleKey {
	if len(children) != len(shifts) {
		fail("NewRuleKey: len(children)=%d != len(shifts)=%d", len(children), len(shifts))
	}
	return RuleKey{
		Parent:   parent,
		Children: slices.Clone(children),
		Shifts:   slices.Clone(shifts),
		Bucket:   bucket,
	}
}

// Equal reports whether r and other have identical parent, children,
// shifts (compared positionally) and bucket.
func (r RuleKey) Equal(other RuleKey) bool {
	return r.Parent == other.Parent &&
		r.Bucket == other.Bucket &&
		slices.Equal(r.Children, other.Children) &&
		slices.Equal(r.Shifts, other.Shifts)
}

// Hash returns a hash of all four fields, suitable for a foreign binding
// that needs RuleKey to behave like a hashable tuple. Equal RuleKeys
// always hash equal.
func (r RuleKey) Hash() uint64 {
	h := fnv.New64a()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], r.Parent)
	h.Write(buf[:])
	for _, c := range r.Children {
		binary.LittleEndian.PutUint32(buf[:], c)
		h.Write(buf[:])
	}
	for _, s := range r.Shifts {
		h.Write([]byte{byte(s)})
	}
	h.Write([]byte{byte(r.Bucket)})
	return h.Sum64()
}

// canonicalKey returns a string that uniquely identifies r by value,
// suitable as a map key where exact (not merely probable) equality
// matters, such as the minimizer's maybe-useful set.
func (r RuleKey) canonicalKey() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(r.Parent), 10))
	b.WriteByte('|')
	for _, c := range r.Children {
		b.WriteString(strconv.FormatUint(uint64(c), 10))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	for _, s := range r.Shifts {
		b.WriteString(strconv.FormatInt(int64(s), 10))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(r.Bucket)))
	return b.String()
}

// maxAbsShift returns the largest absolute declared shift in r, or 0 for
// a childless (verification) rule.
func (r RuleKey) maxAbsShift() uint32 {
	var max uint32
	for _, s := range r.Shifts {
		abs := int32(s)
		if abs < 0 {
			abs = -abs
		}
		if uint32(abs) > max {
			max = uint32(abs)
		}
	}
	return max
}
