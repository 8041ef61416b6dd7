package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuleKeyMismatchedLengthsPanics(t *testing.T) {
	require.Panics(t, func() {
		NewRuleKey(0, []uint32{1, 2}, []int8{0}, BucketNormal)
	})
}

func TestRuleKeyEqual(t *testing.T) {
	a := NewRuleKey(0, []uint32{1, 2}, []int8{0, 1}, BucketNormal)
	b := NewRuleKey(0, []uint32{1, 2}, []int8{0, 1}, BucketNormal)
	c := NewRuleKey(0, []uint32{2, 1}, []int8{0, 1}, BucketNormal)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestRuleKeyImmutableAfterConstruction(t *testing.T) {
	children := []uint32{1, 2}
	shifts := []int8{0, 0}
	rk := NewRuleKey(0, children, shifts, BucketNormal)

	children[0] = 99
	shifts[0] = 99

	assert.Equal(t, []uint32{1, 2}, rk.Children)
	assert.Equal(t, []int8{0, 0}, rk.Shifts)
}

func TestBucketStringAndHashStability(t *testing.T) {
	cases := []struct {
		b    Bucket
		name string
		hash int
	}{
		{BucketUndefined, "UNDEFINED", 0},
		{BucketVerification, "VERIFICATION", 1},
		{BucketEquiv, "EQUIV", 2},
		{BucketNormal, "NORMAL", 3},
		{BucketReverse, "REVERSE", 4},
	}
	for _, c := range cases {
		assert.Equal(t, c.name, c.b.String())
		assert.Equal(t, c.hash, int(c.b))
	}
}
