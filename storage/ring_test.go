package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRingBadCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		_, err := NewRing[int](c)
		assert.ErrorIs(t, err, ErrBadCapacity, "capacity %d", c)
	}
}

func TestRingAppendAt(t *testing.T) {
	r, err := NewRing[int](4)
	require.NoError(t, err)

	assert.True(t, r.IsEmpty())
	r.Append(10)
	r.Append(11)
	r.Append(12)

	assert.Equal(t, 3, r.Len())
	assert.False(t, r.IsEmpty())
	assert.False(t, r.IsFull())
	assert.Equal(t, 10, r.At(0))
	assert.Equal(t, 12, r.At(2))
}

func TestRingWrapAround(t *testing.T) {
	r, err := NewRing[int](3)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		r.Append(i)
	}

	// The oldest two entries were overwritten.
	require.Equal(t, 3, r.Len())
	assert.True(t, r.IsFull())
	assert.Equal(t, 2, r.At(0))
	assert.Equal(t, 3, r.At(1))
	assert.Equal(t, 4, r.At(2))
}

func TestRingAtOutOfRangePanics(t *testing.T) {
	r, err := NewRing[int](3)
	require.NoError(t, err)
	r.Append(1)

	assert.Panics(t, func() { r.At(1) })
	assert.Panics(t, func() { r.At(-1) })
}

func TestRingClear(t *testing.T) {
	r, err := NewRing[int](2)
	require.NoError(t, err)
	r.Append(1)
	r.Append(2)
	require.True(t, r.IsFull())

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.True(t, r.IsEmpty())
	assert.False(t, r.IsFull())
	assert.Equal(t, 2, r.Capacity())

	// Appends after a clear start from a clean ordering.
	r.Append(7)
	assert.Equal(t, 7, r.At(0))
}

func TestSlice(t *testing.T) {
	s := NewSlice[string]()
	assert.True(t, s.IsEmpty())
	assert.False(t, s.IsFull())

	s.Append("a")
	s.Append("b")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "a", s.At(0))
	assert.Equal(t, "b", s.At(1))
	// Unbounded sequences never report full.
	assert.False(t, s.IsFull())

	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
}

func TestSliceAtOutOfRangePanics(t *testing.T) {
	s := NewSlice[int]()
	assert.Panics(t, func() { s.At(0) })
}
