package storage

import (
	"errors"
	"fmt"

	"github.com/zeu5/nstep-replay/core"
)

var ErrBadCapacity = errors.New("capacity must be greater than zero")

// Ring is a fixed-capacity circular sequence. Once full, an append
// overwrites the oldest entry; At indexes from the oldest retained entry.
type Ring[V any] struct {
	data  []V
	start int
	count int
}

var _ core.FieldSeq[int] = &Ring[int]{}

func NewRing[V any](capacity int) (*Ring[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCapacity, capacity)
	}
	return &Ring[V]{data: make([]V, capacity)}, nil
}

func (r *Ring[V]) Append(v V) {
	if r.count < len(r.data) {
		r.data[(r.start+r.count)%len(r.data)] = v
		r.count++
		return
	}
	r.data[r.start] = v
	r.start = (r.start + 1) % len(r.data)
}

func (r *Ring[V]) At(i int) V {
	if i < 0 || i >= r.count {
		panic(fmt.Sprintf("storage: ring index %d out of range [0, %d)", i, r.count))
	}
	return r.data[(r.start+i)%len(r.data)]
}

func (r *Ring[V]) Len() int {
	return r.count
}

func (r *Ring[V]) IsEmpty() bool {
	return r.count == 0
}

func (r *Ring[V]) IsFull() bool {
	return r.count == len(r.data)
}

func (r *Ring[V]) Clear() {
	r.start = 0
	r.count = 0
}

func (r *Ring[V]) Capacity() int {
	return len(r.data)
}
