package storage

import "github.com/zeu5/nstep-replay/core"

// Slice is a growable, unbounded sequence. It never reports full.
type Slice[V any] struct {
	data []V
}

var _ core.FieldSeq[int] = &Slice[int]{}

func NewSlice[V any]() *Slice[V] {
	return &Slice[V]{data: make([]V, 0)}
}

func (s *Slice[V]) Append(v V) {
	s.data = append(s.data, v)
}

func (s *Slice[V]) At(i int) V {
	return s.data[i]
}

func (s *Slice[V]) Len() int {
	return len(s.data)
}

func (s *Slice[V]) IsEmpty() bool {
	return len(s.data) == 0
}

func (s *Slice[V]) IsFull() bool {
	return false
}

func (s *Slice[V]) Clear() {
	s.data = s.data[:0]
}
