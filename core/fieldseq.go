package core

// FieldSeq is the storage contract for a single named field (states,
// actions, rewards, ...) across all recorded turns. Implementations decide
// capacity and eviction; the buffer only requires ordered append and
// indexed read. IsFull may always return false for unbounded sequences.
type FieldSeq[V any] interface {
	Append(V)
	// At returns the value at position i, counted from the oldest retained
	// entry. Reading outside [0, Len()) is a programming error and panics.
	At(i int) V
	Len() int
	IsEmpty() bool
	IsFull() bool
	Clear()
}
