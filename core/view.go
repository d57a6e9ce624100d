package core

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientHistory = errors.New("not enough history for frame stack")
	ErrBadWindow           = errors.New("window length must be positive")
	ErrBadStack            = errors.New("stack size must be positive")
)

// Gather returns the value of seq at each of the given indices.
func Gather[V any](seq FieldSeq[V], inds []int) ([]V, error) {
	out := make([]V, len(inds))
	for k, i := range inds {
		if i < 0 || i >= seq.Len() {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, seq.Len())
		}
		out[k] = seq.At(i)
	}
	return out, nil
}

// Stacked returns, for each index i, the stack consecutive values ending at
// i, oldest first. Indices closer than stack-1 to the start of the sequence
// have no full frame history and are an error; padding at episode start is
// the caller's concern.
func Stacked[V any](seq FieldSeq[V], inds []int, stack int) ([][]V, error) {
	if stack < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadStack, stack)
	}
	out := make([][]V, len(inds))
	for k, i := range inds {
		if i < 0 || i >= seq.Len() {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, seq.Len())
		}
		if i-stack+1 < 0 {
			return nil, fmt.Errorf("%w: stack %d ending at index %d", ErrInsufficientHistory, stack, i)
		}
		frames := make([]V, stack)
		for j := 0; j < stack; j++ {
			frames[j] = seq.At(i - stack + 1 + j)
		}
		out[k] = frames
	}
	return out, nil
}

// Window returns the window consecutive values starting at each index. The
// result is shaped [window][len(inds)]: row j holds the j-th lookahead value
// of every index, so a columnwise reduction walks rows in step order.
func Window[V any](seq FieldSeq[V], inds []int, window int) ([][]V, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadWindow, window)
	}
	out := make([][]V, window)
	for j := range out {
		out[j] = make([]V, len(inds))
	}
	for k, i := range inds {
		if i < 0 || i+window > seq.Len() {
			return nil, fmt.Errorf("%w: window %d starting at %d exceeds [0, %d)", ErrIndexOutOfRange, window, i, seq.Len())
		}
		for j := 0; j < window; j++ {
			out[j][k] = seq.At(i + j)
		}
	}
	return out, nil
}
