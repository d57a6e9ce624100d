// Package sample chooses which transition indices to extract from a turn
// buffer. The buffer itself never picks indices; a sampler does.
package sample

import (
	"errors"
	"fmt"
	"math/rand"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

var (
	ErrEmptyRange  = errors.New("empty index range")
	ErrZeroWeights = errors.New("weights sum to zero")
)

// Uniform draws indices uniformly at random from a half-open range, with
// replacement.
type Uniform struct {
	rand *rand.Rand
}

func NewUniform(seed int64) *Uniform {
	return &Uniform{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Sample returns n indices in [lo, hi).
func (u *Uniform) Sample(n, lo, hi int) ([]int, error) {
	if hi <= lo {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrEmptyRange, lo, hi)
	}
	out := make([]int, n)
	for k := range out {
		out[k] = lo + u.rand.Intn(hi-lo)
	}
	return out, nil
}

// Prioritized draws indices in proportion to a weight per index, with
// replacement across draws.
type Prioritized struct {
	rand erand.Source
}

func NewPrioritized(seed uint64) *Prioritized {
	return &Prioritized{
		rand: erand.NewSource(seed),
	}
}

// Sample returns n indices drawn proportionally to weights. Negative
// weights are rejected by the underlying sampler; all-zero weights are an
// error.
func (p *Prioritized) Sample(n int, weights []float64) ([]int, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weights", ErrEmptyRange)
	}
	out := make([]int, n)
	for k := range out {
		// sampleuv.Weighted samples without replacement, so a fresh one
		// per draw gives sampling with replacement.
		i, ok := sampleuv.NewWeighted(weights, p.rand).Take()
		if !ok {
			return nil, ErrZeroWeights
		}
		out[k] = i
	}
	return out, nil
}
