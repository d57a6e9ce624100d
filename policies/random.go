package policies

import (
	"math/rand"

	"github.com/zeu5/nstep-replay/collect"
)

// Random picks uniformly among a fixed action set, ignoring the state.
type Random[S, A any] struct {
	actions []A
	rand    *rand.Rand
}

var _ collect.Policy[int, int] = &Random[int, int]{}

func NewRandom[S, A any](actions []A, seed int64) *Random[S, A] {
	return &Random[S, A]{
		actions: actions,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

func (r *Random[S, A]) PickAction(_ S) A {
	return r.actions[r.rand.Intn(len(r.actions))]
}

func (r *Random[S, A]) Reset() {}
