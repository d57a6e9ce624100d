package policies

import (
	"math"
	"math/rand"

	"github.com/zeu5/nstep-replay/collect"
	"github.com/zeu5/nstep-replay/core"
)

// QLearn is an epsilon-greedy tabular Q policy over hashed states. It
// learns offline from n-step batches extracted out of a turn buffer: the
// batch reward is the already-discounted n-step return, so the bootstrap
// term is weighted by gamma^horizon and skipped when the episode ended
// inside the window.
type QLearn[S any, A comparable] struct {
	QTable  map[string]map[A]float64
	Alpha   float64
	Epsilon float64

	actions []A
	key     func(S) string
	rand    *rand.Rand
}

var _ collect.Policy[int, int] = &QLearn[int, int]{}

func NewQLearn[S any, A comparable](actions []A, key func(S) string, alpha, epsilon float64, seed int64) *QLearn[S, A] {
	return &QLearn[S, A]{
		QTable:  make(map[string]map[A]float64),
		Alpha:   alpha,
		Epsilon: epsilon,
		actions: actions,
		key:     key,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

func (q *QLearn[S, A]) Reset() {
	q.QTable = make(map[string]map[A]float64)
}

func (q *QLearn[S, A]) PickAction(state S) A {
	if q.rand.Float64() < q.Epsilon {
		return q.actions[q.rand.Intn(len(q.actions))]
	}
	stateKey := q.key(state)
	best := q.actions[0]
	bestVal := math.Inf(-1)
	for _, a := range q.actions {
		val := q.QTable[stateKey][a]
		if val > bestVal {
			best = a
			bestVal = val
		}
	}
	return best
}

// UpdateBatch applies one n-step backup per transition in the batch. The
// state of a sample is the newest frame of its stack.
func (q *QLearn[S, A]) UpdateBatch(batch *core.Batch[S, A], cfg core.NStepConfig) {
	bootstrap := math.Pow(cfg.Gamma, float64(cfg.UpdateHorizon))
	for k, action := range batch.Actions {
		stateKey := q.key(newestFrame(batch.States[k]))

		target := batch.Rewards[k]
		if !batch.Terminals[k] {
			nextKey := q.key(newestFrame(batch.NextStates[k]))
			target += bootstrap * q.maxQ(nextKey)
		}

		if _, ok := q.QTable[stateKey]; !ok {
			q.QTable[stateKey] = make(map[A]float64)
		}
		cur := q.QTable[stateKey][action]
		q.QTable[stateKey][action] = (1-q.Alpha)*cur + q.Alpha*target
	}
}

func (q *QLearn[S, A]) maxQ(stateKey string) float64 {
	max := float64(0)
	for _, val := range q.QTable[stateKey] {
		if val > max {
			max = val
		}
	}
	return max
}

func newestFrame[S any](stack []S) S {
	return stack[len(stack)-1]
}
