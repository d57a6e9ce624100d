package policies

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/nstep-replay/core"
)

func intKey(s int) string { return strconv.Itoa(s) }

func TestQLearnGreedyPick(t *testing.T) {
	q := NewQLearn[int, int]([]int{0, 1, 2}, intKey, 0.5, 0, 1)
	q.QTable["7"] = map[int]float64{0: 0.1, 1: 0.9, 2: 0.3}

	assert.Equal(t, 1, q.PickAction(7))
	// Unseen states fall back to the first action.
	assert.Equal(t, 0, q.PickAction(8))
}

func TestQLearnUpdateBatchTerminal(t *testing.T) {
	q := NewQLearn[int, int]([]int{0, 1}, intKey, 0.5, 0, 1)

	batch := &core.Batch[int, int]{
		States:     [][]int{{3}},
		Actions:    []int{1},
		Rewards:    []float64{4},
		Terminals:  []bool{true},
		NextStates: [][]int{{5}},
	}
	q.UpdateBatch(batch, core.NStepConfig{Gamma: 0.5, UpdateHorizon: 2})

	// No bootstrap past a terminal: target is the n-step return alone.
	assert.InDelta(t, 0.5*4, q.QTable["3"][1], 1e-9)
}

func TestQLearnUpdateBatchBootstrap(t *testing.T) {
	q := NewQLearn[int, int]([]int{0, 1}, intKey, 0.5, 0, 1)
	q.QTable["5"] = map[int]float64{0: 2, 1: 8}

	batch := &core.Batch[int, int]{
		States:     [][]int{{3}},
		Actions:    []int{0},
		Rewards:    []float64{1},
		Terminals:  []bool{false},
		NextStates: [][]int{{5}},
	}
	q.UpdateBatch(batch, core.NStepConfig{Gamma: 0.5, UpdateHorizon: 2})

	// target = 1 + 0.5^2 * max_a Q(next) = 1 + 0.25*8 = 3.
	assert.InDelta(t, 0.5*3, q.QTable["3"][0], 1e-9)
}

func TestQLearnStackedStatesUseNewestFrame(t *testing.T) {
	q := NewQLearn[int, int]([]int{0}, intKey, 1, 0, 1)

	batch := &core.Batch[int, int]{
		States:     [][]int{{1, 2, 3}},
		Actions:    []int{0},
		Rewards:    []float64{7},
		Terminals:  []bool{true},
		NextStates: [][]int{{4, 5, 6}},
	}
	q.UpdateBatch(batch, core.NStepConfig{Gamma: 0.9, UpdateHorizon: 1})

	require.Contains(t, q.QTable, "3")
	assert.NotContains(t, q.QTable, "1")
}

func TestQLearnReset(t *testing.T) {
	q := NewQLearn[int, int]([]int{0}, intKey, 0.5, 0, 1)
	q.QTable["3"] = map[int]float64{0: 1}

	q.Reset()
	assert.Empty(t, q.QTable)
}

func TestRandomPicksFromActionSet(t *testing.T) {
	actions := []int{3, 5, 9}
	r := NewRandom[int, int](actions, 1)

	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		a := r.PickAction(0)
		assert.Contains(t, actions, a)
		seen[a] = true
	}
	assert.Len(t, seen, 3)
}
