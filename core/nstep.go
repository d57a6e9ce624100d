package core

import (
	"errors"
	"fmt"
)

var ErrBadHorizon = errors.New("update horizon must be positive")

// NStepConfig parameterizes batch extraction. StackSize values below 2
// disable frame stacking.
type NStepConfig struct {
	Gamma         float64
	UpdateHorizon int
	StackSize     int
}

// Batch is the result of an n-step extraction, index-aligned with the
// sampled indices. States and NextStates hold one frame stack per sample,
// oldest frame first; with stacking disabled each stack has a single frame.
type Batch[S, A any] struct {
	States     [][]S
	Actions    []A
	Rewards    []float64
	Terminals  []bool
	NextStates [][]S
}

// SampleableRange returns the half-open index range valid for SampleBatch
// under cfg: enough frame history below, enough horizon lookahead above.
// The range is empty when the buffer holds too few steps.
func (b *Buffer[S, A]) SampleableRange(cfg NStepConfig) (lo, hi int) {
	lo = cfg.StackSize - 1
	if lo < 0 {
		lo = 0
	}
	hi = b.Len() - cfg.UpdateHorizon + 1
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// SampleBatch extracts an n-step transition for every sampled index.
//
// For a sampled index i the pre-transition pair is (state_i, action_i), the
// candidate next state is state_{i+H}, and the return is the discounted sum
// of rewards at positions i+1 .. i+H in ascending powers of gamma. The sum
// truncates at the first terminal in the window: rewards past it belong to
// the next episode and never contribute, even when stale data carries
// further terminals. The emitted terminal flag says whether the episode
// ended inside the horizon.
//
// Every index must satisfy 0 <= i and i+H within the recorded steps, and
// with stacking every index must have stack-1 steps of history; violations
// surface as ErrIndexOutOfRange or ErrInsufficientHistory.
func (b *Buffer[S, A]) SampleBatch(inds []int, cfg NStepConfig) (*Batch[S, A], error) {
	if cfg.UpdateHorizon < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadHorizon, cfg.UpdateHorizon)
	}
	stack := cfg.StackSize
	if stack < 1 {
		stack = 1
	}

	nextInds := make([]int, len(inds))
	windowStarts := make([]int, len(inds))
	for k, i := range inds {
		nextInds[k] = i + cfg.UpdateHorizon
		windowStarts[k] = i + 1
	}

	states, err := Stacked(b.states, inds, stack)
	if err != nil {
		return nil, fmt.Errorf("gathering states: %w", err)
	}
	actions, err := Gather(b.actions, inds)
	if err != nil {
		return nil, fmt.Errorf("gathering actions: %w", err)
	}
	nextStates, err := Stacked(b.states, nextInds, stack)
	if err != nil {
		return nil, fmt.Errorf("gathering next states: %w", err)
	}
	rewardWindow, err := Window(b.rewards, windowStarts, cfg.UpdateHorizon)
	if err != nil {
		return nil, fmt.Errorf("gathering reward windows: %w", err)
	}
	terminalWindow, err := Window(b.terminals, windowStarts, cfg.UpdateHorizon)
	if err != nil {
		return nil, fmt.Errorf("gathering terminal windows: %w", err)
	}

	rewards := make([]float64, len(inds))
	terminals := make([]bool, len(inds))
	for k := range inds {
		ret := float64(0)
		discount := float64(1)
		for j := 0; j < cfg.UpdateHorizon; j++ {
			ret += discount * rewardWindow[j][k]
			if terminalWindow[j][k] {
				terminals[k] = true
				break
			}
			discount *= cfg.Gamma
		}
		rewards[k] = ret
	}

	return &Batch[S, A]{
		States:     states,
		Actions:    actions,
		Rewards:    rewards,
		Terminals:  terminals,
		NextStates: nextStates,
	}, nil
}
