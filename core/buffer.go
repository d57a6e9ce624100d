package core

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("transition index out of range")
	ErrNoPriorities    = errors.New("buffer has no priority field")
)

// FieldSet identifies which fields a buffer records. It is a closed tag:
// each value has its own index-to-transition mapping and there is no
// runtime dispatch over field names.
type FieldSet int

const (
	// RTSA records reward, terminal, state and action.
	RTSA FieldSet = iota
	// PRTSA records everything RTSA does plus a priority channel.
	PRTSA
)

func (f FieldSet) String() string {
	switch f {
	case RTSA:
		return "rtsa"
	case PRTSA:
		return "prtsa"
	default:
		return fmt.Sprintf("fieldset(%d)", int(f))
	}
}

// Step is one turn handed to Push. Priority is consumed only by PRTSA
// buffers; an RTSA buffer drops it without error.
type Step[S, A any] struct {
	State    S
	Action   A
	Reward   float64
	Terminal bool
	Priority float64
}

// Transition is the derived view at a single index. Reward, Terminal,
// NextState, NextAction and Priority come from the step following the
// (State, Action) pair: they are the consequence of taking Action in State.
// Priority is set only on transitions read from a PRTSA buffer.
type Transition[S, A any] struct {
	State      S
	Action     A
	Reward     float64
	Terminal   bool
	NextState  S
	NextAction A
	Priority   float64
}

// Buffer is a bundle of field sequences that advance together, one push per
// environment step. It owns its sequences exclusively: the only mutations
// are Push and Clear, never a write at an index.
//
// A single producer is assumed. Reads may run concurrently with each other
// but not with Push or Clear; sequences may resize or wrap underneath.
type Buffer[S, A any] struct {
	fieldSet   FieldSet
	states     FieldSeq[S]
	actions    FieldSeq[A]
	rewards    FieldSeq[float64]
	terminals  FieldSeq[bool]
	priorities FieldSeq[float64]
}

// NewBuffer creates an empty RTSA buffer over the given sequences.
func NewBuffer[S, A any](states FieldSeq[S], actions FieldSeq[A], rewards FieldSeq[float64], terminals FieldSeq[bool]) *Buffer[S, A] {
	return &Buffer[S, A]{
		fieldSet:  RTSA,
		states:    states,
		actions:   actions,
		rewards:   rewards,
		terminals: terminals,
	}
}

// NewPrioritizedBuffer creates an empty PRTSA buffer over the given
// sequences.
func NewPrioritizedBuffer[S, A any](states FieldSeq[S], actions FieldSeq[A], rewards FieldSeq[float64], terminals FieldSeq[bool], priorities FieldSeq[float64]) *Buffer[S, A] {
	return &Buffer[S, A]{
		fieldSet:   PRTSA,
		states:     states,
		actions:    actions,
		rewards:    rewards,
		terminals:  terminals,
		priorities: priorities,
	}
}

func (b *Buffer[S, A]) FieldSet() FieldSet {
	return b.fieldSet
}

// Push appends one turn, exactly one append per recognized field.
func (b *Buffer[S, A]) Push(step Step[S, A]) {
	b.states.Append(step.State)
	b.actions.Append(step.Action)
	b.rewards.Append(step.Reward)
	b.terminals.Append(step.Terminal)
	if b.fieldSet == PRTSA {
		b.priorities.Append(step.Priority)
	}
}

// PushObservation decomposes an observation and the action taken from it
// into a Step. A PRTSA buffer reads its priority from the observation
// metadata under MetaPriority; every other metadata key is ignored.
func (b *Buffer[S, A]) PushObservation(obs Observation[S], action A) {
	step := Step[S, A]{
		State:    obs.State,
		Action:   action,
		Reward:   obs.Reward,
		Terminal: obs.Terminal,
	}
	if p, ok := obs.Meta[MetaPriority]; ok {
		if v, ok := p.(float64); ok {
			step.Priority = v
		}
	}
	b.Push(step)
}

// Len is the number of complete transitions. A buffer holding only a start
// state has no recorded consequence yet and reports zero.
func (b *Buffer[S, A]) Len() int {
	n := b.terminals.Len() - 1
	if n < 0 {
		return 0
	}
	return n
}

func (b *Buffer[S, A]) IsEmpty() bool {
	empty := b.states.IsEmpty() && b.actions.IsEmpty() &&
		b.rewards.IsEmpty() && b.terminals.IsEmpty()
	if b.fieldSet == PRTSA {
		empty = empty && b.priorities.IsEmpty()
	}
	return empty
}

func (b *Buffer[S, A]) IsFull() bool {
	full := b.states.IsFull() && b.actions.IsFull() &&
		b.rewards.IsFull() && b.terminals.IsFull()
	if b.fieldSet == PRTSA {
		full = full && b.priorities.IsFull()
	}
	return full
}

// Clear resets every field sequence. The buffer becomes empty and non-full.
func (b *Buffer[S, A]) Clear() {
	b.states.Clear()
	b.actions.Clear()
	b.rewards.Clear()
	b.terminals.Clear()
	if b.fieldSet == PRTSA {
		b.priorities.Clear()
	}
}

// Get returns the transition at index i. The reward, terminal, next state,
// next action and priority are read one position ahead of i.
func (b *Buffer[S, A]) Get(i int) (Transition[S, A], error) {
	if i < 0 || i >= b.Len() {
		return Transition[S, A]{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, b.Len())
	}
	t := Transition[S, A]{
		State:      b.states.At(i),
		Action:     b.actions.At(i),
		Reward:     b.rewards.At(i + 1),
		Terminal:   b.terminals.At(i + 1),
		NextState:  b.states.At(i + 1),
		NextAction: b.actions.At(i + 1),
	}
	if b.fieldSet == PRTSA {
		t.Priority = b.priorities.At(i + 1)
	}
	return t, nil
}

// Priorities returns the priority of every complete transition, aligned
// with Get indices. Only PRTSA buffers carry priorities.
func (b *Buffer[S, A]) Priorities() ([]float64, error) {
	if b.fieldSet != PRTSA {
		return nil, ErrNoPriorities
	}
	out := make([]float64, b.Len())
	for i := range out {
		out[i] = b.priorities.At(i + 1)
	}
	return out, nil
}
