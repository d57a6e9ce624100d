// Package collect runs agent-environment episodes and records every turn
// into a buffer. It is the single producer the buffer assumes.
package collect

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/zeu5/nstep-replay/core"
)

// Environment produces observations. Reset starts a new episode and returns
// the start observation; Step applies an action and returns the resulting
// observation, whose reward and terminal flag are the consequence of the
// action.
type Environment[S, A any] interface {
	Reset() (core.Observation[S], error)
	Step(A) (core.Observation[S], error)
}

// Policy picks actions during collection.
type Policy[S, A any] interface {
	PickAction(S) A
	Reset()
}

type Config struct {
	Episodes int
	// Horizon caps the number of environment steps per episode.
	Horizon int
}

type Result struct {
	Episodes   int
	TimeSteps  int
	Terminated int
}

// Collector drives episodes and pushes every observed turn into the buffer.
// The terminal observation of an episode is pushed too, carrying a
// throwaway action, so the final transition's consequence is recorded.
type Collector[S, A any] struct {
	Environment Environment[S, A]
	Policy      Policy[S, A]
	Buffer      *core.Buffer[S, A]

	logger zerolog.Logger
	writer io.Writer
}

func NewCollector[S, A any](env Environment[S, A], policy Policy[S, A], buffer *core.Buffer[S, A], logger zerolog.Logger) *Collector[S, A] {
	return &Collector[S, A]{
		Environment: env,
		Policy:      policy,
		Buffer:      buffer,
		logger:      logger.With().Str("component", "collector").Logger(),
		writer:      io.Discard,
	}
}

// SetProgressWriter directs per-episode progress lines to w.
func (c *Collector[S, A]) SetProgressWriter(w io.Writer) {
	c.writer = w
}

// Run collects cfg.Episodes episodes, stopping early when ctx is cancelled.
// The partial result is returned alongside the context error.
func (c *Collector[S, A]) Run(ctx context.Context, cfg Config) (*Result, error) {
	c.Policy.Reset()
	result := &Result{}

	for episode := 0; episode < cfg.Episodes; episode++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		fmt.Fprintf(
			c.writer,
			"Episode %d/%d, Timesteps: %d, Terminated: %d, Buffer: %d\n",
			episode, cfg.Episodes, result.TimeSteps, result.Terminated, c.Buffer.Len(),
		)

		obs, err := c.Environment.Reset()
		if err != nil {
			return result, fmt.Errorf("resetting environment: %w", err)
		}
		steps := 0
		for {
			action := c.Policy.PickAction(obs.State)
			c.Buffer.PushObservation(obs, action)
			if obs.Terminal {
				result.Terminated++
				break
			}
			if steps >= cfg.Horizon {
				break
			}
			obs, err = c.Environment.Step(action)
			if err != nil {
				return result, fmt.Errorf("stepping environment: %w", err)
			}
			steps++
			result.TimeSteps++
		}
		result.Episodes++

		c.logger.Debug().
			Int("episode", episode).
			Int("steps", steps).
			Int("buffer_len", c.Buffer.Len()).
			Msg("episode recorded")
	}

	c.logger.Info().
		Int("episodes", result.Episodes).
		Int("timesteps", result.TimeSteps).
		Int("terminated", result.Terminated).
		Msg("collection finished")
	return result, nil
}
