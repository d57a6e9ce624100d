package cartpole

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/gosuri/uilive"
	"github.com/rs/zerolog/log"

	"github.com/zeu5/nstep-replay/benchmarks/common"
	"github.com/zeu5/nstep-replay/collect"
	"github.com/zeu5/nstep-replay/core"
	"github.com/zeu5/nstep-replay/policies"
	"github.com/zeu5/nstep-replay/sample"
	"github.com/zeu5/nstep-replay/storage"
	"github.com/zeu5/nstep-replay/util"
)

const episodesPerRound = 10

type Summary struct {
	Episodes    int     `json:"episodes"`
	TimeSteps   int     `json:"timesteps"`
	Terminated  int     `json:"terminated"`
	Batches     int     `json:"batches"`
	MeanReturn  float64 `json:"mean_return"`
	Transitions int     `json:"transitions"`
}

// Run collects cartpole episodes into a turn buffer and trains a tabular
// n-step Q policy from sampled batches, alternating collection rounds with
// update rounds the way an off-policy learner does.
func Run(ctx context.Context, flags *common.Flags) error {
	buffer, err := newBuffer(flags)
	if err != nil {
		return err
	}

	policy := policies.NewQLearn[State, int](Actions, State.Hash, 0.3, 0.1, flags.Seed)
	env := NewEnv(flags.Seed)
	collector := collect.NewCollector[State, int](env, policy, buffer, log.Logger)

	writer := uilive.New()
	writer.Start()
	defer writer.Stop()
	collector.SetProgressWriter(writer)

	cfg := core.NStepConfig{
		Gamma:         flags.Gamma,
		UpdateHorizon: flags.UpdateHorizon,
		StackSize:     flags.StackSize,
	}
	uniform := sample.NewUniform(flags.Seed)
	prioritized := sample.NewPrioritized(uint64(flags.Seed))

	rounds := flags.Episodes / episodesPerRound
	if rounds < 1 {
		rounds = 1
	}
	updatesPerRound := flags.Batches / rounds
	if updatesPerRound < 1 {
		updatesPerRound = 1
	}

	summary := &Summary{}
	totalReturn := float64(0)
RoundLoop:
	for round := 0; round < rounds; round++ {
		result, err := collector.Run(ctx, collect.Config{
			Episodes: episodesPerRound,
			Horizon:  flags.Horizon,
		})
		summary.Episodes += result.Episodes
		summary.TimeSteps += result.TimeSteps
		summary.Terminated += result.Terminated
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break RoundLoop
			}
			return err
		}

		lo, hi := buffer.SampleableRange(cfg)
		if hi <= lo {
			continue
		}
		for u := 0; u < updatesPerRound; u++ {
			inds, err := sampleIndices(flags, buffer, uniform, prioritized, lo, hi)
			if err != nil {
				return fmt.Errorf("sampling indices: %w", err)
			}
			batch, err := buffer.SampleBatch(inds, cfg)
			if err != nil {
				return fmt.Errorf("extracting batch: %w", err)
			}
			policy.UpdateBatch(batch, cfg)

			for _, r := range batch.Rewards {
				totalReturn += r
			}
			summary.Batches++
		}
	}

	if n := summary.Batches * flags.BatchSize; n > 0 {
		summary.MeanReturn = totalReturn / float64(n)
	}
	summary.Transitions = buffer.Len()

	log.Info().
		Int("episodes", summary.Episodes).
		Int("batches", summary.Batches).
		Float64("mean_return", summary.MeanReturn).
		Int("transitions", summary.Transitions).
		Msg("cartpole run finished")

	return util.SaveJson(path.Join(flags.SavePath, "cartpole_summary.json"), summary)
}

func newBuffer(flags *common.Flags) (*core.Buffer[State, int], error) {
	states, err := storage.NewRing[State](flags.Capacity)
	if err != nil {
		return nil, err
	}
	actions, err := storage.NewRing[int](flags.Capacity)
	if err != nil {
		return nil, err
	}
	rewards, err := storage.NewRing[float64](flags.Capacity)
	if err != nil {
		return nil, err
	}
	terminals, err := storage.NewRing[bool](flags.Capacity)
	if err != nil {
		return nil, err
	}
	if !flags.Prioritized {
		return core.NewBuffer[State, int](states, actions, rewards, terminals), nil
	}
	priorities, err := storage.NewRing[float64](flags.Capacity)
	if err != nil {
		return nil, err
	}
	return core.NewPrioritizedBuffer[State, int](states, actions, rewards, terminals, priorities), nil
}

func sampleIndices(flags *common.Flags, buffer *core.Buffer[State, int], uniform *sample.Uniform, prioritized *sample.Prioritized, lo, hi int) ([]int, error) {
	if !flags.Prioritized {
		return uniform.Sample(flags.BatchSize, lo, hi)
	}
	weights, err := buffer.Priorities()
	if err != nil {
		return nil, err
	}
	inds, err := prioritized.Sample(flags.BatchSize, weights[lo:hi])
	if err != nil {
		return nil, err
	}
	for k := range inds {
		inds[k] += lo
	}
	return inds, nil
}
