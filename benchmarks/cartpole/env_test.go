package cartpole

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/nstep-replay/core"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	m.Run()
}

func TestEnvReset(t *testing.T) {
	env := NewEnv(1)

	obs, err := env.Reset()
	require.NoError(t, err)

	assert.Equal(t, float64(0), obs.Reward)
	assert.False(t, obs.Terminal)
	assert.LessOrEqual(t, math.Abs(obs.State.X), 0.05)
	assert.LessOrEqual(t, math.Abs(obs.State.Theta), 0.05)
	assert.Contains(t, obs.Meta, core.MetaPriority)
}

func TestEnvStepRewardsSurvival(t *testing.T) {
	env := NewEnv(1)
	_, err := env.Reset()
	require.NoError(t, err)

	obs, err := env.Step(ActionLeft)
	require.NoError(t, err)
	assert.Equal(t, float64(1), obs.Reward)
}

func TestEnvUnknownAction(t *testing.T) {
	env := NewEnv(1)
	_, err := env.Reset()
	require.NoError(t, err)

	_, err = env.Step(42)
	assert.Error(t, err)
}

func TestEnvTerminatesUnderConstantForce(t *testing.T) {
	env := NewEnv(1)
	_, err := env.Reset()
	require.NoError(t, err)

	// Pushing the cart one way forever must topple the pole.
	for i := 0; i < 500; i++ {
		obs, err := env.Step(ActionRight)
		require.NoError(t, err)
		if obs.Terminal {
			exceeded := math.Abs(obs.State.X) > xThreshold ||
				math.Abs(obs.State.Theta) > thetaThreshold
			assert.True(t, exceeded)
			return
		}
	}
	t.Fatal("episode never terminated")
}

func TestEnvPriorityGrowsTowardThresholds(t *testing.T) {
	env := NewEnv(1)
	start, err := env.Reset()
	require.NoError(t, err)

	var last core.Observation[State]
	for i := 0; i < 500; i++ {
		last, err = env.Step(ActionRight)
		require.NoError(t, err)
		if last.Terminal {
			break
		}
	}
	require.True(t, last.Terminal)
	assert.Greater(t, last.Meta[core.MetaPriority].(float64), start.Meta[core.MetaPriority].(float64))
}

func TestStateHash(t *testing.T) {
	a := State{X: 0.1, Theta: 0.01}
	b := State{X: 0.1, Theta: 0.01}
	c := State{X: -2.0, Theta: 0.01}

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestBand(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{-10, 0},
		{-1, 0},
		{0, 3},
		{0.99, 5},
		{1, 5},
		{10, 5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, band(tc.v, 1, 6), "band(%v)", tc.v)
	}
}
