package cartpole

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/zeu5/nstep-replay/collect"
	"github.com/zeu5/nstep-replay/core"
)

const (
	gravity        = 9.81
	massCart       = 1.0
	massPole       = 0.1
	poleLength     = 0.5
	totalMass      = massCart + massPole
	poleMassLength = massPole * poleLength
	forceMax       = 10.0
	tau            = 0.02

	xThreshold     = 2.4
	thetaThreshold = 12.0 * math.Pi / 180.0
)

const (
	ActionLeft = iota
	ActionRight
)

var Actions = []int{ActionLeft, ActionRight}

type State struct {
	X        float64 `json:"x"`
	XDot     float64 `json:"x_dot"`
	Theta    float64 `json:"theta"`
	ThetaDot float64 `json:"theta_dot"`
}

// Hash discretizes the state into coarse bands, giving tabular policies a
// finite key space.
func (s State) Hash() string {
	return fmt.Sprintf("%d:%d:%d:%d",
		band(s.X, xThreshold, 6),
		band(s.XDot, 3.0, 6),
		band(s.Theta, thetaThreshold, 8),
		band(s.ThetaDot, 3.0, 8),
	)
}

func band(v, limit float64, buckets int) int {
	if v <= -limit {
		return 0
	}
	if v >= limit {
		return buckets - 1
	}
	return int((v + limit) / (2 * limit) * float64(buckets))
}

// Env is the classic cartpole balancing task. Each surviving step earns a
// reward of 1; the episode terminates when the cart leaves the track or the
// pole falls past the angle threshold.
type Env struct {
	state State
	rand  *rand.Rand
}

var _ collect.Environment[State, int] = &Env{}

func NewEnv(seed int64) *Env {
	return &Env{
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (e *Env) Reset() (core.Observation[State], error) {
	e.state = State{
		X:        e.rand.Float64()*0.1 - 0.05,
		XDot:     e.rand.Float64()*0.1 - 0.05,
		Theta:    e.rand.Float64()*0.1 - 0.05,
		ThetaDot: e.rand.Float64()*0.1 - 0.05,
	}
	return core.Observation[State]{
		State: e.state,
		Meta:  e.meta(),
	}, nil
}

func (e *Env) Step(action int) (core.Observation[State], error) {
	if action != ActionLeft && action != ActionRight {
		return core.Observation[State]{}, fmt.Errorf("unknown action %d", action)
	}
	force := forceMax
	if action == ActionLeft {
		force = -forceMax
	}

	x := e.state.X
	xDot := e.state.XDot
	theta := e.state.Theta
	thetaDot := e.state.ThetaDot

	cosTheta := math.Cos(theta)
	sinTheta := math.Sin(theta)

	temp := (force + poleMassLength*thetaDot*thetaDot*sinTheta) / totalMass
	thetaAcc := (gravity*sinTheta - cosTheta*temp) / (poleLength * (4.0/3.0 - massPole*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thetaAcc*cosTheta/totalMass

	e.state = State{
		X:        x + tau*xDot,
		XDot:     xDot + tau*xAcc,
		Theta:    theta + tau*thetaDot,
		ThetaDot: thetaDot + tau*thetaAcc,
	}

	terminal := math.Abs(e.state.X) > xThreshold || math.Abs(e.state.Theta) > thetaThreshold
	return core.Observation[State]{
		State:    e.state,
		Reward:   1.0,
		Terminal: terminal,
		Meta:     e.meta(),
	}, nil
}

// meta reports a crude novelty weight for prioritized buffers: states near
// the failure thresholds are rarer under a balancing policy.
func (e *Env) meta() map[string]interface{} {
	priority := 1.0 +
		math.Abs(e.state.Theta)/thetaThreshold +
		math.Abs(e.state.X)/xThreshold
	return map[string]interface{}{
		core.MetaPriority: priority,
	}
}
