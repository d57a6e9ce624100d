package core

// MetaPriority is the observation metadata key a prioritized buffer reads
// its priority channel from.
const MetaPriority = "priority"

// Observation is what an environment reports after a reset or a step. The
// reward and terminal flag are the consequence of arriving at State, so a
// reset observation carries a zero reward and a false terminal.
//
// Meta is an open bundle; keys a buffer does not recognize are ignored.
type Observation[S any] struct {
	State    S
	Reward   float64
	Terminal bool

	Meta map[string]interface{}
}
