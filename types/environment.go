package types

// State of a single sub-environment that policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Actions possible from the state
	Actions() []Action
	// Fixed-shape numeric view of the state
	Observation() []float64
}

// An Action that a policy can take for one agent
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}

// Environment is one independent single-agent simulator.
// Step follows the gym convention: next state, reward, done flag and
// auxiliary info for the transition.
type Environment interface {
	Reset() (State, error)
	Step(Action, *StepContext) (State, float64, bool, map[string]interface{}, error)
	// Observation and action space descriptions, fixed after construction
	Spaces() Spaces
}
