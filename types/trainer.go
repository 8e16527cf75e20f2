package types

import (
	"time"

	"golang.org/x/exp/rand"
)

// Trainer decides one action per agent each step and learns from the
// resulting joint transitions. A trainer may control every agent with one
// shared policy or keep a separate policy per agent.
type Trainer interface {
	Name() string
	// One action per agent in the observation. False when no action can be
	// selected for some agent.
	SelectActions(step int, obs JointObservation) (JointAction, bool)
	// Online update from a single joint transition
	Update(sCtx *StepContext, tr *JointTransition)
	// Update at the end of an episode with the full trace
	UpdateEpisode(episode int, trace *Trace)
	// Serialized policy state for checkpointing
	Snapshot() ([]byte, error)
	Reset()
}

// CheckpointStore is where experiment runs persist trainer snapshots
type CheckpointStore interface {
	Put(key string, data []byte) error
}

// RandomTrainer picks uniformly among the available actions of each agent.
// Baseline for every comparison.
type RandomTrainer struct {
	rand *rand.Rand
}

var _ Trainer = &RandomTrainer{}

func NewRandomTrainer() *RandomTrainer {
	return &RandomTrainer{
		rand: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (r *RandomTrainer) Name() string {
	return "random"
}

func (r *RandomTrainer) SelectActions(step int, obs JointObservation) (JointAction, bool) {
	actions := make(JointAction)
	for _, id := range obs.AgentIDs() {
		available := obs[id].Actions()
		if len(available) == 0 {
			return nil, false
		}
		actions[id] = available[r.rand.Intn(len(available))]
	}
	return actions, true
}

func (r *RandomTrainer) Update(_ *StepContext, _ *JointTransition) {}

func (r *RandomTrainer) UpdateEpisode(_ int, _ *Trace) {}

func (r *RandomTrainer) Snapshot() ([]byte, error) {
	return []byte("{}"), nil
}

func (r *RandomTrainer) Reset() {}
