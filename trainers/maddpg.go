package trainers

import (
	"encoding/json"
	"sort"
	"time"

	"golang.org/x/exp/rand"

	"github.com/aeolab/windfarm-rl-train/types"
)

// MADDPGConfig are the hyperparameters of the per-agent trainer
type MADDPGConfig struct {
	Alpha      float64 // learning rate
	Discount   float64
	Epsilon    float64 // per-agent exploration rate
	ReplaySize int
	BatchSize  int
	Seed       uint64
}

func DefaultMADDPGConfig() MADDPGConfig {
	return MADDPGConfig{
		Alpha:      0.1,
		Discount:   0.99,
		Epsilon:    0.05,
		ReplaySize: 10000,
		BatchSize:  4,
	}
}

// MADDPGTrainer keeps one actor table per agent and a centralized critic
// keyed on the joint state and joint action. Actors act on their local
// observation only; the critic trains on the team reward and the actors
// bootstrap from its value estimates.
type MADDPGTrainer struct {
	cfg    MADDPGConfig
	actors map[string]*QTable
	critic *QTable
	replay *types.ReplayBuffer
	rand   *rand.Rand
}

var _ types.Trainer = &MADDPGTrainer{}

func NewMADDPGTrainer(cfg MADDPGConfig) *MADDPGTrainer {
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return &MADDPGTrainer{
		cfg:    cfg,
		actors: make(map[string]*QTable),
		critic: NewQTable(),
		replay: types.NewReplayBuffer(cfg.ReplaySize, cfg.Seed),
		rand:   rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (m *MADDPGTrainer) Name() string {
	return "maddpg"
}

// actor returns the policy table of one agent, creating it on first use.
// The identifier set is fixed by the environment, so the set of actors
// stabilizes after the first step.
func (m *MADDPGTrainer) actor(id string) *QTable {
	a, ok := m.actors[id]
	if !ok {
		a = NewQTable()
		m.actors[id] = a
	}
	return a
}

func (m *MADDPGTrainer) SelectActions(step int, obs types.JointObservation) (types.JointAction, bool) {
	actions := make(types.JointAction)
	for _, id := range obs.AgentIDs() {
		available := obs[id].Actions()
		if len(available) == 0 {
			return nil, false
		}
		if m.rand.Float64() < m.cfg.Epsilon {
			actions[id] = available[m.rand.Intn(len(available))]
			continue
		}
		hashes := make([]string, len(available))
		byHash := make(map[string]types.Action, len(available))
		for i, a := range available {
			hashes[i] = a.Hash()
			byHash[a.Hash()] = a
		}
		best, _ := m.actor(id).MaxAmong(obs[id].Hash(), hashes, 0)
		if best == "" {
			return nil, false
		}
		actions[id] = byHash[best]
	}
	return actions, true
}

func (m *MADDPGTrainer) Update(sCtx *types.StepContext, tr *types.JointTransition) {
	m.replay.Add(tr)
	for _, sample := range m.replay.Sample(m.cfg.BatchSize) {
		m.learn(sample)
	}
}

func (m *MADDPGTrainer) learn(tr *types.JointTransition) {
	jointS := jointStateHash(tr.Observations)
	jointNS := jointStateHash(tr.NextObservations)
	jointA := jointActionHash(tr.Actions)

	// centralized critic backup on the team reward
	target := tr.TeamReward()
	if !tr.Dones[types.DoneAll] {
		_, nextVal := m.critic.Max(jointNS, 0)
		target += m.cfg.Discount * nextVal
	}
	cur := m.critic.Get(jointS, jointA, 0)
	criticVal := (1-m.cfg.Alpha)*cur + m.cfg.Alpha*target
	m.critic.Set(jointS, jointA, criticVal)

	// each actor regresses its local state-action value towards the critic
	for id, state := range tr.Observations {
		action, ok := tr.Actions[id]
		if !ok {
			continue
		}
		actor := m.actor(id)
		local := actor.Get(state.Hash(), action.Hash(), 0)
		actor.Set(state.Hash(), action.Hash(), (1-m.cfg.Alpha)*local+m.cfg.Alpha*criticVal)
	}
}

func (m *MADDPGTrainer) UpdateEpisode(_ int, _ *types.Trace) {}

func (m *MADDPGTrainer) Snapshot() ([]byte, error) {
	out := map[string]interface{}{
		"trainer": m.Name(),
		"actors":  m.actors,
		"critic":  m.critic,
	}
	return json.Marshal(out)
}

func (m *MADDPGTrainer) Reset() {
	m.actors = make(map[string]*QTable)
	m.critic = NewQTable()
	m.replay.Clear()
}

// jointStateHash concatenates per-agent state hashes in identifier order
func jointStateHash(obs types.JointObservation) string {
	out := ""
	for _, id := range obs.AgentIDs() {
		out += id + "=" + obs[id].Hash() + ";"
	}
	return out
}

// jointActionHash concatenates per-agent action hashes in identifier order
func jointActionHash(actions types.JointAction) string {
	ids := make([]string, 0, len(actions))
	for id := range actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := ""
	for _, id := range ids {
		out += id + "=" + actions[id].Hash() + ";"
	}
	return out
}
