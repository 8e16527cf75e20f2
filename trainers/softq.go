package trainers

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/aeolab/windfarm-rl-train/types"
)

// SoftQConfig are the hyperparameters of the shared soft Q trainer
type SoftQConfig struct {
	Alpha       float64 // learning rate
	Discount    float64
	Temperature float64 // entropy temperature for the softmax
	ReplaySize  int
	BatchSize   int // replayed transitions per environment step
	Seed        uint64
}

func DefaultSoftQConfig() SoftQConfig {
	return SoftQConfig{
		Alpha:       0.1,
		Discount:    0.99,
		Temperature: 0.5,
		ReplaySize:  10000,
		BatchSize:   4,
	}
}

// SoftQTrainer is an entropy-regularized Q learner with one table shared by
// every agent. Actions are sampled from a Boltzmann softmax over the Q
// values and the value backup uses the soft maximum, so higher temperatures
// keep the shared policy more exploratory.
type SoftQTrainer struct {
	cfg    SoftQConfig
	qTable *QTable
	replay *types.ReplayBuffer
	src    rand.Source
}

var _ types.Trainer = &SoftQTrainer{}

func NewSoftQTrainer(cfg SoftQConfig) *SoftQTrainer {
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.5
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return &SoftQTrainer{
		cfg:    cfg,
		qTable: NewQTable(),
		replay: types.NewReplayBuffer(cfg.ReplaySize, cfg.Seed),
		src:    rand.NewSource(cfg.Seed),
	}
}

func (s *SoftQTrainer) Name() string {
	return "sac-shared"
}

func (s *SoftQTrainer) SelectActions(step int, obs types.JointObservation) (types.JointAction, bool) {
	actions := make(types.JointAction)
	for _, id := range obs.AgentIDs() {
		available := obs[id].Actions()
		if len(available) == 0 {
			return nil, false
		}
		a, ok := s.sample(obs[id].Hash(), available)
		if !ok {
			return nil, false
		}
		actions[id] = a
	}
	return actions, true
}

// sample draws one action from softmax(Q(s, .) / temperature)
func (s *SoftQTrainer) sample(stateHash string, available []types.Action) (types.Action, bool) {
	scaled := make([]float64, len(available))
	maxVal := math.Inf(-1)
	for i, a := range available {
		scaled[i] = s.qTable.Get(stateHash, a.Hash(), 0) / s.cfg.Temperature
		if scaled[i] > maxVal {
			maxVal = scaled[i]
		}
	}
	sum := 0.0
	weights := make([]float64, len(available))
	for i, v := range scaled {
		weights[i] = math.Exp(v - maxVal)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	i, ok := sampleuv.NewWeighted(weights, s.src).Take()
	if !ok {
		return nil, false
	}
	return available[i], true
}

func (s *SoftQTrainer) Update(sCtx *types.StepContext, tr *types.JointTransition) {
	s.replay.Add(tr)
	for _, sample := range s.replay.Sample(s.cfg.BatchSize) {
		s.learn(sample)
	}
}

// learn applies the soft backup for every agent transition in the sample
func (s *SoftQTrainer) learn(tr *types.JointTransition) {
	for id, state := range tr.Observations {
		action, ok := tr.Actions[id]
		if !ok {
			continue
		}
		next, ok := tr.NextObservations[id]
		if !ok {
			continue
		}
		target := tr.Rewards[id]
		if !tr.Dones[id] {
			target += s.cfg.Discount * s.softValue(next)
		}
		cur := s.qTable.Get(state.Hash(), action.Hash(), 0)
		s.qTable.Set(state.Hash(), action.Hash(), (1-s.cfg.Alpha)*cur+s.cfg.Alpha*target)
	}
}

// softValue is tau * log sum_a exp(Q(s,a)/tau) over the actions available
// in the state
func (s *SoftQTrainer) softValue(state types.State) float64 {
	available := state.Actions()
	if len(available) == 0 {
		return 0
	}
	maxVal := math.Inf(-1)
	scaled := make([]float64, len(available))
	for i, a := range available {
		scaled[i] = s.qTable.Get(state.Hash(), a.Hash(), 0) / s.cfg.Temperature
		if scaled[i] > maxVal {
			maxVal = scaled[i]
		}
	}
	sum := 0.0
	for _, v := range scaled {
		sum += math.Exp(v - maxVal)
	}
	return s.cfg.Temperature * (maxVal + math.Log(sum))
}

func (s *SoftQTrainer) UpdateEpisode(_ int, _ *types.Trace) {}

func (s *SoftQTrainer) Snapshot() ([]byte, error) {
	out := map[string]interface{}{
		"trainer": s.Name(),
		"q":       s.qTable,
		"config":  fmt.Sprintf("alpha=%v discount=%v temperature=%v", s.cfg.Alpha, s.cfg.Discount, s.cfg.Temperature),
	}
	return json.Marshal(out)
}

func (s *SoftQTrainer) Reset() {
	s.qTable = NewQTable()
	s.replay.Clear()
}
