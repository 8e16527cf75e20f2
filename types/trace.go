package types

import "encoding/json"

// JointTransition is one synchronized advance of all sub-environments
type JointTransition struct {
	Step             int
	Observations     JointObservation
	Actions          JointAction
	Rewards          JointReward
	NextObservations JointObservation
	Dones            JointDone
}

// TeamReward is the mean of the per-agent rewards
func (t *JointTransition) TeamReward() float64 {
	if len(t.Rewards) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range t.Rewards {
		sum += r
	}
	return sum / float64(len(t.Rewards))
}

// Trace of an episode as a sequence of joint transitions
type Trace struct {
	transitions []*JointTransition
}

func NewTrace() *Trace {
	return &Trace{
		transitions: make([]*JointTransition, 0),
	}
}

func (t *Trace) Append(tr *JointTransition) {
	t.transitions = append(t.transitions, tr)
}

func (t *Trace) Len() int {
	return len(t.transitions)
}

func (t *Trace) Get(i int) (*JointTransition, bool) {
	if i < 0 || i >= len(t.transitions) {
		return nil, false
	}
	return t.transitions[i], true
}

func (t *Trace) Last() (*JointTransition, bool) {
	if len(t.transitions) == 0 {
		return nil, false
	}
	return t.transitions[len(t.transitions)-1], true
}

// serialized form of a transition, states and actions keyed by their hashes
type transitionRecord struct {
	Step    int                `json:"step"`
	Obs     map[string]string  `json:"obs"`
	Actions map[string]string  `json:"actions"`
	Rewards map[string]float64 `json:"rewards"`
	NextObs map[string]string  `json:"next_obs"`
	Dones   map[string]bool    `json:"dones"`
}

func (t *JointTransition) MarshalJSON() ([]byte, error) {
	rec := transitionRecord{
		Step:    t.Step,
		Obs:     make(map[string]string),
		Actions: make(map[string]string),
		Rewards: t.Rewards,
		NextObs: make(map[string]string),
		Dones:   t.Dones,
	}
	for id, s := range t.Observations {
		rec.Obs[id] = s.Hash()
	}
	for id, a := range t.Actions {
		rec.Actions[id] = a.Hash()
	}
	for id, s := range t.NextObservations {
		rec.NextObs[id] = s.Hash()
	}
	return json.Marshal(rec)
}

func (t *Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.transitions)
}
