package trainers

import (
	"github.com/aeolab/windfarm-rl-train/types"
)

type stubAction struct {
	name string
}

func (a *stubAction) Hash() string { return a.name }

var (
	left  = &stubAction{"left"}
	right = &stubAction{"right"}
)

type stubState struct {
	id string
}

func (s *stubState) Hash() string            { return s.id }
func (s *stubState) Actions() []types.Action { return []types.Action{left, right} }
func (s *stubState) Observation() []float64  { return []float64{0} }

// transition where both agents took the given action and got the reward
func stubTransition(action *stubAction, reward float64, done bool) *types.JointTransition {
	dones := types.JointDone{"turbine_0": done, "turbine_1": done}
	dones[types.DoneAll] = dones.Any()
	return &types.JointTransition{
		Step: 0,
		Observations: types.JointObservation{
			"turbine_0": &stubState{"s0"},
			"turbine_1": &stubState{"s1"},
		},
		Actions: types.JointAction{
			"turbine_0": action,
			"turbine_1": action,
		},
		Rewards: types.JointReward{
			"turbine_0": reward,
			"turbine_1": reward,
		},
		NextObservations: types.JointObservation{
			"turbine_0": &stubState{"ns0"},
			"turbine_1": &stubState{"ns1"},
		},
		Dones: dones,
	}
}
