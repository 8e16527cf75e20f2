package types

import "fmt"

// minimal state and action implementations for tests

type testAction struct {
	name string
}

func (a *testAction) Hash() string { return a.name }

var (
	actA = &testAction{"a"}
	actB = &testAction{"b"}
)

type testState struct {
	id      string
	actions []Action
}

func (s *testState) Hash() string           { return s.id }
func (s *testState) Actions() []Action      { return s.actions }
func (s *testState) Observation() []float64 { return []float64{0} }

func newTestState(id string) *testState {
	return &testState{id: id, actions: []Action{actA, actB}}
}

// fakeMultiEnv is a deterministic multi-agent environment that reports done
// for every agent after a fixed number of steps
type fakeMultiEnv struct {
	ids       []string
	doneAfter int
	steps     int
	resets    int
}

var _ MultiAgentEnvironment = &fakeMultiEnv{}

func newFakeMultiEnv(n, doneAfter int) *fakeMultiEnv {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("turbine_%d", i)
	}
	return &fakeMultiEnv{ids: ids, doneAfter: doneAfter}
}

func (f *fakeMultiEnv) AgentIDs() []string {
	return f.ids
}

func (f *fakeMultiEnv) Spaces() Spaces {
	return Spaces{}
}

func (f *fakeMultiEnv) Reset(_ *EpisodeContext) (JointObservation, error) {
	f.steps = 0
	f.resets += 1
	obs := make(JointObservation)
	for _, id := range f.ids {
		obs[id] = newTestState(id + "_s0")
	}
	return obs, nil
}

func (f *fakeMultiEnv) Step(actions JointAction, _ *StepContext) (*JointStep, error) {
	for _, id := range f.ids {
		if _, ok := actions[id]; !ok {
			return nil, fmt.Errorf("missing action for agent %s", id)
		}
	}
	f.steps += 1
	result := &JointStep{
		Observations: make(JointObservation),
		Rewards:      make(JointReward),
		Dones:        make(JointDone),
		Infos:        make(JointInfo),
	}
	done := f.steps >= f.doneAfter
	for _, id := range f.ids {
		result.Observations[id] = newTestState(fmt.Sprintf("%s_s%d", id, f.steps))
		result.Rewards[id] = 1.0
		result.Dones[id] = done
		result.Infos[id] = map[string]interface{}{}
	}
	result.Dones[DoneAll] = result.Dones.Any()
	return result, nil
}
