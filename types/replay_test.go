package types

import "testing"

func makeTransition(step int) *JointTransition {
	return &JointTransition{
		Step: step,
		Observations: JointObservation{
			"turbine_0": newTestState("s"),
		},
		Actions: JointAction{"turbine_0": actA},
		Rewards: JointReward{"turbine_0": 1.0},
		NextObservations: JointObservation{
			"turbine_0": newTestState("ns"),
		},
		Dones: JointDone{"turbine_0": false},
	}
}

func TestReplayBufferCapacity(t *testing.T) {
	buf := NewReplayBuffer(3, 1)
	if buf.Len() != 0 {
		t.Errorf("new buffer should be empty")
	}
	for i := 0; i < 5; i++ {
		buf.Add(makeTransition(i))
	}
	if buf.Len() != 3 {
		t.Errorf("expected length 3 after overfilling, got %d", buf.Len())
	}
}

func TestReplayBufferSample(t *testing.T) {
	buf := NewReplayBuffer(10, 1)
	if got := buf.Sample(4); got != nil {
		t.Errorf("sampling an empty buffer should return nil")
	}

	buf.Add(makeTransition(0))
	buf.Add(makeTransition(1))
	samples := buf.Sample(6)
	if len(samples) != 6 {
		t.Errorf("expected 6 samples with replacement, got %d", len(samples))
	}
	for i, s := range samples {
		if s == nil {
			t.Errorf("nil sample at %d", i)
		}
	}
}

func TestReplayBufferClear(t *testing.T) {
	buf := NewReplayBuffer(4, 1)
	buf.Add(makeTransition(0))
	buf.Clear()
	if buf.Len() != 0 {
		t.Errorf("expected empty buffer after clear, got %d", buf.Len())
	}
}

func TestTeamReward(t *testing.T) {
	tr := &JointTransition{
		Rewards: JointReward{"turbine_0": 2.0, "turbine_1": 4.0},
	}
	if got := tr.TeamReward(); got != 3.0 {
		t.Errorf("expected team reward 3.0, got %f", got)
	}
	empty := &JointTransition{Rewards: JointReward{}}
	if got := empty.TeamReward(); got != 0 {
		t.Errorf("expected zero team reward for no agents, got %f", got)
	}
}
