package windfarm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aeolab/windfarm-rl-train/types"
)

func testFarmConfig(n int) FarmConfig {
	cfg := DefaultFarmConfig()
	cfg.NumTurbines = n
	cfg.SingleEnv.Seed = 42
	cfg.SingleEnv.MaxSteps = 50
	return cfg
}

func holdActions(ids []string) types.JointAction {
	actions := make(types.JointAction)
	for _, id := range ids {
		actions[id] = YawHold
	}
	return actions
}

func TestFarmAgentIDs(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		farm, err := NewFarmEnv(testFarmConfig(n))
		if err != nil {
			t.Fatalf("unexpected error for %d turbines: %v", n, err)
		}
		ids := farm.AgentIDs()
		if len(ids) != n {
			t.Errorf("expected %d agents, got %d", n, len(ids))
		}
		seen := make(map[string]bool)
		for _, id := range ids {
			if seen[id] {
				t.Errorf("duplicate agent id %s", id)
			}
			seen[id] = true
		}
		for i := 0; i < n; i++ {
			if !seen[fmt.Sprintf("turbine_%d", i)] {
				t.Errorf("missing agent id turbine_%d", i)
			}
		}
	}
}

func TestFarmDefaultTurbineCount(t *testing.T) {
	cfg := testFarmConfig(0)
	farm, err := NewFarmEnv(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(farm.AgentIDs()) != DefaultNumTurbines {
		t.Errorf("expected %d agents by default, got %d", DefaultNumTurbines, len(farm.AgentIDs()))
	}
}

func TestFarmNegativeTurbineCount(t *testing.T) {
	if _, err := NewFarmEnv(testFarmConfig(-1)); err == nil {
		t.Errorf("expected an error for a negative turbine count")
	}
}

func TestFarmResetKeySet(t *testing.T) {
	farm, err := NewFarmEnv(testFarmConfig(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obs, err := farm.Reset(nil)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if len(obs) != 4 {
		t.Errorf("expected 4 observations, got %d", len(obs))
	}
	for _, id := range farm.AgentIDs() {
		if _, ok := obs[id]; !ok {
			t.Errorf("reset observation missing agent %s", id)
		}
	}
}

func TestFarmStepKeySets(t *testing.T) {
	farm, err := NewFarmEnv(testFarmConfig(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := farm.Reset(nil); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	result, err := farm.Step(holdActions(farm.AgentIDs()), nil)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	for _, id := range farm.AgentIDs() {
		if _, ok := result.Observations[id]; !ok {
			t.Errorf("observations missing agent %s", id)
		}
		if _, ok := result.Rewards[id]; !ok {
			t.Errorf("rewards missing agent %s", id)
		}
		if _, ok := result.Dones[id]; !ok {
			t.Errorf("dones missing agent %s", id)
		}
		if _, ok := result.Infos[id]; !ok {
			t.Errorf("infos missing agent %s", id)
		}
	}
	if len(result.Observations) != 3 || len(result.Rewards) != 3 || len(result.Infos) != 3 {
		t.Errorf("unexpected mapping sizes")
	}
	if _, ok := result.Dones[types.DoneAll]; !ok {
		t.Errorf("done mapping missing the %s key", types.DoneAll)
	}
	if len(result.Dones) != 4 {
		t.Errorf("expected 3 per-agent done flags plus %s, got %d entries", types.DoneAll, len(result.Dones))
	}
}

func TestFarmStepMissingAction(t *testing.T) {
	farm, err := NewFarmEnv(testFarmConfig(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := farm.Reset(nil); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	actions := holdActions(farm.AgentIDs())
	delete(actions, "turbine_1")
	_, err = farm.Step(actions, nil)
	if err == nil {
		t.Fatalf("expected an error for a missing action")
	}
	if !strings.Contains(err.Error(), "turbine_1") {
		t.Errorf("error should name the missing agent, got: %v", err)
	}
}

func TestFarmStepUnknownAgent(t *testing.T) {
	farm, err := NewFarmEnv(testFarmConfig(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := farm.Reset(nil); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	actions := holdActions(farm.AgentIDs())
	actions["turbine_99"] = YawHold
	_, err = farm.Step(actions, nil)
	if err == nil {
		t.Fatalf("expected an error for an unknown agent")
	}
	if !strings.Contains(err.Error(), "turbine_99") {
		t.Errorf("error should name the unknown agent, got: %v", err)
	}
}

func TestFarmEpisodeEndsAtHorizon(t *testing.T) {
	cfg := testFarmConfig(3)
	cfg.SingleEnv.MaxSteps = 1
	farm, err := NewFarmEnv(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := farm.Reset(nil); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	result, err := farm.Step(holdActions(farm.AgentIDs()), nil)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	for _, id := range farm.AgentIDs() {
		if !result.Dones[id] {
			t.Errorf("agent %s should be done after its horizon", id)
		}
	}
	if !result.Dones[types.DoneAll] {
		t.Errorf("%s should be true when every agent is done", types.DoneAll)
	}
}

func TestFarmResetAfterEpisode(t *testing.T) {
	cfg := testFarmConfig(3)
	cfg.SingleEnv.MaxSteps = 2
	farm, err := NewFarmEnv(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := farm.Reset(nil); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := farm.Step(holdActions(farm.AgentIDs()), nil); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	obs, err := farm.Reset(nil)
	if err != nil {
		t.Fatalf("reset after episode failed: %v", err)
	}
	if len(obs) != 3 {
		t.Errorf("expected 3 observations after reset, got %d", len(obs))
	}
	for _, id := range farm.AgentIDs() {
		if _, ok := obs[id]; !ok {
			t.Errorf("reset observation missing agent %s", id)
		}
	}

	// the fresh episode steps normally again
	result, err := farm.Step(holdActions(farm.AgentIDs()), nil)
	if err != nil {
		t.Fatalf("step after reset failed: %v", err)
	}
	for _, id := range farm.AgentIDs() {
		if result.Dones[id] {
			t.Errorf("agent %s should not be done on the first step of a fresh episode", id)
		}
	}
}

func TestFarmSharedSpaces(t *testing.T) {
	farm, err := NewFarmEnv(testFarmConfig(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spaces := farm.Spaces()
	if spaces.Observation.Dim() != 3 {
		t.Errorf("expected a 3-dimensional observation space, got %d", spaces.Observation.Dim())
	}
	if spaces.Action.N != len(AllYawActions) {
		t.Errorf("expected %d actions, got %d", len(AllYawActions), spaces.Action.N)
	}
}
