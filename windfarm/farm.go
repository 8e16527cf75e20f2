package windfarm

import (
	"fmt"

	"github.com/aeolab/windfarm-rl-train/types"
)

// FarmEnv presents N independent single-turbine simulators as one
// multi-agent environment. Agent identifiers are "turbine_<i>" and are fixed
// at construction, as are the shared observation and action spaces.
//
// Resets and steps are sequential and synchronous: every call mutates the
// internal state of all N sub-environments. There is no partial-failure
// handling, a single sub-environment error aborts the whole call.
type FarmEnv struct {
	cfg      FarmConfig
	ids      []string
	turbines map[string]types.Environment
	spaces   types.Spaces
}

var _ types.MultiAgentEnvironment = &FarmEnv{}

// NewFarmEnv builds the joint environment. The single-environment
// configuration is forwarded to every turbine; when a base seed is set, each
// instance derives its own seed from it so the simulators stay independent
// but reproducible. Construction fails if any sub-environment reports spaces
// different from the first.
func NewFarmEnv(cfg FarmConfig) (*FarmEnv, error) {
	if cfg.NumTurbines < 0 {
		return nil, fmt.Errorf("invalid turbine count %d", cfg.NumTurbines)
	}
	if cfg.NumTurbines == 0 {
		cfg.NumTurbines = DefaultNumTurbines
	}

	f := &FarmEnv{
		cfg:      cfg,
		ids:      make([]string, cfg.NumTurbines),
		turbines: make(map[string]types.Environment, cfg.NumTurbines),
	}
	for i := 0; i < cfg.NumTurbines; i++ {
		id := fmt.Sprintf("turbine_%d", i)
		subCfg := cfg.SingleEnv
		if subCfg.Seed != 0 {
			subCfg.Seed = subCfg.Seed + int64(i)
		}
		env := NewTurbineEnv(subCfg)
		if i == 0 {
			f.spaces = env.Spaces()
		} else if !env.Spaces().Eq(f.spaces) {
			return nil, fmt.Errorf("agent %s: observation/action spaces differ from turbine_0", id)
		}
		f.ids[i] = id
		f.turbines[id] = env
	}
	return f, nil
}

func (f *FarmEnv) AgentIDs() []string {
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out
}

func (f *FarmEnv) Spaces() types.Spaces {
	return f.spaces
}

// Reset resets every sub-environment independently and returns the mapping
// from identifier to initial observation
func (f *FarmEnv) Reset(_ *types.EpisodeContext) (types.JointObservation, error) {
	obs := make(types.JointObservation, len(f.ids))
	for _, id := range f.ids {
		s, err := f.turbines[id].Reset()
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", id, err)
		}
		obs[id] = s
	}
	return obs, nil
}

// Step advances every sub-environment by exactly one step. The action
// mapping must contain exactly one entry per agent; anything else is an
// error before any sub-environment is touched.
func (f *FarmEnv) Step(actions types.JointAction, sCtx *types.StepContext) (*types.JointStep, error) {
	if err := f.checkActions(actions); err != nil {
		return nil, err
	}

	result := &types.JointStep{
		Observations: make(types.JointObservation, len(f.ids)),
		Rewards:      make(types.JointReward, len(f.ids)),
		Dones:        make(types.JointDone, len(f.ids)+1),
		Infos:        make(types.JointInfo, len(f.ids)),
	}
	for _, id := range f.ids {
		s, reward, done, info, err := f.turbines[id].Step(actions[id], sCtx)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", id, err)
		}
		result.Observations[id] = s
		result.Rewards[id] = reward
		result.Dones[id] = done
		result.Infos[id] = info
	}
	if f.cfg.DoneOnAll {
		result.Dones[types.DoneAll] = result.Dones.All()
	} else {
		result.Dones[types.DoneAll] = result.Dones.Any()
	}
	return result, nil
}

func (f *FarmEnv) checkActions(actions types.JointAction) error {
	for _, id := range f.ids {
		if _, ok := actions[id]; !ok {
			return fmt.Errorf("missing action for agent %s", id)
		}
	}
	if len(actions) != len(f.ids) {
		for id := range actions {
			if _, ok := f.turbines[id]; !ok {
				return fmt.Errorf("action for unknown agent %s", id)
			}
		}
	}
	return nil
}
