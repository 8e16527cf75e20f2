package types

import "sort"

// DoneAll is the derived key in a joint done mapping. It is set by the
// environment and must never clash with an agent identifier.
const DoneAll = "__all__"

type JointObservation map[string]State

type JointAction map[string]Action

type JointReward map[string]float64

// JointDone maps agent identifiers to their done flags plus the DoneAll key
type JointDone map[string]bool

type JointInfo map[string]map[string]interface{}

// AgentIDs returns the identifiers present in the observation, sorted
func (o JointObservation) AgentIDs() []string {
	ids := make([]string, 0, len(o))
	for id := range o {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Any reports whether at least one per-agent flag is set. DoneAll is skipped.
func (d JointDone) Any() bool {
	for id, done := range d {
		if id == DoneAll {
			continue
		}
		if done {
			return true
		}
	}
	return false
}

// All reports whether every per-agent flag is set. DoneAll is skipped.
func (d JointDone) All() bool {
	for id, done := range d {
		if id == DoneAll {
			continue
		}
		if !done {
			return false
		}
	}
	return true
}

// JointStep is the result of advancing every sub-environment by one step
type JointStep struct {
	Observations JointObservation
	Rewards      JointReward
	Dones        JointDone
	Infos        JointInfo
}

// MultiAgentEnvironment presents N independent single-agent simulators as
// one environment keyed by stable agent identifiers. The identifier set is
// fixed at construction.
type MultiAgentEnvironment interface {
	// Stable agent identifiers, in a fixed order
	AgentIDs() []string
	// Reset every sub-environment and return the initial joint observation
	Reset(*EpisodeContext) (JointObservation, error)
	// Advance every sub-environment by exactly one step. The action mapping
	// must contain exactly one entry per agent.
	Step(JointAction, *StepContext) (*JointStep, error)
	// Shared space descriptions of the homogeneous sub-environments
	Spaces() Spaces
}
