package types

// Agent runs episodes of one trainer against one multi-agent environment
type AgentConfig struct {
	Horizon     int
	Trainer     Trainer
	Environment MultiAgentEnvironment
}

type Agent struct {
	config      *AgentConfig
	trainer     Trainer
	environment MultiAgentEnvironment
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		trainer:     config.Trainer,
		environment: config.Environment,
	}
}

// RunEpisode runs a single episode up to the horizon, filling the trace in
// the episode context. The episode ends early when the environment reports
// that it is done, when an error occurs or when the context is cancelled.
func (a *Agent) RunEpisode(eCtx *EpisodeContext) {
	obs, err := a.environment.Reset(eCtx)
	if err != nil {
		eCtx.SetError(err)
		return
	}

	for step := 0; step < a.config.Horizon; step++ {
		select {
		case <-eCtx.Context.Done():
			return
		default:
		}

		actions, ok := a.trainer.SelectActions(step, obs)
		if !ok {
			break
		}

		sCtx := &StepContext{Step: step, EpisodeContext: eCtx}
		result, err := a.environment.Step(actions, sCtx)
		if err != nil {
			eCtx.SetError(err)
			return
		}

		tr := &JointTransition{
			Step:             step,
			Observations:     obs,
			Actions:          actions,
			Rewards:          result.Rewards,
			NextObservations: result.Observations,
			Dones:            result.Dones,
		}
		a.trainer.Update(sCtx, tr)
		eCtx.Trace.Append(tr)
		eCtx.Timesteps += 1

		if result.Dones[DoneAll] {
			eCtx.Terminated = true
			break
		}
		obs = result.Observations
	}

	if !eCtx.Terminated && eCtx.Err == nil {
		eCtx.HorizonEnd = true
	}
	a.trainer.UpdateEpisode(eCtx.Episode, eCtx.Trace)
}
