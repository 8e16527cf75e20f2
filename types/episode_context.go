package types

import (
	"context"
	"time"
)

// EpisodeContext carries the static info of an episode and collects what
// happened while it ran - the trace, an error or a timeout.
type EpisodeContext struct {
	Context context.Context
	Cancel  context.CancelFunc

	// Episode number within the experiment
	Episode int
	// Horizon of the episode
	Horizon int

	// Trace of the joint transitions taken this episode
	Trace *Trace
	// Valid timesteps executed
	Timesteps int

	// outcome of the episode
	Err         error
	TimedOut    bool
	Terminated  bool // environment reported all done before the horizon
	HorizonEnd  bool
	RunDuration time.Duration
}

// NewEpisodeContext creates the context for a single episode. A zero timeout
// means the episode only stops when the parent context is cancelled.
func NewEpisodeContext(parent context.Context, episode, horizon int, timeout time.Duration) *EpisodeContext {
	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	return &EpisodeContext{
		Context: ctx,
		Cancel:  cancel,
		Episode: episode,
		Horizon: horizon,
		Trace:   NewTrace(),
	}
}

func (e *EpisodeContext) SetError(err error) {
	e.Err = err
}

func (e *EpisodeContext) SetTimedOut() {
	e.TimedOut = true
}

// StepContext wraps the episode context with the current step number
type StepContext struct {
	Step int
	*EpisodeContext
}
