package types

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/aeolab/windfarm-rl-train/util"
)

type experimentRunConfig struct {
	CurrentRun int
	RunID      string
	Episodes   int
	Horizon    int
	Timeout    time.Duration
	Context    context.Context

	// thresholds to abort the experiment
	ConsecutiveTimeoutsAbort int
	ConsecutiveErrorsAbort   int

	RecordTraces      bool
	RecordCheckpoints bool
	Checkpoints       CheckpointStore

	Analyzers      []Analyzer
	ReportSavePath string
	Tracker        *ProgressTracker
}

// Experiment pairs a named trainer with an environment
type Experiment struct {
	Name        string
	trainer     Trainer
	environment MultiAgentEnvironment
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, trainer Trainer, environment MultiAgentEnvironment) *Experiment {
	return &Experiment{
		Name:        name,
		trainer:     trainer,
		environment: environment,
	}
}

func (e *Experiment) recordTrace(rConfig *experimentRunConfig, trace *Trace) {
	tracesFile := path.Join(rConfig.ReportSavePath, "traces", e.Name+"_"+strconv.Itoa(rConfig.CurrentRun)+".jsonl")
	bs, err := json.Marshal(trace)
	if err != nil {
		return
	}
	util.AppendToFile(tracesFile, string(bs))
}

// Run the experiment for the configured number of episodes, feeding every
// trace to the analyzers
func (e *Experiment) Run(rConfig *experimentRunConfig) {
	select {
	case <-rConfig.Context.Done():
		return
	default:
	}

	agent := NewAgent(&AgentConfig{
		Horizon:     rConfig.Horizon,
		Trainer:     e.trainer,
		Environment: e.environment,
	})

	totalTimesteps := 0
	totalErrors := 0
	totalTimeouts := 0
	consecutiveErrors := 0
	consecutiveTimeouts := 0
	rewardWindow := util.NewRolling(20)

	for episode := 0; episode < rConfig.Episodes; episode++ {
		select {
		case <-rConfig.Context.Done():
			return
		default:
		}

		eCtx := NewEpisodeContext(rConfig.Context, episode, rConfig.Horizon, rConfig.Timeout)
		e.runEpisode(eCtx, agent)

		totalTimesteps += eCtx.Timesteps

		if eCtx.TimedOut {
			totalTimeouts += 1
			consecutiveTimeouts += 1
		} else {
			consecutiveTimeouts = 0
		}
		if eCtx.Err != nil {
			totalErrors += 1
			consecutiveErrors += 1
		} else {
			consecutiveErrors = 0
		}

		if eCtx.Err == nil && !eCtx.TimedOut {
			rewardWindow.Add(episodeTeamReward(eCtx.Trace))
		}

		if rConfig.RecordTraces {
			e.recordTrace(rConfig, eCtx.Trace)
		}

		// analyze the trace, even if the episode timed out or failed
		for _, a := range rConfig.Analyzers {
			a.Analyze(rConfig.CurrentRun, episode, e.Name, eCtx.Trace)
		}

		if rConfig.Tracker != nil {
			rConfig.Tracker.Set(ExperimentStatus{
				Name:       e.Name,
				Run:        rConfig.CurrentRun,
				Episode:    episode + 1,
				Episodes:   rConfig.Episodes,
				Timesteps:  totalTimesteps,
				Errors:     totalErrors,
				Timeouts:   totalTimeouts,
				MeanReward: rewardWindow.Mean(),
				Running:    true,
			})
		}

		if consecutiveTimeouts >= rConfig.ConsecutiveTimeoutsAbort {
			fmt.Printf("\nAborting experiment %s : %d consecutive timeouts\n", e.Name, consecutiveTimeouts)
			break
		}
		if consecutiveErrors >= rConfig.ConsecutiveErrorsAbort {
			fmt.Printf("\nAborting experiment %s : %d consecutive errors\n", e.Name, consecutiveErrors)
			break
		}
	}

	if rConfig.RecordCheckpoints && rConfig.Checkpoints != nil {
		if data, err := e.trainer.Snapshot(); err == nil {
			key := rConfig.RunID + "/" + e.Name + "/run_" + strconv.Itoa(rConfig.CurrentRun)
			if err := rConfig.Checkpoints.Put(key, data); err != nil {
				fmt.Printf("\nFailed to store checkpoint for %s: %v\n", e.Name, err)
			}
		}
	}

	if rConfig.Tracker != nil {
		statuses := rConfig.Tracker.Snapshot()
		for _, s := range statuses {
			if s.Name == e.Name {
				s.Running = false
				rConfig.Tracker.Set(s)
			}
		}
	}
}

// mean per-step team reward of an episode
func episodeTeamReward(trace *Trace) float64 {
	if trace.Len() == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < trace.Len(); i++ {
		tr, _ := trace.Get(i)
		sum += tr.TeamReward()
	}
	return sum / float64(trace.Len())
}

func (e *Experiment) runEpisode(eCtx *EpisodeContext, agent *Agent) {
	done := make(chan struct{})

	go func() {
		defer func() {
			if r := recover(); r != nil {
				eCtx.SetError(fmt.Errorf("%v", r))
			}
			close(done)
		}()
		start := time.Now()
		agent.RunEpisode(eCtx)
		eCtx.RunDuration = time.Since(start)
	}()

	select {
	case <-eCtx.Context.Done():
		if deadline, ok := eCtx.Context.Deadline(); ok && time.Now().After(deadline) {
			eCtx.SetTimedOut()
		}
		<-done
	case <-done:
	}
	eCtx.Cancel()
}

// Reset cleans the trainer state between runs
func (e *Experiment) Reset() {
	e.trainer.Reset()
}

// Generic Dataset that contains information after processing the traces
type DataSet interface{}

// Analyzer compresses the information in the traces to a DataSet
type Analyzer interface {
	Analyze(run, episode int, experiment string, trace *Trace)
	DataSet() DataSet
	Reset()
}

// Comparator differentiates between datasets with associated experiment names
type Comparator func(run int, names []string, datasets []DataSet)

func NoopComparator() Comparator {
	return func(int, []string, []DataSet) {}
}

// ComparisonConfig contains the configuration for the comparison
type ComparisonConfig struct {
	Runs     int
	Episodes int
	Horizon  int

	RecordPath     string
	EpisodeTimeout time.Duration

	ConsecutiveTimeoutsAbort int
	ConsecutiveErrorsAbort   int

	RecordTraces      bool
	RecordCheckpoints bool
	Checkpoints       CheckpointStore

	Tracker       *ProgressTracker
	PrintProgress bool
}

// Comparison runs the experiments and compares the analyzed datasets
type Comparison struct {
	Experiments []*Experiment
	ID          string

	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	cConfig     *ComparisonConfig
}

// NewComparison creates a comparison instance and prepares the record folders
func NewComparison(config *ComparisonConfig) *Comparison {
	if config.ConsecutiveErrorsAbort == 0 {
		config.ConsecutiveErrorsAbort = 10
	}
	if config.ConsecutiveTimeoutsAbort == 0 {
		config.ConsecutiveTimeoutsAbort = 10
	}
	if config.Tracker == nil {
		config.Tracker = NewProgressTracker()
	}

	os.MkdirAll(config.RecordPath, 0755)
	if config.RecordTraces {
		os.MkdirAll(path.Join(config.RecordPath, "traces"), 0755)
	}

	return &Comparison{
		Experiments: make([]*Experiment, 0),
		ID:          uuid.NewString(),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		cConfig:     config,
	}
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// Tracker exposes the live progress, e.g. to the monitor server
func (c *Comparison) Tracker() *ProgressTracker {
	return c.cConfig.Tracker
}

// record the configuration of the comparison
func (c *Comparison) recordConfig() {
	cfg := c.cConfig
	f, err := os.Create(path.Join(cfg.RecordPath, "comparison_config.json"))
	if err != nil {
		return
	}
	defer f.Close()

	out := make(map[string]interface{})
	out["id"] = c.ID
	out["runs"] = cfg.Runs
	out["episodes"] = cfg.Episodes
	out["horizon"] = cfg.Horizon
	out["record_traces"] = cfg.RecordTraces
	out["record_checkpoints"] = cfg.RecordCheckpoints
	if cfg.EpisodeTimeout != 0 {
		out["episode_timeout"] = cfg.EpisodeTimeout.String()
	}

	experiments := make([]string, 0)
	for _, e := range c.Experiments {
		experiments = append(experiments, e.Name)
	}
	out["experiments"] = experiments

	analyzers := make([]string, 0)
	for name := range c.analyzers {
		analyzers = append(analyzers, name)
	}
	out["analyzers"] = analyzers

	bs, err := json.Marshal(out)
	if err != nil {
		return
	}
	f.Write(bs)
}

// Run the comparison
func (c *Comparison) Run(ctx context.Context) {
	c.recordConfig()

	var printer *ProgressPrinter
	if c.cConfig.PrintProgress {
		printer = NewProgressPrinter(ctx, c.cConfig.Tracker, len(c.Experiments), time.Second)
		printer.Start()
		defer printer.Stop()
	}

	for run := 0; run < c.cConfig.Runs; run++ {
		fmt.Printf("Run %d\n", run+1)
		datasets := make(map[string][]DataSet)
		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}

		names := make([]string, len(c.Experiments))
		for i, e := range c.Experiments {
			select {
			case <-ctx.Done():
				return
			default:
			}
			e.Run(c.prepareRunConfig(ctx, run))
			for name, a := range c.analyzers {
				datasets[name][i] = a.DataSet()
				a.Reset()
			}
			names[i] = e.Name
			e.Reset()
		}
		for name, comp := range c.comparators {
			if comp != nil {
				comp(run, names, datasets[name])
			}
		}
	}
}

// prepare the run configuration for the experiment
func (c *Comparison) prepareRunConfig(ctx context.Context, run int) *experimentRunConfig {
	rCfg := &experimentRunConfig{
		CurrentRun: run,
		RunID:      c.ID,
		Episodes:   c.cConfig.Episodes,
		Horizon:    c.cConfig.Horizon,
		Timeout:    c.cConfig.EpisodeTimeout,
		Context:    ctx,

		ConsecutiveTimeoutsAbort: c.cConfig.ConsecutiveTimeoutsAbort,
		ConsecutiveErrorsAbort:   c.cConfig.ConsecutiveErrorsAbort,

		RecordTraces:      c.cConfig.RecordTraces,
		RecordCheckpoints: c.cConfig.RecordCheckpoints,
		Checkpoints:       c.cConfig.Checkpoints,

		Analyzers:      make([]Analyzer, 0),
		ReportSavePath: c.cConfig.RecordPath,
		Tracker:        c.cConfig.Tracker,
	}
	for _, a := range c.analyzers {
		rCfg.Analyzers = append(rCfg.Analyzers, a)
	}
	return rCfg
}
