package types

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// ExperimentStatus is the live state of one experiment, also served by the
// monitor endpoint
type ExperimentStatus struct {
	Name       string  `json:"name"`
	Run        int     `json:"run"`
	Episode    int     `json:"episode"`
	Episodes   int     `json:"episodes"`
	Timesteps  int     `json:"timesteps"`
	Errors     int     `json:"errors"`
	Timeouts   int     `json:"timeouts"`
	MeanReward float64 `json:"mean_reward"`
	Running    bool    `json:"running"`
}

func (s ExperimentStatus) String() string {
	return fmt.Sprintf("Exp:%s, Run:%d, Eps:%d/%d, TSteps:%d, Err:%d, TOut:%d, MeanRwd:%8.3f",
		s.Name, s.Run+1, s.Episode, s.Episodes, s.Timesteps, s.Errors, s.Timeouts, s.MeanReward)
}

// ProgressTracker holds the status of every experiment in a comparison.
// Safe for concurrent use, the monitor server reads it while experiments run.
type ProgressTracker struct {
	mu       sync.Mutex
	order    []string
	statuses map[string]*ExperimentStatus
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{
		order:    make([]string, 0),
		statuses: make(map[string]*ExperimentStatus),
	}
}

func (p *ProgressTracker) Set(status ExperimentStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.statuses[status.Name]; !ok {
		p.order = append(p.order, status.Name)
	}
	p.statuses[status.Name] = &status
}

// Snapshot returns the statuses in insertion order
func (p *ProgressTracker) Snapshot() []ExperimentStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ExperimentStatus, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, *p.statuses[name])
	}
	return out
}

// ProgressPrinter periodically rewrites one terminal line per experiment
type ProgressPrinter struct {
	tracker  *ProgressTracker
	interval time.Duration
	cancel   context.CancelFunc
	printCtx context.Context

	writer  *uilive.Writer
	writers []io.Writer
}

func NewProgressPrinter(ctx context.Context, tracker *ProgressTracker, lines int, interval time.Duration) *ProgressPrinter {
	printCtx, cancel := context.WithCancel(ctx)
	writer := uilive.New()
	writers := make([]io.Writer, lines)
	for i := 0; i < lines-1; i++ {
		writers[i] = writer.Newline()
	}
	return &ProgressPrinter{
		tracker:  tracker,
		interval: interval,
		cancel:   cancel,
		printCtx: printCtx,
		writer:   writer,
		writers:  writers,
	}
}

func (p *ProgressPrinter) Start() {
	go func() {
		for {
			select {
			case <-p.printCtx.Done():
				p.writer.Stop()
				return
			case <-time.After(p.interval):
				p.print()
			}
		}
	}()
}

func (p *ProgressPrinter) Stop() {
	p.print()
	p.cancel()
}

func (p *ProgressPrinter) print() {
	for i, status := range p.tracker.Snapshot() {
		if i == 0 {
			fmt.Fprint(p.writer, status.String()+"\n")
		} else if i-1 < len(p.writers) {
			fmt.Fprint(p.writers[i-1], status.String()+"\n")
		}
	}
	p.writer.Flush()
}
