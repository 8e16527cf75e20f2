package windfarm

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/aeolab/windfarm-rl-train/types"
)

// PowerAnalyzer records the mean per-step farm power of every episode
type PowerAnalyzer struct {
	episodePower []float64
}

var _ types.Analyzer = &PowerAnalyzer{}

func NewPowerAnalyzer() *PowerAnalyzer {
	return &PowerAnalyzer{
		episodePower: make([]float64, 0),
	}
}

func (p *PowerAnalyzer) Analyze(run, episode int, experiment string, trace *types.Trace) {
	if trace.Len() == 0 {
		p.episodePower = append(p.episodePower, 0)
		return
	}
	total := 0.0
	for i := 0; i < trace.Len(); i++ {
		tr, _ := trace.Get(i)
		for _, r := range tr.Rewards {
			total += r
		}
	}
	p.episodePower = append(p.episodePower, total/float64(trace.Len()))
}

func (p *PowerAnalyzer) DataSet() types.DataSet {
	out := make([]float64, len(p.episodePower))
	copy(out, p.episodePower)
	return out
}

func (p *PowerAnalyzer) Reset() {
	p.episodePower = make([]float64, 0)
}

// PowerComparator plots the episode power curves of all experiments
func PowerComparator(plotPath string) types.Comparator {
	os.MkdirAll(plotPath, 0755)
	return func(run int, names []string, datasets []types.DataSet) {
		p := plot.New()
		p.Title.Text = "Farm power"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Mean power (MW)"
		for i := 0; i < len(names); i++ {
			power := datasets[i].([]float64)
			points := make(plotter.XYs, len(power))
			for j, v := range power {
				points[j] = plotter.XY{X: float64(j), Y: v}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(power) > 0 {
				fmt.Printf("Final mean power: %.3f MW for experiment: %s\n", power[len(power)-1], names[i])
			}
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_farm_power.png"))
	}
}

// CoverageAnalyzer counts the unique joint states visited, cumulatively per
// episode
type CoverageAnalyzer struct {
	uniqueStates map[string]bool
	perEpisode   []int
}

var _ types.Analyzer = &CoverageAnalyzer{}

func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{
		uniqueStates: make(map[string]bool),
		perEpisode:   make([]int, 0),
	}
}

func (c *CoverageAnalyzer) Analyze(run, episode int, experiment string, trace *types.Trace) {
	for i := 0; i < trace.Len(); i++ {
		tr, _ := trace.Get(i)
		c.uniqueStates[jointHash(tr.Observations)] = true
	}
	c.perEpisode = append(c.perEpisode, len(c.uniqueStates))
}

func (c *CoverageAnalyzer) DataSet() types.DataSet {
	out := make([]int, len(c.perEpisode))
	copy(out, c.perEpisode)
	return out
}

func (c *CoverageAnalyzer) Reset() {
	c.uniqueStates = make(map[string]bool)
	c.perEpisode = make([]int, 0)
}

// CoverageComparator plots the cumulative joint-state coverage curves
func CoverageComparator(plotPath string) types.Comparator {
	os.MkdirAll(plotPath, 0755)
	return func(run int, names []string, datasets []types.DataSet) {
		p := plot.New()
		p.Title.Text = "Joint state coverage"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "States covered"
		for i := 0; i < len(names); i++ {
			covered := datasets[i].([]int)
			points := make(plotter.XYs, len(covered))
			for j, v := range covered {
				points[j] = plotter.XY{X: float64(j), Y: float64(v)}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_coverage.png"))
	}
}

// jointHash concatenates the per-agent state hashes in identifier order
func jointHash(obs types.JointObservation) string {
	out := ""
	for _, id := range obs.AgentIDs() {
		out += id + "=" + obs[id].Hash() + ";"
	}
	return out
}
