package windfarm

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"

	"github.com/aeolab/windfarm-rl-train/types"
)

// YawAction is a discrete nacelle command. Sign selects the direction, the
// magnitude in degrees comes from the turbine configuration.
type YawAction struct {
	Name string
	Sign float64
}

var _ types.Action = &YawAction{}

func (y *YawAction) Hash() string {
	return y.Name
}

var (
	YawHold                      = &YawAction{"hold", 0}
	YawLeft                      = &YawAction{"yaw_left", -1}
	YawRight                     = &YawAction{"yaw_right", 1}
	AllYawActions []types.Action = []types.Action{YawHold, YawLeft, YawRight}
)

// TurbineState is an immutable snapshot of one turbine
type TurbineState struct {
	WindSpeed float64 // m/s
	WindDir   float64 // degrees, [0, 360)
	Yaw       float64 // degrees, [0, 360)
	Shutdown  bool
}

var _ types.State = &TurbineState{}

// Hash discretizes to 1 m/s wind bins and 5 degree yaw-error bins so that
// tabular policies generalize across nearby readings
func (s *TurbineState) Hash() string {
	if s.Shutdown {
		return "shutdown"
	}
	speedBin := int(s.WindSpeed)
	errBin := int(math.Round(angleDiff(s.WindDir, s.Yaw) / 5.0))
	return fmt.Sprintf("v%d|e%d", speedBin, errBin)
}

func (s *TurbineState) Actions() []types.Action {
	if s.Shutdown {
		// nothing left to control, hold until the episode ends
		return []types.Action{YawHold}
	}
	return AllYawActions
}

func (s *TurbineState) Observation() []float64 {
	return []float64{s.WindSpeed, s.WindDir, s.Yaw}
}

// TurbineEnv simulates a single turbine: a mean-reverting wind process, a
// slowly drifting wind direction and a controllable nacelle yaw. The reward
// is the instantaneous power output in MW.
type TurbineEnv struct {
	cfg TurbineConfig
	rng *rand.Rand

	step      int
	windSpeed float64
	windDir   float64
	yaw       float64
	shutdown  bool

	spaces types.Spaces
}

var _ types.Environment = &TurbineEnv{}

func NewTurbineEnv(cfg TurbineConfig) *TurbineEnv {
	if cfg.RotorDiameter <= 0 {
		cfg.RotorDiameter = 120
	}
	if cfg.AirDensity <= 0 {
		cfg.AirDensity = 1.225
	}
	if cfg.PowerCoeff <= 0 {
		cfg.PowerCoeff = 0.45
	}
	if cfg.CutOutSpeed <= 0 {
		cfg.CutOutSpeed = 25.0
	}
	if cfg.YawStep <= 0 {
		cfg.YawStep = 2.0
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 200
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &TurbineEnv{
		cfg: cfg,
		rng: rand.New(rand.NewSource(uint64(cfg.Seed))),
		spaces: types.Spaces{
			Observation: types.NewBox(
				[]float64{0, 0, 0},
				[]float64{60, 360, 360},
			),
			Action: types.Discrete{N: len(AllYawActions)},
		},
	}
}

func (t *TurbineEnv) Spaces() types.Spaces {
	return t.spaces
}

func (t *TurbineEnv) Reset() (types.State, error) {
	t.step = 0
	t.shutdown = false
	t.windSpeed = math.Max(0, t.cfg.WindMean+t.rng.NormFloat64()*t.cfg.WindSigma)
	t.windDir = wrapAngle(t.rng.Float64() * 360)
	// start misaligned so there is something to learn
	t.yaw = wrapAngle(t.windDir + (t.rng.Float64()*60 - 30))
	return t.state(), nil
}

func (t *TurbineEnv) Step(a types.Action, sCtx *types.StepContext) (types.State, float64, bool, map[string]interface{}, error) {
	cmd, ok := a.(*YawAction)
	if !ok {
		return nil, 0, false, nil, fmt.Errorf("unexpected action type %T", a)
	}

	if !t.shutdown {
		t.yaw = wrapAngle(t.yaw + cmd.Sign*t.cfg.YawStep)
	}

	// wind process: mean reversion on speed, random drift on direction
	t.windSpeed += t.cfg.WindReversion * (t.cfg.WindMean - t.windSpeed)
	t.windSpeed += t.rng.NormFloat64() * t.cfg.WindSigma
	t.windSpeed = math.Max(0, t.windSpeed)
	t.windDir = wrapAngle(t.windDir + t.rng.NormFloat64()*t.cfg.DirSigma)

	if t.windSpeed >= t.cfg.CutOutSpeed {
		t.shutdown = true
	}

	t.step += 1
	power := t.power()
	done := t.shutdown || t.step >= t.cfg.MaxSteps

	info := map[string]interface{}{
		"power_mw":   power,
		"wind_speed": t.windSpeed,
		"yaw_error":  angleDiff(t.windDir, t.yaw),
		"shutdown":   t.shutdown,
	}
	return t.state(), power, done, info, nil
}

func (t *TurbineEnv) state() *TurbineState {
	return &TurbineState{
		WindSpeed: t.windSpeed,
		WindDir:   t.windDir,
		Yaw:       t.yaw,
		Shutdown:  t.shutdown,
	}
}

// power returns the instantaneous output in MW. The yaw misalignment loss
// follows the usual cosine-cubed model.
func (t *TurbineEnv) power() float64 {
	if t.shutdown || t.windSpeed < t.cfg.CutInSpeed {
		return 0
	}
	yawErr := angleDiff(t.windDir, t.yaw) * math.Pi / 180
	cp := t.cfg.PowerCoeff * math.Pow(math.Abs(math.Cos(yawErr)), 3)
	if math.Abs(yawErr) > math.Pi/2 {
		return 0
	}
	area := math.Pi * math.Pow(t.cfg.RotorDiameter/2, 2)
	watts := 0.5 * t.cfg.AirDensity * area * cp * math.Pow(t.windSpeed, 3)
	mw := watts / 1e6
	if t.cfg.RatedPower > 0 && mw > t.cfg.RatedPower {
		mw = t.cfg.RatedPower
	}
	return mw
}

// wrapAngle normalizes to [0, 360)
func wrapAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// angleDiff returns the signed difference a-b wrapped to [-180, 180]
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	}
	if d < -180 {
		d += 360
	}
	return d
}
