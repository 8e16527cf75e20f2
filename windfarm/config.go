package windfarm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// TurbineConfig parameterizes one single-turbine simulator. It is forwarded
// verbatim to every instance of the farm.
type TurbineConfig struct {
	RotorDiameter float64 `yaml:"rotor_diameter"`    // meters
	AirDensity    float64 `yaml:"air_density"`       // kg/m^3
	PowerCoeff    float64 `yaml:"power_coefficient"` // peak Cp at zero yaw error
	RatedPower    float64 `yaml:"rated_power"`       // MW, output cap

	CutInSpeed  float64 `yaml:"cut_in_speed"`  // m/s, below this no power
	CutOutSpeed float64 `yaml:"cut_out_speed"` // m/s, at or above this the turbine shuts down

	WindMean      float64 `yaml:"wind_mean"`      // m/s, long-run mean wind speed
	WindSigma     float64 `yaml:"wind_sigma"`     // m/s, per-step noise
	WindReversion float64 `yaml:"wind_reversion"` // pull towards the mean per step
	DirSigma      float64 `yaml:"dir_sigma"`      // degrees, per-step direction drift

	YawStep  float64 `yaml:"yaw_step"`  // degrees turned by one yaw command
	MaxSteps int     `yaml:"max_steps"` // per-turbine episode horizon
	Seed     int64   `yaml:"seed"`      // base RNG seed, 0 means time-based
}

// DefaultTurbineConfig models a generic utility-scale turbine
func DefaultTurbineConfig() TurbineConfig {
	return TurbineConfig{
		RotorDiameter: 120,
		AirDensity:    1.225,
		PowerCoeff:    0.45,
		RatedPower:    5.0,
		CutInSpeed:    3.0,
		CutOutSpeed:   25.0,
		WindMean:      9.0,
		WindSigma:     0.5,
		WindReversion: 0.1,
		DirSigma:      2.0,
		YawStep:       2.0,
		MaxSteps:      200,
	}
}

// FarmConfig configures the joint environment
type FarmConfig struct {
	// Number of turbine sub-environments, defaults to 40
	NumTurbines int `yaml:"num_turbines"`
	// Episode ends only when every turbine is done, instead of when any is
	DoneOnAll bool `yaml:"done_on_all"`
	// Forwarded to each sub-environment
	SingleEnv TurbineConfig `yaml:"single_env_config"`
}

const DefaultNumTurbines = 40

func DefaultFarmConfig() FarmConfig {
	return FarmConfig{
		NumTurbines: DefaultNumTurbines,
		SingleEnv:   DefaultTurbineConfig(),
	}
}

// LoadFarmConfig reads a farm configuration from a YAML file. Keys that are
// absent keep their default values.
func LoadFarmConfig(path string) (FarmConfig, error) {
	cfg := DefaultFarmConfig()
	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading farm config: %w", err)
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing farm config: %w", err)
	}
	return cfg, nil
}
