package windfarm

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFarmConfigOverrides(t *testing.T) {
	p := filepath.Join(t.TempDir(), "farm.yaml")
	doc := `num_turbines: 6
done_on_all: true
single_env_config:
  wind_mean: 11.5
  yaw_step: 3
`
	if err := os.WriteFile(p, []byte(doc), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := LoadFarmConfig(p)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.NumTurbines != 6 {
		t.Errorf("expected 6 turbines, got %d", cfg.NumTurbines)
	}
	if !cfg.DoneOnAll {
		t.Errorf("expected done_on_all to be set")
	}
	if cfg.SingleEnv.WindMean != 11.5 {
		t.Errorf("expected wind mean 11.5, got %f", cfg.SingleEnv.WindMean)
	}
	if cfg.SingleEnv.YawStep != 3 {
		t.Errorf("expected yaw step 3, got %f", cfg.SingleEnv.YawStep)
	}
	// Keys absent from the file keep their defaults
	if cfg.SingleEnv.RatedPower != DefaultTurbineConfig().RatedPower {
		t.Errorf("expected default rated power, got %f", cfg.SingleEnv.RatedPower)
	}
}

func TestLoadFarmConfigMissingFile(t *testing.T) {
	cfg, err := LoadFarmConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if cfg.NumTurbines != DefaultNumTurbines {
		t.Errorf("expected default config on failure, got %d turbines", cfg.NumTurbines)
	}
}
