package benchmarks

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/fatih/color"

	"github.com/aeolab/windfarm-rl-train/checkpoints"
	"github.com/aeolab/windfarm-rl-train/monitor"
	"github.com/aeolab/windfarm-rl-train/trainers"
	"github.com/aeolab/windfarm-rl-train/types"
	"github.com/aeolab/windfarm-rl-train/windfarm"
)

// hyperparameters, bound as flags by the subcommands that use them
var (
	alpha       = 0.1
	discount    = 0.99
	temperature = 0.5
	epsilon     = 0.05
	recordTrc   bool
)

// loadFarmConfig resolves the farm configuration from the config file and
// the command line flags, flags override the file
func loadFarmConfig() (windfarm.FarmConfig, error) {
	cfg := windfarm.DefaultFarmConfig()
	if configFile != "" {
		var err error
		cfg, err = windfarm.LoadFarmConfig(configFile)
		if err != nil {
			return cfg, err
		}
	}
	if turbines > 0 {
		cfg.NumTurbines = turbines
	}
	if seed != 0 {
		cfg.SingleEnv.Seed = seed
	}
	if cfg.SingleEnv.MaxSteps < horizon {
		cfg.SingleEnv.MaxSteps = horizon
	}
	return cfg, nil
}

// buildRegistry wires the trainer implementations this binary ships
func buildRegistry() *trainers.Registry {
	registry := trainers.NewRegistry()
	registry.Register("random", func() (types.Trainer, error) {
		return types.NewRandomTrainer(), nil
	})
	registry.Register("sac", func() (types.Trainer, error) {
		cfg := trainers.DefaultSoftQConfig()
		cfg.Alpha = alpha
		cfg.Discount = discount
		cfg.Temperature = temperature
		cfg.Seed = uint64(seed)
		return trainers.NewSoftQTrainer(cfg), nil
	})
	registry.Register("maddpg", func() (types.Trainer, error) {
		cfg := trainers.DefaultMADDPGConfig()
		cfg.Alpha = alpha
		cfg.Discount = discount
		cfg.Epsilon = epsilon
		cfg.Seed = uint64(seed)
		return trainers.NewMADDPGTrainer(cfg), nil
	})
	return registry
}

// openCheckpointStore picks Redis when an address was given, disk otherwise
func openCheckpointStore(ctx context.Context) (checkpoints.Store, error) {
	if redisAddr != "" {
		return checkpoints.NewRedisStore(ctx, redisAddr)
	}
	return checkpoints.NewFileStore(path.Join(saveFile, "checkpoints")), nil
}

// runTrainers trains the named trainers on fresh farm environments and
// compares them. Trainers that are not registered are reported and skipped.
func runTrainers(names []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	farmCfg, err := loadFarmConfig()
	if err != nil {
		return err
	}

	store, err := openCheckpointStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	tracker := types.NewProgressTracker()
	if monitorAddr != "" {
		srv := monitor.NewServer(monitorAddr, tracker)
		srv.Start()
		defer srv.Stop()
	}

	comparison := types.NewComparison(&types.ComparisonConfig{
		Runs:              runs,
		Episodes:          episodes,
		Horizon:           horizon,
		RecordPath:        saveFile,
		RecordTraces:      recordTrc,
		RecordCheckpoints: true,
		Checkpoints:       store,
		Tracker:           tracker,
		PrintProgress:     true,
	})

	registry := buildRegistry()
	for _, name := range names {
		trainer, err := registry.New(name)
		if err != nil {
			color.Yellow("Skipping trainer %s: %v", name, err)
			continue
		}
		env, err := windfarm.NewFarmEnv(farmCfg)
		if err != nil {
			return fmt.Errorf("building farm environment: %w", err)
		}
		comparison.AddExperiment(types.NewExperiment(name, trainer, env))
	}
	if len(comparison.Experiments) == 0 {
		return fmt.Errorf("no trainer available among %v", names)
	}

	plotPath := path.Join(saveFile, "plots")
	comparison.AddAnalysis("power", windfarm.NewPowerAnalyzer(), windfarm.PowerComparator(plotPath))
	comparison.AddAnalysis("coverage", windfarm.NewCoverageAnalyzer(), windfarm.CoverageComparator(plotPath))

	comparison.Run(ctx)
	return nil
}
