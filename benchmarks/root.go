package benchmarks

import "github.com/spf13/cobra"

var (
	episodes    int
	horizon     int
	runs        int
	saveFile    string
	turbines    int
	configFile  string
	monitorAddr string
	redisAddr   string
	seed        int64
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "windfarm-rl-train",
		Short: "Multi-agent RL training runs over a simulated wind farm",
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 2000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 200, "Horizon of each episode")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVarP(&turbines, "turbines", "t", 0, "Number of turbines (overrides the config file)")
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Farm configuration YAML file")
	rootCommand.PersistentFlags().StringVar(&monitorAddr, "monitor", "", "Address to serve live run status on (empty disables)")
	rootCommand.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address for checkpoints (empty stores them on disk)")
	rootCommand.PersistentFlags().Int64Var(&seed, "seed", 0, "Base RNG seed (0 means time-based)")
	// adding the subcommands here
	rootCommand.AddCommand(SACCommand())
	rootCommand.AddCommand(MADDPGCommand())
	rootCommand.AddCommand(CompareCommand())
	rootCommand.AddCommand(CheckpointsCommand())
	return rootCommand
}
