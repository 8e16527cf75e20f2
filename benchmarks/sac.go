package benchmarks

import (
	"github.com/spf13/cobra"
)

// SACCommand trains a single shared policy over all turbines, against the
// random baseline
func SACCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sac",
		Short: "Train a shared soft Q policy on the wind farm",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrainers([]string{"random", "sac"})
		},
	}
	cmd.PersistentFlags().Float64Var(&alpha, "alpha", 0.1, "Learning rate")
	cmd.PersistentFlags().Float64Var(&discount, "discount", 0.99, "Discount factor")
	cmd.PersistentFlags().Float64Var(&temperature, "temperature", 0.5, "Entropy temperature of the shared policy")
	cmd.PersistentFlags().BoolVar(&recordTrc, "record-traces", false, "Record episode traces as JSONL")
	return cmd
}
