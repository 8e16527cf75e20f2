package benchmarks

import (
	"github.com/spf13/cobra"
)

// MADDPGCommand trains one policy per turbine with a centralized critic,
// against the random baseline
func MADDPGCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maddpg",
		Short: "Train per-turbine policies with a centralized critic",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrainers([]string{"random", "maddpg"})
		},
	}
	cmd.PersistentFlags().Float64Var(&alpha, "alpha", 0.1, "Learning rate")
	cmd.PersistentFlags().Float64Var(&discount, "discount", 0.99, "Discount factor")
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", 0.05, "Per-agent exploration rate")
	cmd.PersistentFlags().BoolVar(&recordTrc, "record-traces", false, "Record episode traces as JSONL")
	return cmd
}
