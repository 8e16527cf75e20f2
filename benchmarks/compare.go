package benchmarks

import (
	"github.com/spf13/cobra"
)

// CompareCommand trains any set of trainers side by side. Unknown trainer
// names are reported and skipped, the rest of the comparison still runs.
func CompareCommand() *cobra.Command {
	var trainerNames []string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare trainers on identical farm configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrainers(trainerNames)
		},
	}
	cmd.PersistentFlags().StringSliceVar(&trainerNames, "trainers", []string{"random", "sac", "maddpg"}, "Trainers to compare")
	cmd.PersistentFlags().Float64Var(&alpha, "alpha", 0.1, "Learning rate")
	cmd.PersistentFlags().Float64Var(&discount, "discount", 0.99, "Discount factor")
	cmd.PersistentFlags().Float64Var(&temperature, "temperature", 0.5, "Entropy temperature of the shared policy")
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", 0.05, "Per-agent exploration rate")
	cmd.PersistentFlags().BoolVar(&recordTrc, "record-traces", false, "Record episode traces as JSONL")
	return cmd
}
