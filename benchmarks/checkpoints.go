package benchmarks

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// CheckpointsCommand inspects stored trainer checkpoints. With no argument
// it lists the keys, with a key it prints the snapshot.
func CheckpointsCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "checkpoints [key]",
		Short: "List or fetch stored trainer checkpoints",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			store, err := openCheckpointStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				data, err := store.Get(args[0])
				if err != nil {
					return fmt.Errorf("fetching checkpoint %s: %w", args[0], err)
				}
				fmt.Println(string(data))
				return nil
			}

			keys, err := store.List(prefix)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Println(key)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&prefix, "prefix", "", "Only list keys with this prefix")
	return cmd
}
