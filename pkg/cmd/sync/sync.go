package sync

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/state"
)

func NewCmdSync(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Settle pending sync markers.",
		Long: "Reloads the collections from storage and settles every record " +
			"still marked pending. With --quick the reload is skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Flush first so edits still sitting in the debounce window are
			// durable before the collections reload.
			if err := s.Queue.Flush(ctx); err != nil {
				return err
			}

			var err error
			if quick, _ := cmd.Flags().GetBool("quick"); quick {
				err = s.Syncer.QuickSync(ctx)
			} else {
				err = s.Syncer.FullSync(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sync complete.")
			return nil
		},
	}

	cmd.Flags().Bool("quick", false, "Settle pending markers without reloading")
	return cmd
}
