package initialize

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/config"
	"github.com/ingenium-notes/ingenium/internal/state"
)

// NewCmdInit reports the active configuration. The config file itself is
// written on first run by any command, so init never needs to create it.
func NewCmdInit(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Show the active configuration and storage location.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config:  %s\n", config.Path(s.Home))
			fmt.Fprintf(out, "Backend: %s\n", s.Config.Storage.Backend)
			switch s.Config.Storage.Backend {
			case config.BackendSQLite:
				fmt.Fprintf(out, "Data:    %s\n", s.Config.Storage.SQLitePath)
			case config.BackendPostgres:
				fmt.Fprintf(out, "DSN:     %s\n", s.Config.Storage.PostgresDSN)
			}
			fmt.Fprintf(out, "Folders: %d\nNotes:   %d\n",
				len(s.Collection.Folders()), len(s.Collection.Notes()))
			return nil
		},
	}
}
