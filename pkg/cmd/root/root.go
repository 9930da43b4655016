package root

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/pkg/cmd/backup"
	"github.com/ingenium-notes/ingenium/pkg/cmd/edit"
	"github.com/ingenium-notes/ingenium/pkg/cmd/initialize"
	"github.com/ingenium-notes/ingenium/pkg/cmd/key"
	"github.com/ingenium-notes/ingenium/pkg/cmd/mkdir"
	"github.com/ingenium-notes/ingenium/pkg/cmd/mv"
	"github.com/ingenium-notes/ingenium/pkg/cmd/new"
	"github.com/ingenium-notes/ingenium/pkg/cmd/notes"
	"github.com/ingenium-notes/ingenium/pkg/cmd/query"
	"github.com/ingenium-notes/ingenium/pkg/cmd/rename"
	"github.com/ingenium-notes/ingenium/pkg/cmd/rm"
	"github.com/ingenium-notes/ingenium/pkg/cmd/share"
	synccmd "github.com/ingenium-notes/ingenium/pkg/cmd/sync"
	"github.com/ingenium-notes/ingenium/pkg/cmd/view"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "ingenium",
		Aliases: []string{"ing"},
		Short:   "Folder-organized notes with share ingestion and AI-assisted querying.",
		// Run the notes browser by default.
		RunE: notes.NewCmdNotes(s).RunE,
	}

	cmd.PersistentFlags().String("sort", "", "Listing order: date-asc, date-desc, alpha-asc, alpha-desc")
	viper.BindPFlag("sort_by", cmd.PersistentFlags().Lookup("sort"))
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		new.NewCmdNew(s),
		mkdir.NewCmdMkdir(s),
		notes.NewCmdNotes(s),
		view.NewCmdView(s),
		edit.NewCmdEdit(s),
		share.NewCmdShare(s),
		mv.NewCmdMv(s),
		rename.NewCmdRename(s),
		rm.NewCmdRm(s),
		query.NewCmdQuery(s),
		key.NewCmdKey(s),
		synccmd.NewCmdSync(s),
		backup.NewCmdBackup(s),
	)

	return cmd, nil
}
