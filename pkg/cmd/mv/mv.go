package mv

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/internal/views"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

func NewCmdMv(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <note> <folder>",
		Short: "Move a note to another folder.",
		Long: heredoc.Doc(`
			Moves a note into the folder at the given path. "/" moves it to
			the root. The write is durable immediately.
		`),
		Example: heredoc.Doc(`
			ingenium mv "Meeting notes" /Work
			ingenium mv 2f1c... /
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := picker.Note(s, args[0])
			if err != nil {
				return err
			}
			folderID, err := picker.Folder(s, args[1])
			if err != nil {
				return err
			}

			moved, err := s.Queue.UpdateImmediate(cmd.Context(), note.ID, models.NotePatch{
				FolderID: &folderID,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %s\n",
				moved.Title, views.PathOf(s.Collection.Folders(), moved.FolderID))
			return nil
		},
	}
}
