package new

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/internal/views"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

func NewCmdNew(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new [title]",
		Aliases: []string{"n"},
		Short:   "Create a new note.",
		Long: heredoc.Doc(`
			Creates a note, optionally titled and placed in a folder. Without a
			title the note starts with the placeholder title and can be renamed
			from the editor.
		`),
		Example: heredoc.Doc(`
			ingenium new
			ingenium new "Meeting notes" --folder /Work
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().StringP("folder", "f", "", "Folder path for the note, e.g. /Work/Ideas")
	cmd.Flags().StringP("content", "c", "", "Initial note content")
	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	ctx := cmd.Context()

	folderPath, _ := cmd.Flags().GetString("folder")
	var folderID *string
	if folderPath != "" {
		var err error
		folderID, err = picker.Folder(s, folderPath)
		if err != nil {
			return err
		}
	}

	note, err := s.Collection.CreateNote(ctx, folderID)
	if err != nil {
		return err
	}

	patch := models.NotePatch{}
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		patch.Title = models.StrPtr(args[0])
	}
	if content, _ := cmd.Flags().GetString("content"); content != "" {
		patch.Content = models.StrPtr(content)
	}
	if patch.Title != nil || patch.Content != nil {
		if note, err = s.Queue.UpdateImmediate(ctx, note.ID, patch); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %q in %s (%s)\n",
		note.Title, views.PathOf(s.Collection.Folders(), note.FolderID), note.ID)
	return nil
}
