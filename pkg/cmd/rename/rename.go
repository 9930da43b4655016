package rename

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

func NewCmdRename(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <target> <name>",
		Short: "Rename a folder, or a note with --note.",
		Example: heredoc.Doc(`
			ingenium rename /Work Projects
			ingenium rename --note "Untitled Note" "Groceries"
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().BoolP("note", "n", false, "Rename a note title instead of a folder")
	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	ctx := cmd.Context()

	if noteMode, _ := cmd.Flags().GetBool("note"); noteMode {
		note, err := picker.Note(s, args[0])
		if err != nil {
			return err
		}
		renamed, err := s.Queue.UpdateImmediate(ctx, note.ID, models.NotePatch{
			Title: models.StrPtr(args[1]),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed note to %q\n", renamed.Title)
		return nil
	}

	folderID, err := picker.Folder(s, args[0])
	if err != nil {
		return err
	}
	if folderID == nil {
		return fmt.Errorf("the root folder cannot be renamed")
	}
	if err := s.Collection.RenameFolder(ctx, *folderID, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed folder to %q\n", args[1])
	return nil
}
