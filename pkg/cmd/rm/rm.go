package rm

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

func NewCmdRm(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <target>",
		Short: "Delete a note, or a folder with --folder.",
		Long: heredoc.Doc(`
			Deletes a note, or with --folder a folder and the notes directly
			inside it. Subfolders are kept and become top-level orphans.
		`),
		Example: heredoc.Doc(`
			ingenium rm "Groceries"
			ingenium rm --folder /Work/Archive
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().BoolP("folder", "f", false, "Delete a folder and its direct notes")
	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	ctx := cmd.Context()

	if folderMode, _ := cmd.Flags().GetBool("folder"); folderMode {
		folderID, err := picker.Folder(s, args[0])
		if err != nil {
			return err
		}
		if folderID == nil {
			return fmt.Errorf("the root folder cannot be deleted")
		}
		if err := s.Collection.DeleteFolder(ctx, *folderID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted folder %s\n", args[0])
		return nil
	}

	note, err := picker.Note(s, args[0])
	if err != nil {
		return err
	}
	if err := s.Collection.DeleteNote(ctx, note.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", note.Title)
	return nil
}
