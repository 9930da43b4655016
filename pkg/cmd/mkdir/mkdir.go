package mkdir

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/collection"
	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/internal/views"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

func NewCmdMkdir(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mkdir [name]",
		Aliases: []string{"md"},
		Short:   "Create a folder.",
		Example: heredoc.Doc(`
			ingenium mkdir Work
			ingenium mkdir Ideas --parent /Work
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().StringP("parent", "p", "", "Parent folder path, e.g. /Work")
	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	parentPath, _ := cmd.Flags().GetString("parent")
	var parentID *string
	if parentPath != "" {
		var err error
		parentID, err = picker.Folder(s, parentPath)
		if err != nil {
			return err
		}
	}

	folder, err := s.Collection.CreateFolder(cmd.Context(), args[0], parentID)
	if err != nil {
		if errors.Is(err, collection.ErrEmptyName) {
			return fmt.Errorf("folder name is empty")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n",
		views.PathOf(s.Collection.Folders(), &folder.ID))
	return nil
}
