package query

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/gemini"
	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/internal/views"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

func NewCmdQuery(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query <question>",
		Aliases: []string{"ask"},
		Short:   "Ask a question answered from your notes.",
		Long: heredoc.Doc(`
			Sends the question to the model with your notes as the only
			context. The model refuses when the answer is not in the notes.
			Requires an API key, see "ingenium key".
		`),
		Example: heredoc.Doc(`
			ingenium query "when is the dentist appointment?"
			ingenium query --folder /Work "what did we decide about the launch?"
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().StringP("folder", "f", "", "Restrict the context to a folder path")
	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	question := strings.Join(args, " ")

	var folderID *string
	scoped := false
	if folderPath, _ := cmd.Flags().GetString("folder"); folderPath != "" {
		var err error
		if folderID, err = picker.Folder(s, folderPath); err != nil {
			return err
		}
		scoped = true
	}

	notes := s.Sorter.Notes(s.Collection.Notes(), "", views.SortDateDesc)
	context := make([]gemini.NoteContext, 0, len(notes))
	for _, n := range notes {
		if scoped && !inFolder(n.FolderID, folderID) {
			continue
		}
		context = append(context, gemini.NoteContext{Title: n.Title, Content: n.Content})
	}
	if len(context) == 0 {
		return fmt.Errorf("no notes to query against")
	}

	answer, err := s.Gemini.QueryWithNotes(cmd.Context(), question, context)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}

func inFolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
