package share

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ingenium-notes/ingenium/internal/ingest"
	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/internal/views"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

const (
	choiceNew    = "Save as new note"
	choiceAppend = "Append to an existing note"
)

func NewCmdShare(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share [content]",
		Short: "Ingest shared content as a note or an append.",
		Long: heredoc.Doc(`
			Takes content shared into the application and places it. The
			argument can be plain text or a deep link carrying text and title
			query parameters; with --paste the clipboard is used, and with no
			argument on a pipe, stdin is read.

			Placement: --note appends to that note, --folder saves a new note
			there, otherwise an interactive prompt asks. Only one delivery is
			accepted per invocation.
		`),
		Example: heredoc.Doc(`
			ingenium share "pick up milk"
			ingenium share "ingenium://share?text=hello&title=Greeting"
			pbpaste | ingenium share --folder /Inbox
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().Bool("paste", false, "Read the content from the clipboard")
	cmd.Flags().StringP("note", "n", "", "Append to this note instead of creating one")
	cmd.Flags().StringP("folder", "f", "", "Folder path for the new note")
	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	ctx := cmd.Context()

	raw, err := readContent(cmd, args)
	if err != nil {
		return err
	}

	// Each invocation is its own foreground session.
	s.Router.Reset()
	if !s.Router.Receive(ingest.Normalize(raw)) {
		return errors.New("nothing to share: content is empty")
	}

	if noteArg, _ := cmd.Flags().GetString("note"); noteArg != "" {
		target, err := picker.Note(s, noteArg)
		if err != nil {
			return err
		}
		note, err := s.Router.AppendToExisting(ctx, target.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Appended to %q (%s)\n", note.Title, note.ID)
		return nil
	}

	var folderID *string
	folderPath, _ := cmd.Flags().GetString("folder")
	if folderPath != "" {
		if folderID, err = picker.Folder(s, folderPath); err != nil {
			return err
		}
		return saveNew(cmd, s, folderID)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// Non-interactive: default placement is a new note at the root.
		return saveNew(cmd, s, nil)
	}

	sel := selection.New("Where should this go?", []string{choiceNew, choiceAppend})
	sel.Filter = nil
	choice, err := sel.RunPrompt()
	if err != nil {
		return err
	}

	if choice == choiceAppend {
		target, err := picker.Fuzzy(s)
		if err != nil {
			if errors.Is(err, picker.ErrNoNotes) {
				return saveNew(cmd, s, nil)
			}
			return err
		}
		note, err := s.Router.AppendToExisting(ctx, target.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Appended to %q (%s)\n", note.Title, note.ID)
		return nil
	}
	return saveNew(cmd, s, nil)
}

func saveNew(cmd *cobra.Command, s *state.State, folderID *string) error {
	note, err := s.Router.SaveAsNewNote(cmd.Context(), folderID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q in %s (%s)\n",
		note.Title, views.PathOf(s.Collection.Folders(), note.FolderID), note.ID)
	return nil
}

func readContent(cmd *cobra.Command, args []string) (string, error) {
	if paste, _ := cmd.Flags().GetBool("paste"); paste {
		raw, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		return raw, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", errors.New("no content: pass an argument, --paste, or pipe stdin")
}
