package edit

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/internal/tui/editor"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

func NewCmdEdit(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "edit [note]",
		Aliases: []string{"e"},
		Short:   "Edit a note in the interactive editor.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			note, err := picker.Note(s, arg)
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(editor.New(s.Queue, note), tea.WithAltScreen()).Run()
			return err
		},
	}
}
