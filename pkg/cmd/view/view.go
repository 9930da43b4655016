package view

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

func NewCmdView(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view [note]",
		Aliases: []string{"v", "cat"},
		Short:   "Render a note as markdown in the terminal.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().Bool("raw", false, "Print the raw content without rendering")
	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	note, err := picker.Note(s, arg)
	if err != nil {
		return err
	}

	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		fmt.Fprintln(cmd.OutOrStdout(), note.Content)
		return nil
	}

	style := glamour.WithAutoStyle()
	if termenv.EnvColorProfile() == termenv.Ascii {
		style = glamour.WithStandardStyle("notty")
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("build renderer: %w", err)
	}

	out, err := renderer.Render("# " + note.Title + "\n\n" + note.Content)
	if err != nil {
		return fmt.Errorf("render note: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
