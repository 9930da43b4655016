package key

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/state"
)

func NewCmdKey(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the model API key.",
	}

	cmd.AddCommand(newCmdSet(s), newCmdTest(s))
	return cmd
}

func newCmdSet(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key>",
		Short: "Validate and store the API key in the config file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Gemini.TestKey(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("key rejected: %w", err)
			}

			s.Config.GeminiKey = args[0]
			if err := s.Config.Save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Key saved.")
			return nil
		},
	}
}

func newCmdTest(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check that the stored API key still works.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.Config.GeminiKey == "" {
				return fmt.Errorf("no key configured: run 'ingenium key set'")
			}
			if err := s.Gemini.TestKey(cmd.Context(), s.Config.GeminiKey); err != nil {
				return fmt.Errorf("key rejected: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Key is valid.")
			return nil
		},
	}
}
