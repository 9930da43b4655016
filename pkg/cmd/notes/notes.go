package notes

import (
	"fmt"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/internal/tui/editor"
	notestui "github.com/ingenium-notes/ingenium/internal/tui/notes"
	"github.com/ingenium-notes/ingenium/internal/views"
	"github.com/ingenium-notes/ingenium/pkg/cmd/picker"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"ls"},
		Short:   "Browse folders and notes.",
		Long: heredoc.Doc(`
			Opens the interactive browser. Enter opens a folder or a note,
			backspace goes to the parent folder, s cycles the sort order and x
			deletes the selection. Opening a note drops into the editor.

			With --plain the listing is printed instead, filtered by --query,
			--folder and --since.
		`),
		Example: heredoc.Doc(`
			ingenium notes
			ingenium notes --plain --query groceries
			ingenium notes --plain --since "2 weeks ago"
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s)
		},
	}

	cmd.Flags().Bool("plain", false, "Print the listing instead of the browser")
	cmd.Flags().StringP("query", "q", "", "Filter by substring over titles and content")
	cmd.Flags().StringP("folder", "f", "", "Restrict to a folder path, e.g. /Work")
	cmd.Flags().String("since", "", "Only notes created after this date (free-form)")
	return cmd
}

func run(cmd *cobra.Command, s *state.State) error {
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		return runPlain(cmd, s)
	}

	for {
		model := notestui.New(s)
		out, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}

		browser, ok := out.(notestui.Model)
		if !ok || browser.Selected == "" {
			return nil
		}

		note, ok := s.Collection.Note(browser.Selected)
		if !ok {
			return nil
		}
		if _, err := tea.NewProgram(editor.New(s.Queue, note), tea.WithAltScreen()).Run(); err != nil {
			return err
		}
	}
}

func runPlain(cmd *cobra.Command, s *state.State) error {
	query, _ := cmd.Flags().GetString("query")
	folderPath, _ := cmd.Flags().GetString("folder")
	since, _ := cmd.Flags().GetString("since")

	var cutoff int64
	if since != "" {
		t, err := dateparse.ParseAny(since)
		if err != nil {
			return fmt.Errorf("parse --since %q: %w", since, err)
		}
		cutoff = t.UnixMilli()
	}

	var folderID *string
	scoped := folderPath != ""
	if scoped {
		var err error
		folderID, err = picker.Folder(s, folderPath)
		if err != nil {
			return err
		}
	}

	sortKey := views.SortKey(s.Config.SortBy)
	if sortKey == "" {
		sortKey = views.DefaultSort
	}

	folders := s.Collection.Folders()
	notes := s.Sorter.Notes(s.Collection.Notes(), query, sortKey)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, n := range notes {
		if scoped && !sameFolder(n.FolderID, folderID) {
			continue
		}
		if cutoff > 0 && n.CreatedAt < cutoff {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			n.ID, views.PathOf(folders, n.FolderID), n.Title, n.Sync)
	}
	return nil
}

func sameFolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
