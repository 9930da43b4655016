// Package notes renders the interactive folder/note browser.
package notes

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/internal/views"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0AF"))

var sortCycle = []views.SortKey{
	views.SortDateDesc,
	views.SortDateAsc,
	views.SortAlphaAsc,
	views.SortAlphaDesc,
}

type keyMap struct {
	open   key.Binding
	up     key.Binding
	sort   key.Binding
	delete key.Binding
	quit   key.Binding
}

var keys = keyMap{
	open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	up:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "parent folder")),
	sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
	delete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type Model struct {
	state    *state.State
	list     list.Model
	folderID *string
	sortIdx  int

	// Selected carries the note chosen with enter out of the program, so
	// the calling command can hand it to the editor.
	Selected string
}

func New(s *state.State) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.open, keys.up, keys.sort, keys.delete}
	}

	m := Model{state: s, list: l}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	col := m.state.Collection
	sortKey := sortCycle[m.sortIdx]

	var items []list.Item

	folders := m.state.Sorter.Folders(col.Folders(), "", sortKey)
	notes := m.state.Sorter.Notes(col.Notes(), "", sortKey)

	for _, f := range folders {
		if !sameParent(f.ParentID, m.folderID) {
			continue
		}
		children := 0
		for _, n := range col.Notes() {
			if n.FolderID != nil && *n.FolderID == f.ID {
				children++
			}
		}
		items = append(items, listItem{
			id:       f.ID,
			kind:     "folder",
			name:     f.Name,
			created:  f.CreatedAt,
			children: children,
		})
	}
	for _, n := range notes {
		if !sameParent(n.FolderID, m.folderID) {
			continue
		}
		items = append(items, listItem{
			id:      n.ID,
			kind:    "note",
			name:    n.Title,
			preview: previewOf(n.Content, 60),
			created: n.CreatedAt,
		})
	}

	m.list.SetItems(items)
	path := views.PathOf(col.Folders(), m.folderID)
	m.list.Title = titleStyle.Render(fmt.Sprintf("%s · %s", path, sortKey))
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit

		case key.Matches(msg, keys.sort):
			m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
			m.refresh()
			return m, nil

		case key.Matches(msg, keys.up):
			if m.folderID != nil {
				if folder, ok := m.state.Collection.Folder(*m.folderID); ok {
					m.folderID = folder.ParentID
				} else {
					m.folderID = nil
				}
				m.refresh()
			}
			return m, nil

		case key.Matches(msg, keys.open):
			if item, ok := m.list.SelectedItem().(listItem); ok {
				if item.kind == "folder" {
					id := item.id
					m.folderID = &id
					m.refresh()
					return m, nil
				}
				m.Selected = item.id
				return m, tea.Quit
			}

		case key.Matches(msg, keys.delete):
			if item, ok := m.list.SelectedItem().(listItem); ok {
				var err error
				if item.kind == "folder" {
					err = m.state.Collection.DeleteFolder(context.Background(), item.id)
				} else {
					err = m.state.Collection.DeleteNote(context.Background(), item.id)
				}
				if err != nil {
					m.list.NewStatusMessage(fmt.Sprintf("delete failed: %s", err))
				}
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string { return m.list.View() }
