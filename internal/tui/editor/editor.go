// Package editor renders the interactive note editor. Every keystroke goes
// through the debounced mutation queue, so the in-memory note is always
// current while durable writes stay coalesced; quitting flushes whatever
// the last debounce window still holds.
package editor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/mutate"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0AF"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type Model struct {
	queue    *mutate.Queue
	noteID   string
	title    string
	textarea textarea.Model
	err      error
}

func New(queue *mutate.Queue, note models.Note) Model {
	ta := textarea.New()
	ta.Placeholder = "..."
	ta.CharLimit = 0
	ta.SetWidth(100)
	ta.SetHeight(30)
	ta.SetValue(note.Content)
	ta.Focus()

	return Model{
		queue:    queue,
		noteID:   note.ID,
		title:    note.Title,
		textarea: ta,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.textarea.SetWidth(msg.Width)
		m.textarea.SetHeight(msg.Height - 3)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = m.queue.Flush(context.Background())
			return m, tea.Quit
		case tea.KeyCtrlS:
			m.err = m.queue.Flush(context.Background())
			return m, nil
		}
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)

	if after := m.textarea.Value(); after != before {
		m.queue.QueueUpdate(m.noteID, models.NotePatch{
			Content: models.StrPtr(after),
		})
	}
	return m, cmd
}

func (m Model) View() string {
	status := "ctrl+s save · esc quit"
	if pending := m.queue.Pending(); pending > 0 {
		status = fmt.Sprintf("unsaved edits · %s", status)
	}
	if m.err != nil {
		status = fmt.Sprintf("save failed: %s", m.err)
	}

	return fmt.Sprintf(
		"%s\n%s\n%s",
		headerStyle.Render(m.title),
		m.textarea.View(),
		hintStyle.Render(status),
	)
}
