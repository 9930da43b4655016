// Package picker resolves note and folder arguments for the command layer:
// by id, by title, or interactively through a fuzzy finder when the command
// was given nothing to go on.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/state"
	"github.com/ingenium-notes/ingenium/internal/views"
)

// ErrNoNotes reports an interactive pick over an empty collection.
var ErrNoNotes = errors.New("no notes to pick from")

// Note resolves arg to a note: exact id first, then case-insensitive title.
// An empty arg opens the fuzzy finder instead.
func Note(s *state.State, arg string) (models.Note, error) {
	if arg == "" {
		return Fuzzy(s)
	}

	if note, ok := s.Collection.Note(arg); ok {
		return note, nil
	}

	needle := strings.ToLower(strings.TrimSpace(arg))
	for _, n := range s.Collection.Notes() {
		if strings.ToLower(n.Title) == needle {
			return n, nil
		}
	}
	return models.Note{}, fmt.Errorf("no note matches %q", arg)
}

// Fuzzy opens an interactive fuzzy finder over every note, newest first.
func Fuzzy(s *state.State) (models.Note, error) {
	notes := s.Sorter.Notes(s.Collection.Notes(), "", views.SortDateDesc)
	if len(notes) == 0 {
		return models.Note{}, ErrNoNotes
	}

	idx, err := fuzzyfinder.Find(
		notes,
		func(i int) string { return notes[i].Title },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 {
				return ""
			}
			return notes[i].Content
		}),
	)
	if err != nil {
		return models.Note{}, err
	}
	return notes[idx], nil
}

// Folder resolves a POSIX-style path argument ("/Work/Ideas") to a folder
// id, nil for the root.
func Folder(s *state.State, path string) (*string, error) {
	id, ok := views.FolderByPath(s.Collection.Folders(), path)
	if !ok {
		return nil, fmt.Errorf("no folder at %q", path)
	}
	return id, nil
}
