// Package views derives read-only projections from the in-memory folder and
// note collections: parent paths and filtered, sorted listings. Nothing in
// this package holds state of its own.
package views

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ingenium-notes/ingenium/internal/models"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortDateAsc   SortKey = "date-asc"
	SortDateDesc  SortKey = "date-desc"
	SortAlphaAsc  SortKey = "alpha-asc"
	SortAlphaDesc SortKey = "alpha-desc"
)

// DefaultSort matches the application default listing order.
const DefaultSort = SortDateDesc

// PathOf walks parent links from folderID to the root and renders a
// POSIX-style absolute path, "/" for nil. The walk is bounded by the number
// of folders, so a cycle in parent links produces a truncated path instead
// of hanging; the cycle itself is not this package's problem to repair.
func PathOf(folders []models.Folder, folderID *string) string {
	if folderID == nil {
		return "/"
	}

	byID := make(map[string]models.Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}

	var segments []string
	current := *folderID
	for range folders {
		folder, ok := byID[current]
		if !ok {
			break
		}
		segments = append([]string{folder.Name}, segments...)
		if folder.ParentID == nil {
			break
		}
		current = *folder.ParentID
	}

	return "/" + strings.Join(segments, "/")
}

// FolderByPath resolves a POSIX-style absolute path ("/A/B") back to a
// folder id, nil for "/" and ok=false when any segment is missing.
func FolderByPath(folders []models.Folder, path string) (*string, bool) {
	cleaned := strings.Trim(strings.TrimSpace(path), "/")
	if cleaned == "" {
		return nil, true
	}

	var parent *string
	for _, segment := range strings.Split(cleaned, "/") {
		found := false
		for _, f := range folders {
			if f.Name != segment {
				continue
			}
			if (f.ParentID == nil) != (parent == nil) {
				continue
			}
			if f.ParentID != nil && *f.ParentID != *parent {
				continue
			}
			id := f.ID
			parent = &id
			found = true
			break
		}
		if !found {
			return nil, false
		}
	}
	return parent, true
}

// Sorter filters and sorts listings with locale-aware alphabetic
// comparison. Equal-key order is whatever the underlying sort produces.
type Sorter struct {
	coll *collate.Collator
}

func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{coll: collate.New(tag)}
}

// Notes returns the notes matching query (case-insensitive substring over
// title and content; empty query matches everything), ordered by key.
func (s *Sorter) Notes(notes []models.Note, query string, key SortKey) []models.Note {
	needle := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if needle == "" ||
			strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			filtered = append(filtered, n)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return s.less(key,
			filtered[i].CreatedAt, filtered[j].CreatedAt,
			filtered[i].Title, filtered[j].Title)
	})
	return filtered
}

// Folders is the folder counterpart of Notes; the filter runs over names.
func (s *Sorter) Folders(folders []models.Folder, query string, key SortKey) []models.Folder {
	needle := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]models.Folder, 0, len(folders))
	for _, f := range folders {
		if needle == "" || strings.Contains(strings.ToLower(f.Name), needle) {
			filtered = append(filtered, f)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return s.less(key,
			filtered[i].CreatedAt, filtered[j].CreatedAt,
			filtered[i].Name, filtered[j].Name)
	})
	return filtered
}

func (s *Sorter) less(key SortKey, createdA, createdB int64, nameA, nameB string) bool {
	switch key {
	case SortDateAsc:
		return createdA < createdB
	case SortAlphaAsc:
		return s.coll.CompareString(nameA, nameB) < 0
	case SortAlphaDesc:
		return s.coll.CompareString(nameA, nameB) > 0
	default: // SortDateDesc
		return createdA > createdB
	}
}
