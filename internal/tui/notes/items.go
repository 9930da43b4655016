package notes

import (
	"fmt"
	"time"
)

type listItem struct {
	id       string
	kind     string // "folder" or "note"
	name     string
	preview  string
	created  int64
	children int
}

func (i listItem) Title() string {
	if i.kind == "folder" {
		return "📁 " + i.name
	}
	return i.name
}

func (i listItem) Description() string {
	created := time.UnixMilli(i.created).Format("2006-01-02 15:04")
	if i.kind == "folder" {
		return fmt.Sprintf("%d items · created %s", i.children, created)
	}
	if i.preview == "" {
		return "Empty note · created " + created
	}
	return fmt.Sprintf("%s · created %s", i.preview, created)
}

func (i listItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.name, i.preview)
}

func previewOf(content string, max int) string {
	for idx, r := range content {
		if r == '\n' {
			content = content[:idx]
			break
		}
	}
	if runes := []rune(content); len(runes) > max {
		return string(runes[:max]) + "…"
	}
	return content
}
