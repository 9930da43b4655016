package ingest

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Incoming is text handed to the application by the OS share mechanism or a
// deep link, pending user placement into a note.
type Incoming struct {
	Content string
	Title   string
}

// Normalize decides whether a raw delivery is a structured deep link and
// extracts the shareable content from it. Deep links carry the text in a
// `text` query parameter with an optional `title`; anything else, including
// strings that fail URL parsing, is treated as literal content. Never
// returns an error: parse failure degrades to the plain-text fallback.
//
// Plain markdown content yields a title hint from its first heading, so the
// placement step can offer a better default than the generic label.
func Normalize(raw string) Incoming {
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		q := u.Query()
		if content := q.Get("text"); content != "" {
			return Incoming{Content: content, Title: strings.TrimSpace(q.Get("title"))}
		}
	}

	return Incoming{Content: raw, Title: headingTitle(raw)}
}

// headingTitle returns the text of the first ATX heading in markdown
// content, or "" when there is none.
func headingTitle(content string) string {
	source := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var title string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			title = strings.TrimSpace(string(heading.Text(source)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}
