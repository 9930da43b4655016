package notes

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPreviewOf(t *testing.T) {
	cases := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{"short passes through", "hello", 60, "hello"},
		{"cut at first newline", "first line\nsecond line", 60, "first line"},
		{"long content truncated", strings.Repeat("a", 70), 60, strings.Repeat("a", 60) + "…"},
		{"empty", "", 60, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := previewOf(tc.content, tc.max); got != tc.want {
				t.Fatalf("previewOf = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPreviewOfKeepsRunesIntact(t *testing.T) {
	got := previewOf(strings.Repeat("日本語", 30), 10)
	if !utf8.ValidString(got) {
		t.Fatalf("preview split a rune: %q", got)
	}
	if want := strings.Repeat("日本語", 3) + "日" + "…"; got != want {
		t.Fatalf("preview = %q, want %q", got, want)
	}
}
