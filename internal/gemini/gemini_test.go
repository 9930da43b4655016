package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestQueryWithNotes(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "The meeting is at noon."}}}},
			},
		})
	}))
	defer srv.Close()

	c := New("secret").WithBaseURL(srv.URL)
	answer, err := c.QueryWithNotes(context.Background(), "when is the meeting?", []NoteContext{
		{Title: "Calendar", Content: "meeting at noon"},
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if answer != "The meeting is at noon." {
		t.Fatalf("answer = %q", answer)
	}

	if !strings.Contains(gotPath, "gemini-2.5-flash:generateContent") {
		t.Fatalf("wrong endpoint: %s", gotPath)
	}
	if !strings.Contains(gotPath, "key=secret") {
		t.Fatalf("key not passed: %s", gotPath)
	}

	prompt := gotBody.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "Note: Calendar") || !strings.Contains(prompt, "when is the meeting?") {
		t.Fatalf("prompt missing context or question: %s", prompt)
	}
	if gotBody.Config == nil || gotBody.Config.MaxOutputTokens != defaultMaxTokens {
		t.Fatalf("generation config not set: %+v", gotBody.Config)
	}
}

func TestQueryTruncatesLongNotes(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Contents[0].Parts[0].Text
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "ok"}}}},
			},
		})
	}))
	defer srv.Close()

	long := strings.Repeat("x", maxNoteChars+100)
	c := New("k").WithBaseURL(srv.URL)
	if _, err := c.QueryWithNotes(context.Background(), "q", []NoteContext{
		{Title: "Big", Content: long},
	}); err != nil {
		t.Fatalf("query: %v", err)
	}

	if strings.Contains(prompt, long) {
		t.Fatalf("long note body was not truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("x", maxNoteChars)+"...") {
		t.Fatalf("truncation marker missing")
	}
}

func TestQueryTruncationKeepsRunesIntact(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Contents[0].Parts[0].Text
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "ok"}}}},
			},
		})
	}))
	defer srv.Close()

	// Multi-byte runes around the cut point.
	long := strings.Repeat("日本語テキスト", maxNoteChars)
	c := New("k").WithBaseURL(srv.URL)
	if _, err := c.QueryWithNotes(context.Background(), "q", []NoteContext{
		{Title: "Unicode", Content: long},
	}); err != nil {
		t.Fatalf("query: %v", err)
	}

	if !utf8.ValidString(prompt) {
		t.Fatalf("truncation produced invalid UTF-8")
	}
	want := string([]rune(long)[:maxNoteChars]) + "..."
	if !strings.Contains(prompt, want) {
		t.Fatalf("expected a %d-character truncation on a rune boundary", maxNoteChars)
	}
}

func TestQueryWithoutKey(t *testing.T) {
	c := New("")
	if _, err := c.QueryWithNotes(context.Background(), "q", nil); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestAPIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	c := New("bad").WithBaseURL(srv.URL)
	err := c.TestKey(context.Background(), "bad")
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("expected service message surfaced, got %v", err)
	}
}

func TestTestKeyAccepts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer srv.Close()

	c := New("").WithBaseURL(srv.URL)
	if err := c.TestKey(context.Background(), "fresh"); err != nil {
		t.Fatalf("test key: %v", err)
	}
}
