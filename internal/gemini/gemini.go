// Package gemini wraps the Google generative-language API used by the
// query-notes feature. It is an opaque network collaborator with its own
// failure domain; nothing in the ingestion pipeline depends on it.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.5-flash"

	// Per-note context budget: longer note bodies are truncated before
	// they reach the prompt.
	maxNoteChars = 500

	defaultMaxTokens = 1000
)

// NoteContext is the slice of a note handed to the model as context.
type NoteContext struct {
	Title   string
	Content string
}

type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimSuffix(base, "/")
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Config   *genCfg   `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genCfg struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"topP"`
	TopK            int     `json:"topK"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// TestKey sends a minimal generation request with the given key and reports
// whether the service accepts it.
func (c *Client) TestKey(ctx context.Context, apiKey string) error {
	req := generateRequest{Contents: []content{{Parts: []part{{Text: "Hello"}}}}}
	_, err := c.generate(ctx, apiKey, req)
	return err
}

// QueryWithNotes asks the model a question constrained to the provided
// notes. The model is instructed to refuse when the answer is not in the
// context.
func (c *Client) QueryWithNotes(ctx context.Context, question string, notes []NoteContext) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("api key not set: configure one before querying")
	}

	var b strings.Builder
	for i, n := range notes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		body := n.Content
		// Character budget, not bytes: never split a rune.
		if runes := []rune(body); len(runes) > maxNoteChars {
			body = string(runes[:maxNoteChars]) + "..."
		}
		fmt.Fprintf(&b, "Note: %s\nContent: %s", n.Title, body)
	}

	prompt := fmt.Sprintf(`You are a helpful assistant that answers questions using only the provided notes.

Context Notes:
%s

Question: %s

If the answer is not contained in the notes, respond with:
"I cannot find this information in the provided notes."`, b.String(), question)

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Config: &genCfg{
			MaxOutputTokens: defaultMaxTokens,
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
		},
	}

	resp, err := c.generate(ctx, c.apiKey, req)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response received from the model")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) generate(ctx context.Context, apiKey string, payload generateRequest) (*generateResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generativelanguage request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("api error: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("api returned status %s", resp.Status)
	}

	return &parsed, nil
}
