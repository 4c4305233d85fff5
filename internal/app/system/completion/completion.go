// internal/app/system/completion/completion.go

// Package completion wraps the Gemini API for the report pipeline's
// text-generation step.
package completion

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// systemInstruction constrains tone, format, and length of generated
// reports. It is fixed; callers only supply the extracted project text.
const systemInstruction = "You are a presentation assistant. Write in a clear, professional tone. " +
	"Produce plain prose with no markdown, no headings, and no bullet points. " +
	"Keep the result concise enough to read aloud in under two minutes."

// promptSuffix is appended to every prompt to constrain structure and
// word count.
const promptSuffix = "\n\nSummarize the ideas above as a single presentation script of three short paragraphs, at most 200 words in total."

const defaultModel = "gemini-2.5-flash"

// Client generates report text from a prompt built out of a project's
// node content.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a completion client. An empty model selects the default.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("completion: API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("completion: create client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Generate produces the report body for the given prompt. The prompt is
// the comma-joined text extracted from a project's node items; the
// fixed system instruction and suffix are applied here.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	contents := genai.Text(prompt + promptSuffix)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("completion: generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("completion: empty response from model %s", c.model)
	}
	return text, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}
