// internal/app/system/translate/translate.go

// Package translate is a client for a DeepL-style translation REST API:
// POST {base}/v2/translate with a JSON body, Authorization header
// "DeepL-Auth-Key <key>", JSON response with a translations array.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTargetLang = "KO"

// Client calls the translation service.
type Client struct {
	baseURL    string
	apiKey     string
	targetLang string
	httpClient *http.Client
}

// New creates a translation client. An empty targetLang selects the
// default. baseURL must not end with a slash.
func New(baseURL, apiKey, targetLang string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("translate: base URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("translate: API key is required")
	}
	if targetLang == "" {
		targetLang = defaultTargetLang
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		targetLang: targetLang,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type translateRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
}

type translateResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate converts text into the configured target language.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Text:       []string{text},
		TargetLang: c.targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("translate: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("translate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translate: service returned %d: %s", resp.StatusCode, string(snippet))
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("translate: decode response: %w", err)
	}
	if len(parsed.Translations) == 0 {
		return "", fmt.Errorf("translate: empty translations array")
	}
	return parsed.Translations[0].Text, nil
}
