package lisa

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

// ChatClient is the interface for the Lisa natural-language assistant.
// The summarizer, classifier and extractor all talk to Lisa through it.
type ChatClient interface {
	Chat(ctx context.Context, question string) (string, error)
}

// Client calls the Lisa chat service over HTTP
type Client struct {
	baseURL   string
	modelName string
	httpCli   *http.Client
}

// NewClient creates a new Lisa client
func NewClient(baseURL, modelName string) *Client {
	if baseURL == "" {
		baseURL = "https://lisa-dev.zentrades.pro"
	}
	if modelName == "" {
		modelName = "llama3:latest"
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		modelName: modelName,
		httpCli:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Chat sends a prompt to Lisa and returns the answer as plain text
func (c *Client) Chat(ctx context.Context, question string) (string, error) {
	url := c.baseURL + "/lisa/chat"

	payload := map[string]interface{}{
		"question":   question,
		"model_name": c.modelName,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return "", fmt.Errorf("lisa request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lisa API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return normalizeAnswer(respBody), nil
}

// normalizeAnswer resolves the service's duck-typed response shapes to a
// trimmed string. The body is either {"answer": "..."}, a bare JSON
// string, or some other shape that gets stringified as-is. This is the
// single place shape handling lives; callers never inspect the body.
func normalizeAnswer(body []byte) string {
	var withAnswer struct {
		Answer *string `json:"answer"`
	}
	if err := json.Unmarshal(body, &withAnswer); err == nil && withAnswer.Answer != nil {
		return strings.TrimSpace(*withAnswer.Answer)
	}

	var bare string
	if err := json.Unmarshal(body, &bare); err == nil {
		return strings.TrimSpace(bare)
	}

	return strings.TrimSpace(string(body))
}
