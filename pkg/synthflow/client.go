package synthflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	callsyncdomain "callsync-backend/internal/callsync/domain"
)

// Client calls the Synthflow calling-platform API
type Client struct {
	baseURL string
	apiKey  string
	httpCli *http.Client
}

// NewClient creates a new Synthflow client
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://api.synthflow.ai"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpCli: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListCalls fetches up to limit recent calls for a tenant (model_id).
// The batch is unordered; callers sort by start time themselves.
func (c *Client) ListCalls(ctx context.Context, tenantID string, limit int) ([]callsyncdomain.Call, error) {
	if limit <= 0 {
		limit = 25
	}

	params := url.Values{}
	params.Set("model_id", tenantID)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v2/calls?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthflow request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("synthflow API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return decodeCalls(respBody)
}

// decodeCalls accepts the documented wrapper
// {"status":"ok","response":{"calls":[...]}} as well as the older
// {"calls":[...]} and bare-array shapes the API has been observed to
// return.
func decodeCalls(body []byte) ([]callsyncdomain.Call, error) {
	var wrapped struct {
		Status   string `json:"status"`
		Response struct {
			Calls []callsyncdomain.Call `json:"calls"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Response.Calls != nil {
		return wrapped.Response.Calls, nil
	}

	var flat struct {
		Calls []callsyncdomain.Call `json:"calls"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Calls != nil {
		return flat.Calls, nil
	}

	var bare []callsyncdomain.Call
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("unrecognized calls response shape: %s", truncate(string(body), 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
