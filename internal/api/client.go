package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ziadkadry99/codedash/internal/resource"
)

// DefaultTimeout bounds every request to the analysis backend. A hung
// request surfaces as a transport failure instead of stalling its caller
// indefinitely.
const DefaultTimeout = 15 * time.Second

// Client talks to the remote read-only analysis API.
type Client struct {
	baseURL string
	limit   int
	client  *http.Client
}

// New creates a Client for the given base URL. limit caps the number of
// records requested per collection; zero means the server default.
func New(baseURL string, limit int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the response wrapper used by every backend endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// FetchCollection retrieves the full collection for the given kind.
func (c *Client) FetchCollection(ctx context.Context, kind resource.Kind) ([]resource.Item, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, kind)
	if c.limit > 0 {
		u += "?limit=" + strconv.Itoa(c.limit)
	}

	var items []resource.Item
	if err := c.getJSON(ctx, u, &items); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", kind, err)
	}
	return items, nil
}

// Search queries the search endpoint for the given text.
func (c *Client) Search(ctx context.Context, query string) ([]resource.SearchResult, error) {
	u := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))
	if c.limit > 0 {
		u += "&limit=" + strconv.Itoa(c.limit)
	}

	var results []resource.SearchResult
	if err := c.getJSON(ctx, u, &results); err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	return results, nil
}

// Stats retrieves the aggregate counters for the analyzed codebase.
func (c *Client) Stats(ctx context.Context) (*resource.Stats, error) {
	var stats resource.Stats
	if err := c.getJSON(ctx, c.baseURL+"/stats", &stats); err != nil {
		return nil, fmt.Errorf("fetching stats: %w", err)
	}
	return &stats, nil
}

// getJSON performs a GET, unwraps the response envelope, and decodes the
// data payload into out. A 200 carrying success=false or a missing data
// field counts as a failure, with the server's message preserved.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !env.Success {
		if env.Message != "" {
			return fmt.Errorf("backend error: %s", env.Message)
		}
		return fmt.Errorf("backend reported failure")
	}
	if env.Data == nil {
		return fmt.Errorf("malformed response: missing data field")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}
