package generic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// StatusError is returned when the backend answers with a non 2xx status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %v", e.Status)
}

// Client posts JSON to a single endpoint authenticated with a bearer token.
type Client struct {
	URL     string
	Limiter *RateLimiter
	client  *http.Client
	apiKey  string
	debug   bool
}

// NewClient returns a client for url. A nil httpClient means http.DefaultClient
// semantics, without any client side timeout.
func NewClient(url, apiKey string, httpClient *http.Client, debugEnv string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		URL:    url,
		client: httpClient,
		apiKey: apiKey,
		debug:  misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv(debugEnv)),
	}
}

// HasKey reports if the client carries a credential.
func (c *Client) HasKey() bool {
	return c != nil && c.apiKey != ""
}

func (c *Client) createRequest(ctx context.Context, payload any) (*http.Request, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("request to %v: %v\n", c.URL, debug.IndentedJsonFmt(payload)))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", c.apiKey))
	return req, nil
}

// WaitForBudget blocks while the limiter holds requests back. It is kept
// apart from PostJSON so that the wait is not bounded by a per request
// deadline. attrs are passed on to the limiter's log records.
func (c *Client) WaitForBudget(ctx context.Context, attrs ...any) error {
	if c.Limiter == nil {
		return nil
	}
	return c.Limiter.Wait(ctx, attrs...)
}

// PostJSON sends payload and decodes a successful response into out. The raw
// response body is returned whenever one was received, also on failure, so
// that callers may report it. The rate limit budget is updated from the
// response but never waited for, see WaitForBudget.
func (c *Client) PostJSON(ctx context.Context, payload, out any) ([]byte, error) {
	req, err := c.createRequest(ctx, payload)
	if err != nil {
		return nil, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()
	if c.Limiter != nil {
		if err := c.Limiter.UpdateFromHeaders(res.Header); err != nil && c.debug {
			ancli.PrintWarn(fmt.Sprintf("failed to update rate limits: %v\n", err))
		}
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("response from %v: %v\n", c.URL, string(body)))
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return body, &StatusError{Code: res.StatusCode, Status: res.Status, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return body, fmt.Errorf("failed to decode response: %w", err)
	}
	return body, nil
}
