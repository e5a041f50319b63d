// Package revalidate notifies the storefront that cached pages must be
// rebuilt after catalog mutations. Failures are logged by callers, never
// surfaced to the admin request.
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// Client posts revalidation requests to the storefront.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New constructs a client; baseURL empty disables revalidation (Fire no-ops).
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type payload struct {
	Paths []string `json:"paths"`
	Tags  []string `json:"tags"`
}

// Fire asks the storefront to revalidate the given paths and tags. Up to
// three attempts with exponential backoff; 5xx responses are retried, 4xx
// are terminal since retrying an invalid request cannot help.
func (c *Client) Fire(ctx context.Context, paths, tags []string) error {
	if c.BaseURL == "" {
		return nil
	}

	body, err := json.Marshal(payload{Paths: paths, Tags: tags})
	if err != nil {
		return fmt.Errorf("marshal revalidate payload: %w", err)
	}

	backoff := retry.WithMaxRetries(2, retry.NewExponential(time.Second))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.BaseURL+"/api/revalidate", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.Token)
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("revalidate: status %d", resp.StatusCode))
		default:
			return fmt.Errorf("revalidate: status %d", resp.StatusCode)
		}
	})
}
