// Package results fetches CI test-result documents from their static
// publish location.
package results

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/model"
)

const (
	acceptHeader = "application/json"
	userAgent    = "localstack-badge-service/1.0"

	// fetchTimeout bounds every lookup; past it the cache layer treats the
	// lookup as failed and falls back to stale data
	fetchTimeout = 10 * time.Second
)

// Client fetches one test-result document per platform, track and optional
// package qualifier
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient points at the publish root of the test-result documents
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// URL returns the publish location for one platform/track/package combination
func (c *Client) URL(platform, track, pkg string) string {
	if pkg != "" {
		return fmt.Sprintf("%s/%s/%s/%s/test-results.json", c.BaseURL, platform, track, pkg)
	}
	return fmt.Sprintf("%s/%s/%s/test-results.json", c.BaseURL, platform, track)
}

// Fetch retrieves and decodes one document. Any non-200 response, transport
// error or undecodable body is a fetch failure for the cache to absorb;
// there is no retry here.
func (c *Client) Fetch(ctx context.Context, platform, track, pkg string) (*model.TestResultData, error) {
	url := c.URL(platform, track, pkg)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching test results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching test results: HTTP %d from %s", resp.StatusCode, url)
	}

	var data model.TestResultData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding test results from %s: %w", url, err)
	}
	return &data, nil
}
