package regions

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

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.RegionLookup = (*Client)(nil)

// RegionInfoPath is the region metadata endpoint.
const RegionInfoPath = "/api/info/regions"

// HTTPDoer sends HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches region metadata from a remote service.
type Client struct {
	baseURL string
	http    HTTPDoer
	limiter *rateLimiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.http = doer
	}
}

// WithRateLimit sets the sustained requests per second.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = newRateLimiter(requestsPerSecond)
	}
}

// NewClient creates a lookup client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: region service url %q", domain.ErrInvalidInput, baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: newRateLimiter(DefaultRequestsPerSecond),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lookup performs GET {base}/api/info/regions?region=KEY.
func (c *Client) Lookup(ctx context.Context, key domain.RegionKey) (*domain.RegionInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{"region": []string{string(key)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+RegionInfoPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRegion, key)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.limiter.Backoff(retryAfter(resp.Header.Get("Retry-After")))
		return nil, domain.ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d", domain.ErrLookupFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", domain.ErrLookupFailed, err)
	}
	var info domain.RegionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %w", domain.ErrLookupFailed, err)
	}
	// Older services answer an unknown key with the whole catalog.
	if info.Name == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRegion, key)
	}
	if info.Key == "" {
		info.Key = key
	}
	return &info, nil
}

func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
