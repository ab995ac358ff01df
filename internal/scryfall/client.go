// Package scryfall talks to the remote card catalog: its bulk-data manifest,
// the dataset downloads, and the card image CDN.
package scryfall

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/proxyprint/internal/fault"
	"github.com/arcanaland/proxyprint/internal/logging"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.scryfall.com/"

// Client performs blocking GET requests against the API and image hosts.
// It never retries.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a client for baseURL. A zero timeout means requests may
// block indefinitely.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.OrNop(logger),
	}
}

// Manifest returns the raw bulk-data manifest.
func (c *Client) Manifest(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.baseURL+"bulk-data", "application/json")
}

// Download returns the contents of a bulk dataset.
func (c *Client) Download(ctx context.Context, uri string) ([]byte, error) {
	return c.get(ctx, uri, "application/json")
}

// Fetch returns the raw bytes of a card image.
func (c *Client) Fetch(ctx context.Context, uri string) ([]byte, error) {
	return c.get(ctx, uri, "image/png,image/*;q=0.8")
}

func (c *Client) get(ctx context.Context, uri, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fault.Wrap(fault.CodeFetch, "build request for "+uri, err)
	}
	req.Header.Set("Accept", accept)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Wrap(fault.CodeFetch, "GET "+uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fault.New(fault.CodeFetch, fmt.Sprintf("GET %s: unexpected status %s", uri, resp.Status))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fault.Wrap(fault.CodeFetch, "read body of "+uri, err)
	}

	c.logger.Debug("fetched",
		zap.String("uri", uri),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return body, nil
}
