package thecatapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/abdimannabov/CoinFlip/internal/domain"
)

// DefaultURL returns a one-element array holding a random cat image.
const DefaultURL = "https://api.thecatapi.com/v1/images/search"

// Client implements ports.ImageSource via TheCatAPI.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	logger     *slog.Logger
}

// NewClient builds a client. apiKey is optional; the search endpoint works
// without one at a lower rate limit.
func NewClient(httpClient *http.Client, url, apiKey string, logger *slog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		httpClient: httpClient,
		url:        strings.TrimSpace(url),
		apiKey:     apiKey,
		logger:     logger,
	}
}

type searchResult struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (c *Client) RandomImage(ctx context.Context) (string, error) {
	url, err := c.search(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "cat image lookup failed", "url", c.url, "error", err)
		return "", domain.NewImageUnavailable(domain.Cat, domain.ReasonFetch, err)
	}
	return url, nil
}

func (c *Client) search(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(body))
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(results) == 0 {
		return "", fmt.Errorf("no results in response")
	}
	if strings.TrimSpace(results[0].URL) == "" {
		return "", fmt.Errorf("no image url in first result")
	}

	return strings.TrimSpace(results[0].URL), nil
}
