package dogceo

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

// DefaultURL serves one random dog image per request.
const DefaultURL = "https://dog.ceo/api/breeds/image/random"

// Client implements ports.ImageSource via the dog.ceo API.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, url string, logger *slog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		httpClient: httpClient,
		url:        strings.TrimSpace(url),
		logger:     logger,
	}
}

// randomResponse mirrors {"message": "<image url>", "status": "success"}.
type randomResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (c *Client) RandomImage(ctx context.Context) (string, error) {
	url, err := c.fetch(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "dog image lookup failed", "url", c.url, "error", err)
		return "", domain.NewImageUnavailable(domain.Dog, domain.ReasonFetch, err)
	}
	return url, nil
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

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

	var out randomResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if out.Status != "" && out.Status != "success" {
		return "", fmt.Errorf("upstream reported status %q", out.Status)
	}
	if strings.TrimSpace(out.Message) == "" {
		return "", fmt.Errorf("no image url in response")
	}

	return strings.TrimSpace(out.Message), nil
}
