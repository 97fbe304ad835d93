// Package probe verifies that a pet image URL serves something a viewer can
// decode. A failed probe is the terminal UI's stand-in for a browser's
// image load error.
package probe

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
)

// maxHeaderBytes bounds how much of the image is read to find its header.
const maxHeaderBytes = 1 << 20

// HTTPProbe downloads the start of an image and decodes its header.
type HTTPProbe struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPProbe(httpClient *http.Client, logger *slog.Logger) *HTTPProbe {
	return &HTTPProbe{httpClient: httpClient, logger: logger}
}

func (p *HTTPProbe) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("image status %d", resp.StatusCode)
	}

	cfg, format, err := image.DecodeConfig(io.LimitReader(resp.Body, maxHeaderBytes))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	p.logger.DebugContext(ctx, "image probed", "url", url, "format", format, "width", cfg.Width, "height", cfg.Height)
	return nil
}
