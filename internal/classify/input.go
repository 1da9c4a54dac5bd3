package classify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/factlens/factlens/internal/scrape"
)

// Resolver turns raw input into a text body. Plain text passes through;
// URL inputs are fetched and their main content extracted.
type Resolver struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewResolver creates an input resolver
func NewResolver(timeout time.Duration, userAgent string, maxBytes int64) *Resolver {
	return &Resolver{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		maxBytes:   maxBytes,
	}
}

// Resolve returns the text body for the input content
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return strings.TrimSpace(input), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch input URL: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := scrape.ExtractText(string(body), input)
	if text == "" {
		return "", fmt.Errorf("no text content at %s", input)
	}

	return text, nil
}
