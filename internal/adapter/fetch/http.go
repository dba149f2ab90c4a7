package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// HTTPFetcher reads http:// and https:// URLs. Requests are rate limited
// so multi-day fan-outs do not hammer observatory web servers.
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewHTTPFetcher creates an HTTP fetcher with a per-request timeout and a
// requests-per-second ceiling.
func NewHTTPFetcher(timeout time.Duration, requestsPerSecond float64, logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger,
	}
}

// Fetch performs a GET and returns the response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %v: %w", err, ErrRetrieval)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %v: %w", url, err, ErrRetrieval)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %v: %w", url, err, ErrRetrieval)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d: %w", url, resp.StatusCode, ErrRetrieval)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %v: %w", url, err, ErrRetrieval)
	}

	f.logger.Debug("fetched url", "url", url, "bytes", len(content), "duration", time.Since(start))
	return content, nil
}
