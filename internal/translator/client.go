package translator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Sentinel is returned by Client.Translate after all attempts fail.
// Consumers must treat it as failure, never as translated text.
const Sentinel = "error"

// DefaultMaxAttempts is the total number of attempts per translation,
// including the first.
const DefaultMaxAttempts = 3

// Client wraps a Service with bounded retries and exponential backoff.
// After the final failure it returns the Sentinel together with the last
// error, so callers holding original text can leave it untouched.
type Client struct {
	service     Service
	maxAttempts int
	backoffBase time.Duration
	logger      *slog.Logger
}

// NewClient builds a retrying client around svc. maxAttempts values below 1
// fall back to DefaultMaxAttempts. A nil logger uses the default.
func NewClient(svc Service, maxAttempts int, logger *slog.Logger) *Client {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		service:     svc,
		maxAttempts: maxAttempts,
		backoffBase: time.Second,
		logger:      logger,
	}
}

// Translate runs the backend with retries. Backoff doubles per attempt
// (base 1s, 2s, 4s, ...) and respects ctx cancellation. Empty backend output
// counts as a failed attempt.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := c.backoffBase << (attempt - 2)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return Sentinel, ctx.Err()
			}
		}

		result, err := c.service.Translate(ctx, text, targetLanguage)
		if err == nil && strings.TrimSpace(result) != "" {
			return result, nil
		}
		if err == nil {
			err = fmt.Errorf("empty translation from %s", c.service.Name())
		}
		lastErr = err
		c.logger.Warn("translation attempt failed",
			"service", c.service.Name(),
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"error", err)

		if ctx.Err() != nil {
			return Sentinel, ctx.Err()
		}
	}

	return Sentinel, fmt.Errorf("translation failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// Service returns the wrapped backend.
func (c *Client) Service() Service {
	return c.service
}
