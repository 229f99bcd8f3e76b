// Package linkcheck verifies that record URLs still resolve.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/refkit/refmd/internal/reference"
)

const (
	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 10 * time.Second

	// RateLimit keeps the checker polite toward publisher servers.
	RateLimit = 5.0
)

// Checker is a rate-limited HTTP client for URL verification.
type Checker struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit overrides the default requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(c *Checker) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check verifies that url resolves. It issues a HEAD request, falls back
// to GET when the server rejects HEAD, and reports any final status
// outside 2xx/3xx as an error.
func (c *Checker) Check(ctx context.Context, url string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	status, err := c.request(ctx, http.MethodHead, url)
	if err != nil {
		return err
	}
	if status == http.StatusMethodNotAllowed {
		status, err = c.request(ctx, http.MethodGet, url)
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 400 {
		return fmt.Errorf("HTTP %d", status)
	}
	return nil
}

func (c *Checker) request(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// Result records one broken link.
type Result struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CheckCollection verifies the url field of every record that has one,
// in identifier order. It returns the broken links and the number of
// URLs checked, stopping early if the context is canceled.
func (c *Checker) CheckCollection(ctx context.Context, col reference.Collection, log zerolog.Logger) ([]Result, int) {
	var broken []Result
	checked := 0

	for _, id := range reference.SortedIDs(col) {
		url := col[id][reference.FieldURL]
		if url == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		checked++
		if err := c.Check(ctx, url); err != nil {
			log.Warn().Str("id", id).Str("url", url).Err(err).Msg("link check failed")
			broken = append(broken, Result{ID: id, URL: url, Error: err.Error()})
			continue
		}
		log.Debug().Str("id", id).Str("url", url).Msg("link ok")
	}

	return broken, checked
}
