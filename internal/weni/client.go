// Package weni is the client for the Weni AI platform APIs: conversation
// listings, conversation messages, and agent-execution traces.
package weni

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultBillingBaseURL = "https://billing.weni.ai"
	defaultNexusBaseURL   = "https://nexus.weni.ai"

	// The platform throttles aggressively; keep a polite request rate.
	defaultRequestsPerSecond = 4

	userAgent = "convtrace/1.0"
)

// Client talks to the Weni platform on behalf of one project.
type Client struct {
	billingBaseURL string
	nexusBaseURL   string
	token          string
	projectUUID    string
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the billing and nexus API hosts.
func WithBaseURLs(billing, nexus string) Option {
	return func(c *Client) {
		c.billingBaseURL = billing
		c.nexusBaseURL = nexus
	}
}

// WithRateLimit overrides the request throttle.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithLogger attaches a logger for request-level diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a platform client authenticated with a bearer token.
func NewClient(token, projectUUID string, opts ...Option) *Client {
	c := &Client{
		billingBaseURL: defaultBillingBaseURL,
		nexusBaseURL:   defaultNexusBaseURL,
		token:          token,
		projectUUID:    projectUUID,
		httpClient:     &http.Client{Timeout: 60 * time.Second},
		limiter:        rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
		logger:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProjectUUID returns the project this client is bound to.
func (c *Client) ProjectUUID() string {
	return c.projectUUID
}

// getJSON performs a rate-limited authenticated GET and decodes the JSON
// response body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if params != nil {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,pt-BR;q=0.8,pt;q=0.7")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Origin", "https://intelligence-next.weni.ai")
	req.Header.Set("Referer", "https://intelligence-next.weni.ai/supervisor")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("url", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("platform request")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, req.URL.Path, truncateBody(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", req.URL.Path, err)
	}
	return nil
}

func truncateBody(body []byte) string {
	const maxLen = 256
	if len(body) <= maxLen {
		return string(body)
	}
	return string(body[:maxLen]) + "..."
}
