// Package client is a thin abstraction over the MediaWiki action API, the
// Wikimedia Pageviews REST API, and the Lift Wing inference endpoints. It
// owns user-agent configuration, retry-with-backoff on transient failures,
// per-language rate limiting, and per-request timeouts — the concerns
// spec.md §4.1 assigns to "the wiki client" — so that every metric
// collector in internal/metrics can stay a pure algorithm over already-
// fetched data.
package client

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent = "WikiSense/1.0 (https://github.com/opsci/wikisense; contact: ops@example.org)"
	defaultTimeout   = 20 * time.Second
	maxRetryAttempts = 4
	initialBackoff   = 750 * time.Millisecond
	// collectorRateLimit bounds the steady-state request rate issued to a
	// single wiki host, independent of the retry backoff valve.
	collectorRateLimit = 10.0 // requests/second
)

// transientStatusCodes are HTTP codes that warrant a retry with backoff
// rather than an immediate failure, per spec.md §4.1.
var transientStatusCodes = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
	403: true,
}

// Client talks to the MediaWiki action API, the Pageviews REST API, and
// Lift Wing, pooling one resty.Client per language edition and rate
// limiting requests per host.
type Client struct {
	userAgent string
	timeout   time.Duration
	logger    zerolog.Logger

	mu            sync.Mutex
	httpByHost    map[string]*resty.Client
	limiterByHost map[string]*rate.Limiter
	baseURLByHost map[string]string
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithUserAgent overrides the default User-Agent sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithBaseURLOverride points one logical host at an arbitrary base URL
// instead of https://{host}, for pointing a test's Client at an
// httptest.Server standing in for a wiki host.
func WithBaseURLOverride(host, baseURL string) Option {
	return func(c *Client) { c.baseURLByHost[host] = baseURL }
}

// New builds a Client ready to serve any language edition.
func New(opts ...Option) *Client {
	c := &Client{
		userAgent:     DefaultUserAgent,
		timeout:       defaultTimeout,
		logger:        log.Logger,
		httpByHost:    make(map[string]*resty.Client),
		limiterByHost: make(map[string]*rate.Limiter),
		baseURLByHost: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// httpFor returns the pooled resty.Client for a given host, creating it on
// first use. One pooled client per host is enough to reuse connections
// across work items (spec.md §5 "Shared resources").
func (c *Client) httpFor(host string) *resty.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.httpByHost[host]; ok {
		return existing
	}

	baseURL, overridden := c.baseURLByHost[host]
	if !overridden {
		baseURL = fmt.Sprintf("https://%s", host)
	}

	rc := resty.New()
	rc.SetTimeout(c.timeout)
	rc.SetHeader("User-Agent", c.userAgent)
	rc.SetBaseURL(baseURL)
	c.httpByHost[host] = rc
	return rc
}

// limiterFor returns the rate limiter guarding requests to a given host.
func (c *Client) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.limiterByHost[host]; ok {
		return existing
	}

	limiter := rate.NewLimiter(rate.Limit(collectorRateLimit), 1)
	c.limiterByHost[host] = limiter
	return limiter
}

// request performs a single HTTP call against host, retrying transient
// failures with exponential backoff, per spec.md §4.1 and §7. A response
// with a non-transient status (including a permanent 4xx) is returned
// immediately without retry and with a nil error.
func (c *Client) request(ctx context.Context, host string, build func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	limiter := c.limiterFor(host)
	rc := c.httpFor(host)

	var lastErr error
	for attempt := 0; attempt <= maxRetryAttempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		resp, err := build(rc.R().SetContext(ctx))
		if err == nil && !transientStatusCodes[resp.StatusCode()] {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("transient HTTP status %d", resp.StatusCode())
		}

		if attempt == maxRetryAttempts {
			break
		}

		backoff := time.Duration(float64(initialBackoff) * math.Pow(2, float64(attempt)))
		c.logger.Warn().
			Str("host", host).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(lastErr).
			Msg("wiki client retrying after transient failure")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request to %s failed after %d attempts: %w", host, maxRetryAttempts+1, lastErr)
}

func actionAPIHost(lang string) string {
	return fmt.Sprintf("%s.wikipedia.org", lang)
}
