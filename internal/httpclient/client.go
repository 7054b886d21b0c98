package httpclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// DefaultUserAgent identifies panel requests to the backend.
const DefaultUserAgent = "schedpanel/1.0"

// Client wraps resty with rate limiting
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Mu      sync.RWMutex
}

// Config defines client behavior. Zero values mean no timeout and no
// rate limit.
type Config struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	UserAgent         string
}

// NewClient creates an HTTP client for one-shot backend calls. Resty
// retries are disabled: every call issues exactly one request.
func NewClient(cfg Config) *Client {
	// Borrow the pooled transport from a retryable client
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil // Disable logging

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent)

	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	c := &Client{Resty: restyClient}
	c.SetRateLimit(cfg.RequestsPerSecond)
	return c
}

// SetHeader adds default header
func (c *Client) SetHeader(key, value string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetHeader(key, value)
}

// SetTimeout configures request timeout. Zero disables it.
func (c *Client) SetTimeout(duration time.Duration) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetTimeout(duration)
}

// SetRateLimit configures rate limiting (requests per second)
func (c *Client) SetRateLimit(rps float64) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if rps <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Request creates new request after waiting on the rate limiter
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	c.Mu.RLock()
	limiter := c.Limiter
	c.Mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Resty.R().SetContext(ctx), nil
}
