// Package api is the single boundary between the client and the backend's
// HTTP API. It attaches bearer-token authorization, serializes request
// bodies, converts non-success responses into a uniform TransportError, and
// normalizes the backend's inconsistent response shapes into the stable
// schema in models. No other package talks to the network.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/clipstream/clipstream/internal/logging"
)

// TokenSource supplies the bearer token for outbound requests. An empty
// string means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client calls the video platform backend. Construct with New; the zero
// value is not usable.
type Client struct {
	base    string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets the bearer token provider.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger; defaults to a no-op logger.
func WithLogger(log logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRateLimit caps outbound requests per second. Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
}

// WithBreaker installs a circuit breaker that opens after maxFailures
// consecutive network failures. Zero disables the breaker.
func WithBreaker(maxFailures uint32) Option {
	return func(c *Client) {
		if maxFailures == 0 {
			c.breaker = nil
			return
		}
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "backend",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.log.Warn(context.Background(), "circuit breaker state change",
					"name", name, "from", from.String(), "to", to.String())
			},
		})
	}
}

// New builds a Client for the given base URL, e.g. "https://host/api".
// A trailing slash on the base is tolerated.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
		log:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one HTTP exchange and returns the response body. Non-2xx
// statuses and network failures come back as *TransportError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		c.log.Error(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, &TransportError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(ctx, "backend returned error", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &TransportError{StatusCode: resp.StatusCode, Message: messageFromBody(data)}
	}
	return data, nil
}

// roundTrip executes the request, through the circuit breaker when one is
// configured. Only network-level failures count toward opening the breaker;
// HTTP error statuses are the caller's concern.
func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.http.Do(req)
	}
	res, err := c.breaker.Execute(func() (any, error) {
		return c.http.Do(req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*http.Response), nil
}

// postJSON sends body as JSON and returns the raw response body.
func (c *Client) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, buf, "application/json")
}
