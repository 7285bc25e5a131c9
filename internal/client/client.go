package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/numcore/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
)

// StatusError is returned when the server answers without a tool result,
// or with a 5xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("server returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, body)
}

// Temporary reports whether retrying later may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// Client talks to a numcore server with rate limiting and a circuit breaker.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outgoing requests per second. rps <= 0 means unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithBreaker replaces the default breaker settings.
func WithBreaker(settings resilience.Settings) Option {
	return func(c *Client) {
		settings.IsFailure = isFailure
		c.breaker = resilience.New("numcore-client", settings)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.resty.SetTimeout(d) }
}

// WithRetry configures retries for transport errors and 5xx responses.
func WithRetry(count int, wait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.resty.SetRetryCount(count).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(maxWait)
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("User-Agent", "numcore-client/1.0").
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || (resp != nil && resp.StatusCode() >= 500)
		})

	settings := resilience.DefaultSettings()
	settings.IsFailure = isFailure

	c := &Client{
		resty:   r,
		limiter: rate.NewLimiter(rate.Inf, 0),
		breaker: resilience.New("numcore-client", settings),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// isFailure counts transport errors and 5xx against the breaker. Tool
// failures and other 4xx are the caller's problem.
func isFailure(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	return true
}

// BreakerState returns the current circuit breaker state.
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// Execute runs toolID on the server. A failed tool comes back as a Result
// with Success false and a nil error.
func (c *Client) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	var result types.Result
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetBody(types.ExecuteRequest{ToolID: toolID, Params: params}).
			SetResult(&result).
			SetError(&result).
			Post("/services/execute")
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() && result.Error == nil && !result.Success {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return &result, nil
}

// Services lists the services the server exposes.
func (c *Client) Services(ctx context.Context) ([]types.Service, error) {
	var out struct {
		Services []types.Service `json:"services"`
	}
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&out).Get("/services")
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return out.Services, nil
}

// Health returns the server's health document.
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&out).Get("/health")
	})
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return out, nil
}

// do waits for the limiter, then sends through the breaker. 5xx responses
// become StatusErrors so they count as breaker failures.
func (c *Client) do(ctx context.Context, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	var resp *resty.Response
	err := c.breaker.Do(ctx, func(ctx context.Context) error {
		r, err := send(c.resty.R().SetContext(ctx))
		if err != nil {
			return err
		}
		resp = r
		if r.StatusCode() >= 500 {
			return &StatusError{Code: r.StatusCode(), Body: r.String()}
		}
		return nil
	})
	if err != nil {
		c.logger.Debug("request failed",
			zap.Error(err),
			zap.String("breaker", c.breaker.State().String()),
		)
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			return nil, fmt.Errorf("server unavailable: %w", err)
		}
		return nil, err
	}
	return resp, nil
}
