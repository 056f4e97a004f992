// Package mealdb is a client for the public TheMealDB recipe API.
package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pageza/recipehub/internal/models"
)

// DefaultBaseURL is the free-tier TheMealDB API root.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

var (
	// ErrUpstream wraps every transport, status and decoding failure.
	ErrUpstream = errors.New("recipe api request failed")
	// ErrNotFound is returned by LookupByID when the id is unknown.
	ErrNotFound = errors.New("recipe not found")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstream
}

// Client talks to TheMealDB. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy of the HTTP
// client, never to one passed in with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit caps outbound requests per second. A non-positive rps
// disables limiting.
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

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new Client for baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 0),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// FilterByIngredient returns every recipe summary that uses ingredient. An
// unknown ingredient yields an empty, non-nil slice.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]models.RecipeSummary, error) {
	resp, err := c.get(ctx, "filter.php", ingredient)
	if err != nil {
		return nil, err
	}

	recipes := make([]models.RecipeSummary, 0, len(resp.Meals))
	for _, m := range resp.Meals {
		recipes = append(recipes, m.summary())
	}
	return recipes, nil
}

// LookupByID fetches the full record for one recipe.
func (c *Client) LookupByID(ctx context.Context, id string) (*models.RecipeDetail, error) {
	resp, err := c.get(ctx, "lookup.php", id)
	if err != nil {
		return nil, err
	}
	if len(resp.Meals) == 0 {
		return nil, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return resp.Meals[0].detail(), nil
}

func (c *Client) get(ctx context.Context, endpoint, value string) (*mealsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstream, endpoint, err)
	}

	reqURL := fmt.Sprintf("%s/%s?i=%s", c.baseURL, endpoint, url.QueryEscape(value))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %w", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("recipe api request failed",
			zap.String("endpoint", endpoint),
			zap.String("query", value),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstream, endpoint, err)
	}
	defer res.Body.Close()

	c.logger.Debug("recipe api request",
		zap.String("endpoint", endpoint),
		zap.String("query", value),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Endpoint: endpoint, StatusCode: res.StatusCode}
	}

	var out mealsResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s response: %w", ErrUpstream, endpoint, err)
	}
	return &out, nil
}
