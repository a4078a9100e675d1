package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/time/rate"

	"github.com/wexinc/todos/internal/config"
	"github.com/wexinc/todos/internal/errors"
	"github.com/wexinc/todos/internal/logging"
	"github.com/wexinc/todos/internal/todo"
)

// RequestIDHeader carries a per-request id that shows up in the logs.
const RequestIDHeader = "X-Request-ID"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Options configures an HTTP client.
type Options struct {
	// BaseURL is the API root, e.g. "https://mate.academy/students-api".
	BaseURL string
	// UserID is the owner whose todos List returns.
	UserID int
	// Timeout bounds a single request. Zero means no timeout.
	Timeout time.Duration
	// Retries is how many extra attempts a failed GET gets.
	Retries int
	// RateLimit is the sustained request rate per second. Zero disables throttling.
	RateLimit float64
	// Burst is the token bucket size.
	Burst int
	// UserAgent is sent with every request.
	UserAgent string
	// HTTPClient overrides the transport; tests pass httptest clients here.
	HTTPClient *http.Client
	// Logger receives request logs. Defaults to the global logger.
	Logger *logging.Logger
}

// OptionsFromConfig builds Options from the api section of the config.
func OptionsFromConfig(cfg config.APIConfig, userAgent string) Options {
	return Options{
		BaseURL:   cfg.BaseURL,
		UserID:    cfg.UserID,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
		UserAgent: userAgent,
	}
}

// HTTP is a Client backed by the REST API.
type HTTP struct {
	base      *url.URL
	userID    int
	retries   int
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	schemas   *Schemas
	logger    *logging.Logger

	// retryDelay is the wait before the first retry; it doubles each attempt.
	retryDelay time.Duration
}

var _ Client = (*HTTP)(nil)

// NewHTTP creates an HTTP client from opts.
func NewHTTP(opts Options) (*HTTP, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, errors.ConfigValidationError("api.base_url",
			fmt.Sprintf("%q is not an absolute http(s) URL", opts.BaseURL), nil)
	}
	if opts.UserID <= 0 {
		return nil, errors.ConfigValidationError("api.user_id", "must be positive", nil)
	}

	schemas, err := LoadSchemas()
	if err != nil {
		return nil, err
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "todos"
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Global()
	}

	return &HTTP{
		base:       base,
		userID:     opts.UserID,
		retries:    opts.Retries,
		userAgent:  userAgent,
		client:     client,
		limiter:    rate.NewLimiter(limit, burst),
		schemas:    schemas,
		logger:     logger.With("component", "api"),
		retryDelay: 200 * time.Millisecond,
	}, nil
}

// List fetches the owner's todos.
func (c *HTTP) List(ctx context.Context) ([]todo.Task, error) {
	query := url.Values{"userId": {strconv.Itoa(c.userID)}}

	var tasks []todo.Task
	if err := c.do(ctx, http.MethodGet, "/todos", query, nil, c.schemas.List, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return tasks, nil
}

type createRequest struct {
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Create posts a new todo.
func (c *HTTP) Create(ctx context.Context, owner int, title string, completed bool) (todo.Task, error) {
	body := createRequest{UserID: owner, Title: title, Completed: completed}

	var created todo.Task
	if err := c.do(ctx, http.MethodPost, "/todos", nil, body, c.schemas.Todo, &created); err != nil {
		return todo.Task{}, err
	}
	return created, nil
}

// Update patches a todo. Only the fields set on patch are sent.
func (c *HTTP) Update(ctx context.Context, id int, patch todo.Patch) error {
	ctx = logging.WithTodoID(ctx, id)
	return c.do(ctx, http.MethodPatch, "/todos/"+strconv.Itoa(id), nil, patch, nil, nil)
}

// Delete removes a todo.
func (c *HTTP) Delete(ctx context.Context, id int) error {
	ctx = logging.WithTodoID(ctx, id)
	return c.do(ctx, http.MethodDelete, "/todos/"+strconv.Itoa(id), nil, nil, nil, nil)
}

// do sends one logical request. GETs are retried on transient failures.
func (c *HTTP) do(ctx context.Context, method, path string, query url.Values, body any, schema *jsonschema.Schema, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.ErrValidation, "failed to encode request body")
		}
	}

	attempts := 1
	if method == http.MethodGet && c.retries > 0 {
		attempts += c.retries
	}

	delay := c.retryDelay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return lastErr
			case <-time.After(delay):
			}
			delay *= 2
		}

		lastErr = c.send(ctx, method, path, query, payload, schema, out)
		if lastErr == nil || !errors.IsRetryable(lastErr) {
			return lastErr
		}
		if attempt < attempts {
			c.logger.WithContext(ctx).Warn("retrying request",
				"method", method,
				"path", path,
				"attempt", attempt,
				"error", lastErr,
			)
		}
	}
	return lastErr
}

func (c *HTTP) send(ctx context.Context, method, path string, query url.Values, payload []byte, schema *jsonschema.Schema, out any) error {
	endpoint := c.endpoint(path, query)
	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)
	log := c.logger.WithContext(ctx)

	start := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.FromTransport(c.base.Host, time.Since(start), err)
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.NetworkUnavailable(c.base.Host, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	log.Debug("sending request", "method", method, "url", endpoint)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("request failed", "method", method, "url", endpoint, "error", err)
		return errors.FromTransport(c.base.Host, time.Since(start), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return errors.FromTransport(c.base.Host, time.Since(start), err)
	}

	log.Debug("received response",
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("unexpected status", "method", method, "url", endpoint, "status", resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests {
			return errors.RateLimited(retryAfter(resp.Header.Get("Retry-After"))).
				WithDetails("status", strconv.Itoa(resp.StatusCode)).
				WithDetails("url", endpoint)
		}
		return errors.RequestFailed(method, endpoint, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := validatePayload(schema, data); err != nil {
		log.Warn("invalid payload", "method", method, "url", endpoint, "error", err)
		return errors.InvalidResponse(endpoint, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.InvalidResponse(endpoint, err)
	}
	return nil
}

func (c *HTTP) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
