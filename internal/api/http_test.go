package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wexinc/todos/internal/config"
	"github.com/wexinc/todos/internal/errors"
	"github.com/wexinc/todos/internal/logging"
	"github.com/wexinc/todos/internal/todo"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*Options)) *HTTP {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts := Options{
		BaseURL:    srv.URL + "/api",
		UserID:     5,
		UserAgent:  "todos-test",
		HTTPClient: srv.Client(),
		Logger:     logging.NewNoop(),
	}
	for _, fn := range mutate {
		fn(&opts)
	}

	c, err := NewHTTP(opts)
	require.NoError(t, err)
	c.retryDelay = time.Millisecond
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListSendsOwnerAndHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/todos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("userId"))
		assert.Equal(t, "todos-test", r.Header.Get("User-Agent"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request id should be a uuid")

		writeJSON(t, w, http.StatusOK, []todo.Task{
			{ID: 1, UserID: 5, Title: "first", Completed: true},
			{ID: 2, UserID: 5, Title: "second"},
		})
	})

	tasks, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []todo.Task{
		{ID: 1, UserID: 5, Title: "first", Completed: true},
		{ID: 2, UserID: 5, Title: "second"},
	}, tasks)
}

func TestListEmptyIsNotNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []todo.Task{})
	})

	tasks, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestListRejectsInvalidPayload(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, http.StatusOK, []map[string]any{{"id": "one", "title": 3}})
	}, func(o *Options) { o.Retries = 3 })

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNetwork)
	assert.Equal(t, int32(1), calls.Load(), "invalid payloads are not retried")
}

func TestListRejectsMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := c.List(context.Background())
	assert.ErrorIs(t, err, errors.ErrNetwork)
}

func TestListRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(t, w, http.StatusOK, []todo.Task{{ID: 9, UserID: 5, Title: "late"}})
	}, func(o *Options) { o.Retries = 2 })

	tasks, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestListGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, func(o *Options) { o.Retries = 1 })

	_, err := c.List(context.Background())
	assert.ErrorIs(t, err, errors.ErrNetwork)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCreatePostsTodo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/todos", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"userId": float64(5), "title": "buy milk", "completed": false}, body)

		writeJSON(t, w, http.StatusCreated, map[string]any{
			"id": 77, "userId": 5, "title": "buy milk", "completed": false, "createdAt": "2024-01-01",
		})
	})

	created, err := c.Create(context.Background(), 5, "buy milk", false)
	require.NoError(t, err)
	assert.Equal(t, todo.Task{ID: 77, UserID: 5, Title: "buy milk"}, created)
}

func TestCreateIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, func(o *Options) { o.Retries = 3 })

	_, err := c.Create(context.Background(), 5, "x", false)
	assert.ErrorIs(t, err, errors.ErrNetwork)
	assert.Equal(t, int32(1), calls.Load())
}

func TestUpdateSendsOnlySetFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/todos/12", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"completed": true}, body)

		writeJSON(t, w, http.StatusOK, map[string]any{"id": 12})
	})

	require.NoError(t, c.Update(context.Background(), 12, todo.CompletedPatch(true)))
}

func TestDeleteNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/todos/3", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	var te *errors.TodoError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "404", te.Details["status"])
	assert.Equal(t, http.MethodDelete, te.Details["method"])
}

func TestRateLimitedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	err := c.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, errors.ErrNetwork)
	assert.True(t, errors.IsRetryable(err))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewHTTP(Options{BaseURL: srv.URL, UserID: 1, Logger: logging.NewNoop()})
	require.NoError(t, err)

	_, err = c.List(context.Background())
	assert.ErrorIs(t, err, errors.ErrNetwork)
}

func TestContextDeadline(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Delete(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrTimeout)
}

func TestNewHTTPRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"relative url", Options{BaseURL: "/todos", UserID: 1}},
		{"ftp url", Options{BaseURL: "ftp://example.com", UserID: 1}},
		{"missing owner", Options{BaseURL: "https://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTP(tt.opts)
			assert.ErrorIs(t, err, errors.ErrConfig)
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.API.UserID = 42

	opts := OptionsFromConfig(cfg.API, "todos/1.0")
	assert.Equal(t, config.DefaultBaseURL, opts.BaseURL)
	assert.Equal(t, 42, opts.UserID)
	assert.Equal(t, cfg.API.Timeout, opts.Timeout)
	assert.Equal(t, "todos/1.0", opts.UserAgent)
}

func TestEndpointJoinsBasePath(t *testing.T) {
	c, err := NewHTTP(Options{BaseURL: "https://example.com/students-api/", UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/students-api/todos/4", c.endpoint("/todos/4", nil))
}
