package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pdb-explorer/internal/handler/http/requestid"
	"pdb-explorer/internal/observability/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok", http.StatusOK, "INFO"},
		{"client error", http.StatusNotFound, "INFO"},
		{"bad gateway", http.StatusBadGateway, "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			var ctxLogger *slog.Logger
			h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLogger = logging.FromContext(r.Context())
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}), requestid.Middleware, Logging(logger))

			req := httptest.NewRequest(http.MethodGet, "/entries/4HHB?x=1", nil)
			req.Header.Set(requestid.RequestIDHeader, "req-42")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.NotNil(t, ctxLogger)
			assert.NotSame(t, slog.Default(), ctxLogger)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "req-42", entry["request_id"])
			assert.Equal(t, "/entries/4HHB", entry["path"])
			assert.Equal(t, "x=1", entry["query"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, float64(4), entry["bytes"])
		})
	}
}

func TestRecover(t *testing.T) {
	tests := []struct {
		name       string
		panicValue any
	}{
		{"string", "something went wrong"},
		{"error", fmt.Errorf("test error")},
		{"number", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			h := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panicValue)
			}))

			rr := httptest.NewRecorder()
			require.NotPanics(t, func() {
				h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/entries/4HHB", nil))
			})

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
			assert.Contains(t, buf.String(), "panic recovered")
			assert.Contains(t, buf.String(), "stack")
		})
	}
}

func TestRecover_NoPanic(t *testing.T) {
	h := Recover(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRecover_RepanicsAbortHandler(t *testing.T) {
	h := Recover(slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		assert.True(t, errors.Is(rec.(error), http.ErrAbortHandler))
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRequestTimeout(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	handler := RequestTimeout(2 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, hasDeadline = r.Context().Deadline()
	}))

	start := time.Now()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/entries/4HHB", nil))

	require.True(t, hasDeadline)
	assert.WithinDuration(t, start.Add(2*time.Second), deadline, time.Second)
}

func TestRequestTimeout_CancelsSlowWork(t *testing.T) {
	handler := RequestTimeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			w.WriteHeader(http.StatusServiceUnavailable)
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusOK)
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entries/4HHB", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
