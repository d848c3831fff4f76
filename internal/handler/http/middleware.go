package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"pdb-explorer/internal/handler/http/requestid"
	"pdb-explorer/internal/handler/http/respond"
	"pdb-explorer/internal/handler/http/responsewriter"
	"pdb-explorer/internal/observability/logging"

	"go.opentelemetry.io/otel/trace"
)

// Middleware is the signature shared by all HTTP middleware in this package.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that the first middleware listed is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging returns middleware that logs each request when it completes.
// It also stores a request-scoped logger carrying request_id in the request
// context, so handlers and the lookup service log with the same id.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logging.WithRequestID(r.Context(), logger)
			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			span := trace.SpanFromContext(r.Context())
			duration := time.Since(start)

			level := slog.LevelInfo
			if wrapped.StatusCode() >= 500 {
				level = slog.LevelWarn
			}
			reqLogger.LogAttrs(r.Context(), level, "request completed",
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that turns a handler panic into a 500 response
// and an error log with the stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("panic: %v", rec))
					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestTimeout returns middleware that bounds the request context by d.
// Remote calls made under that context fail once it expires, and the lookup
// reports them as an unreachable network.
func RequestTimeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
