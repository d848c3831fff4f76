package tracing

import (
	"net/http"

	"pdb-explorer/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader is the response header carrying the server span's trace id.
const TraceIDHeader = "X-Trace-Id"

// Middleware creates OpenTelemetry tracing middleware for HTTP handlers.
// It extracts W3C trace context from the incoming request, starts a server
// span, echoes the trace id in X-Trace-Id, and records method, path and
// status code on the span. 5xx responses mark the span as an error.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(
			r.Context(),
			propagation.HeaderCarrier(r.Header),
		)

		ctx, span := GetTracer().Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		span.SetAttributes(
			attribute.Int("http.status_code", rw.StatusCode()),
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
		)
		if rw.StatusCode() >= 500 {
			span.SetAttributes(attribute.Bool("error", true))
		}
	})
}
