package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})
	return exporter, tp
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestMiddleware_CreatesServerSpan(t *testing.T) {
	exporter, tp := installRecorder(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/entries/4HHB", nil))
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name != "GET /entries/4HHB" {
		t.Errorf("span name = %q, want %q", span.Name, "GET /entries/4HHB")
	}
	if v, ok := attrValue(span.Attributes, "http.status_code"); !ok || v.AsInt64() != 200 {
		t.Errorf("http.status_code = %v (found=%v), want 200", v.AsInt64(), ok)
	}
	if v, ok := attrValue(span.Attributes, "http.path"); !ok || v.AsString() != "/entries/4HHB" {
		t.Errorf("http.path = %q, want /entries/4HHB", v.AsString())
	}
	if got := rr.Header().Get(TraceIDHeader); len(got) != 32 {
		t.Errorf("%s = %q, want 32 hex chars", TraceIDHeader, got)
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := installRecorder(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %s, want propagated id", got)
	}
}

func TestMiddleware_ErrorAttribute(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantError bool
	}{
		{name: "5xx marks error", status: http.StatusBadGateway, wantError: true},
		{name: "4xx does not", status: http.StatusNotFound, wantError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, tp := installRecorder(t)

			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/entries/9ZZZ", nil))
			_ = tp.ForceFlush(context.Background())

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("spans = %d, want 1", len(spans))
			}
			_, found := attrValue(spans[0].Attributes, "error")
			if found != tt.wantError {
				t.Errorf("error attribute present = %v, want %v", found, tt.wantError)
			}
		})
	}
}

func TestStartSpanAndRecordError(t *testing.T) {
	exporter, tp := installRecorder(t)

	_, span := StartSpan(context.Background(), "rcsb.entry", attribute.String("pdb.id", "4HHB"))
	RecordError(span, nil)
	RecordError(span, errors.New("boom"))
	span.End()
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status.Code)
	}
	if v, ok := attrValue(spans[0].Attributes, "pdb.id"); !ok || v.AsString() != "4HHB" {
		t.Errorf("pdb.id = %q, want 4HHB", v.AsString())
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("events = %d, want 1 recorded error", len(spans[0].Events))
	}
}

func TestInit_InstallsProviderAndPropagator(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown := Init("pdb-explorer", "test", sdktrace.WithSyncer(exporter))
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/entries/4HHB", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace id = %s, want propagated id", got)
	}
	var version string
	for _, kv := range spans[0].Resource.Attributes() {
		if kv.Key == "service.version" {
			version = kv.Value.AsString()
		}
	}
	if version != "test" {
		t.Errorf("service.version = %q, want test", version)
	}
}
