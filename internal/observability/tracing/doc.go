// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created for each lookup stage (entry, entities, sequence) and
// for every remote RCSB call, and HTTP requests served by cmd/api get a
// server span through Middleware. Init installs the SDK provider and the W3C
// propagator; exporters are passed in as provider options. Without Init the
// global no-op provider is used, which is what the CLI does.
//
// Example usage:
//
//	func fetch(ctx context.Context) error {
//	    ctx, span := tracing.StartSpan(ctx, "rcsb.entry", attribute.String("pdb.id", id))
//	    defer span.End()
//	    err := do(ctx)
//	    tracing.RecordError(span, err)
//	    return err
//	}
package tracing
