// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the lookup metrics:
//   - Lookup outcomes and end-to-end latency
//   - Entities returned per lookup and dropped entity fetches
//   - Sequence listing source (remote vs synthesized)
//   - Per-endpoint RCSB request counts and latency
//   - RCSB circuit breaker state
//   - Configuration load time and failures
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "pdb-explorer/internal/observability/metrics"
//
//	start := time.Now()
//	result, err := svc.Lookup(ctx, "4HHB")
//	if err == nil {
//	    metrics.RecordLookup(metrics.OutcomeSuccess, time.Since(start))
//	}
package metrics
