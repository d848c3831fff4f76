// Package resilience groups the fault tolerance primitives used by the
// remote clients.
//
// Calls to the RCSB endpoints go through a circuit breaker per endpoint
// family. An open breaker rejects calls immediately so a failing upstream is
// reported as unreachable instead of stalling every lookup until its timeout.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.DataAPIConfig())
//	body, err := circuitbreaker.Do(cb, func() ([]byte, error) {
//	    return fetch(ctx, url)
//	})
//	if circuitbreaker.IsRejection(err) {
//	    // upstream considered down
//	}
package resilience
