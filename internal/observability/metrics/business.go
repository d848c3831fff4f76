package metrics

import (
	"strconv"
	"time"
)

// Lookup outcome labels.
const (
	OutcomeSuccess           = "success"
	OutcomeInvalidIdentifier = "invalid_identifier"
	OutcomeNotFound          = "not_found"
	OutcomeRemoteError       = "remote_error"
	OutcomeNetworkError      = "network_error"
	OutcomeError             = "error"
)

// Remote result labels used when no HTTP status is available.
const (
	ResultNetwork  = "network"
	ResultRejected = "rejected"
)

// RecordLookup records the outcome and duration of one lookup.
func RecordLookup(outcome string, duration time.Duration) {
	LookupsTotal.WithLabelValues(outcome).Inc()
	LookupDuration.Observe(duration.Seconds())
}

// RecordLookupEntities records the size of a successful lookup's entity collection.
func RecordLookupEntities(count int) {
	EntitiesPerLookup.Observe(float64(count))
}

// RecordEntityFetchFailure records one dropped polymer entity fetch.
func RecordEntityFetchFailure() {
	EntityFetchFailuresTotal.Inc()
}

// RecordSequenceListing records where a lookup's sequence listing came from.
func RecordSequenceListing(source string) {
	SequenceListingsTotal.WithLabelValues(source).Inc()
}

// RecordRemoteRequest records one call to an RCSB endpoint.
// statusCode is ignored when result is non-empty.
func RecordRemoteRequest(endpoint string, statusCode int, result string, duration time.Duration) {
	if result == "" {
		result = strconv.Itoa(statusCode)
	}
	RemoteRequestsTotal.WithLabelValues(endpoint, result).Inc()
	RemoteRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordConfigLoaded stamps the time of a successful configuration load.
func RecordConfigLoaded(at time.Time) {
	ConfigLoadTimestamp.Set(float64(at.Unix()))
}

// RecordConfigLoadError records a configuration load that failed at stage.
func RecordConfigLoadError(stage string) {
	ConfigLoadErrorsTotal.WithLabelValues(stage).Inc()
}

// RecordCircuitState publishes the state of the named circuit breaker.
func RecordCircuitState(circuit string, state int) {
	CircuitState.WithLabelValues(circuit).Set(float64(state))
}
