// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup metrics track the orchestrated entry retrieval as a whole.
var (
	// LookupsTotal counts lookups by outcome
	// (success, invalid_identifier, not_found, remote_error, network_error, error).
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdb_lookups_total",
			Help: "Total number of entry lookups by outcome",
		},
		[]string{"outcome"},
	)

	// LookupDuration measures end-to-end lookup latency in seconds.
	LookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pdb_lookup_duration_seconds",
			Help:    "Time taken to complete an entry lookup",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// EntitiesPerLookup records how many polymer entities a successful lookup returned.
	EntitiesPerLookup = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pdb_lookup_entities",
			Help:    "Number of polymer entities returned per successful lookup",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	// EntityFetchFailuresTotal counts polymer entity fetches that failed and were dropped.
	EntityFetchFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pdb_entity_fetch_failures_total",
			Help: "Total number of polymer entity fetches dropped after a failure",
		},
	)

	// SequenceListingsTotal counts sequence listings by source (remote or synthesized).
	SequenceListingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdb_sequence_listings_total",
			Help: "Total number of sequence listings produced, by source",
		},
		[]string{"source"},
	)
)

// Remote API metrics track individual calls to the RCSB endpoints.
var (
	// RemoteRequestsTotal counts remote calls by endpoint and result.
	// Result is the HTTP status code, or "network" / "rejected" when no response was obtained.
	RemoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rcsb_requests_total",
			Help: "Total number of requests sent to RCSB endpoints",
		},
		[]string{"endpoint", "result"},
	)

	// RemoteRequestDuration measures remote call latency in seconds.
	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rcsb_request_duration_seconds",
			Help:    "RCSB request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)
)

// Configuration metrics track loads of the application configuration.
var (
	// ConfigLoadTimestamp is the Unix time of the last successful configuration load.
	ConfigLoadTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pdb_config_load_timestamp_seconds",
			Help: "Unix timestamp of the last successful configuration load",
		},
	)

	// ConfigLoadErrorsTotal counts configuration loads that failed, by stage (read, parse, validate).
	ConfigLoadErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdb_config_load_errors_total",
			Help: "Total number of failed configuration loads by stage",
		},
		[]string{"stage"},
	)
)

// CircuitState reports each RCSB circuit breaker's state:
// 0 closed, 1 half-open, 2 open.
var CircuitState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "rcsb_circuit_state",
		Help: "Circuit breaker state per RCSB endpoint family (0 closed, 1 half-open, 2 open)",
	},
	[]string{"circuit"},
)
