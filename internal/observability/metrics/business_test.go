package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLookup(t *testing.T) {
	tests := []struct {
		name    string
		outcome string
	}{
		{name: "success", outcome: OutcomeSuccess},
		{name: "invalid identifier", outcome: OutcomeInvalidIdentifier},
		{name: "not found", outcome: OutcomeNotFound},
		{name: "remote error", outcome: OutcomeRemoteError},
		{name: "network error", outcome: OutcomeNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(LookupsTotal.WithLabelValues(tt.outcome))
			RecordLookup(tt.outcome, 120*time.Millisecond)
			after := testutil.ToFloat64(LookupsTotal.WithLabelValues(tt.outcome))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestRecordRemoteRequest(t *testing.T) {
	before := testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("entry", "404"))
	RecordRemoteRequest("entry", 404, "", 30*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("entry", "404")))

	before = testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("fasta", ResultNetwork))
	RecordRemoteRequest("fasta", 0, ResultNetwork, time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(RemoteRequestsTotal.WithLabelValues("fasta", ResultNetwork)))
}

func TestRecordEntityFetchFailure(t *testing.T) {
	before := testutil.ToFloat64(EntityFetchFailuresTotal)
	RecordEntityFetchFailure()
	RecordEntityFetchFailure()
	assert.Equal(t, before+2, testutil.ToFloat64(EntityFetchFailuresTotal))
}

func TestRecordSequenceListing(t *testing.T) {
	for _, source := range []string{"remote", "synthesized"} {
		before := testutil.ToFloat64(SequenceListingsTotal.WithLabelValues(source))
		RecordSequenceListing(source)
		assert.Equal(t, before+1, testutil.ToFloat64(SequenceListingsTotal.WithLabelValues(source)))
	}
}

func TestRecordLookupEntities(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordLookupEntities(0)
		RecordLookupEntities(4)
	})
}

func TestRecordConfigLoad(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	RecordConfigLoaded(at)
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(ConfigLoadTimestamp))

	before := testutil.ToFloat64(ConfigLoadErrorsTotal.WithLabelValues("parse"))
	RecordConfigLoadError("parse")
	assert.Equal(t, before+1, testutil.ToFloat64(ConfigLoadErrorsTotal.WithLabelValues("parse")))
}

func TestRecordCircuitState(t *testing.T) {
	RecordCircuitState("rcsb-test", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitState.WithLabelValues("rcsb-test")))
	RecordCircuitState("rcsb-test", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(CircuitState.WithLabelValues("rcsb-test")))
}
