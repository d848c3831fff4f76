// Package http provides the HTTP server plumbing for the entry API: health
// and liveness endpoints, Prometheus metrics, and logging and recovery
// middleware. Entry routes live in the entry subpackage.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Circuit is a circuit breaker whose state is reported by /health.
type Circuit interface {
	Name() string
	State() gobreaker.State
}

// CircuitCheck registers a circuit with the health handler. An open
// Critical circuit makes the service unhealthy; any other open circuit only
// degrades it.
type CircuitCheck struct {
	Circuit  Circuit
	Critical bool
}

// HealthHandler reports the state of the remote API circuit breakers.
// Lookups cannot succeed while the entry circuit is open, whereas the
// polymer entity and FASTA circuits only thin out or synthesize results.
type HealthHandler struct {
	Version  string
	Circuits []CircuitCheck
}

// ServeHTTP answers 200 when healthy or degraded and 503 when unhealthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus, len(h.Circuits))
	status := "healthy"

	for _, c := range h.Circuits {
		state := c.Circuit.State()
		check := CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"state": state.String(), "critical": c.Critical},
		}
		if state == gobreaker.StateOpen {
			check.Message = "circuit open, remote calls are being rejected"
			if c.Critical {
				check.Status = "unhealthy"
				status = "unhealthy"
			} else {
				check.Status = "degraded"
				if status == "healthy" {
					status = "degraded"
				}
			}
		}
		checks["circuit:"+c.Circuit.Name()] = check
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// LiveHandler answers liveness probes. It always returns 200 OK while the
// process can serve requests.
type LiveHandler struct{}

// ServeHTTP writes "alive".
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}
