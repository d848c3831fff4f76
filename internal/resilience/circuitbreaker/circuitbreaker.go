// Package circuitbreaker guards the RCSB endpoint families with
// github.com/sony/gobreaker breakers that trip on a failure ratio.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"pdb-explorer/internal/observability/metrics"
)

// Config describes when a breaker trips and how it recovers.
type Config struct {
	// Name labels logs, metrics and the /health check.
	Name string

	// MaxRequests is how many probe calls pass while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts periodically. Zero never clears.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the failure ratio, in (0,1], that trips the breaker
	// once at least MinRequests calls were counted.
	FailureThreshold float64
	MinRequests      uint32

	// IsSuccessful decides which errors from the wrapped call still count as
	// a healthy exchange. Nil means only a nil error does.
	IsSuccessful func(err error) bool
}

// DataAPIConfig is the breaker for the entry endpoint. Lookups cannot
// proceed without it, so it tolerates more failures before tripping and
// probes again sooner.
func DataAPIConfig() Config {
	return Config{
		Name:             "rcsb-data-api",
		MaxRequests:      5,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.7,
		MinRequests:      10,
	}
}

// PolymerEntityConfig is the breaker for the polymer entity endpoint. A
// failed entity fetch only drops that entity from a result, so its failures
// are counted apart from the entry endpoint.
func PolymerEntityConfig() Config {
	return Config{
		Name:             "rcsb-polymer-entity",
		MaxRequests:      5,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.7,
		MinRequests:      10,
	}
}

// FASTAConfig is the breaker for the FASTA download endpoint. Every failure
// there has a local fallback, so it trips earlier and stays open longer.
func FASTAConfig() Config {
	return Config{
		Name:             "rcsb-fasta",
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.5,
		MinRequests:      5,
	}
}

// CircuitBreaker is a named gobreaker whose state changes are logged and
// exported as the rcsb_circuit_state gauge.
type CircuitBreaker struct {
	breaker      *gobreaker.CircuitBreaker
	name         string
	isSuccessful func(err error) bool

	mu          sync.Mutex
	lastFailure error
}

// New creates a closed breaker from cfg.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		IsSuccessful: cfg.IsSuccessful,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			level := slog.LevelInfo
			if to == gobreaker.StateOpen {
				level = slog.LevelWarn
			}
			slog.Log(context.Background(), level, "rcsb circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.RecordCircuitState(name, int(to))
		},
	}

	metrics.RecordCircuitState(cfg.Name, int(gobreaker.StateClosed))
	return &CircuitBreaker{
		breaker:      gobreaker.NewCircuitBreaker(settings),
		name:         cfg.Name,
		isSuccessful: cfg.IsSuccessful,
	}
}

// Do runs fn through cb. While cb is open it fails fast with an error
// for which IsRejection is true.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	result, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil && !IsRejection(err) && !cb.successful(err) {
		cb.mu.Lock()
		cb.lastFailure = err
		cb.mu.Unlock()
	}
	if err != nil {
		var zero T
		if v, ok := result.(T); ok {
			return v, err
		}
		return zero, err
	}
	return result.(T), nil
}

// State returns the current state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// LastFailure returns the most recent error that counted against cb, or nil
// when none has. Callers use it to tell why a rejected call was rejected.
func (cb *CircuitBreaker) LastFailure() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.lastFailure
}

func (cb *CircuitBreaker) successful(err error) bool {
	if cb.isSuccessful == nil {
		return err == nil
	}
	return cb.isSuccessful(err)
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// IsRejection reports whether err came from the breaker itself rather than
// from the wrapped call.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
