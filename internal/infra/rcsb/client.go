// Package rcsb implements the HTTP client for the RCSB PDB data API and the
// FASTA download endpoint. Every call goes through a circuit breaker, an
// optional outbound rate limiter, a per-request deadline and a body size
// limit, and failures are classified into the lookup error kinds.
package rcsb

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pdb-explorer/internal/domain/entity"
	"pdb-explorer/internal/observability/metrics"
	"pdb-explorer/internal/observability/tracing"
	"pdb-explorer/internal/resilience/circuitbreaker"

	"go.opentelemetry.io/otel/attribute"
)

// Endpoint names used in logs, metrics and span names.
const (
	EndpointEntry         = "entry"
	EndpointPolymerEntity = "polymer_entity"
	EndpointFASTA         = "fasta"
)

// ErrBodyTooLarge indicates the response body exceeded Config.MaxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

// Client talks to the RCSB endpoints.
//
// Thread safety: Client is safe for concurrent use.
type Client struct {
	httpClient    *http.Client
	dataBreaker   *circuitbreaker.CircuitBreaker
	entityBreaker *circuitbreaker.CircuitBreaker
	fastaBreaker  *circuitbreaker.CircuitBreaker
	limiter       *RateLimiter
	config        Config
}

// NewClient creates a Client with a dedicated HTTP transport.
func NewClient(config Config) *Client {
	return NewClientWithHTTP(config, &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	})
}

// NewClientWithHTTP creates a Client that sends requests through hc.
// Per-request deadlines come from config.Timeout, not from hc.Timeout.
func NewClientWithHTTP(config Config, hc *http.Client) *Client {
	dataCfg := circuitbreaker.DataAPIConfig()
	dataCfg.IsSuccessful = healthyOutcome
	entityCfg := circuitbreaker.PolymerEntityConfig()
	entityCfg.IsSuccessful = healthyOutcome
	fastaCfg := circuitbreaker.FASTAConfig()
	fastaCfg.IsSuccessful = healthyOutcome

	return &Client{
		httpClient:    hc,
		dataBreaker:   circuitbreaker.New(dataCfg),
		entityBreaker: circuitbreaker.New(entityCfg),
		fastaBreaker:  circuitbreaker.New(fastaCfg),
		limiter:       NewRateLimiter(config.RequestsPerSecond, config.Burst),
		config:        config,
	}
}

// DataCircuit returns the breaker guarding the entry endpoint.
func (c *Client) DataCircuit() *circuitbreaker.CircuitBreaker {
	return c.dataBreaker
}

// EntityCircuit returns the breaker guarding the polymer entity endpoint.
func (c *Client) EntityCircuit() *circuitbreaker.CircuitBreaker {
	return c.entityBreaker
}

// FASTACircuit returns the breaker guarding the FASTA endpoint.
func (c *Client) FASTACircuit() *circuitbreaker.CircuitBreaker {
	return c.fastaBreaker
}

// healthyOutcome keeps 4xx answers (a missing entry, a missing entity) from
// counting against the breaker: the remote answered correctly.
func healthyOutcome(err error) bool {
	if err == nil {
		return true
	}
	var rse *entity.RemoteServiceError
	if errors.As(err, &rse) {
		return rse.StatusCode >= 400 && rse.StatusCode < 500
	}
	return false
}

// FetchEntry retrieves the entry record for id.
//
// Errors:
//   - *entity.EntryNotFoundError on 404
//   - *entity.RemoteServiceError on any other non-2xx status or an undecodable body
//   - *entity.NetworkError when no response was obtained
func (c *Client) FetchEntry(ctx context.Context, id entity.Identifier) (*entity.Entry, error) {
	u := joinURL(c.config.EntryBaseURL, "entry", id.String())

	body, err := c.get(ctx, c.dataBreaker, EndpointEntry, u, "application/json")
	if err != nil {
		var rse *entity.RemoteServiceError
		if errors.As(err, &rse) && rse.StatusCode == http.StatusNotFound {
			return nil, &entity.EntryNotFoundError{ID: id}
		}
		return nil, err
	}

	var dto entryDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, &entity.RemoteServiceError{StatusCode: http.StatusOK, Err: fmt.Errorf("decode entry: %w", err)}
	}
	return dto.toEntity(id), nil
}

// FetchPolymerEntity retrieves one polymer entity of entry id.
// All failures are returned as *entity.RemoteServiceError or *entity.NetworkError.
func (c *Client) FetchPolymerEntity(ctx context.Context, id entity.Identifier, entityID string) (*entity.PolymerEntity, error) {
	u := joinURL(c.config.EntryBaseURL, "polymer_entity", id.String(), entityID)

	body, err := c.get(ctx, c.entityBreaker, EndpointPolymerEntity, u, "application/json")
	if err != nil {
		return nil, err
	}

	var dto polymerEntityDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, &entity.RemoteServiceError{StatusCode: http.StatusOK, Err: fmt.Errorf("decode polymer entity %s: %w", entityID, err)}
	}
	return dto.toEntity(), nil
}

// FetchFASTA retrieves the pre-built FASTA listing for id, verbatim.
func (c *Client) FetchFASTA(ctx context.Context, id entity.Identifier) (string, error) {
	u := joinURL(c.config.FASTABaseURL, id.String())

	body, err := c.get(ctx, c.fastaBreaker, EndpointFASTA, u, "text/plain")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// get performs one GET through the breaker and limiter and returns the body
// of a 2xx response.
func (c *Client) get(ctx context.Context, cb *circuitbreaker.CircuitBreaker, endpoint, rawURL, accept string) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "rcsb."+endpoint,
		attribute.String("http.url", rawURL),
	)
	defer span.End()

	start := time.Now()
	body, err := circuitbreaker.Do(cb, func() ([]byte, error) {
		return c.doGet(ctx, endpoint, rawURL, accept)
	})
	duration := time.Since(start)

	if err != nil {
		if circuitbreaker.IsRejection(err) {
			slog.Warn("rcsb circuit breaker open, request rejected",
				slog.String("circuit", cb.Name()),
				slog.String("endpoint", endpoint),
				slog.String("url", rawURL))
			metrics.RecordRemoteRequest(endpoint, 0, metrics.ResultRejected, duration)
			err = rejectionError(cb, err)
		}
		tracing.RecordError(span, err)
		return nil, err
	}

	return body, nil
}

// rejectionError classifies a call rejected by an open breaker by the
// failure that tripped it: a server answering 5xx stays a remote service
// error, anything else means the servers could not be reached.
func rejectionError(cb *circuitbreaker.CircuitBreaker, err error) error {
	var rse *entity.RemoteServiceError
	if errors.As(cb.LastFailure(), &rse) {
		return &entity.RemoteServiceError{StatusCode: rse.StatusCode, Err: err}
	}
	return &entity.NetworkError{Err: err}
}

// doGet executes the HTTP exchange. It is called by get through the breaker.
func (c *Client) doGet(ctx context.Context, endpoint, rawURL, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &entity.NetworkError{Err: fmt.Errorf("rate limiter: %w", err)}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &entity.NetworkError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", accept)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordRemoteRequest(endpoint, 0, metrics.ResultNetwork, time.Since(start))
		slog.Debug("rcsb request failed without response",
			slog.String("endpoint", endpoint),
			slog.String("url", rawURL),
			slog.Any("error", err))
		return nil, &entity.NetworkError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordRemoteRequest(endpoint, resp.StatusCode, "", time.Since(start))
	slog.Debug("rcsb request completed",
		slog.String("endpoint", endpoint),
		slog.String("url", rawURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &entity.RemoteServiceError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodySize+1))
	if err != nil {
		return nil, &entity.NetworkError{Err: fmt.Errorf("read response body: %w", err)}
	}
	if int64(len(body)) > c.config.MaxBodySize {
		return nil, &entity.RemoteServiceError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, c.config.MaxBodySize),
		}
	}
	return body, nil
}

// joinURL appends path-escaped segments to base.
func joinURL(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
