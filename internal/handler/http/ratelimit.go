package http

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"pdb-explorer/internal/handler/http/respond"
)

// ClientRateLimiter throttles requests per client address with a token
// bucket per client. Every lookup fans out into several RCSB calls, so one
// client cannot be allowed to drain the shared outbound budget.
//
// Memory is bounded: at most maxClients buckets are tracked and buckets idle
// for longer than idleTTL are dropped by Cleanup.
type ClientRateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientBucket
	limit      rate.Limit
	burst      int
	maxClients int
	idleTTL    time.Duration
	now        func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientRateLimiter creates a limiter allowing rps requests per second
// per client with the given burst. maxClients <= 0 means 10000.
func NewClientRateLimiter(rps float64, burst, maxClients int, idleTTL time.Duration) *ClientRateLimiter {
	if maxClients <= 0 {
		maxClients = 10000
	}
	if burst < 1 {
		burst = 1
	}
	return &ClientRateLimiter{
		clients:    make(map[string]*clientBucket),
		limit:      rate.Limit(rps),
		burst:      burst,
		maxClients: maxClients,
		idleTTL:    idleTTL,
		now:        time.Now,
	}
}

// Allow reports whether key may make a request now. When it may not, the
// returned duration is how long until the next token is available.
func (l *ClientRateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.evictOldestLocked()
		}
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = b
		httpRateLimitClients.Set(float64(len(l.clients)))
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup drops buckets idle for longer than the idle TTL and returns how many were dropped.
func (l *ClientRateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idleTTL)
	removed := 0
	for key, b := range l.clients {
		if b.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			removed++
		}
	}
	httpRateLimitClients.Set(float64(len(l.clients)))
	return removed
}

// StartCleanup runs Cleanup every interval until ctx is cancelled.
func (l *ClientRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := l.Cleanup(); removed > 0 {
				slog.Debug("rate limiter cleanup", slog.Int("removed", removed))
			}
		}
	}
}

func (l *ClientRateLimiter) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, b := range l.clients {
		if oldestKey == "" || b.lastSeen.Before(oldest) {
			oldestKey, oldest = key, b.lastSeen
		}
	}
	delete(l.clients, oldestKey)
}

// Middleware rejects requests over the client's limit with 429 and a
// Retry-After header in whole seconds.
func (l *ClientRateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.Allow(clientKey(r))
			if !ok {
				httpRateLimitedTotal.Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				respond.JSON(w, http.StatusTooManyRequests, respond.ErrorBody{
					Error: "too many requests",
					Kind:  "rate_limited",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey is the host part of RemoteAddr. Forwarding headers are not
// trusted because the server may be reached directly.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
