package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"golang.org/x/time/rate"
)

// DefaultLimiterIdleTTL is how long an unused client bucket is kept.
const DefaultLimiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client key. Buckets idle for
// longer than the idle TTL are dropped by Sweep.
type ClientRateLimiter struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	r       rate.Limit
	b       int
	idleTTL time.Duration
	now     func() time.Time
}

func NewClientRateLimiter(r rate.Limit, b int) *ClientRateLimiter {
	return &ClientRateLimiter{
		clients: make(map[string]*clientLimiter),
		r:       r,
		b:       b,
		idleTTL: DefaultLimiterIdleTTL,
		now:     time.Now,
	}
}

func (l *ClientRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	client, exists := l.clients[key]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.clients[key] = client
	}
	client.lastSeen = l.now()

	return client.limiter
}

// Sweep removes buckets not used within the idle TTL and returns how many were removed.
func (l *ClientRateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idleTTL)
	removed := 0
	for key, client := range l.clients {
		if client.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *ClientRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// StartSweeper runs Sweep every interval until ctx is done.
func (l *ClientRateLimiter) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep()
			}
		}
	}()
}

// RateLimit limits requests per authenticated user, falling back to the remote IP.
func RateLimit(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(clientKey(r)).Allow() {
				response.TooManyRequests(w, "Too many requests, please retry later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID := UserIDFromContext(r.Context()); userID != "" {
		return "user:" + userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
