package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// client tracks a rate limiter per caller.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientStore manages per-caller rate limiters with cleanup of stale entries.
type clientStore struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	ttl     time.Duration
}

func newClientStore(rps float64, burst int, ttl time.Duration) *clientStore {
	s := &clientStore{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
	}
	go s.cleanupLoop()
	return s
}

func (s *clientStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.clients[key] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

func (s *clientStore) cleanupLoop() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for key, c := range s.clients {
			if c.lastSeen.Before(cutoff) {
				delete(s.clients, key)
			}
		}
		s.mu.Unlock()
	}
}

// RateLimit returns middleware that rate-limits requests per caller. The
// caller key is the X-Session-ID header when present, the remote IP
// otherwise. Requests over the limit receive 429.
func RateLimit(rps float64, burst int, l *slog.Logger) func(http.Handler) http.Handler {
	store := newClientStore(rps, burst, 10*time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Session-ID")
			if key == "" {
				host, _, err := net.SplitHostPort(r.RemoteAddr)
				if err != nil {
					host = r.RemoteAddr
				}
				key = host
			}

			if !store.get(key).Allow() {
				l.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("key", key),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
