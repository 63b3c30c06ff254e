// Package ratelimit provides per-client request limiting using the token
// bucket algorithm.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// tokenBucket allows a number of requests per window with tokens
// refilling at a steady rate.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// allow consumes a token when one is available.
func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// EndpointConfig sets a limit for a path prefix and method.
type EndpointConfig struct {
	PathPrefix string
	Method     string
	Limit      int           // requests per window
	Window     time.Duration // time window
	Burst      int           // burst capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	Endpoints     []EndpointConfig
}

// DefaultConfig limits the expensive ranking endpoints tightly and
// everything else generously.
func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  300,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointConfig{
			// Ranking runs call the generative backend; keep them scarce.
			{PathPrefix: "/recommendations", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
			{PathPrefix: "/sessions/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		},
	}
}

// Limiter manages token buckets per client and endpoint tier.
type Limiter struct {
	config  *Config
	mu      sync.Mutex
	buckets map[string]*tokenBucket
}

// NewLimiter creates a limiter. A nil config uses defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Limiter{
		config:  config,
		buckets: make(map[string]*tokenBucket),
	}
}

// Allow reports whether the request from the given client may proceed.
func (l *Limiter) Allow(r *http.Request) bool {
	if !l.config.Enabled {
		return true
	}

	limit, window, burst := l.config.DefaultLimit, l.config.DefaultWindow, l.config.DefaultLimit
	tier := "default"
	for _, ep := range l.config.Endpoints {
		if ep.Method == r.Method && strings.HasPrefix(r.URL.Path, ep.PathPrefix) {
			limit, window = ep.Limit, ep.Window
			burst = ep.Burst
			if burst == 0 {
				burst = ep.Limit
			}
			tier = ep.Method + " " + ep.PathPrefix
			break
		}
	}

	key := clientIP(r) + "|" + tier

	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = newTokenBucket(burst, float64(limit)/window.Seconds())
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	return bucket.allow()
}

// clientIP extracts the client address, honoring X-Forwarded-For.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
