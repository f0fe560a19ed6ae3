package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fixed-window counter: first INCR in a window arms the expiry,
// anything past the limit inside the window is refused.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// Limiter enforces a fixed-window request limit backed by Redis.
// A nil Limiter allows all requests, so callers can wire it unconditionally.
type Limiter struct {
	client *redis.Client
	script *redis.Script
	logger *slog.Logger
}

// NewLimiter creates a Limiter over the given Redis client.
// Returns nil when client is nil.
func NewLimiter(client *redis.Client, logger *slog.Logger) *Limiter {
	if client == nil {
		return nil
	}
	return &Limiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
		logger: logger.With("middleware", "ratelimit"),
	}
}

// Allow reports whether the request identified by key fits within limit
// requests per window. Redis failures fail open.
func (l *Limiter) Allow(r *http.Request, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}

	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	allowed, err := l.script.Run(r.Context(), l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		l.logger.Warn("rate limit check failed", "key", key, "error", err)
		return true
	}

	return allowed == 1
}

// RateLimit returns middleware that refuses requests exceeding limit per window,
// keyed by keyFn. Requests with an empty key bypass the limiter.
func RateLimit(
	l *Limiter,
	limit int,
	window time.Duration,
	keyFn func(*http.Request) string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(r, keyFn(r), limit, window) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
