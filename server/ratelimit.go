package server

import (
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter keeps one token bucket per client. Each bucket holds limit
// tokens and refills at limit per window. A nil limiter allows everything.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	every   rate.Limit
	limit   int
	window  time.Duration
	now     func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter returns nil when limit is not positive.
func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	if limit <= 0 {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	return &rateLimiter{
		clients: make(map[string]*clientLimiter),
		every:   rate.Every(window / time.Duration(limit)),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether key may make another request now. When it may not,
// it also returns how long until the next token is available.
func (rl *rateLimiter) Allow(key string) (bool, time.Duration) {
	if rl == nil {
		return true, 0
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		rl.sweep(now)
		c = &clientLimiter{limiter: rate.NewLimiter(rl.every, rl.limit)}
		rl.clients[key] = c
	}
	c.lastSeen = now

	r := c.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, rl.window
	}
	if delay := r.DelayFrom(now); delay > 0 {
		// A refused request does not spend a token
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep drops clients idle for a whole window; their buckets are full again,
// so forgetting them changes nothing. Called with mu held.
func (rl *rateLimiter) sweep(now time.Time) {
	if len(rl.clients) < 1024 {
		return
	}
	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) >= rl.window {
			delete(rl.clients, key)
		}
	}
}

// retryAfterSeconds rounds a delay up to whole seconds for Retry-After.
func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}

// clientKey identifies the client. Behind a trusted proxy that is the first
// X-Forwarded-For entry; otherwise the remote host.
func clientKey(r *http.Request, trustProxy bool) string {
	if xff := r.Header.Get("X-Forwarded-For"); trustProxy && xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
