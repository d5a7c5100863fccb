package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter hands out per-client token buckets. Buckets idle for a whole
// cleanup interval are dropped. Call Stop on shutdown.
type RateLimiter struct {
	mu      sync.Mutex
	groups  []*limitGroup
	idleTTL time.Duration
	stop    chan struct{}
	once    sync.Once
}

// limitGroup is the bucket set of one Limit call.
type limitGroup struct {
	mu      sync.Mutex
	perMin  int
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{idleTTL: cleanupInterval, stop: make(chan struct{})}
	go rl.cleanup(cleanupInterval)
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows each client IP perMinute requests per minute, bursting up to
// the full minute's allowance. Routes wrapped by one Limit result share
// their buckets.
func (rl *RateLimiter) Limit(perMinute int) Middleware {
	g := &limitGroup{perMin: perMinute, clients: make(map[string]*client)}

	rl.mu.Lock()
	rl.groups = append(rl.groups, g)
	rl.mu.Unlock()

	retryAfter := strconv.Itoa(int(math.Ceil(60 / float64(perMinute))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.allow(clientIP(r)) {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g *limitGroup) allow(key string) bool {
	g.mu.Lock()
	c, ok := g.clients[key]
	if !ok {
		every := time.Minute / time.Duration(g.perMin)
		c = &client{limiter: rate.NewLimiter(rate.Every(every), g.perMin)}
		g.clients[key] = c
	}
	c.lastSeen = time.Now()
	g.mu.Unlock()

	return c.limiter.Allow()
}

// clientIP drops the port so reconnecting clients share one bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			groups := rl.groups
			rl.mu.Unlock()

			for _, g := range groups {
				g.mu.Lock()
				for key, c := range g.clients {
					if now.Sub(c.lastSeen) >= rl.idleTTL {
						delete(g.clients, key)
					}
				}
				g.mu.Unlock()
			}
		}
	}
}

// tracked counts live buckets across groups.
func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	n := 0
	for _, g := range rl.groups {
		g.mu.Lock()
		n += len(g.clients)
		g.mu.Unlock()
	}
	return n
}
