package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	perr "landingrouter/internal/platform/errors"
	phttp "landingrouter/internal/platform/net/http"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures the per client token bucket
type RateLimitOptions struct {
	// RPS is the sustained rate per client; zero disables the limiter
	RPS   float64
	Burst int

	// Idle drops a client's bucket after this long without requests
	Idle time.Duration
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimit limits requests per client address, keyed on RemoteAddr (run RealIP first)
// over-limit requests get a 429 envelope with Retry-After
func RateLimit(o RateLimitOptions) func(http.Handler) http.Handler {
	if o.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if o.Burst <= 0 {
		o.Burst = int(o.RPS) + 1
	}
	if o.Idle <= 0 {
		o.Idle = 5 * time.Minute
	}

	var (
		mu      sync.Mutex
		clients = map[string]*bucket{}
		swept   = time.Now()
	)
	allow := func(key string, now time.Time) bool {
		mu.Lock()
		defer mu.Unlock()
		if now.Sub(swept) > o.Idle {
			for k, b := range clients {
				if now.Sub(b.seen) > o.Idle {
					delete(clients, k)
				}
			}
			swept = now
		}
		b, ok := clients[key]
		if !ok {
			b = &bucket{lim: rate.NewLimiter(rate.Limit(o.RPS), o.Burst)}
			clients[key] = b
		}
		b.seen = now
		return b.lim.AllowN(now, 1)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allow(clientKey(r), time.Now()) {
				w.Header().Set("Retry-After", "1")
				phttp.RespondError(w, r, perr.TooManyRequestsf("rate limit exceeded"), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
