package httpkit

import (
	"net/http"
	"time"

	"landingrouter/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack; the zero value is a sensible default
type StackOptions struct {
	CORS      middleware.CORSOptions
	RateLimit middleware.RateLimitOptions
	Slow      time.Duration
	Timeout   time.Duration
}

// CommonStack returns the baseline middleware for versioned API routes
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestContext(),

		// safety
		middleware.RecoverJSON,
		middleware.RateLimit(o.RateLimit),

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),

		middleware.CORS(o.CORS),
		middleware.Timeout(o.Timeout),
	}
}
