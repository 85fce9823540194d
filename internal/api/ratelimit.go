package api

import (
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/traveljournal/journal-server/internal/ratelimit"
)

// RateLimiter wraps KeyedRateLimiter for API use.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter allows n requests per interval for each client.
func NewRateLimiter(n int, interval time.Duration) *RateLimiter {
	return ratelimit.PerInterval(n, interval)
}

// rateLimited is a huma operation middleware that limits requests by
// client IP. Returns 429 Too Many Requests when the limit is exceeded.
func (s *Server) rateLimited(ctx huma.Context, next func(huma.Context)) {
	if s.authRateLimiter == nil {
		next(ctx)
		return
	}

	key := clientIP(ctx.RemoteAddr())

	if !s.authRateLimiter.Allow(key) {
		s.logger.Warn("Rate limit exceeded",
			"ip", key,
			"path", ctx.URL().Path,
		)
		_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	next(ctx)
}

// authLimits returns the middleware list for rate-limited operations.
func (s *Server) authLimits() huma.Middlewares {
	return huma.Middlewares{s.rateLimited}
}

// clientIP strips the port from the connection's remote address. Proxy
// headers only reach it through middleware.RealIP when TrustProxy is set.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
