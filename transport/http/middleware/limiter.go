package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"bistro/shared"
	"bistro/shared/cache"
	"bistro/shared/constant"
	"bistro/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
	headerRetryAfter  = "Retry-After"
)

// RateLimit allows MaxRequests per client in each fixed window. A client is its address plus user agent.
// When redis is unavailable requests are let through uncounted.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limits := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limits.Enable {
			return next
		}

		window := strconv.Itoa(limits.WindowSeconds)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientAddress(r), userAgent(r))

			count, err := a.hit(r.Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, window)

			if count > limits.MaxRequests {
				w.Header().Set(constant.RequestHeaderRateLimitRemaining, "0")
				w.Header().Set(headerRetryAfter, window)
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(limits.MaxRequests-count))

			next.ServeHTTP(w, r)
		})
	}
}

// hit returns the request count for key including this request. A request over the limit is not stored, so the
// window still expires on schedule.
func (a *appMiddleware) hit(ctx context.Context, key string) (int, error) {
	var count int

	switch err := a.cache.Get(ctx, key, &count); {
	case errors.Is(err, cache.Nil):
		count = 0
	case err != nil:
		return 0, err
	}

	count++

	if count > a.config.App.RateLimiter.MaxRequests {
		return count, nil
	}

	if err := a.cache.Save(ctx, key, count, a.config.App.RateLimiter.WindowSeconds); err != nil {
		return 0, err
	}

	return count, nil
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return unknownUserAgent
}

// clientAddress prefers the first X-Forwarded-For hop, then X-Real-IP, then the peer address.
func clientAddress(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
