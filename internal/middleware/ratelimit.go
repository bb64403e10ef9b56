package middleware

import (
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/pkg/httpcontext"
	"github.com/presenta/backend/repository"
)

// RateLimit rejects clients exceeding max hits per fixed window, keyed by
// client IP and route group. A limiter backend failure lets the request
// through: availability wins over throttling accuracy.
func RateLimit(limiter repository.RateLimiter, name string, max int64, window time.Duration, adapter *httpcontext.Adapter, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			stdCtx, cancel := adapter.Attach(ctx)
			defer cancel()

			key := name + ":" + clientIP(ctx)
			count, err := limiter.Hit(stdCtx, key, window)
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
				next(ctx)
				return
			}
			if count > max {
				ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
				ctx.SetContentType("application/json; charset=utf-8")
				_ = json.NewEncoder(ctx).Encode(transport.NewError("RATE_LIMITED", "Demasiadas solicitudes, intenta más tarde"))
				return
			}
			next(ctx)
		}
	}
}

func clientIP(ctx *fasthttp.RequestCtx) string {
	if fwd := ctx.Request.Header.Peek("X-Forwarded-For"); len(fwd) > 0 {
		parts := string(fwd)
		for i := 0; i < len(parts); i++ {
			if parts[i] == ',' {
				return parts[:i]
			}
		}
		return parts
	}
	return ctx.RemoteIP().String()
}
