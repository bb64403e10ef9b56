package middleware

import (
	"github.com/valyala/fasthttp"

	"github.com/presenta/backend/domain"
)

// RequireRole gates a handler behind an already-authenticated user holding one
// of the allowed roles. It must run inside Authenticator.Require.
func RequireRole(roles ...string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			user, ok := UserFrom(ctx)
			if !ok {
				writeAuthError(ctx, domain.ErrUnauthorized)
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				writeAuthError(ctx, domain.ErrForbidden)
				return
			}
			next(ctx)
		}
	}
}
