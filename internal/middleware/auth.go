package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/pkg/httpcontext"
	"github.com/presenta/backend/pkg/token"
	"github.com/presenta/backend/repository"
)

const userKey = "auth.user"

// Authenticator guards protected routes. Access tokens carry a user snapshot,
// but the guard always re-resolves the account so revoked or deactivated users
// are cut off before their token expires.
type Authenticator struct {
	issuer  *token.Issuer
	users   repository.UserRepository
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func NewAuthenticator(issuer *token.Issuer, users repository.UserRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{issuer: issuer, users: users, adapter: adapter, logger: logger}
}

// Resolve authenticates the request and returns the current user. It is the
// shared core of the middleware and of the session check endpoint, which
// reports failures as data instead of errors.
func (a *Authenticator) Resolve(ctx context.Context, authHeader string) (*domain.User, error) {
	tokenString := extractBearer(authHeader)
	if tokenString == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := a.issuer.VerifyAccess(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, claims.User.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

// Require wraps a handler so it only runs for authenticated, active users.
func (a *Authenticator) Require(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		stdCtx, cancel := a.adapter.Attach(ctx)
		defer cancel()

		user, err := a.Resolve(stdCtx, string(ctx.Request.Header.Peek("Authorization")))
		if err != nil {
			a.logger.Debug("request rejected", zap.Error(err))
			writeAuthError(ctx, err)
			return
		}

		ctx.SetUserValue(userKey, user)
		next(ctx)
	}
}

// UserFrom returns the authenticated user stored by Require.
func UserFrom(ctx *fasthttp.RequestCtx) (*domain.User, bool) {
	user, ok := ctx.UserValue(userKey).(*domain.User)
	return user, ok
}

func extractBearer(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return header
}

func writeAuthError(ctx *fasthttp.RequestCtx, err error) {
	status := fasthttp.StatusUnauthorized
	code := domain.ErrCodeUnauthorized
	message := domain.ErrUnauthorized.Message

	var dErr *domain.Error
	if errors.As(err, &dErr) {
		code = dErr.Code
		message = dErr.Message
		switch dErr.Code {
		case domain.ErrCodeInactiveUser, domain.ErrCodeForbidden:
			status = fasthttp.StatusForbidden
		case domain.ErrCodeInternal:
			status = fasthttp.StatusInternalServerError
			message = "Error interno del servidor"
		}
	}

	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	_ = json.NewEncoder(ctx).Encode(transport.NewError(string(code), message))
}
