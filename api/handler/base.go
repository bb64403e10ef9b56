package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/internal/middleware"
	"github.com/presenta/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter     *httpcontext.Adapter
	logger      *zap.Logger
	development bool
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger, development bool) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger, development: development}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// currentUser returns the authenticated user placed by the auth middleware.
// Routes registered outside the guard have no user and get a 401.
func (h baseHandler) currentUser(ctx *fasthttp.RequestCtx) (*domain.User, bool) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), domain.ErrUnauthorized.Message))
	}
	return user, ok
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code, message := h.mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(code, message))
}

// mapError classifies a domain error into a status and client message.
// Internal failure details leak nothing outside development.
func (h baseHandler) mapError(err error) (int, string, string) {
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		return h.internal(err)
	}

	switch dErr.Code {
	case domain.ErrCodeValidation, domain.ErrCodeInvalidCredentials, domain.ErrCodeDuplicateUser:
		return http.StatusBadRequest, string(dErr.Code), dErr.Message
	case domain.ErrCodeUnauthorized, domain.ErrCodeExpiredToken, domain.ErrCodeInvalidToken:
		return http.StatusUnauthorized, string(dErr.Code), dErr.Message
	case domain.ErrCodeInactiveUser, domain.ErrCodeForbidden:
		return http.StatusForbidden, string(dErr.Code), dErr.Message
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, string(dErr.Code), dErr.Message
	case domain.ErrCodeConflict:
		return http.StatusConflict, string(dErr.Code), dErr.Message
	default:
		return h.internal(err)
	}
}

func (h baseHandler) internal(err error) (int, string, string) {
	message := "Error interno del servidor"
	if h.development && err != nil {
		message = err.Error()
	}
	return http.StatusInternalServerError, string(domain.ErrCodeInternal), message
}

func (h baseHandler) decodeBody(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), domain.ErrInvalidPayload.Message))
		return false
	}
	return true
}

func pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func parseDatePtr(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := parseDate(value); err == nil {
		return &t
	}
	return nil
}
