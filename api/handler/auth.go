package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/internal/middleware"
	"github.com/presenta/backend/pkg/httpcontext"
	authUC "github.com/presenta/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc            *authUC.UseCase
	authenticator *middleware.Authenticator
	frontendURL   string
}

func NewAuthHandler(uc *authUC.UseCase, authenticator *middleware.Authenticator, frontendURL string, adapter *httpcontext.Adapter, logger *zap.Logger, development bool) *AuthHandler {
	return &AuthHandler{
		baseHandler:   newBaseHandler(adapter, logger, development),
		uc:            uc,
		authenticator: authenticator,
		frontendURL:   frontendURL,
	}
}

// @Summary Register a local account
// @Tags auth
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Register(stdCtx, req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, result)
}

// @Summary Login with email and password
// @Tags auth
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Exchange a refresh token for a new pair
// @Tags auth
// @Router /api/auth/refresh-token [post]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	var req transport.RefreshRequest
	if !h.decodeBody(ctx, &req) {
		return
	}
	if req.RefreshToken == "" {
		h.respondError(ctx, domain.Validation("El refresh token es obligatorio"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Refresh(stdCtx, req.RefreshToken)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Inspect the current session
// @Tags auth
// @Router /api/auth/check [get]
// Check always answers 200: a broken or missing token is reported as an
// unauthenticated session, not as an error.
func (h *AuthHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.authenticator.Resolve(stdCtx, string(ctx.Request.Header.Peek("Authorization")))
	if err != nil {
		user = nil
	}
	h.respondSuccess(ctx, http.StatusOK, h.uc.Check(user))
}

// @Summary Logout
// @Tags auth
// @Router /api/auth/logout [post]
// Tokens are stateless, so logout only acknowledges; clients drop the pair.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Sesión cerrada correctamente"})
}

// @Summary Get the Google consent URL
// @Tags auth
// @Router /api/auth/google/url [get]
func (h *AuthHandler) GoogleURL(ctx *fasthttp.RequestCtx) {
	authURL, err := h.uc.GoogleAuthURL()
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"url": authURL})
}

// @Summary Google OAuth callback
// @Tags auth
// @Router /api/auth/google/callback [get]
// The browser lands here, so outcomes are redirects back to the frontend
// rather than JSON bodies.
func (h *AuthHandler) GoogleCallback(ctx *fasthttp.RequestCtx) {
	if providerErr := string(ctx.QueryArgs().Peek("error")); providerErr != "" {
		h.redirectError(ctx, "Autenticación cancelada")
		return
	}

	state := string(ctx.QueryArgs().Peek("state"))
	code := string(ctx.QueryArgs().Peek("code"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.GoogleCallback(stdCtx, state, code)
	if err != nil {
		h.logger.Warn("google callback failed", zap.Error(err))
		message := "Error al autenticar con Google"
		var dErr *domain.Error
		if errors.As(err, &dErr) {
			message = dErr.Message
		}
		h.redirectError(ctx, message)
		return
	}

	target := h.frontendURL + "/auth/callback?token=" + url.QueryEscape(result.Tokens.AccessToken) +
		"&refreshToken=" + url.QueryEscape(result.Tokens.RefreshToken)
	ctx.Redirect(target, http.StatusFound)
}

func (h *AuthHandler) redirectError(ctx *fasthttp.RequestCtx, message string) {
	ctx.Redirect(h.frontendURL+"/auth/error?message="+url.QueryEscape(message), http.StatusFound)
}
