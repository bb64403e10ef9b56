package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/pkg/httpcontext"
	profileUC "github.com/presenta/backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, development bool) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger, development),
		uc:          uc,
	}
}

// @Summary Get the authenticated profile
// @Tags profile
// @Router /api/profile [get]
func (h *ProfileHandler) Get(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.GetProfile(stdCtx, user.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profile)
}

// @Summary Update profile fields
// @Tags profile
// @Router /api/profile [put]
func (h *ProfileHandler) Update(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var req transport.UpdateProfileRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProfile(stdCtx, user.ID, req.Name, req.Phone)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Update UI preferences
// @Tags profile
// @Router /api/profile/preferences [put]
func (h *ProfileHandler) UpdatePreferences(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var req transport.UpdatePreferencesRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdatePreferences(stdCtx, user.ID, req.Theme, req.Language, req.Notifications)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}
