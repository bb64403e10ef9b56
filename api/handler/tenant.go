package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/pkg/httpcontext"
	"github.com/presenta/backend/repository"
	tenantUC "github.com/presenta/backend/usecase/tenant"
)

type TenantHandler struct {
	baseHandler
	uc *tenantUC.UseCase
}

func NewTenantHandler(uc *tenantUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, development bool) *TenantHandler {
	return &TenantHandler{
		baseHandler: newBaseHandler(adapter, logger, development),
		uc:          uc,
	}
}

// @Summary List tenants
// @Tags tenants
// @Router /api/inquilinos [get]
func (h *TenantHandler) List(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	filter := repository.TenantFilter{
		UserID:     user.ID,
		Status:     string(ctx.QueryArgs().Peek("estado")),
		PropertyID: string(ctx.QueryArgs().Peek("propiedad")),
		Limit:      parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tenants, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tenants)
}

// @Summary Get one tenant
// @Tags tenants
// @Router /api/inquilinos/{id} [get]
func (h *TenantHandler) Get(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tenant, err := h.uc.Get(stdCtx, user.ID, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tenant)
}

// @Summary Create a tenant
// @Tags tenants
// @Router /api/inquilinos [post]
func (h *TenantHandler) Create(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	tenant, ok := h.parseTenant(ctx, user.ID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, tenant)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a tenant
// @Tags tenants
// @Router /api/inquilinos/{id} [put]
func (h *TenantHandler) Update(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	tenant, ok := h.parseTenant(ctx, user.ID)
	if !ok {
		return
	}
	tenant.ID = pathID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, tenant)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a tenant
// @Tags tenants
// @Router /api/inquilinos/{id} [delete]
func (h *TenantHandler) Delete(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, user.ID, pathID(ctx)); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Inquilino eliminado correctamente"})
}

func (h *TenantHandler) parseTenant(ctx *fasthttp.RequestCtx, userID string) (*domain.Tenant, bool) {
	var req transport.TenantRequest
	if !h.decodeBody(ctx, &req) {
		return nil, false
	}
	return &domain.Tenant{
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DocumentID:  req.DocumentID,
		Nationality: req.Nationality,
		Occupation:  req.Occupation,
		Status:      req.Status,
		PropertyID:  req.PropertyID,
		LeaseID:     req.LeaseID,
	}, true
}
