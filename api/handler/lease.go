package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/pkg/httpcontext"
	"github.com/presenta/backend/repository"
	leaseUC "github.com/presenta/backend/usecase/lease"
)

type LeaseHandler struct {
	baseHandler
	uc *leaseUC.UseCase
}

func NewLeaseHandler(uc *leaseUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, development bool) *LeaseHandler {
	return &LeaseHandler{
		baseHandler: newBaseHandler(adapter, logger, development),
		uc:          uc,
	}
}

// @Summary List leases
// @Tags leases
// @Router /api/contratos [get]
func (h *LeaseHandler) List(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	filter := repository.LeaseFilter{
		UserID:     user.ID,
		Status:     string(ctx.QueryArgs().Peek("estado")),
		PropertyID: string(ctx.QueryArgs().Peek("propiedad")),
		TenantID:   string(ctx.QueryArgs().Peek("inquilino")),
		Limit:      parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	leases, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, leases)
}

// @Summary Get one lease
// @Tags leases
// @Router /api/contratos/{id} [get]
func (h *LeaseHandler) Get(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	lease, err := h.uc.Get(stdCtx, user.ID, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, lease)
}

// @Summary Create a lease
// @Tags leases
// @Router /api/contratos [post]
func (h *LeaseHandler) Create(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	lease, ok := h.parseLease(ctx, user.ID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, lease)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a lease
// @Tags leases
// @Router /api/contratos/{id} [put]
func (h *LeaseHandler) Update(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	lease, ok := h.parseLease(ctx, user.ID)
	if !ok {
		return
	}
	lease.ID = pathID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, lease)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a lease
// @Tags leases
// @Router /api/contratos/{id} [delete]
func (h *LeaseHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Contrato eliminado correctamente"})
}

func (h *LeaseHandler) parseLease(ctx *fasthttp.RequestCtx, userID string) (*domain.Lease, bool) {
	var req transport.LeaseRequest
	if !h.decodeBody(ctx, &req) {
		return nil, false
	}

	lease := &domain.Lease{
		UserID:      userID,
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		MonthlyRent: req.MonthlyRent,
		Currency:    req.Currency,
		Deposit:     req.Deposit,
		Status:      req.Status,
		EndDate:     parseDatePtr(req.EndDate),
	}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			h.respondError(ctx, domain.Validation("La fecha de inicio no es válida"))
			return nil, false
		}
		lease.StartDate = start
	}
	return lease, true
}
