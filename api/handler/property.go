package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/pkg/httpcontext"
	"github.com/presenta/backend/repository"
	propertyUC "github.com/presenta/backend/usecase/property"
)

type PropertyHandler struct {
	baseHandler
	uc *propertyUC.UseCase
}

func NewPropertyHandler(uc *propertyUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, development bool) *PropertyHandler {
	return &PropertyHandler{
		baseHandler: newBaseHandler(adapter, logger, development),
		uc:          uc,
	}
}

// @Summary List properties
// @Tags properties
// @Router /api/propiedades [get]
func (h *PropertyHandler) List(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	filter := repository.PropertyFilter{
		UserID: user.ID,
		Status: string(ctx.QueryArgs().Peek("estado")),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	properties, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, properties)
}

// @Summary List properties of every user
// @Tags properties
// @Router /api/admin/propiedades [get]
func (h *PropertyHandler) ListAll(ctx *fasthttp.RequestCtx) {
	if _, ok := h.currentUser(ctx); !ok {
		return
	}

	filter := repository.PropertyFilter{
		Status: string(ctx.QueryArgs().Peek("estado")),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	properties, err := h.uc.ListAll(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, properties)
}

// @Summary Get one property
// @Tags properties
// @Router /api/propiedades/{id} [get]
func (h *PropertyHandler) Get(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	property, err := h.uc.Get(stdCtx, user.ID, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, property)
}

// @Summary Occupancy stats
// @Tags properties
// @Router /api/propiedades/stats [get]
func (h *PropertyHandler) Stats(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Stats(stdCtx, user.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary Create a property
// @Tags properties
// @Router /api/propiedades [post]
func (h *PropertyHandler) Create(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	property, ok := h.parseProperty(ctx, user.ID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, property)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a property
// @Tags properties
// @Router /api/propiedades/{id} [put]
func (h *PropertyHandler) Update(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	property, ok := h.parseProperty(ctx, user.ID)
	if !ok {
		return
	}
	property.ID = pathID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, property)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Change availability status
// @Tags properties
// @Router /api/propiedades/{id}/estado [patch]
func (h *PropertyHandler) SetStatus(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"estado"`
	}
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.SetStatus(stdCtx, user.ID, pathID(ctx), req.Status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a property
// @Tags properties
// @Router /api/propiedades/{id} [delete]
func (h *PropertyHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Propiedad eliminada correctamente"})
}

func (h *PropertyHandler) parseProperty(ctx *fasthttp.RequestCtx, userID string) (*domain.Property, bool) {
	var req transport.PropertyRequest
	if !h.decodeBody(ctx, &req) {
		return nil, false
	}
	return &domain.Property{
		UserID:  userID,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Type:    req.Type,
		Status:  req.Status,
		Notes:   req.Notes,
	}, true
}
