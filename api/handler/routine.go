package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/pkg/httpcontext"
	"github.com/presenta/backend/repository"
	routineUC "github.com/presenta/backend/usecase/routine"
)

type RoutineHandler struct {
	baseHandler
	uc *routineUC.UseCase
}

func NewRoutineHandler(uc *routineUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, development bool) *RoutineHandler {
	return &RoutineHandler{
		baseHandler: newBaseHandler(adapter, logger, development),
		uc:          uc,
	}
}

// @Summary List routines
// @Tags routines
// @Router /api/rutinas [get]
func (h *RoutineHandler) List(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	filter := repository.RoutineFilter{
		UserID: user.ID,
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}
	if from := string(ctx.QueryArgs().Peek("desde")); from != "" {
		if t, err := parseDate(from); err == nil {
			filter.From = t
		}
	}
	if to := string(ctx.QueryArgs().Peek("hasta")); to != "" {
		if t, err := parseDate(to); err == nil {
			filter.To = t
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	routines, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, routines)
}

// @Summary Routine for a given day
// @Tags routines
// @Router /api/rutinas/dia [get]
// Without a "fecha" query param, today's routine is returned. A day with no
// saved routine yields an empty checklist instead of 404.
func (h *RoutineHandler) GetByDate(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	date := time.Now()
	if raw := string(ctx.QueryArgs().Peek("fecha")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.respondError(ctx, domain.Validation("La fecha no es válida"))
			return
		}
		date = parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	routine, err := h.uc.GetByDate(stdCtx, user.ID, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, routine)
}

// @Summary Save the routine for a day
// @Tags routines
// @Router /api/rutinas [post]
func (h *RoutineHandler) Save(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var req transport.RoutineRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	routine := &domain.Routine{
		UserID:    user.ID,
		BodyCare:  req.BodyCare,
		Nutrition: req.Nutrition,
		Exercise:  req.Exercise,
		Cleaning:  req.Cleaning,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			h.respondError(ctx, domain.Validation("La fecha no es válida"))
			return
		}
		routine.Date = date
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	saved, err := h.uc.Save(stdCtx, routine)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, saved)
}

// @Summary Delete a routine
// @Tags routines
// @Router /api/rutinas/{id} [delete]
func (h *RoutineHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Rutina eliminada correctamente"})
}

// @Summary Completion stats across all users
// @Tags routines
// @Router /api/admin/rutinas/stats [get]
func (h *RoutineHandler) Stats(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Stats(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}
