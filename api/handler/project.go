package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/presenta/backend/api/transport"
	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/pkg/httpcontext"
	"github.com/presenta/backend/repository"
	projectUC "github.com/presenta/backend/usecase/project"
)

type ProjectHandler struct {
	baseHandler
	uc *projectUC.UseCase
}

func NewProjectHandler(uc *projectUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, development bool) *ProjectHandler {
	return &ProjectHandler{
		baseHandler: newBaseHandler(adapter, logger, development),
		uc:          uc,
	}
}

// @Summary List projects
// @Tags projects
// @Router /api/proyectos [get]
func (h *ProjectHandler) List(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	filter := repository.ProjectFilter{
		UserID:     user.ID,
		Status:     string(ctx.QueryArgs().Peek("estado")),
		PropertyID: string(ctx.QueryArgs().Peek("propiedad")),
		Limit:      parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	projects, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, projects)
}

// @Summary Get one project with its tasks
// @Tags projects
// @Router /api/proyectos/{id} [get]
func (h *ProjectHandler) Get(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	project, err := h.uc.Get(stdCtx, user.ID, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, project)
}

// @Summary Create a project
// @Tags projects
// @Router /api/proyectos [post]
func (h *ProjectHandler) Create(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	project, ok := h.parseProject(ctx, user.ID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, project)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a project
// @Tags projects
// @Router /api/proyectos/{id} [put]
func (h *ProjectHandler) Update(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	project, ok := h.parseProject(ctx, user.ID)
	if !ok {
		return
	}
	project.ID = pathID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, project)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a project
// @Tags projects
// @Router /api/proyectos/{id} [delete]
func (h *ProjectHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Proyecto eliminado correctamente"})
}

func (h *ProjectHandler) parseProject(ctx *fasthttp.RequestCtx, userID string) (*domain.Project, bool) {
	var req transport.ProjectRequest
	if !h.decodeBody(ctx, &req) {
		return nil, false
	}

	project := &domain.Project{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Budget:      req.Budget,
		Tags:        req.Tags,
		PropertyID:  req.PropertyID,
		EndDate:     parseDatePtr(req.EndDate),
	}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			h.respondError(ctx, domain.Validation("La fecha de inicio no es válida"))
			return nil, false
		}
		project.StartDate = start
	}
	return project, true
}
