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
	transactionUC "github.com/presenta/backend/usecase/transaction"
)

type TransactionHandler struct {
	baseHandler
	uc *transactionUC.UseCase
}

func NewTransactionHandler(uc *transactionUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, development bool) *TransactionHandler {
	return &TransactionHandler{
		baseHandler: newBaseHandler(adapter, logger, development),
		uc:          uc,
	}
}

// @Summary List transactions
// @Tags transactions
// @Router /api/transacciones [get]
func (h *TransactionHandler) List(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	filter := repository.TransactionFilter{
		UserID: user.ID,
		Status: string(ctx.QueryArgs().Peek("estado")),
		Type:   string(ctx.QueryArgs().Peek("tipo")),
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

	transactions, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transactions)
}

// @Summary Get one transaction
// @Tags transactions
// @Router /api/transacciones/{id} [get]
func (h *TransactionHandler) Get(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tx, err := h.uc.Get(stdCtx, user.ID, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tx)
}

// @Summary Accepted categories
// @Tags transactions
// @Router /api/transacciones/categorias [get]
func (h *TransactionHandler) Categories(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, domain.TransactionCategories)
}

// @Summary Create a transaction
// @Tags transactions
// @Router /api/transacciones [post]
func (h *TransactionHandler) Create(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	tx, ok := h.parseTransaction(ctx, user.ID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, tx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a transaction
// @Tags transactions
// @Router /api/transacciones/{id} [put]
func (h *TransactionHandler) Update(ctx *fasthttp.RequestCtx) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	tx, ok := h.parseTransaction(ctx, user.ID)
	if !ok {
		return
	}
	tx.ID = pathID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, tx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a transaction
// @Tags transactions
// @Router /api/transacciones/{id} [delete]
func (h *TransactionHandler) Delete(ctx *fasthttp.RequestCtx) {
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
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Transacción eliminada correctamente"})
}

func (h *TransactionHandler) parseTransaction(ctx *fasthttp.RequestCtx, userID string) (*domain.Transaction, bool) {
	var req transport.TransactionRequest
	if !h.decodeBody(ctx, &req) {
		return nil, false
	}

	tx := &domain.Transaction{
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Status:      req.Status,
		Type:        req.Type,
		Currency:    req.Currency,
		LeaseID:     req.LeaseID,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			h.respondError(ctx, domain.Validation("La fecha no es válida"))
			return nil, false
		}
		tx.Date = date
	} else {
		tx.Date = time.Now()
	}
	return tx, true
}
