package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
	"github.com/presenta/backend/usecase"
)

type UseCase struct {
	transactions repository.TransactionRepository
	buffer       usecase.OperationBuffer
	logger       *zap.Logger
}

func New(transactions repository.TransactionRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		transactions: transactions,
		buffer:       buffer,
		logger:       logger,
	}
}

func (uc *UseCase) List(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	return uc.transactions.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	return uc.owned(ctx, userID, id)
}

func (uc *UseCase) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if err := validate(tx); err != nil {
		return nil, err
	}

	tx.ID = uuid.NewString()
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	created, err := uc.transactions.Create(ctx, tx)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, tx, err) {
			return tx, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	existing, err := uc.owned(ctx, tx.UserID, tx.ID)
	if err != nil {
		return nil, err
	}
	if err := validate(tx); err != nil {
		return nil, err
	}

	tx.CreatedAt = existing.CreatedAt
	tx.UpdatedAt = time.Now()
	if err := uc.transactions.Update(ctx, tx); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, tx, err) {
			return tx, nil
		}
		return nil, err
	}
	return tx, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.transactions.Delete(ctx, id); err != nil {
		tx := &domain.Transaction{ID: id, UserID: userID}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, tx, err) {
			return nil
		}
		return err
	}
	return nil
}

// shouldBuffer queues the write for later replay when the database is down.
// Domain rejections are never buffered: they would fail again identically.
func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, tx *domain.Transaction, cause error) bool {
	if uc.buffer == nil {
		return false
	}
	var dErr *domain.Error
	if errors.As(cause, &dErr) && dErr.Code != domain.ErrCodeInternal {
		return false
	}
	if err := uc.buffer.BufferTransaction(ctx, operation, tx); err != nil {
		uc.logger.Error("failed to buffer transaction operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("transaction operation buffered", zap.String("operation", operation), zap.Error(cause))
	return true
}

func validate(tx *domain.Transaction) error {
	tx.Description = strings.TrimSpace(tx.Description)
	if tx.Description == "" {
		return domain.Validation("La descripción es obligatoria")
	}
	if tx.Amount <= 0 {
		return domain.Validation("El monto debe ser mayor a cero")
	}
	if tx.Type != domain.TransactionIncome && tx.Type != domain.TransactionExpense {
		return domain.Validation("El tipo debe ser INGRESO o EGRESO")
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionPending
	}
	if tx.Status != domain.TransactionPending && tx.Status != domain.TransactionPaid {
		return domain.Validation("El estado debe ser PENDIENTE o PAGADO")
	}
	if tx.Category != "" && !domain.ValidCategory(tx.Category) {
		return domain.Validation("Categoría no válida")
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	if tx.Currency == "" {
		tx.Currency = "ARS"
	}
	return nil
}

func (uc *UseCase) owned(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	tx, err := uc.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}
