package services

import (
	"context"
	"encoding/json"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/internal/infrastructure/buffer"
	"github.com/presenta/backend/usecase"
)

// BufferBridge adapts the processor to the use-case buffer port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferRoutine(ctx context.Context, operation string, routine *domain.Routine) error {
	if b.processor == nil || routine == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(routine)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        routine.ID,
		UserID:    routine.UserID,
		Entity:    buffer.EntityRoutine,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferTransaction(ctx context.Context, operation string, tx *domain.Transaction) error {
	if b.processor == nil || tx == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Entity:    buffer.EntityTransaction,
		Operation: operation,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
