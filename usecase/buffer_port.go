package usecase

import (
	"context"

	"github.com/presenta/backend/domain"
)

// Buffered operations.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic. Routines and transactions are the two entities worth
// preserving when the database is unreachable.
type OperationBuffer interface {
	BufferRoutine(ctx context.Context, operation string, routine *domain.Routine) error
	BufferTransaction(ctx context.Context, operation string, tx *domain.Transaction) error
}
