package routine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
	"github.com/presenta/backend/usecase"
)

type UseCase struct {
	routines repository.RoutineRepository
	buffer   usecase.OperationBuffer
	logger   *zap.Logger
}

func New(routines repository.RoutineRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		routines: routines,
		buffer:   buffer,
		logger:   logger,
	}
}

func (uc *UseCase) List(ctx context.Context, filter repository.RoutineFilter) ([]domain.Routine, error) {
	return uc.routines.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*domain.Routine, error) {
	return uc.owned(ctx, userID, id)
}

// GetByDate returns the routine for a UTC day, or an empty unsaved one so
// clients always render a full checklist.
func (uc *UseCase) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.Routine, error) {
	probe := &domain.Routine{Date: date}
	probe.NormalizeDate()

	routine, err := uc.routines.GetByDate(ctx, userID, probe.Date)
	if err != nil {
		if errors.Is(err, domain.ErrRoutineNotFound) {
			empty := &domain.Routine{UserID: userID, Date: probe.Date}
			empty.ComputeCompleteness()
			return empty, nil
		}
		return nil, err
	}
	return routine, nil
}

// Save upserts the routine for its day. Completion ratios are always
// recomputed server-side from the checklist booleans.
func (uc *UseCase) Save(ctx context.Context, routine *domain.Routine) (*domain.Routine, error) {
	routine.NormalizeDate()
	routine.ComputeCompleteness()
	if routine.ID == "" {
		routine.ID = uuid.NewString()
	}
	now := time.Now()
	if routine.CreatedAt.IsZero() {
		routine.CreatedAt = now
	}
	routine.UpdatedAt = now

	saved, err := uc.routines.Upsert(ctx, routine)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, routine, err) {
			return routine, nil
		}
		return nil, err
	}
	return saved, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.routines.Delete(ctx, id)
}

// Stats aggregates completion across all users. Handler-level role checks
// keep this admin-only.
func (uc *UseCase) Stats(ctx context.Context) (*repository.RoutineStats, error) {
	return uc.routines.Stats(ctx)
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, routine *domain.Routine, cause error) bool {
	if uc.buffer == nil {
		return false
	}
	var dErr *domain.Error
	if errors.As(cause, &dErr) && dErr.Code != domain.ErrCodeInternal {
		return false
	}
	if err := uc.buffer.BufferRoutine(ctx, operation, routine); err != nil {
		uc.logger.Error("failed to buffer routine operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("routine operation buffered", zap.String("operation", operation), zap.Error(cause))
	return true
}

func (uc *UseCase) owned(ctx context.Context, userID, id string) (*domain.Routine, error) {
	routine, err := uc.routines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine.UserID != userID {
		return nil, domain.ErrRoutineNotFound
	}
	return routine, nil
}
