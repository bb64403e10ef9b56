package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
)

var validStatuses = map[string]struct{}{
	domain.TaskPending:    {},
	domain.TaskInProgress: {},
	domain.TaskCompleted:  {},
	domain.TaskCancelled:  {},
}

var validPriorities = map[string]struct{}{
	domain.PriorityLow:    {},
	domain.PriorityMedium: {},
	domain.PriorityHigh:   {},
}

// ProjectGuard validates that a project exists and belongs to a user.
type ProjectGuard interface {
	Owned(ctx context.Context, userID, id string) (*domain.Project, error)
}

type UseCase struct {
	tasks    repository.TaskRepository
	projects ProjectGuard
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, projects ProjectGuard, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{tasks: tasks, projects: projects, logger: logger}
}

func (uc *UseCase) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if filter.ProjectID != "" {
		if _, err := uc.projects.Owned(ctx, filter.UserID, filter.ProjectID); err != nil {
			return nil, err
		}
	}
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	return uc.owned(ctx, userID, id)
}

func (uc *UseCase) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := uc.validate(ctx, task); err != nil {
		return nil, err
	}

	task.ID = uuid.NewString()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	return uc.tasks.Create(ctx, task)
}

func (uc *UseCase) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	existing, err := uc.owned(ctx, task.UserID, task.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, task); err != nil {
		return nil, err
	}

	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now()
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, id)
}

func (uc *UseCase) validate(ctx context.Context, task *domain.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return domain.Validation("El título es obligatorio")
	}
	if task.ProjectID == "" {
		return domain.Validation("El proyecto es obligatorio")
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}
	if _, ok := validStatuses[task.Status]; !ok {
		return domain.Validation("Estado de tarea no válido")
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if _, ok := validPriorities[task.Priority]; !ok {
		return domain.Validation("Prioridad no válida")
	}
	// Status and the completed flag stay consistent in both directions.
	if task.Status == domain.TaskCompleted {
		task.Completed = true
	} else if task.Completed {
		task.Status = domain.TaskCompleted
	}

	if _, err := uc.projects.Owned(ctx, task.UserID, task.ProjectID); err != nil {
		return err
	}
	return nil
}

func (uc *UseCase) owned(ctx context.Context, userID, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}
