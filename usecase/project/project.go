package project

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
	domain.StatusPending:    {},
	domain.StatusInProgress: {},
	domain.StatusCompleted:  {},
	domain.StatusCancelled:  {},
}

var validPriorities = map[string]struct{}{
	domain.PriorityLow:    {},
	domain.PriorityMedium: {},
	domain.PriorityHigh:   {},
}

type UseCase struct {
	projects repository.ProjectRepository
	logger   *zap.Logger
}

func New(projects repository.ProjectRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{projects: projects, logger: logger}
}

func (uc *UseCase) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	return uc.projects.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*domain.Project, error) {
	return uc.Owned(ctx, userID, id)
}

func (uc *UseCase) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if err := validate(project); err != nil {
		return nil, err
	}

	project.ID = uuid.NewString()
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	return uc.projects.Create(ctx, project)
}

func (uc *UseCase) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	existing, err := uc.Owned(ctx, project.UserID, project.ID)
	if err != nil {
		return nil, err
	}
	if err := validate(project); err != nil {
		return nil, err
	}

	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = time.Now()
	if err := uc.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.Owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.projects.Delete(ctx, id)
}

func validate(project *domain.Project) error {
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		return domain.Validation("El nombre del proyecto es obligatorio")
	}
	if project.Status == "" {
		project.Status = domain.StatusPending
	}
	if _, ok := validStatuses[project.Status]; !ok {
		return domain.Validation("Estado de proyecto no válido")
	}
	if project.Priority == "" {
		project.Priority = domain.PriorityMedium
	}
	if _, ok := validPriorities[project.Priority]; !ok {
		return domain.Validation("Prioridad no válida")
	}
	if project.StartDate.IsZero() {
		project.StartDate = time.Now()
	}
	return project.ValidateDates()
}

// Owned fetches a project and hides other users' records behind not-found.
// The task use case relies on it to enforce project ownership.
func (uc *UseCase) Owned(ctx context.Context, userID, id string) (*domain.Project, error) {
	project, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}
