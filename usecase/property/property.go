package property

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
	domain.PropertyAvailable:   {},
	domain.PropertyOccupied:    {},
	domain.PropertyMaintenance: {},
}

type UseCase struct {
	properties repository.PropertyRepository
	logger     *zap.Logger
}

func New(properties repository.PropertyRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{properties: properties, logger: logger}
}

func (uc *UseCase) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error) {
	return uc.properties.List(ctx, filter)
}

// ListAll returns properties across every owner. The route guarding it
// requires the ADMIN role.
func (uc *UseCase) ListAll(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error) {
	filter.UserID = ""
	return uc.properties.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*domain.Property, error) {
	return uc.owned(ctx, userID, id)
}

func (uc *UseCase) Stats(ctx context.Context, userID string) (*domain.PropertyStats, error) {
	return uc.properties.Stats(ctx, userID)
}

func (uc *UseCase) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	property.Name = strings.TrimSpace(property.Name)
	if property.Name == "" {
		return nil, domain.Validation("El nombre de la propiedad es obligatorio")
	}
	if property.Address == "" {
		return nil, domain.Validation("La dirección es obligatoria")
	}
	if property.Status == "" {
		property.Status = domain.PropertyAvailable
	}
	if _, ok := validStatuses[property.Status]; !ok {
		return nil, domain.Validation("Estado de propiedad no válido")
	}

	property.ID = uuid.NewString()
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now
	return uc.properties.Create(ctx, property)
}

func (uc *UseCase) Update(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	existing, err := uc.owned(ctx, property.UserID, property.ID)
	if err != nil {
		return nil, err
	}
	if property.Status != "" {
		if _, ok := validStatuses[property.Status]; !ok {
			return nil, domain.Validation("Estado de propiedad no válido")
		}
		existing.Status = property.Status
	}
	if property.Name != "" {
		existing.Name = strings.TrimSpace(property.Name)
	}
	if property.Address != "" {
		existing.Address = property.Address
	}
	if property.City != "" {
		existing.City = property.City
	}
	if property.Type != "" {
		existing.Type = property.Type
	}
	existing.Notes = property.Notes
	existing.UpdatedAt = time.Now()

	if err := uc.properties.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// SetStatus transitions a property between availability states.
func (uc *UseCase) SetStatus(ctx context.Context, userID, id, status string) (*domain.Property, error) {
	if _, ok := validStatuses[status]; !ok {
		return nil, domain.Validation("Estado de propiedad no válido")
	}
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	return uc.properties.UpdateStatus(ctx, id, status)
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.properties.Delete(ctx, id)
}

// owned fetches a property and hides other users' records behind not-found.
func (uc *UseCase) owned(ctx context.Context, userID, id string) (*domain.Property, error) {
	property, err := uc.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.UserID != userID {
		return nil, domain.ErrPropertyNotFound
	}
	return property, nil
}
