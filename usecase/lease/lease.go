package lease

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
)

var validStatuses = map[string]struct{}{
	domain.LeaseActive:     {},
	domain.LeaseFinished:   {},
	domain.LeaseTerminated: {},
}

type UseCase struct {
	leases     repository.LeaseRepository
	properties repository.PropertyRepository
	tenants    repository.TenantRepository
	logger     *zap.Logger
}

func New(leases repository.LeaseRepository, properties repository.PropertyRepository, tenants repository.TenantRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{leases: leases, properties: properties, tenants: tenants, logger: logger}
}

func (uc *UseCase) List(ctx context.Context, filter repository.LeaseFilter) ([]domain.Lease, error) {
	return uc.leases.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*domain.Lease, error) {
	return uc.owned(ctx, userID, id)
}

// Create opens a lease and marks the property occupied.
func (uc *UseCase) Create(ctx context.Context, lease *domain.Lease) (*domain.Lease, error) {
	if err := uc.validate(ctx, lease); err != nil {
		return nil, err
	}

	lease.ID = uuid.NewString()
	now := time.Now()
	lease.CreatedAt = now
	lease.UpdatedAt = now
	if lease.Status == "" {
		lease.Status = domain.LeaseActive
	}

	created, err := uc.leases.Create(ctx, lease)
	if err != nil {
		return nil, err
	}

	if created.Status == domain.LeaseActive {
		if _, err := uc.properties.UpdateStatus(ctx, created.PropertyID, domain.PropertyOccupied); err != nil {
			uc.logger.Warn("failed to mark property occupied", zap.String("property_id", created.PropertyID), zap.Error(err))
		}
	}
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, lease *domain.Lease) (*domain.Lease, error) {
	existing, err := uc.owned(ctx, lease.UserID, lease.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, lease); err != nil {
		return nil, err
	}

	lease.CreatedAt = existing.CreatedAt
	lease.UpdatedAt = time.Now()
	if err := uc.leases.Update(ctx, lease); err != nil {
		return nil, err
	}

	// Closing a lease frees the property.
	if existing.Status == domain.LeaseActive && lease.Status != domain.LeaseActive {
		if _, err := uc.properties.UpdateStatus(ctx, lease.PropertyID, domain.PropertyAvailable); err != nil {
			uc.logger.Warn("failed to release property", zap.String("property_id", lease.PropertyID), zap.Error(err))
		}
	}
	return lease, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	lease, err := uc.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := uc.leases.Delete(ctx, id); err != nil {
		return err
	}
	if lease.Status == domain.LeaseActive {
		if _, err := uc.properties.UpdateStatus(ctx, lease.PropertyID, domain.PropertyAvailable); err != nil {
			uc.logger.Warn("failed to release property", zap.String("property_id", lease.PropertyID), zap.Error(err))
		}
	}
	return nil
}

func (uc *UseCase) validate(ctx context.Context, lease *domain.Lease) error {
	if lease.PropertyID == "" || lease.TenantID == "" {
		return domain.Validation("Propiedad e inquilino son obligatorios")
	}
	if lease.StartDate.IsZero() {
		return domain.Validation("La fecha de inicio es obligatoria")
	}
	if lease.EndDate != nil && lease.EndDate.Before(lease.StartDate) {
		return domain.Validation("La fecha de fin debe ser posterior a la fecha de inicio")
	}
	if lease.MonthlyRent <= 0 {
		return domain.Validation("El monto mensual debe ser mayor a cero")
	}
	if lease.Status != "" {
		if _, ok := validStatuses[lease.Status]; !ok {
			return domain.Validation("Estado de contrato no válido")
		}
	}

	property, err := uc.properties.GetByID(ctx, lease.PropertyID)
	if err != nil {
		return err
	}
	if property.UserID != lease.UserID {
		return domain.ErrPropertyNotFound
	}

	tenant, err := uc.tenants.GetByID(ctx, lease.TenantID)
	if err != nil {
		return err
	}
	if tenant.UserID != lease.UserID {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (uc *UseCase) owned(ctx context.Context, userID, id string) (*domain.Lease, error) {
	lease, err := uc.leases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease.UserID != userID {
		return nil, domain.ErrLeaseNotFound
	}
	return lease, nil
}
