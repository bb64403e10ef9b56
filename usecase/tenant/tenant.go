package tenant

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
	domain.TenantActive:   {},
	domain.TenantInactive: {},
	domain.TenantPending:  {},
}

type UseCase struct {
	tenants    repository.TenantRepository
	properties repository.PropertyRepository
	leases     repository.LeaseRepository
	logger     *zap.Logger
}

func New(tenants repository.TenantRepository, properties repository.PropertyRepository, leases repository.LeaseRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{tenants: tenants, properties: properties, leases: leases, logger: logger}
}

func (uc *UseCase) List(ctx context.Context, filter repository.TenantFilter) ([]domain.Tenant, error) {
	return uc.tenants.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, userID, id string) (*domain.Tenant, error) {
	return uc.owned(ctx, userID, id)
}

func (uc *UseCase) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if err := uc.validate(ctx, tenant); err != nil {
		return nil, err
	}

	tenant.ID = uuid.NewString()
	now := time.Now()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	return uc.tenants.Create(ctx, tenant)
}

func (uc *UseCase) Update(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	existing, err := uc.owned(ctx, tenant.UserID, tenant.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, tenant); err != nil {
		return nil, err
	}

	tenant.CreatedAt = existing.CreatedAt
	tenant.UpdatedAt = time.Now()
	if err := uc.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.tenants.Delete(ctx, id)
}

func (uc *UseCase) validate(ctx context.Context, tenant *domain.Tenant) error {
	tenant.FirstName = strings.TrimSpace(tenant.FirstName)
	tenant.LastName = strings.TrimSpace(tenant.LastName)
	if tenant.FirstName == "" || tenant.LastName == "" {
		return domain.Validation("Nombre y apellido son obligatorios")
	}
	if tenant.DocumentID == "" {
		return domain.Validation("El documento es obligatorio")
	}
	if tenant.Status == "" {
		tenant.Status = domain.TenantPending
	}
	if _, ok := validStatuses[tenant.Status]; !ok {
		return domain.Validation("Estado de inquilino no válido")
	}

	// A linked property must exist and belong to the same owner.
	if tenant.PropertyID != "" {
		property, err := uc.properties.GetByID(ctx, tenant.PropertyID)
		if err != nil {
			return err
		}
		if property.UserID != tenant.UserID {
			return domain.ErrPropertyNotFound
		}
	}

	// A linked lease must belong to the same owner and, when the tenant also
	// names a property, refer to that same property.
	if tenant.LeaseID != "" {
		lease, err := uc.leases.GetByID(ctx, tenant.LeaseID)
		if err != nil {
			return err
		}
		if lease.UserID != tenant.UserID {
			return domain.ErrLeaseNotFound
		}
		if tenant.PropertyID != "" && lease.PropertyID != tenant.PropertyID {
			return domain.Validation("El contrato no corresponde a la propiedad indicada")
		}
	}
	return nil
}

func (uc *UseCase) owned(ctx context.Context, userID, id string) (*domain.Tenant, error) {
	tenant, err := uc.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant.UserID != userID {
		return nil, domain.ErrTenantNotFound
	}
	return tenant, nil
}
