package repository

import (
	"context"

	"github.com/presenta/backend/domain"
)

type TenantFilter struct {
	UserID     string
	Status     string
	PropertyID string
	Limit      int
	Offset     int
}

type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	List(ctx context.Context, filter TenantFilter) ([]domain.Tenant, error)
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, id string) error
}
