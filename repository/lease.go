package repository

import (
	"context"

	"github.com/presenta/backend/domain"
)

type LeaseFilter struct {
	UserID     string
	Status     string
	PropertyID string
	TenantID   string
	Limit      int
	Offset     int
}

type LeaseRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Lease, error)
	List(ctx context.Context, filter LeaseFilter) ([]domain.Lease, error)
	Create(ctx context.Context, lease *domain.Lease) (*domain.Lease, error)
	Update(ctx context.Context, lease *domain.Lease) error
	Delete(ctx context.Context, id string) error
}
