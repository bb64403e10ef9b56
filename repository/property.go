package repository

import (
	"context"

	"github.com/presenta/backend/domain"
)

type PropertyFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]domain.Property, error)
	Stats(ctx context.Context, userID string) (*domain.PropertyStats, error)
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	UpdateStatus(ctx context.Context, id, status string) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
}
