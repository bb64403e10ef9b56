package repository

import (
	"context"
	"time"

	"github.com/presenta/backend/domain"
)

type RoutineFilter struct {
	UserID string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// RoutineStats aggregates completion across users for the admin dashboard.
type RoutineStats struct {
	Total               int     `json:"total"`
	AverageCompleteness float64 `json:"completitudPromedio"`
}

type RoutineRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Routine, error)
	GetByDate(ctx context.Context, userID string, date time.Time) (*domain.Routine, error)
	List(ctx context.Context, filter RoutineFilter) ([]domain.Routine, error)
	Upsert(ctx context.Context, routine *domain.Routine) (*domain.Routine, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*RoutineStats, error)
}
