package routine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
)

type fakeRoutineRepo struct {
	store map[string]*domain.Routine
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{store: make(map[string]*domain.Routine)}
}

func (f *fakeRoutineRepo) GetByID(_ context.Context, id string) (*domain.Routine, error) {
	if r, ok := f.store[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, domain.ErrRoutineNotFound
}

func (f *fakeRoutineRepo) GetByDate(_ context.Context, userID string, date time.Time) (*domain.Routine, error) {
	for _, r := range f.store {
		if r.UserID == userID && r.Date.Equal(date) {
			clone := *r
			return &clone, nil
		}
	}
	return nil, domain.ErrRoutineNotFound
}

func (f *fakeRoutineRepo) List(_ context.Context, filter repository.RoutineFilter) ([]domain.Routine, error) {
	var out []domain.Routine
	for _, r := range f.store {
		if r.UserID == filter.UserID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoutineRepo) Upsert(_ context.Context, routine *domain.Routine) (*domain.Routine, error) {
	for _, existing := range f.store {
		if existing.UserID == routine.UserID && existing.Date.Equal(routine.Date) {
			routine.ID = existing.ID
			break
		}
	}
	clone := *routine
	f.store[routine.ID] = &clone
	return &clone, nil
}

func (f *fakeRoutineRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.store[id]; !ok {
		return domain.ErrRoutineNotFound
	}
	delete(f.store, id)
	return nil
}

func (f *fakeRoutineRepo) Stats(_ context.Context) (*repository.RoutineStats, error) {
	stats := &repository.RoutineStats{Total: len(f.store)}
	for _, r := range f.store {
		stats.AverageCompleteness += r.Completeness
	}
	if stats.Total > 0 {
		stats.AverageCompleteness /= float64(stats.Total)
	}
	return stats, nil
}

func TestSaveComputesCompleteness(t *testing.T) {
	repo := newFakeRoutineRepo()
	uc := New(repo, nil, nil)

	saved, err := uc.Save(context.Background(), &domain.Routine{
		UserID: "u-1",
		Date:   time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC),
		BodyCare: domain.BodyCareSection{
			Bath: true, SkinCareDay: true, SkinCareNight: true, BodyCream: true,
		},
		// Client-sent value is ignored, server recomputes.
		Completeness: 0.99,
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.InDelta(t, 0.25, saved.Completeness, 1e-9)
	require.Equal(t, 0, saved.Date.Hour())
}

func TestSaveUpsertsSameDay(t *testing.T) {
	repo := newFakeRoutineRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	day := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	first, err := uc.Save(ctx, &domain.Routine{UserID: "u-1", Date: day})
	require.NoError(t, err)

	// A later save for the same UTC day replaces, never duplicates.
	evening := time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)
	second, err := uc.Save(ctx, &domain.Routine{
		UserID:   "u-1",
		Date:     evening,
		Cleaning: domain.CleaningSection{Bed: true},
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, repo.store, 1)
}

func TestGetByDateMissingReturnsEmptyChecklist(t *testing.T) {
	uc := New(newFakeRoutineRepo(), nil, nil)

	routine, err := uc.GetByDate(context.Background(), "u-1", time.Now())
	require.NoError(t, err)
	require.Empty(t, routine.ID)
	require.Equal(t, "u-1", routine.UserID)
	require.Zero(t, routine.Completeness)
	require.Len(t, routine.SectionCompleteness, 4)
}

func TestDeleteOwnershipHidden(t *testing.T) {
	repo := newFakeRoutineRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	saved, err := uc.Save(ctx, &domain.Routine{UserID: "u-1"})
	require.NoError(t, err)

	require.ErrorIs(t, uc.Delete(ctx, "u-2", saved.ID), domain.ErrRoutineNotFound)
	require.NoError(t, uc.Delete(ctx, "u-1", saved.ID))
}

func TestStats(t *testing.T) {
	repo := newFakeRoutineRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Save(ctx, &domain.Routine{
		UserID:   "u-1",
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		BodyCare: domain.BodyCareSection{
			Bath: true, SkinCareDay: true, SkinCareNight: true, BodyCream: true,
		},
		Nutrition: domain.NutritionSection{
			Cook: true, Water: true, Protein: true, Meds: true,
		},
		Exercise: domain.ExerciseSection{
			Meditate: true, Stretching: true, Gym: true, Cardio: true,
		},
		Cleaning: domain.CleaningSection{
			Bed: true, Dishes: true, Floor: true, Laundry: true,
		},
	})
	require.NoError(t, err)
	_, err = uc.Save(ctx, &domain.Routine{
		UserID: "u-2",
		Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.InDelta(t, 0.5, stats.AverageCompleteness, 1e-9)
}
