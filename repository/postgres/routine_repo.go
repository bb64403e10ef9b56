package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
)

const routineColumns = `id, user_id, date, sections, completeness, section_completeness, created_at, updated_at`

type routineRepository struct {
	pool *pgxpool.Pool
}

// NewRoutineRepository returns a Postgres-backed implementation of RoutineRepository.
func NewRoutineRepository(pool *pgxpool.Pool) repository.RoutineRepository {
	return &routineRepository{pool: pool}
}

// routineSections is the jsonb layout of the four checklist sections.
type routineSections struct {
	BodyCare  domain.BodyCareSection  `json:"bodyCare"`
	Nutrition domain.NutritionSection `json:"nutricion"`
	Exercise  domain.ExerciseSection  `json:"ejercicio"`
	Cleaning  domain.CleaningSection  `json:"cleaning"`
}

func (r *routineRepository) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+routineColumns+` FROM routines WHERE id = $1`, id)
	return scanRoutine(row)
}

func (r *routineRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.Routine, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+routineColumns+` FROM routines WHERE user_id = $1 AND date = $2`,
		userID, date)
	return scanRoutine(row)
}

func (r *routineRepository) List(ctx context.Context, filter repository.RoutineFilter) ([]domain.Routine, error) {
	const query = `
	SELECT ` + routineColumns + `
	FROM routines
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2::timestamptz IS NULL OR date >= $2)
	  AND ($3::timestamptz IS NULL OR date <= $3)
	ORDER BY date DESC
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID, nullTime(&filter.From), nullTime(&filter.To),
		clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []domain.Routine
	for rows.Next() {
		routine, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, *routine)
	}
	return routines, rows.Err()
}

// Upsert writes the routine for its user/day slot. The (user_id, date) unique
// index makes the per-day invariant hold under concurrent writes.
func (r *routineRepository) Upsert(ctx context.Context, routine *domain.Routine) (*domain.Routine, error) {
	if routine == nil {
		return nil, domain.ErrInvalidPayload
	}
	if routine.ID == "" {
		routine.ID = uuid.NewString()
	}

	sections := routineSections{
		BodyCare:  routine.BodyCare,
		Nutrition: routine.Nutrition,
		Exercise:  routine.Exercise,
		Cleaning:  routine.Cleaning,
	}

	const query = `
	INSERT INTO routines (id, user_id, date, sections, completeness, section_completeness)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id, date) DO UPDATE
	SET sections = EXCLUDED.sections,
		completeness = EXCLUDED.completeness,
		section_completeness = EXCLUDED.section_completeness,
		updated_at = NOW()
	RETURNING id, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		routine.ID,
		routine.UserID,
		routine.Date,
		marshalJSON(sections),
		routine.Completeness,
		marshalJSON(routine.SectionCompleteness),
	).Scan(&routine.ID, &routine.CreatedAt, &routine.UpdatedAt); err != nil {
		return nil, err
	}
	return routine, nil
}

func (r *routineRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM routines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoutineNotFound
	}
	return nil
}

func (r *routineRepository) Stats(ctx context.Context) (*repository.RoutineStats, error) {
	var stats repository.RoutineStats
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(completeness), 0) FROM routines`,
	).Scan(&stats.Total, &stats.AverageCompleteness)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanRoutine(row pgx.Row) (*domain.Routine, error) {
	var (
		routine             domain.Routine
		sections            []byte
		sectionCompleteness []byte
	)

	if err := row.Scan(
		&routine.ID,
		&routine.UserID,
		&routine.Date,
		&sections,
		&routine.Completeness,
		&sectionCompleteness,
		&routine.CreatedAt,
		&routine.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoutineNotFound
		}
		return nil, err
	}

	if len(sections) > 0 {
		var s routineSections
		if err := json.Unmarshal(sections, &s); err == nil {
			routine.BodyCare = s.BodyCare
			routine.Nutrition = s.Nutrition
			routine.Exercise = s.Exercise
			routine.Cleaning = s.Cleaning
		}
	}
	if len(sectionCompleteness) > 0 {
		_ = json.Unmarshal(sectionCompleteness, &routine.SectionCompleteness)
	}

	return &routine, nil
}
