package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
)

const propertyColumns = `id, user_id, name, address, city, type, status, notes, created_at, updated_at`

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository returns a Postgres-backed implementation of PropertyRepository.
func NewPropertyRepository(pool *pgxpool.Pool) repository.PropertyRepository {
	return &propertyRepository{pool: pool}
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	return scanProperty(row)
}

func (r *propertyRepository) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error) {
	const query = `
	SELECT ` + propertyColumns + `
	FROM properties
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.Status, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *property)
	}
	return properties, rows.Err()
}

func (r *propertyRepository) Stats(ctx context.Context, userID string) (*domain.PropertyStats, error) {
	const query = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $2)
	FROM properties
	WHERE user_id = $1
	`
	var stats domain.PropertyStats
	if err := r.pool.QueryRow(ctx, query, userID, domain.PropertyOccupied).Scan(&stats.Total, &stats.Occupied); err != nil {
		return nil, err
	}
	stats.Available = stats.Total - stats.Occupied
	return &stats, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if property == nil {
		return nil, domain.ErrInvalidPayload
	}
	if property.ID == "" {
		property.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO properties (id, user_id, name, address, city, type, status, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		property.ID,
		property.UserID,
		property.Name,
		property.Address,
		property.City,
		property.Type,
		property.Status,
		property.Notes,
	).Scan(&property.CreatedAt, &property.UpdatedAt); err != nil {
		return nil, err
	}
	return property, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	if property == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE properties
	SET name = $2,
		address = $3,
		city = $4,
		type = $5,
		status = $6,
		notes = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		property.ID,
		property.Name,
		property.Address,
		property.City,
		property.Type,
		property.Status,
		property.Notes,
	).Scan(&property.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPropertyNotFound
		}
		return err
	}
	return nil
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Property, error) {
	const query = `
	UPDATE properties
	SET status = $2, updated_at = NOW()
	WHERE id = $1
	RETURNING ` + propertyColumns + `
	`
	row := r.pool.QueryRow(ctx, query, id, status)
	property, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var property domain.Property
	if err := row.Scan(
		&property.ID,
		&property.UserID,
		&property.Name,
		&property.Address,
		&property.City,
		&property.Type,
		&property.Status,
		&property.Notes,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}
