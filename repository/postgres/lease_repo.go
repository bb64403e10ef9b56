package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
)

const leaseColumns = `id, user_id, property_id, tenant_id, start_date, end_date, monthly_rent, currency, deposit, status, created_at, updated_at`

type leaseRepository struct {
	pool *pgxpool.Pool
}

// NewLeaseRepository returns a Postgres-backed implementation of LeaseRepository.
func NewLeaseRepository(pool *pgxpool.Pool) repository.LeaseRepository {
	return &leaseRepository{pool: pool}
}

func (r *leaseRepository) GetByID(ctx context.Context, id string) (*domain.Lease, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leaseColumns+` FROM leases WHERE id = $1`, id)
	return scanLease(row)
}

func (r *leaseRepository) List(ctx context.Context, filter repository.LeaseFilter) ([]domain.Lease, error) {
	const query = `
	SELECT ` + leaseColumns + `
	FROM leases
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR property_id = $3)
	  AND ($4 = '' OR tenant_id = $4)
	ORDER BY start_date DESC
	LIMIT $5 OFFSET $6
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID, filter.Status, filter.PropertyID, filter.TenantID,
		clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		lease, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		leases = append(leases, *lease)
	}
	return leases, rows.Err()
}

func (r *leaseRepository) Create(ctx context.Context, lease *domain.Lease) (*domain.Lease, error) {
	if lease == nil {
		return nil, domain.ErrInvalidPayload
	}
	if lease.ID == "" {
		lease.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO leases (id, user_id, property_id, tenant_id, start_date, end_date, monthly_rent, currency, deposit, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		lease.ID,
		lease.UserID,
		lease.PropertyID,
		lease.TenantID,
		lease.StartDate,
		nullTime(lease.EndDate),
		lease.MonthlyRent,
		lease.Currency,
		lease.Deposit,
		lease.Status,
	).Scan(&lease.CreatedAt, &lease.UpdatedAt); err != nil {
		return nil, err
	}
	return lease, nil
}

func (r *leaseRepository) Update(ctx context.Context, lease *domain.Lease) error {
	if lease == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE leases
	SET property_id = $2,
		tenant_id = $3,
		start_date = $4,
		end_date = $5,
		monthly_rent = $6,
		currency = $7,
		deposit = $8,
		status = $9,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		lease.ID,
		lease.PropertyID,
		lease.TenantID,
		lease.StartDate,
		nullTime(lease.EndDate),
		lease.MonthlyRent,
		lease.Currency,
		lease.Deposit,
		lease.Status,
	).Scan(&lease.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrLeaseNotFound
		}
		return err
	}
	return nil
}

func (r *leaseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLeaseNotFound
	}
	return nil
}

func scanLease(row pgx.Row) (*domain.Lease, error) {
	var (
		lease   domain.Lease
		endDate *time.Time
	)

	if err := row.Scan(
		&lease.ID,
		&lease.UserID,
		&lease.PropertyID,
		&lease.TenantID,
		&lease.StartDate,
		&endDate,
		&lease.MonthlyRent,
		&lease.Currency,
		&lease.Deposit,
		&lease.Status,
		&lease.CreatedAt,
		&lease.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLeaseNotFound
		}
		return nil, err
	}

	lease.EndDate = endDate
	return &lease, nil
}
