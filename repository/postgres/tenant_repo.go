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

const tenantColumns = `id, user_id, first_name, last_name, email, phone, document_id, nationality, occupation, status, property_id, lease_id, created_at, updated_at`

type tenantRepository struct {
	pool *pgxpool.Pool
}

// NewTenantRepository returns a Postgres-backed implementation of TenantRepository.
func NewTenantRepository(pool *pgxpool.Pool) repository.TenantRepository {
	return &tenantRepository{pool: pool}
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

func (r *tenantRepository) List(ctx context.Context, filter repository.TenantFilter) ([]domain.Tenant, error) {
	const query = `
	SELECT ` + tenantColumns + `
	FROM tenants
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR property_id = $3)
	ORDER BY created_at DESC
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.Status, filter.PropertyID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *tenant)
	}
	return tenants, rows.Err()
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if tenant == nil {
		return nil, domain.ErrInvalidPayload
	}
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tenants (id, user_id, first_name, last_name, email, phone, document_id, nationality, occupation, status, property_id, lease_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		tenant.ID,
		tenant.UserID,
		tenant.FirstName,
		tenant.LastName,
		tenant.Email,
		tenant.Phone,
		tenant.DocumentID,
		tenant.Nationality,
		tenant.Occupation,
		tenant.Status,
		nullString(tenant.PropertyID),
		nullString(tenant.LeaseID),
	).Scan(&tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateTenant
		}
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	if tenant == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tenants
	SET first_name = $2,
		last_name = $3,
		email = $4,
		phone = $5,
		document_id = $6,
		nationality = $7,
		occupation = $8,
		status = $9,
		property_id = $10,
		lease_id = $11,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		tenant.ID,
		tenant.FirstName,
		tenant.LastName,
		tenant.Email,
		tenant.Phone,
		tenant.DocumentID,
		tenant.Nationality,
		tenant.Occupation,
		tenant.Status,
		nullString(tenant.PropertyID),
		nullString(tenant.LeaseID),
	).Scan(&tenant.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTenantNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTenant
		}
		return err
	}
	return nil
}

func (r *tenantRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var (
		tenant     domain.Tenant
		occupation *string
		propertyID *string
		leaseID    *string
	)

	if err := row.Scan(
		&tenant.ID,
		&tenant.UserID,
		&tenant.FirstName,
		&tenant.LastName,
		&tenant.Email,
		&tenant.Phone,
		&tenant.DocumentID,
		&tenant.Nationality,
		&occupation,
		&tenant.Status,
		&propertyID,
		&leaseID,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}

	if occupation != nil {
		tenant.Occupation = *occupation
	}
	if propertyID != nil {
		tenant.PropertyID = *propertyID
	}
	if leaseID != nil {
		tenant.LeaseID = *leaseID
	}

	return &tenant, nil
}
