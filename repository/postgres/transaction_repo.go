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

const transactionColumns = `id, user_id, description, amount, date, category, status, type, currency, lease_id, created_at, updated_at`

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository returns a Postgres-backed implementation of TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) repository.TransactionRepository {
	return &transactionRepository{pool: pool}
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

func (r *transactionRepository) List(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	const query = `
	SELECT ` + transactionColumns + `
	FROM transactions
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR type = $3)
	  AND ($4::timestamptz IS NULL OR date >= $4)
	  AND ($5::timestamptz IS NULL OR date <= $5)
	ORDER BY date DESC
	LIMIT $6 OFFSET $7
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID, filter.Status, filter.Type,
		nullTime(&filter.From), nullTime(&filter.To),
		clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx == nil {
		return nil, domain.ErrInvalidPayload
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO transactions (id, user_id, description, amount, date, category, status, type, currency, lease_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Description,
		tx.Amount,
		tx.Date,
		tx.Category,
		tx.Status,
		tx.Type,
		tx.Currency,
		nullString(tx.LeaseID),
	).Scan(&tx.CreatedAt, &tx.UpdatedAt); err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	if tx == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE transactions
	SET description = $2,
		amount = $3,
		date = $4,
		category = $5,
		status = $6,
		type = $7,
		currency = $8,
		lease_id = $9,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		tx.ID,
		tx.Description,
		tx.Amount,
		tx.Date,
		tx.Category,
		tx.Status,
		tx.Type,
		tx.Currency,
		nullString(tx.LeaseID),
	).Scan(&tx.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTransactionNotFound
		}
		return err
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx      domain.Transaction
		leaseID *string
	)

	if err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Description,
		&tx.Amount,
		&tx.Date,
		&tx.Category,
		&tx.Status,
		&tx.Type,
		&tx.Currency,
		&leaseID,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	if leaseID != nil {
		tx.LeaseID = *leaseID
	}
	return &tx, nil
}
