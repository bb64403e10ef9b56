package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/presenta/backend/domain"
	"github.com/presenta/backend/repository"
)

type fakeTransactionRepo struct {
	store     map[string]*domain.Transaction
	createErr error
	updateErr error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{store: make(map[string]*domain.Transaction)}
}

func (f *fakeTransactionRepo) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	if tx, ok := f.store[id]; ok {
		clone := *tx
		return &clone, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) List(_ context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, tx := range f.store {
		if tx.UserID == filter.UserID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) Create(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	clone := *tx
	f.store[tx.ID] = &clone
	return &clone, nil
}

func (f *fakeTransactionRepo) Update(_ context.Context, tx *domain.Transaction) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.store[tx.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	clone := *tx
	f.store[tx.ID] = &clone
	return nil
}

func (f *fakeTransactionRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.store[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(f.store, id)
	return nil
}

type fakeBuffer struct {
	routines     int
	transactions int
	err          error
}

func (f *fakeBuffer) BufferRoutine(_ context.Context, _ string, _ *domain.Routine) error {
	f.routines++
	return f.err
}

func (f *fakeBuffer) BufferTransaction(_ context.Context, _ string, _ *domain.Transaction) error {
	f.transactions++
	return f.err
}

func validTransaction(userID string) *domain.Transaction {
	return &domain.Transaction{
		UserID:      userID,
		Description: "Supermercado",
		Amount:      120.50,
		Date:        time.Now(),
		Category:    "Comida y Mercado",
		Type:        domain.TransactionExpense,
	}
}

func TestCreateTransaction(t *testing.T) {
	repo := newFakeTransactionRepo()
	uc := New(repo, nil, nil)

	created, err := uc.Create(context.Background(), validTransaction("u-1"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, domain.TransactionPending, created.Status)
	require.Equal(t, "ARS", created.Currency)
}

func TestCreateTransactionValidation(t *testing.T) {
	uc := New(newFakeTransactionRepo(), nil, nil)
	ctx := context.Background()

	tx := validTransaction("u-1")
	tx.Description = "  "
	_, err := uc.Create(ctx, tx)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	tx = validTransaction("u-1")
	tx.Amount = 0
	_, err = uc.Create(ctx, tx)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	tx = validTransaction("u-1")
	tx.Type = "TRANSFERENCIA"
	_, err = uc.Create(ctx, tx)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	tx = validTransaction("u-1")
	tx.Category = "No existe"
	_, err = uc.Create(ctx, tx)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
}

func TestCreateBuffersOnStorageFailure(t *testing.T) {
	repo := newFakeTransactionRepo()
	repo.createErr = domain.WrapError(domain.ErrCodeInternal, "db down", errors.New("connection refused"))
	buf := &fakeBuffer{}
	uc := New(repo, buf, nil)

	created, err := uc.Create(context.Background(), validTransaction("u-1"))
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, 1, buf.transactions)
}

func TestValidationErrorsAreNotBuffered(t *testing.T) {
	repo := newFakeTransactionRepo()
	buf := &fakeBuffer{}
	uc := New(repo, buf, nil)

	tx := validTransaction("u-1")
	tx.Amount = -5
	_, err := uc.Create(context.Background(), tx)
	require.Error(t, err)
	require.Zero(t, buf.transactions)
}

func TestCreateFailsWhenBufferAlsoFails(t *testing.T) {
	repo := newFakeTransactionRepo()
	repo.createErr = domain.WrapError(domain.ErrCodeInternal, "db down", errors.New("connection refused"))
	buf := &fakeBuffer{err: errors.New("disk full")}
	uc := New(repo, buf, nil)

	_, err := uc.Create(context.Background(), validTransaction("u-1"))
	require.Error(t, err)
}

func TestUpdateOwnershipHidden(t *testing.T) {
	repo := newFakeTransactionRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, validTransaction("u-1"))
	require.NoError(t, err)

	// Another user sees someone else's record as missing, not forbidden.
	other := validTransaction("u-2")
	other.ID = created.ID
	_, err = uc.Update(ctx, other)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)

	_, err = uc.Get(ctx, "u-2", created.ID)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)

	require.ErrorIs(t, uc.Delete(ctx, "u-2", created.ID), domain.ErrTransactionNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	repo := newFakeTransactionRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, validTransaction("u-1"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "u-1", created.ID))
	_, err = uc.Get(ctx, "u-1", created.ID)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}
