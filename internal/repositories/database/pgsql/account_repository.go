package pgsql

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/bankingmngt/banking_mngt_backend/internal/apperrors"
	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	portsrepo "github.com/bankingmngt/banking_mngt_backend/internal/core/ports/repositories"
	"github.com/bankingmngt/banking_mngt_backend/internal/models"
	"github.com/bankingmngt/banking_mngt_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// CreateAccount inserts a new account with a zero balance. account_id is a
// bigserial, so identifiers are monotonically assigned and never reused.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, owner string, createdBy string, now time.Time) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (owner, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, 0, $2, $3, $2, $3)
		RETURNING account_id;
	`
	var accountID int64
	err := r.Pool.QueryRow(ctx, query, owner, now, createdBy).Scan(&accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert account", err)
	}

	return &domain.Account{
		AccountID: accountID,
		Owner:     owner,
		Balance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `
		SELECT account_id, owner, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_id = $1;
	`
	modelAccount, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID", err)
	}

	domainAccount := mapping.ToDomainAccount(*modelAccount)
	return &domainAccount, nil
}

// AdjustBalance applies balance += delta in a single conditional statement, so
// the non-negative invariant holds even without an explicit account lock.
func (r *PgxAccountRepository) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND balance + $2 >= 0;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, delta, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to adjust account balance", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Nothing was updated: either the account is missing or the debit would
	// have driven the balance negative.
	var exists bool
	err = r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1)`, accountID).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check account existence", err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrInsufficientFunds
}

// findAccountsByIDsForUpdate locks the given accounts with SELECT ... FOR UPDATE
// inside the caller's transaction. Locks are taken in ascending id order to
// avoid deadlock between concurrent transfers sharing accounts.
func (r *PgxAccountRepository) findAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []int64) (map[int64]domain.Account, error) {
	sorted := make([]int64, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	query := `
		SELECT account_id, owner, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_id = $1
		FOR UPDATE;
	`
	locked := make(map[int64]domain.Account, len(sorted))
	for _, id := range sorted {
		modelAccount, err := scanAccountRow(tx.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, apperrors.NewAppError(500, "failed to lock account for update", err)
		}
		locked[id] = mapping.ToDomainAccount(*modelAccount)
	}
	return locked, nil
}

// updateBalancesInTx writes the new balances inside the caller's transaction.
// Callers must already hold FOR UPDATE locks on every affected account.
func (r *PgxAccountRepository) updateBalancesInTx(ctx context.Context, tx pgx.Tx, newBalances map[int64]decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, balance := range newBalances {
		batch.Queue(query, accountID, balance, now, updatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}

// scanAccountRow scans a single account row into a model.
func scanAccountRow(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Owner,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
