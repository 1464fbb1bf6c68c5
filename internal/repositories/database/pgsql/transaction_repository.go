package pgsql

import (
	"context"
	"errors"

	"github.com/bankingmngt/banking_mngt_backend/internal/apperrors"
	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	portsrepo "github.com/bankingmngt/banking_mngt_backend/internal/core/ports/repositories"
	"github.com/bankingmngt/banking_mngt_backend/internal/models"
	"github.com/bankingmngt/banking_mngt_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxTransactionRepository creates a new repository for the transfer log.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransfer applies the balance changes and appends the transfer record
// within one database transaction: lock the affected accounts in ascending id
// order, verify no balance goes negative, write the new balances, insert the
// record, commit. Any failure rolls the whole unit back.
func (r *PgxTransactionRepository) SaveTransfer(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	accountIDs := make([]int64, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}

	lockedAccounts, err := r.accountRepo.findAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	newBalances := make(map[int64]decimal.Decimal, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		newBalance := lockedAccounts[accountID].Balance.Add(delta)
		if newBalance.IsNegative() {
			return nil, apperrors.ErrInsufficientFunds
		}
		newBalances[accountID] = newBalance
	}

	if err := r.accountRepo.updateBalancesInTx(ctx, tx, newBalances, txn.CreatedBy, txn.RecordedAt); err != nil {
		return nil, err
	}

	modelTxn := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (from_account_id, to_account_id, amount, recorded_at, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING transaction_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		modelTxn.FromAccountID,
		modelTxn.ToAccountID,
		modelTxn.Amount,
		modelTxn.RecordedAt,
		modelTxn.CreatedBy,
	).Scan(&txn.TransactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transfer record", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, apperrors.NewAppError(500, "failed to commit transfer", err)
	}

	return &txn, nil
}

// FindTransactionsByAccountID retrieves every record where the account appears
// as sender or receiver, in commit order.
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, transactionsByAccountQuery, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for account", err)
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// FindAccountWithTransactions reads the balance snapshot and the history inside
// one repeatable-read transaction, so the pair is mutually consistent.
func (r *PgxTransactionRepository) FindAccountWithTransactions(ctx context.Context, accountID int64) (*domain.Account, []domain.Transaction, error) {
	tx, err := r.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to begin read transaction", err)
	}
	defer r.Rollback(ctx, tx)

	accountQuery := `
		SELECT account_id, owner, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_id = $1;
	`
	modelAccount, err := scanAccountRow(tx.QueryRow(ctx, accountQuery, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, apperrors.NewAppError(500, "failed to find account by ID", err)
	}

	rows, err := tx.Query(ctx, transactionsByAccountQuery, accountID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account", err)
	}
	transactions, err := scanTransactionRows(rows)
	if err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to commit read transaction", err)
	}

	domainAccount := mapping.ToDomainAccount(*modelAccount)
	return &domainAccount, transactions, nil
}

const transactionsByAccountQuery = `
	SELECT transaction_id, from_account_id, to_account_id, amount, recorded_at, created_by
	FROM transactions
	WHERE from_account_id = $1 OR to_account_id = $1
	ORDER BY transaction_id;
`

// scanTransactionRows drains the rows into domain transactions. It closes rows.
func scanTransactionRows(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.FromAccountID,
			&m.ToAccountID,
			&m.Amount,
			&m.RecordedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transaction rows", err)
	}
	return transactions, nil
}
