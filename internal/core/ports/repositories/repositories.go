package repositories

import (
	"context"
	"time"

	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRepositoryFacade defines persistence operations for accounts.
type AccountRepositoryFacade interface {
	// CreateAccount inserts a new account with a zero balance and returns it
	// with a freshly assigned, never-reused identifier.
	CreateAccount(ctx context.Context, owner string, createdBy string, now time.Time) (*domain.Account, error)

	// FindAccountByID returns a snapshot of the account or apperrors.ErrNotFound.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// AdjustBalance applies balance += delta. It returns apperrors.ErrNotFound if
	// the account does not exist and apperrors.ErrInsufficientFunds (leaving the
	// balance unchanged) if the result would be negative.
	AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal, updatedBy string, now time.Time) error
}

// TransactionRepositoryFacade defines persistence operations for the transfer log.
type TransactionRepositoryFacade interface {
	// SaveTransfer atomically applies the given balance changes and appends the
	// transfer record to the log, assigning its id and commit timestamp. The whole
	// unit succeeds or leaves no trace. Returns apperrors.ErrNotFound if any
	// affected account is missing, apperrors.ErrInsufficientFunds if a change
	// would drive a balance negative.
	SaveTransfer(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) (*domain.Transaction, error)

	// FindTransactionsByAccountID returns every record where the account appears
	// as sender or receiver, in commit order. Repeated calls are idempotent reads.
	FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)

	// FindAccountWithTransactions returns the account snapshot together with its
	// history, both taken at a single consistent instant.
	FindAccountWithTransactions(ctx context.Context, accountID int64) (*domain.Account, []domain.Transaction, error)
}
