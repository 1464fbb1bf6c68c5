package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bankingmngt/banking_mngt_backend/internal/apperrors"
	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	portsrepo "github.com/bankingmngt/banking_mngt_backend/internal/core/ports/repositories"
	portssvc "github.com/bankingmngt/banking_mngt_backend/internal/core/ports/services"
	"github.com/bankingmngt/banking_mngt_backend/internal/dto"
	"github.com/bankingmngt/banking_mngt_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// ledgerService provides core account and transfer operations.
// It is the only writer of the account store and the transaction log.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateAccount opens a new account with a zero balance.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Owner) == "" {
		return nil, fmt.Errorf("%w: owner must not be empty", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account, err := s.accountRepo.CreateAccount(ctx, req.Owner, creatorID, now)
	if err != nil {
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created successfully", slog.Int64("account_id", account.AccountID))
	return account, nil
}

// GetAccountWithHistory returns the account snapshot and its transfer history.
// Both reads are taken at a single consistent instant, so the returned balance
// always reflects exactly the returned records. Pure read, never mutates state.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) GetAccountWithHistory(ctx context.Context, accountID int64) (*domain.Account, []domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, transactions, err := s.txnRepo.FindAccountWithTransactions(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to read account with history", slog.Int64("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, nil, err
	}

	logger.Debug("Account and history retrieved", slog.Int64("account_id", accountID), slog.Int("transaction_count", len(transactions)))
	return account, transactions, nil
}

// ProcessTransaction moves a positive amount between two distinct accounts.
// Preconditions are checked in order, short-circuiting on the first failure;
// the debit, credit and log append then commit as one atomic unit via the
// repository. A failed call leaves balances and history untouched.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) ProcessTransaction(ctx context.Context, req dto.CreateTransferRequest, creatorID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount.String())
	}

	// Self-transfers are rejected: they would be a no-op that still clutters the log.
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: transfer to the same account", apperrors.ErrValidation)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, req.FromAccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: source account %d", apperrors.ErrNotFound, req.FromAccountID)
		}
		logger.Error("Failed to fetch source account", slog.Int64("account_id", req.FromAccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch source account: %w", err)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, req.ToAccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: destination account %d", apperrors.ErrNotFound, req.ToAccountID)
		}
		logger.Error("Failed to fetch destination account", slog.Int64("account_id", req.ToAccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch destination account: %w", err)
	}

	// Debit and credit as one balance-change set; the repository applies it
	// together with the log append in a single atomic unit.
	balanceChanges := map[int64]decimal.Decimal{
		req.FromAccountID: req.Amount.Neg(),
		req.ToAccountID:   req.Amount,
	}

	txn := domain.Transaction{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		RecordedAt:    time.Now().UTC(),
		CreatedBy:     creatorID,
	}

	saved, err := s.txnRepo.SaveTransfer(ctx, txn, balanceChanges)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to save transfer", slog.Int64("from", req.FromAccountID), slog.Int64("to", req.ToAccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer committed",
		slog.Int64("transaction_id", saved.TransactionID),
		slog.Int64("from", saved.FromAccountID),
		slog.Int64("to", saved.ToAccountID),
		slog.String("amount", saved.Amount.String()),
	)
	return saved, nil
}
