// Package memory provides an in-process implementation of the ledger
// repositories. Accounts and the transfer log share one store guarded by a
// single RWMutex, which is the serialization point for all mutation: no reader
// ever observes a balance between a debit and its paired credit.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bankingmngt/banking_mngt_backend/internal/apperrors"
	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	portsrepo "github.com/bankingmngt/banking_mngt_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store holds all ledger state for a single process.
type Store struct {
	mu             sync.RWMutex
	accounts       map[int64]domain.Account
	log            []domain.Transaction
	nextAccountID  int64
	nextTxnID      int64
	lastRecordedAt time.Time
}

// NewStore creates an empty in-memory ledger store.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[int64]domain.Account),
		nextAccountID: 1,
		nextTxnID:     1,
	}
}

var _ portsrepo.AccountRepositoryFacade = (*Store)(nil)
var _ portsrepo.TransactionRepositoryFacade = (*Store)(nil)

// CreateAccount inserts a new account with a zero balance.
// Identifiers are assigned monotonically and never reused.
func (s *Store) CreateAccount(ctx context.Context, owner string, createdBy string, now time.Time) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := domain.Account{
		AccountID: s.nextAccountID,
		Owner:     owner,
		Balance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
	s.nextAccountID++
	s.accounts[account.AccountID] = account

	return &account, nil
}

// FindAccountByID returns a snapshot of the account or apperrors.ErrNotFound.
func (s *Store) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

// AdjustBalance applies balance += delta, refusing any result below zero.
func (s *Store) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal, updatedBy string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return apperrors.ErrInsufficientFunds
	}

	account.Balance = newBalance
	account.LastUpdatedAt = now
	account.LastUpdatedBy = updatedBy
	s.accounts[accountID] = account
	return nil
}

// SaveTransfer applies the balance changes and appends the transfer record
// while holding the store lock, so the whole unit is atomic: either every
// change lands or none does.
func (s *Store) SaveTransfer(ctx context.Context, txn domain.Transaction, balanceChanges map[int64]decimal.Decimal) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate everything before touching any balance.
	newBalances := make(map[int64]decimal.Decimal, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		account, ok := s.accounts[accountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
		}
		newBalance := account.Balance.Add(delta)
		if newBalance.IsNegative() {
			return nil, apperrors.ErrInsufficientFunds
		}
		newBalances[accountID] = newBalance
	}

	for accountID, newBalance := range newBalances {
		account := s.accounts[accountID]
		account.Balance = newBalance
		account.LastUpdatedAt = txn.RecordedAt
		account.LastUpdatedBy = txn.CreatedBy
		s.accounts[accountID] = account
	}

	// Commit timestamps are clamped so the log stays monotonically non-decreasing.
	if txn.RecordedAt.Before(s.lastRecordedAt) {
		txn.RecordedAt = s.lastRecordedAt
	}
	s.lastRecordedAt = txn.RecordedAt

	txn.TransactionID = s.nextTxnID
	s.nextTxnID++
	s.log = append(s.log, txn)

	return &txn, nil
}

// FindTransactionsByAccountID returns, in commit order, every record where the
// account is sender or receiver.
func (s *Store) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.historyForLocked(accountID), nil
}

// FindAccountWithTransactions returns the account snapshot and its history
// under a single read lock, so the two are mutually consistent.
func (s *Store) FindAccountWithTransactions(ctx context.Context, accountID int64) (*domain.Account, []domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, nil, apperrors.ErrNotFound
	}
	return &account, s.historyForLocked(accountID), nil
}

// historyForLocked must be called with at least a read lock held.
func (s *Store) historyForLocked(accountID int64) []domain.Transaction {
	history := make([]domain.Transaction, 0)
	for _, txn := range s.log {
		if txn.FromAccountID == accountID || txn.ToAccountID == accountID {
			history = append(history, txn)
		}
	}
	return history
}
