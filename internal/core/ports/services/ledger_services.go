package services

import (
	"context"

	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	"github.com/bankingmngt/banking_mngt_backend/internal/dto"
)

// LedgerSvcFacade defines the ledger operations exposed to the transport layer.
type LedgerSvcFacade interface {
	// CreateAccount opens a new account with a zero balance for the given owner.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)

	// GetAccountWithHistory returns the account snapshot and its full transfer
	// history, mutually consistent. Pure read.
	GetAccountWithHistory(ctx context.Context, accountID int64) (*domain.Account, []domain.Transaction, error)

	// ProcessTransaction moves a positive amount between two distinct accounts as
	// one atomic unit and returns the committed record.
	ProcessTransaction(ctx context.Context, req dto.CreateTransferRequest, creatorID string) (*domain.Transaction, error)
}

// ServiceContainer holds the service facades handed to route registration.
type ServiceContainer struct {
	Ledger LedgerSvcFacade
}
