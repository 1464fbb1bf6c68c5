package dto

import (
	"time"

	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	Owner string `json:"owner" binding:"required"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     int64           `json:"accountID"`
	Owner         string          `json:"owner"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// AccountWithHistoryResponse pairs an account snapshot with its transfer history.
type AccountWithHistoryResponse struct {
	Account      AccountResponse       `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Owner:         acc.Owner,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToAccountWithHistoryResponse joins the snapshot and its history into one DTO.
func ToAccountWithHistoryResponse(acc *domain.Account, txns []domain.Transaction) AccountWithHistoryResponse {
	return AccountWithHistoryResponse{
		Account:      ToAccountResponse(acc),
		Transactions: ToTransactionResponses(txns),
	}
}
