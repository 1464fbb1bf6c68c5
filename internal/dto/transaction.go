package dto

import (
	"time"

	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to process a transfer.
// Amount arrives as a JSON number or string and is held as a decimal so the
// ledger never does floating-point arithmetic.
type CreateTransferRequest struct {
	FromAccountID int64           `json:"fromAccountID" binding:"required"`
	ToAccountID   int64           `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// TransactionResponse defines the data returned for a committed transfer record.
type TransactionResponse struct {
	TransactionID int64           `json:"transactionID"`
	FromAccountID int64           `json:"fromAccountID"`
	ToAccountID   int64           `json:"toAccountID"`
	Amount        decimal.Decimal `json:"amount"`
	RecordedAt    time.Time       `json:"recordedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		FromAccountID: txn.FromAccountID,
		ToAccountID:   txn.ToAccountID,
		Amount:        txn.Amount,
		RecordedAt:    txn.RecordedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
