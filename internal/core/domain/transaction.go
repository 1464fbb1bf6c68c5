package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a committed transfer between two accounts.
// Records are appended in commit order; RecordedAt is non-decreasing across the log.
type Transaction struct {
	TransactionID int64           `json:"transactionID"`
	FromAccountID int64           `json:"fromAccountID"`
	ToAccountID   int64           `json:"toAccountID"`
	Amount        decimal.Decimal `json:"amount"` // Strictly positive
	RecordedAt    time.Time       `json:"recordedAt"`
	CreatedBy     string          `json:"createdBy"` // Principal that submitted the transfer
}
