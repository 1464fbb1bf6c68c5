package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a committed transfer record.
// transaction_id is a bigserial, so commit order is the id order.
type Transaction struct {
	TransactionID int64           `db:"transaction_id"`
	FromAccountID int64           `db:"from_account_id"`
	ToAccountID   int64           `db:"to_account_id"`
	Amount        decimal.Decimal `db:"amount"`
	RecordedAt    time.Time       `db:"recorded_at"`
	CreatedBy     string          `db:"created_by"`
}
