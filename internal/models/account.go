package models

import (
	"github.com/shopspring/decimal"
)

// Account is the database representation of a ledger account.
// balance carries a CHECK (balance >= 0) constraint in the schema.
type Account struct {
	AccountID int64           `db:"account_id"`
	Owner     string          `db:"owner"`
	Balance   decimal.Decimal `db:"balance"`
	AuditFields
}
