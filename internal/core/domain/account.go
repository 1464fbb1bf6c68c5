package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a ledger account within the core domain.
// This is the primary representation used by services.
//
// AccountID is assigned monotonically by the store and never reused.
// Balance is never negative; only transfer processing mutates it.
type Account struct {
	AccountID int64           `json:"accountID"`
	Owner     string          `json:"owner"`
	Balance   decimal.Decimal `json:"balance"`
	AuditFields
}
