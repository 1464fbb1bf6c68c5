package mapping

import (
	"github.com/bankingmngt/banking_mngt_backend/internal/core/domain"
	"github.com/bankingmngt/banking_mngt_backend/internal/models"
)

// ToDomainTransaction converts a database transaction model to its domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		RecordedAt:    m.RecordedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToModelTransaction converts a domain transaction to its database model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		FromAccountID: d.FromAccountID,
		ToAccountID:   d.ToAccountID,
		Amount:        d.Amount,
		RecordedAt:    d.RecordedAt,
		CreatedBy:     d.CreatedBy,
	}
}
