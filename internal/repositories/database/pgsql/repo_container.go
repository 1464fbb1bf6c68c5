package pgsql

import (
	portsrepo "github.com/bankingmngt/banking_mngt_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryProvider wires together the pgx-backed repositories.
type RepositoryProvider struct {
	Account     portsrepo.AccountRepositoryFacade
	Transaction portsrepo.TransactionRepositoryFacade
}

// NewRepositoryProvider creates all pgsql repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return &RepositoryProvider{
		Account:     accountRepo,
		Transaction: newPgxTransactionRepository(pool, accountRepo),
	}
}
