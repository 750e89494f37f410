package pgsql

import (
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	"github.com/SscSPs/finance_reconciler/internal/platform/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository over one pool. Transactions
// begun through the provider run at isolation.
func NewRepositoryProvider(dbPool *pgxpool.Pool, isolation pgx.TxIsoLevel) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, Isolation: isolation}
	currencyRepo := newPgxCurrencyRepository(base)
	exchangeRateRepo := newPgxExchangeRateRepository(base)
	containerRepo := newPgxContainerRepository(base)
	entryRepo := newPgxEntryRepository(base)

	return portsrepo.RepositoryProvider{
		TxManager:        &base,
		CurrencyRepo:     currencyRepo,
		ExchangeRateRepo: exchangeRateRepo,
		ContainerRepo:    containerRepo,
		EntryRepo:        entryRepo,
	}
}

// IsoLevel maps a TX_ISOLATION setting to the pgx isolation level, defaulting to repeatable read.
func IsoLevel(name string) pgx.TxIsoLevel {
	switch name {
	case config.IsolationReadCommitted:
		return pgx.ReadCommitted
	case config.IsolationSerializable:
		return pgx.Serializable
	default:
		return pgx.RepeatableRead
	}
}
